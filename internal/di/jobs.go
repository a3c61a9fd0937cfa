package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/scheduler"
)

// Cron schedules for the background sweeps. Times are server-local.
const (
	anomalyScanSchedule   = "0 6 * * *" // daily at 06:00
	monthlyReportSchedule = "0 7 1 * *" // 07:00 on the first of the month
)

// RegisterJobs creates the background jobs and registers them with the
// scheduler. Services must already be initialized.
func RegisterJobs(container *Container, sched *scheduler.Scheduler, log zerolog.Logger) error {
	anomalyScan := scheduler.NewAnomalyScanJob(container.ProfileRepo, container.AnomalyService, log)
	if err := sched.AddJob(anomalyScanSchedule, anomalyScan); err != nil {
		return fmt.Errorf("failed to register anomaly scan job: %w", err)
	}

	monthlyReport := scheduler.NewMonthlyReportJob(container.ProfileRepo, container.ReportService, log)
	if err := sched.AddJob(monthlyReportSchedule, monthlyReport); err != nil {
		return fmt.Errorf("failed to register monthly report job: %w", err)
	}

	return nil
}
