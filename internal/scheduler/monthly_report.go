package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/modules/reports"
)

// reportTimeout bounds one user's report generation, which calls out to
// the text generation backend.
const reportTimeout = 2 * time.Minute

// MonthlyReportJob generates a financial report for every user. Scheduled
// for the first of each month.
type MonthlyReportJob struct {
	users   UserLister
	reports *reports.Service
	log     zerolog.Logger
}

// NewMonthlyReportJob creates a new MonthlyReportJob
func NewMonthlyReportJob(users UserLister, reportService *reports.Service, log zerolog.Logger) *MonthlyReportJob {
	return &MonthlyReportJob{
		users:   users,
		reports: reportService,
		log:     log.With().Str("job", "monthly_report").Logger(),
	}
}

// Name implements Job
func (j *MonthlyReportJob) Name() string {
	return "monthly_report"
}

// Run generates reports for all users. A failure for one user does not
// stop the sweep.
func (j *MonthlyReportJob) Run() error {
	ids, err := j.users.ListUserIDs()
	if err != nil {
		return err
	}

	var generated int
	for _, userID := range ids {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		_, err := j.reports.Generate(ctx, userID)
		cancel()
		if err != nil {
			j.log.Error().Err(err).Str("user_id", userID.String()).Msg("Report generation failed for user")
			continue
		}
		generated++
	}

	j.log.Info().Int("users", len(ids)).Int("reports", generated).Msg("Report sweep finished")
	return nil
}
