package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/pathwise/pathwise/internal/database"
	"github.com/pathwise/pathwise/internal/di"
	"github.com/pathwise/pathwise/internal/scheduler"
)

// SystemHandlers serves process health, database stats and manual job
// triggers.
type SystemHandlers struct {
	log       zerolog.Logger
	container *di.Container
	sched     *scheduler.Scheduler
	startedAt time.Time

	anomalyScanJob   scheduler.Job
	monthlyReportJob scheduler.Job
}

// NewSystemHandlers creates a new SystemHandlers
func NewSystemHandlers(log zerolog.Logger, container *di.Container, sched *scheduler.Scheduler,
	anomalyScanJob, monthlyReportJob scheduler.Job) *SystemHandlers {
	return &SystemHandlers{
		log:              log.With().Str("handler", "system").Logger(),
		container:        container,
		sched:            sched,
		startedAt:        time.Now(),
		anomalyScanJob:   anomalyScanJob,
		monthlyReportJob: monthlyReportJob,
	}
}

// HandleSystemStatus reports process and host resource usage
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.writeJSON(w, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"cpu_percent":    cpuPercent,
		"ram_percent":    ramPercent,
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc_mb":  float64(memStats.HeapAlloc) / 1024 / 1024,
		"go_version":     runtime.Version(),
	})
}

// HandleDatabaseStats reports size and page statistics for each database
// GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	result := make(map[string]interface{})
	for _, db := range []*database.DB{h.container.CoreDB, h.container.LedgerDB, h.container.CacheDB} {
		stats, err := db.GetStats()
		if err != nil {
			h.log.Error().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		result[db.Name()] = map[string]interface{}{
			"size_bytes":     stats.SizeBytes,
			"wal_size_bytes": stats.WALSizeBytes,
			"page_count":     stats.PageCount,
			"page_size":      stats.PageSize,
			"freelist_count": stats.FreelistCount,
		}
	}

	h.writeJSON(w, result)
}

// HandleTriggerAnomalyScan runs the anomaly sweep immediately
// POST /api/jobs/anomaly-scan
func (h *SystemHandlers) HandleTriggerAnomalyScan(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.anomalyScanJob)
}

// HandleTriggerMonthlyReport runs the report sweep immediately
// POST /api/jobs/monthly-report
func (h *SystemHandlers) HandleTriggerMonthlyReport(w http.ResponseWriter, r *http.Request) {
	h.triggerJob(w, h.monthlyReportJob)
}

func (h *SystemHandlers) triggerJob(w http.ResponseWriter, job scheduler.Job) {
	if err := h.sched.RunNow(job); err != nil {
		h.log.Error().Err(err).Str("job", job.Name()).Msg("Manual job trigger failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]string{
		"status": "success",
		"job":    job.Name(),
	})
}

// getSystemStats calculates CPU and RAM usage percentages. The CPU sample
// uses a 100ms interval to keep the endpoint fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
