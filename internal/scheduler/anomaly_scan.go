package scheduler

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pathwise/pathwise/internal/modules/anomaly"
)

// UserLister provides the user ids a sweep job iterates over.
type UserLister interface {
	ListUserIDs() ([]uuid.UUID, error)
}

// AnomalyScanJob sweeps every user's recent debits for spending anomalies.
// Detection is idempotent within a calendar month, so running daily only
// surfaces genuinely new findings.
type AnomalyScanJob struct {
	users   UserLister
	anomaly *anomaly.Service
	log     zerolog.Logger
}

// NewAnomalyScanJob creates a new AnomalyScanJob
func NewAnomalyScanJob(users UserLister, anomalyService *anomaly.Service, log zerolog.Logger) *AnomalyScanJob {
	return &AnomalyScanJob{
		users:   users,
		anomaly: anomalyService,
		log:     log.With().Str("job", "anomaly_scan").Logger(),
	}
}

// Name implements Job
func (j *AnomalyScanJob) Name() string {
	return "anomaly_scan"
}

// Run scans all users. A failure for one user does not stop the sweep.
func (j *AnomalyScanJob) Run() error {
	ids, err := j.users.ListUserIDs()
	if err != nil {
		return err
	}

	var found int
	for _, userID := range ids {
		created, err := j.anomaly.Scan(userID)
		if err != nil {
			j.log.Error().Err(err).Str("user_id", userID.String()).Msg("Anomaly scan failed for user")
			continue
		}
		found += len(created)
	}

	j.log.Info().Int("users", len(ids)).Int("anomalies", found).Msg("Anomaly sweep finished")
	return nil
}
