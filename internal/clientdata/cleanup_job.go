package clientdata

import (
	"fmt"

	"github.com/rs/zerolog"
)

// CleanupJob sweeps expired rows out of client_data.db. Scheduled hourly;
// the sweep is cheap because expires_at is part of every row.
type CleanupJob struct {
	repo *Repository
	log  zerolog.Logger
}

// NewCleanupJob creates the cache sweep job.
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		log:  log.With().Str("job", "cache_cleanup").Logger(),
	}
}

// Run deletes every expired entry across all cache tables.
func (j *CleanupJob) Run() error {
	results, err := j.repo.DeleteAllExpired()
	if err != nil {
		return fmt.Errorf("cache sweep failed: %w", err)
	}

	var total int64
	for _, count := range results {
		total += count
	}
	if total > 0 {
		ev := j.log.Debug()
		for table, count := range results {
			ev = ev.Int64(table, count)
		}
		ev.Int64("total", total).Msg("Swept expired cache entries")
	}

	return nil
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "cache_cleanup"
}
