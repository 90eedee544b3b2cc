package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/modules/portfolio"
)

const snapshotTimeout = 2 * time.Minute

// SnapshotJob records a daily portfolio valuation snapshot so the
// history endpoint can chart value over time.
type SnapshotJob struct {
	portfolio *portfolio.Service
	log       zerolog.Logger
}

// NewSnapshotJob creates a new portfolio snapshot job
func NewSnapshotJob(portfolioService *portfolio.Service, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		portfolio: portfolioService,
		log:       log.With().Str("job", "portfolio_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "portfolio_snapshot"
}

// Run values the portfolio at current market prices and stores the
// snapshot. Re-running on the same day replaces that day's row.
func (j *SnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snapshot, err := j.portfolio.TakeSnapshot(ctx)
	if err != nil {
		return err
	}

	j.log.Info().
		Str("date", snapshot.Date).
		Float64("total_value", snapshot.TotalValue).
		Int("holdings", snapshot.HoldingsCount).
		Msg("Portfolio snapshot saved")

	return nil
}
