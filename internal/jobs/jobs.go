// Package jobs holds the scheduled maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/controle-mei/internal/config"
	"github.com/valeriaulyamaeva/controle-mei/internal/logging"
	"github.com/valeriaulyamaeva/controle-mei/internal/mei"
	"github.com/valeriaulyamaeva/controle-mei/internal/metrics"
)

const jobTimeout = time.Minute

type OverdueMarker interface {
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)
}

// MarkDasOverdue flips every pending DAS whose due date is behind today.
func MarkDasOverdue(ctx context.Context, store OverdueMarker, today time.Time, m *metrics.Metrics) (int64, error) {
	n, err := store.MarkOverdue(ctx, mei.OverdueCutoff(today))
	if err != nil {
		return 0, err
	}
	if m != nil {
		m.OverdueMarked.Add(float64(n))
	}
	return n, nil
}

// ScheduleDasOverdue registers MarkDasOverdue on cfg.DasOverdueSchedule.
func ScheduleDasOverdue(c *cron.Cron, store OverdueMarker, cfg config.Config, m *metrics.Metrics) (cron.EntryID, error) {
	log := logging.For("jobs")
	id, err := c.AddFunc(cfg.DasOverdueSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		today := cfg.Now()
		n, err := MarkDasOverdue(ctx, store, today, m)
		if err != nil {
			log.Error().Err(err).Str(logging.EVENT, "das_overdue").Msg("marking overdue DAS failed")
			return
		}
		log.Info().
			Str(logging.EVENT, "das_overdue").
			Str("cutoff", mei.MonthKey(mei.OverdueCutoff(today))).
			Int64("marked", n).
			Msg("overdue DAS marked")
	})
	if err != nil {
		return 0, fmt.Errorf("schedule das overdue %q: %w", cfg.DasOverdueSchedule, err)
	}
	return id, nil
}
