package worker

// sweeper.go
// Background goroutine that reaps orphaned placeholder records: documents
// stuck in status pending/failed because the image upload or the URL patch
// of a two-phase create never completed. Blob deletes are best-effort; the
// document is always removed.

import (
	"context"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/storage"

	"github.com/rs/zerolog/log"
)

const sweepBatchSize = 20

// SweeperConfig holds all dependencies for the sweeper goroutine.
type SweeperConfig struct {
	Repo     repository.ProductRepository
	Store    storage.Storage
	Interval time.Duration
	// MaxAge is how old a non-active record must be before it is reaped —
	// generous enough that an in-flight create never races the sweeper.
	MaxAge time.Duration
}

// StartSweeper launches a background goroutine that ticks every Interval and
// deletes stale placeholder records. It respects the context for graceful
// shutdown.
func StartSweeper(ctx context.Context, cfg SweeperConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("sweeper: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sweeper: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, cfg)
			}
		}
	}()
}

func sweep(ctx context.Context, cfg SweeperConfig) {
	cutoff := time.Now().Add(-cfg.MaxAge)
	stale, err := cfg.Repo.ListStale(ctx, cutoff, sweepBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("sweeper: failed to query stale records")
		return
	}
	if len(stale) == 0 {
		return
	}

	log.Info().Int("count", len(stale)).Msg("sweeper: reaping placeholder records")

	for i := range stale {
		p := &stale[i]
		id := p.ID.Hex()

		for _, rawURL := range []string{p.FrontImageURL, p.BackImageURL} {
			if rawURL == "" {
				continue
			}
			key, ok := cfg.Store.KeyFromURL(rawURL)
			if !ok {
				continue
			}
			if err := cfg.Store.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("sweeper: blob delete failed")
			}
		}

		if err := cfg.Repo.Delete(ctx, id); err != nil {
			log.Error().Err(err).Str("product_id", id).Msg("sweeper: record delete failed")
			continue
		}
		log.Info().
			Str("product_id", id).
			Str("status", p.Status).
			Time("created_at", p.CreatedAt).
			Msg("sweeper: placeholder record removed")
	}
}
