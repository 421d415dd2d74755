package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velvetlane/storefront/internal/theme"
)

const rewarmJobTimeout = 30 * time.Second

// RegisterCacheRewarmJob keeps the active-theme CSS cache warm so reads
// rarely pay the resolve-and-compile cost after an invalidation.
func RegisterCacheRewarmJob(cache *theme.Cache, every time.Duration) error {
	if cache == nil {
		return fmt.Errorf("cache rewarm job requires cache")
	}

	jobName := "theme_cache_rewarm"
	jobLogger := log.With().
		Str("component", "theme_cache_rewarm_job").
		Str("job_name", jobName).
		Logger()

	_, err := AddIntervalJob(jobName, every, func() {
		ctx, cancel := context.WithTimeout(context.Background(), rewarmJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if err := cache.Warm(ctx); err != nil {
			// No active theme yet is normal on a fresh install.
			if errors.Is(err, theme.ErrNotFound) {
				jobLogger.Debug().Msg("Rewarm skipped: no active theme")
				return
			}
			jobLogger.Error().Err(err).Msg("Failed to rewarm active theme CSS")
		}
	})
	return err
}
