// internal/theme/cache.go
package theme

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Cache holds the compiled CSS of the active theme keyed by (themeID,
// version). The entry swap is a single atomic pointer store, so readers
// never observe a half-written value. Invalidation marks the entry stale;
// readers then serve the previous valid CSS while one flight recomputes
// (stale-while-revalidate). The store is the source of truth; this is only a
// derived projection.
type Cache struct {
	repo     Repository
	resolver *Resolver

	entry atomic.Pointer[cacheEntry]
	stale atomic.Bool
	group singleflight.Group
}

type cacheEntry struct {
	themeID int64
	version int64
	css     string
	etag    string
}

func NewCache(repo Repository, resolver *Resolver) *Cache {
	return &Cache{repo: repo, resolver: resolver}
}

// ActiveCSS returns the compiled stylesheet of the active theme. A fresh
// entry is served directly; a stale one is served while a background flight
// recomputes; a cold cache computes synchronously.
func (c *Cache) ActiveCSS(ctx context.Context) (string, error) {
	css, _, err := c.ActiveCSSWithETag(ctx)
	return css, err
}

// ActiveCSSWithETag returns the stylesheet plus its entity tag, a quoted
// SHA-256 of the CSS bytes. The tag is stable across versions that compile
// to identical CSS, so conditional requests keep hitting.
func (c *Cache) ActiveCSSWithETag(ctx context.Context) (string, string, error) {
	entry := c.entry.Load()
	if entry != nil && !c.stale.Load() {
		return entry.css, entry.etag, nil
	}

	if entry != nil {
		go func(ctx context.Context) {
			if _, err := c.refresh(ctx); err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("Failed to refresh active theme CSS")
			}
		}(context.WithoutCancel(ctx))
		return entry.css, entry.etag, nil
	}

	fresh, err := c.refresh(ctx)
	if err != nil {
		return "", "", err
	}
	return fresh.css, fresh.etag, nil
}

// Invalidate marks the cached CSS stale. The next read triggers a recompute
// through the resolver and compiler.
func (c *Cache) Invalidate() {
	c.stale.Store(true)
}

// Warm recomputes the cached CSS immediately. Called at boot and by the
// scheduler so reads rarely pay the recompute cost.
func (c *Cache) Warm(ctx context.Context) error {
	_, err := c.refresh(ctx)
	return err
}

func (c *Cache) refresh(ctx context.Context) (*cacheEntry, error) {
	entry, err, _ := c.group.Do("active-css", func() (any, error) {
		// Clear the flag before reading: an Invalidate that lands while this
		// flight is in progress re-marks the entry stale so the next read
		// recomputes, instead of being erased once the flight stores its
		// pre-invalidation result.
		c.stale.Store(false)
		active, err := c.repo.GetActiveTheme(ctx)
		if err != nil {
			c.stale.Store(true)
			return nil, err
		}
		resolved, err := c.resolver.Resolve(ctx, active.ID)
		if err != nil {
			c.stale.Store(true)
			return nil, err
		}
		compiled := Compile(resolved)
		fresh := &cacheEntry{
			themeID: active.ID,
			version: active.Version,
			css:     compiled,
			etag:    cssETag(compiled),
		}
		c.entry.Store(fresh)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return entry.(*cacheEntry), nil
}

func cssETag(css string) string {
	sum := sha256.Sum256([]byte(css))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
