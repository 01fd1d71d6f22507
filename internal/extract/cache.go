package extract

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/maypok86/otter"
	"github.com/rs/zerolog/log"

	"github.com/mvp-joe/i18n-detect/internal/detect"
)

// cachedSegments is the extraction result for one version of a file.
type cachedSegments struct {
	size     int64
	modTime  time.Time
	segments []detect.Segment
}

// CachedGateway memoizes another gateway by file path, size, and modification
// time. Failed extractions are not cached. Used by watch mode, where the same
// files are re-scanned on every change.
type CachedGateway struct {
	next  detect.Gateway
	cache otter.Cache[string, cachedSegments]
}

// NewCachedGateway wraps next with a cache holding at most maxEntries files.
func NewCachedGateway(next detect.Gateway, maxEntries int) (*CachedGateway, error) {
	cache, err := otter.MustBuilder[string, cachedSegments](maxEntries).
		CollectStats().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction cache: %w", err)
	}
	return &CachedGateway{next: next, cache: cache}, nil
}

var _ detect.Gateway = (*CachedGateway)(nil)

// ExtractTextEntriesFromFile returns cached segments when the file is unchanged.
func (c *CachedGateway) ExtractTextEntriesFromFile(ctx context.Context, filePath string) ([]detect.Segment, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		c.cache.Delete(filePath)
		return nil, detect.NewReadError(filePath, err)
	}

	if cached, ok := c.cache.Get(filePath); ok &&
		cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		log.Debug().Str("file", filePath).Msg("extraction cache hit")
		return cached.segments, nil
	}

	segments, err := c.next.ExtractTextEntriesFromFile(ctx, filePath)
	if err != nil {
		c.cache.Delete(filePath)
		return nil, err
	}

	c.cache.Set(filePath, cachedSegments{
		size:     info.Size(),
		modTime:  info.ModTime(),
		segments: segments,
	})
	return segments, nil
}

// Invalidate drops any cached result for the given paths.
func (c *CachedGateway) Invalidate(paths ...string) {
	for _, p := range paths {
		c.cache.Delete(p)
	}
}

// Hits returns the number of cache hits since creation.
func (c *CachedGateway) Hits() int64 {
	return c.cache.Stats().Hits()
}

// Close releases the cache's background resources.
func (c *CachedGateway) Close() {
	c.cache.Close()
}
