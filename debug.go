package artstamps

import (
	"time"

	"go.uber.org/zap"
)

// FrameStats holds per-frame movement and collision metrics.
type FrameStats struct {
	Frame       uint64
	Moved       int // entities that moved
	Corrections int // significant corrections applied
	CacheHits   int
	CacheMisses int // includes recomputes after a transform change
	Aborted     bool
	// Duration is only measured in debug mode.
	Duration time.Duration
}

// debugLog writes the frame's stats at debug level.
func (s *Session) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	s.log.Debug("frame",
		zap.Uint64("frame", stats.Frame),
		zap.Int("moved", stats.Moved),
		zap.Int("corrections", stats.Corrections),
		zap.Int("cache_hits", stats.CacheHits),
		zap.Int("cache_misses", stats.CacheMisses),
		zap.Int("cache_size", s.cache.Len()),
		zap.Bool("aborted", stats.Aborted),
		zap.Duration("elapsed", stats.Duration))
}

// debugMaxShapes is the level size above which per-frame probing gets
// noticeably expensive without spatial indexing.
const debugMaxShapes = 1000

func debugCheckShapeCount(log *zap.Logger, level *Level) {
	if level != nil && len(level.Shapes) > debugMaxShapes {
		log.Warn("level has many shapes",
			zap.Int("shapes", len(level.Shapes)),
			zap.Int("threshold", debugMaxShapes))
	}
}
