package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/config"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/world"
)

// LoadCatalog reads the configured world file, or generates a procedural
// world when no path is set.
func LoadCatalog(cfg config.WorldConfig) (*world.Catalog, error) {
	if cfg.Path != "" {
		cat, err := world.Load(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("loading world: %w", err)
		}
		logger.Info("world loaded",
			zap.String("path", cfg.Path),
			zap.Int("objects", len(cat.Objects)),
			zap.Float64("track_length", cat.Track.Length()),
		)
		return cat, nil
	}

	gen := world.DefaultGenerateConfig()
	if cfg.Objects > 0 {
		gen.Objects = cfg.Objects
	}
	gen.Seed = cfg.Seed
	cat := world.Generate(gen)
	logger.Info("world generated",
		zap.Int("objects", len(cat.Objects)),
		zap.Int64("seed", gen.Seed),
		zap.Float64("track_length", cat.Track.Length()),
	)
	return cat, nil
}
