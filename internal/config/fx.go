package config

import (
	"time"

	"github.com/smallbiznis/seatcounter/internal/pricing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// NewPricingRegistry loads the pricing file and builds the immutable plan
// registry in the venue's timezone.
func NewPricingRegistry(cfg Config, log *zap.Logger) (*pricing.Registry, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("invalid venue timezone, falling back to local",
			zap.String("timezone", cfg.Timezone),
			zap.Error(err),
		)
		loc = time.Local
	}

	file, err := LoadPricingFile(cfg, log)
	if err != nil {
		return nil, err
	}
	return file.BuildRegistry(loc)
}

// PricingModule wires the plan registry for the billing engine.
var PricingModule = fx.Module("config.pricing",
	fx.Provide(NewPricingRegistry),
)
