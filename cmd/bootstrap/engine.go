package bootstrap

import (
	"pos-backoffice/internal/pkg/config"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/shared"

	"go.uber.org/fx"
)

var EngineModule = fx.Module("engine",
	fx.Provide(
		NewEngineSettings,
	),
)

// NewEngineSettings parses the configured pricing constants once. A malformed
// tax multiplier, late fee rate or rental period aborts startup instead of
// surfacing as a per-request error.
func NewEngineSettings(cfg config.Config) (shared.EngineSettings, error) {
	taxMultiplier, err := cfg.Engine.TaxMultiplierDecimal()
	if err != nil {
		return shared.EngineSettings{}, err
	}
	lateFeeRate, err := cfg.Engine.LateFeeRateDecimal()
	if err != nil {
		return shared.EngineSettings{}, err
	}
	if cfg.Engine.RentalPeriodDays < 1 {
		return shared.EngineSettings{}, errs.New("RENTAL_PERIOD_DAYS must be at least 1")
	}
	return shared.EngineSettings{
		TaxMultiplier:    taxMultiplier,
		LateFeeRate:      lateFeeRate,
		RentalPeriodDays: cfg.Engine.RentalPeriodDays,
	}, nil
}
