package ratingengine

import (
	"math"

	"ratingengine/internal/teamagg"
)

// GammaFunc tunes how much variance contracts per update. c is the
// combined deviation sqrt(sigma_i^2 + sigma_q^2 + 2*beta^2) (or the
// Plackett-Luce global denominator), k is the number of teams in the
// game, mu/sigmaSq are the team's own aggregate values, team is that
// team's post-tau per-player values, rank is the team's 0-based
// competition rank, and weights is the team's (already bounds-normalised)
// per-player weight row, or nil if the call supplied none (always nil for
// Plackett-Luce, which ignores weights). The zero value
// of Config.Gamma resolves to DefaultGamma.
type GammaFunc func(c float64, k int, mu, sigmaSq float64, team []teamagg.Player, rank int, weights []float64) float64

// DefaultGamma is sigma/c, the reference implementation's default tuning
// function for all five models.
func DefaultGamma(c float64, k int, mu, sigmaSq float64, team []teamagg.Player, rank int, weights []float64) float64 {
	return math.Sqrt(sigmaSq) / c
}

// Config is a Model's immutable configuration. The zero value is not
// usable directly -- construct via New/NewDefault, which fill zero
// fields with the Weng-Lin defaults via resolveConfig.
type Config struct {
	Mu, Sigma, Beta, Kappa, Tau float64
	LimitSigma                  bool
	Balance                     bool
	Margin                      float64
	WeightBoundsLo              float64
	WeightBoundsHi              float64
	Gamma                       GammaFunc
}

// resolveConfig fills unset (zero-valued) fields with defaults: mu0=25,
// sigma0=mu0/3, beta=sigma0/2, kappa=1e-4, tau=mu0/300, margin=1e-4,
// weight bounds [1,2], gamma=DefaultGamma.
func resolveConfig(cfg Config) Config {
	if cfg.Mu == 0 {
		cfg.Mu = 25
	}
	if cfg.Sigma == 0 {
		cfg.Sigma = cfg.Mu / 3
	}
	if cfg.Beta == 0 {
		cfg.Beta = cfg.Sigma / 2
	}
	if cfg.Kappa == 0 {
		cfg.Kappa = 1e-4
	}
	if cfg.Tau == 0 {
		cfg.Tau = cfg.Mu / 300
	}
	if cfg.Margin == 0 {
		cfg.Margin = 1e-4
	}
	if cfg.WeightBoundsLo == 0 && cfg.WeightBoundsHi == 0 {
		cfg.WeightBoundsLo, cfg.WeightBoundsHi = 1, 2
	}
	if cfg.Gamma == nil {
		cfg.Gamma = DefaultGamma
	}
	return cfg
}
