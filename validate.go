package ratingengine

// validateConfig checks a resolved Config's hyperparameters for the
// OutOfRange cases spec'd for (I1-adjacent) model construction: Beta,
// Kappa, and Tau must be non-negative.
func validateConfig(cfg Config) error {
	if cfg.Beta < 0 {
		return outOfRangef("beta", "beta must be non-negative, got %v", cfg.Beta)
	}
	if cfg.Kappa < 0 {
		return outOfRangef("kappa", "kappa must be non-negative, got %v", cfg.Kappa)
	}
	if cfg.Tau < 0 {
		return outOfRangef("tau", "tau must be non-negative, got %v", cfg.Tau)
	}
	return nil
}

// validateRate checks the shape of a Rate call's inputs -- team count,
// ranks/scores exclusivity and length, weights shape -- and that every
// input Rating carries a positive sigma (I1), failing fast with
// InvalidInput or OutOfRange before any pre-processing runs.
func validateRate(teams [][]Rating, opts RateOptions) error {
	if len(teams) < 2 {
		return invalidInputf("teams", "rate requires at least 2 teams, got %d", len(teams))
	}
	for i, team := range teams {
		if len(team) == 0 {
			return invalidInputf("teams", "team %d is empty", i)
		}
		for j, p := range team {
			if p.Sigma <= 0 {
				return outOfRangef("sigma", "team %d player %d has sigma %v, want > 0", i, j, p.Sigma)
			}
		}
	}
	if len(opts.Ranks) > 0 && len(opts.Scores) > 0 {
		return invalidInputf("ranks/scores", "ranks and scores cannot both be provided")
	}
	if len(opts.Ranks) > 0 && len(opts.Ranks) != len(teams) {
		return invalidInputf("ranks", "length %d does not match %d teams", len(opts.Ranks), len(teams))
	}
	if len(opts.Scores) > 0 && len(opts.Scores) != len(teams) {
		return invalidInputf("scores", "length %d does not match %d teams", len(opts.Scores), len(teams))
	}
	if opts.Weights != nil {
		if len(opts.Weights) != len(teams) {
			return invalidInputf("weights", "row count %d does not match %d teams", len(opts.Weights), len(teams))
		}
		for i, row := range opts.Weights {
			if len(row) != len(teams[i]) {
				return invalidInputf("weights", "row %d has %d entries, team has %d players", i, len(row), len(teams[i]))
			}
		}
	}
	return nil
}

func validatePredict(teams [][]Rating) error {
	if len(teams) < 2 {
		return invalidInputf("teams", "predict requires at least 2 teams, got %d", len(teams))
	}
	for i, team := range teams {
		if len(team) == 0 {
			return invalidInputf("teams", "team %d is empty", i)
		}
		for j, p := range team {
			if p.Sigma <= 0 {
				return outOfRangef("sigma", "team %d player %d has sigma %v, want > 0", i, j, p.Sigma)
			}
		}
	}
	return nil
}
