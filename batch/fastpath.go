package batch

import "ratingengine"

// entityUpdate is a snapshot-mode result: the flat-array index and its
// new (mu, sigma), applied to the shared slices after a wave completes.
type entityUpdate struct {
	index int
	mu    float64
	sigma float64
}

// buildGameTeams looks up each entity's current (mu, sigma) and flat
// index, building the team-of-Rating input Model.RateUnchecked expects.
func buildGameTeams(model *ratingengine.Model, entityToIdx map[string]int, mus, sigmas []float64, game Game) ([][]ratingengine.Rating, [][]int) {
	teams := make([][]ratingengine.Rating, len(game.Teams))
	indices := make([][]int, len(game.Teams))
	for t, ids := range game.Teams {
		team := make([]ratingengine.Rating, len(ids))
		idx := make([]int, len(ids))
		for p, id := range ids {
			i := entityToIdx[id]
			team[p] = model.CreateRating(mus[i], sigmas[i], id)
			idx[p] = i
		}
		teams[t] = team
		indices[t] = idx
	}
	return teams, indices
}

// RateGameFastInto rates a single game and writes the result straight
// into the shared (mu, sigma) slices -- the bypass path used by both
// Processor (ModeSharedMemory) and registry.Registry, grounded on
// _rate_game_fast in original_source/openskill/batch.py. It skips
// Model.Rate's input validation since the registry/processor already
// guarantee well-formed games.
func RateGameFastInto(model *ratingengine.Model, entityToIdx map[string]int, mus, sigmas []float64, game Game) {
	rateGameFast(model, entityToIdx, mus, sigmas, game)
}

func rateGameFast(model *ratingengine.Model, entityToIdx map[string]int, mus, sigmas []float64, game Game) {
	teams, indices := buildGameTeams(model, entityToIdx, mus, sigmas, game)
	result := model.RateUnchecked(teams, ratingengine.RateOptions{
		Ranks:   game.Ranks,
		Scores:  game.Scores,
		Weights: game.Weights,
	})
	for t, team := range result {
		for p, r := range team {
			i := indices[t][p]
			mus[i] = r.Mu
			sigmas[i] = r.Sigma
		}
	}
}

// snapshotRateGame is rateGameFast's read-only twin: it computes the
// update from the shared slices but never writes to them, returning the
// per-entity deltas for the caller to apply once the whole wave's
// goroutines have finished (ModeSnapshot).
func snapshotRateGame(model *ratingengine.Model, entityToIdx map[string]int, mus, sigmas []float64, game Game) []entityUpdate {
	teams, indices := buildGameTeams(model, entityToIdx, mus, sigmas, game)
	result := model.RateUnchecked(teams, ratingengine.RateOptions{
		Ranks:   game.Ranks,
		Scores:  game.Scores,
		Weights: game.Weights,
	})
	var updates []entityUpdate
	for t, team := range result {
		for p, r := range team {
			updates = append(updates, entityUpdate{index: indices[t][p], mu: r.Mu, sigma: r.Sigma})
		}
	}
	return updates
}
