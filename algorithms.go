package ratingengine

import (
	"math"

	"ratingengine/internal/teamagg"
)

// algorithm is satisfied by each of the five per-model update rules. It
// receives the rank-sorted, already-aggregated teams and returns, per
// team, the mean-shift (omega) and variance-shrink (delta) pair that
// applyUpdate turns into per-player (mu, sigma) deltas.
type algorithm interface {
	computeTeamDeltas(teams []teamagg.Team, beta, kappa, margin float64, gamma GammaFunc, weights [][]float64) (omega, delta []float64)
}

// buildTeams aggregates each rank-sorted team's post-tau player values
// into a teamagg.Team, tagging it with its 0-based competition rank.
func buildTeams(teams [][]Rating, rankIdx []int, balance bool, kappa float64) []teamagg.Team {
	out := make([]teamagg.Team, len(teams))
	for i, team := range teams {
		players := make([]teamagg.Player, len(team))
		for j, p := range team {
			players[j] = teamagg.Player{Mu: p.Mu, Sigma: p.Sigma}
		}
		out[i] = teamagg.Aggregate(players, rankIdx[i], balance, kappa)
	}
	return out
}

// applyUpdate turns each team's (omega, delta) into fresh per-player
// Ratings via the Weng-Lin shared update formula. weights, if non-nil, is
// rank-sorted the same way as teams; its sign-of-shift convention
// (normalised weight when omega>0, its reciprocal otherwise) is applied
// per player.
func applyUpdate(teams []teamagg.Team, omega, delta []float64, weights [][]float64, kappa float64) [][]Rating {
	out := make([][]Rating, len(teams))
	for i, team := range teams {
		row := make([]Rating, len(team.Players))
		for j, p := range team.Players {
			wf := 1.0
			if weights != nil {
				w := weights[i][j]
				if omega[i] > 0 {
					wf = w
				} else {
					wf = 1 / w
				}
			}
			frac := p.Sigma * p.Sigma / team.SigmaSq
			muNew := p.Mu + frac*omega[i]*wf
			shrink := 1 - frac*delta[i]*wf
			if shrink < kappa {
				shrink = kappa
			}
			row[j] = Rating{Mu: muNew, Sigma: p.Sigma * math.Sqrt(shrink)}
		}
		out[i] = row
	}
	return out
}
