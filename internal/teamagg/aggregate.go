// Package teamagg collapses a team of per-player Gaussian beliefs into a
// single team-level (mu, sigma-squared) aggregate, with an optional
// balance re-weighting that pulls the aggregate toward the team's
// strongest member.
package teamagg

import "ratingengine/internal/numerics"

// Player is the minimal per-player view teamagg needs: the post-tau
// (mu, sigma) pair used to build a team's aggregate.
type Player struct {
	Mu    float64
	Sigma float64
}

// Team is the ephemeral per-team summary computed inside a single
// rate/predict call: collective mu, collective sigma-squared (optionally
// balance-weighted), the team's 0-based rank index, and the post-tau
// per-player values the caller needs to apply the per-player update.
type Team struct {
	Mu      float64
	SigmaSq float64
	Rank    int
	Players []Player
}

const balanceOrdinalZ = 3.0

// Aggregate sums a team's player mu's and sigma-squares, optionally
// applying the balance re-weighting: each player's contribution is scaled
// by 1 + (maxOrdinal-playerOrdinal)/(maxOrdinal+kappa), pulling the team
// aggregate toward its strongest member. The per-player (mu, sigma) values
// returned in Players are left unscaled -- balance only perturbs the
// aggregate used as the update's denominator, never the player's own
// belief.
func Aggregate(players []Player, rank int, balance bool, kappa float64) Team {
	agg := Team{Rank: rank, Players: players}
	if !balance {
		for _, p := range players {
			agg.Mu += p.Mu
			agg.SigmaSq += p.Sigma * p.Sigma
		}
		return agg
	}

	ordinals := make([]float64, len(players))
	maxOrdinal := players[0].Mu - balanceOrdinalZ*players[0].Sigma
	for i, p := range players {
		ordinals[i] = numerics.Ordinal(p.Mu, p.Sigma, balanceOrdinalZ, 1, 0)
		if ordinals[i] > maxOrdinal {
			maxOrdinal = ordinals[i]
		}
	}
	for i, p := range players {
		weight := 1 + (maxOrdinal-ordinals[i])/(maxOrdinal+kappa)
		agg.Mu += p.Mu * weight
		scaledSigma := p.Sigma * weight
		agg.SigmaSq += scaledSigma * scaledSigma
	}
	return agg
}
