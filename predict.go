package ratingengine

import (
	"math"

	"ratingengine/internal/numerics"
	"ratingengine/internal/teamagg"
)

// RankProbability pairs a 1-based competition rank with the predicted
// probability of a team finishing at that rank, aligned to the team's
// original input position.
type RankProbability struct {
	Rank        int
	Probability float64
}

func (m *Model) aggregateAll(teams [][]Rating) []teamagg.Team {
	out := make([]teamagg.Team, len(teams))
	for i, team := range teams {
		players := make([]teamagg.Player, len(team))
		for j, p := range team {
			players[j] = teamagg.Player{Mu: p.Mu, Sigma: p.Sigma}
		}
		out[i] = teamagg.Aggregate(players, i, false, m.cfg.Kappa)
	}
	return out
}

// PredictWin returns, per team in input order, the probability of that
// team winning the matchup -- grounded on
// original_source/openskill/models/weng_lin/plackett_luce.py's
// predict_win (two-team fast path using total player count N; n>2
// pairwise-permutation decomposition using team count n).
func (m *Model) PredictWin(teams [][]Rating) ([]float64, error) {
	if err := validatePredict(teams); err != nil {
		return nil, err
	}
	aggs := m.aggregateAll(teams)
	n := len(aggs)
	beta := m.cfg.Beta

	if n == 2 {
		totalPlayers := 0
		for _, team := range teams {
			totalPlayers += len(team)
		}
		denom := math.Sqrt(float64(totalPlayers)*beta*beta + aggs[0].SigmaSq + aggs[1].SigmaSq)
		pA := numerics.Phi((aggs[0].Mu - aggs[1].Mu) / denom)
		return []float64{pA, 1 - pA}, nil
	}

	scores := make([]float64, n)
	for a := 0; a < n; a++ {
		var sum float64
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			denom := math.Sqrt(float64(n)*beta*beta + aggs[a].SigmaSq + aggs[b].SigmaSq)
			sum += numerics.Phi((aggs[a].Mu - aggs[b].Mu) / denom)
		}
		scores[a] = sum / float64(n-1)
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	for i := range scores {
		scores[i] /= total
	}
	return scores, nil
}

// PredictDraw returns the probability that the matchup ends in a full
// draw across all teams, grounded on the same source's predict_draw.
func (m *Model) PredictDraw(teams [][]Rating) (float64, error) {
	if err := validatePredict(teams); err != nil {
		return 0, err
	}
	aggs := m.aggregateAll(teams)
	n := len(aggs)
	beta := m.cfg.Beta

	totalPlayers := 0
	for _, team := range teams {
		totalPlayers += len(team)
	}
	nf := float64(totalPlayers)
	pDraw := 1 / nf
	drawMargin := math.Sqrt(nf) * beta * numerics.PhiInv((1+pDraw)/2)

	var sum float64
	var pairs int
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			denom := math.Sqrt(float64(n)*beta*beta + aggs[a].SigmaSq + aggs[b].SigmaSq)
			diff := aggs[a].Mu - aggs[b].Mu
			sum += numerics.Phi((drawMargin-diff)/denom) - numerics.Phi((-drawMargin-diff)/denom)
			pairs++
		}
	}
	denom := 1
	if n > 2 {
		denom = n * (n - 1)
	}
	return math.Abs(sum) / float64(denom), nil
}

// PredictRank returns, per team in input order, the (rank, probability)
// pair computed from each team's expected-beat-probability over all
// opponents, grounded on the same source's predict_rank.
func (m *Model) PredictRank(teams [][]Rating) ([]RankProbability, error) {
	if err := validatePredict(teams); err != nil {
		return nil, err
	}
	aggs := m.aggregateAll(teams)
	n := len(aggs)
	beta := m.cfg.Beta

	scores := make([]float64, n)
	for a := 0; a < n; a++ {
		var sum float64
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			denom := math.Sqrt(float64(n)*beta*beta + aggs[a].SigmaSq + aggs[b].SigmaSq)
			sum += numerics.Phi((aggs[a].Mu - aggs[b].Mu) / denom)
		}
		scores[a] = sum
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	for i := range scores {
		scores[i] /= total
	}

	// Competition-rank descending by probability: negate so RankData's
	// ascending convention produces rank 1 for the highest probability.
	negated := make([]float64, n)
	for i, s := range scores {
		negated[i] = -s
	}
	ranks := numerics.RankData(negated)

	out := make([]RankProbability, n)
	for i := range out {
		out[i] = RankProbability{Rank: ranks[i], Probability: scores[i]}
	}
	return out, nil
}
