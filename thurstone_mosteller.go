package ratingengine

import (
	"math"

	"ratingengine/internal/numerics"
	"ratingengine/internal/teamagg"
)

// thurstoneMosteller implements both Thurstone-Mosteller Full and Part,
// grounded on
// original_source/openskill/models/weng_lin/bradley_terry_part.py's sibling
// thurstone_mosteller_part.py (same file layout, v/w/vtilde/wtilde in
// place of the logistic p). Part restricts the opponent sum to rank-ladder
// neighbours and doubles c_iq.
type thurstoneMosteller struct {
	part bool
}

func (t thurstoneMosteller) computeTeamDeltas(teams []teamagg.Team, beta, kappa, margin float64, gamma GammaFunc, weights [][]float64) (omega, delta []float64) {
	n := len(teams)
	omega = make([]float64, n)
	delta = make([]float64, n)
	for i, ti := range teams {
		var opponents []int
		if t.part {
			opponents = numerics.LadderPairs(i, n)
		} else {
			opponents = allExcept(i, n)
		}
		for _, q := range opponents {
			tq := teams[q]
			c := math.Sqrt(ti.SigmaSq + tq.SigmaSq + 2*beta*beta)
			if t.part {
				c *= 2
			}
			dMu := (ti.Mu - tq.Mu) / c
			eps := margin / c
			var wRow []float64
			if weights != nil {
				wRow = weights[i]
			}
			gammaVal := gamma(c, n, ti.Mu, ti.SigmaSq, ti.Players, ti.Rank, wRow)
			switch {
			case tq.Rank > ti.Rank:
				omega[i] += (ti.SigmaSq / c) * numerics.V(dMu, eps)
				delta[i] += gammaVal * (ti.SigmaSq / (c * c)) * numerics.W(dMu, eps)
			case tq.Rank < ti.Rank:
				omega[i] += -(ti.SigmaSq / c) * numerics.V(-dMu, eps)
				delta[i] += gammaVal * (ti.SigmaSq / (c * c)) * numerics.W(-dMu, eps)
			default:
				omega[i] += (ti.SigmaSq / c) * numerics.Vt(dMu, eps)
				delta[i] += gammaVal * (ti.SigmaSq / (c * c)) * numerics.Wt(dMu, eps)
			}
		}
	}
	return omega, delta
}
