package ratingengine

import (
	"math"

	"ratingengine/internal/numerics"
	"ratingengine/internal/teamagg"
)

// bradleyTerry implements both Bradley-Terry Full (part=false, every
// opponent) and Bradley-Terry Part (part=true, only rank-ladder-adjacent
// opponents), grounded on
// original_source/openskill/models/weng_lin/bradley_terry_part.py's
// _compute (the Full variant drops that file's adjacency restriction).
type bradleyTerry struct {
	part bool
}

func (b bradleyTerry) computeTeamDeltas(teams []teamagg.Team, beta, kappa, margin float64, gamma GammaFunc, weights [][]float64) (omega, delta []float64) {
	n := len(teams)
	omega = make([]float64, n)
	delta = make([]float64, n)
	for i, ti := range teams {
		var opponents []int
		if b.part {
			opponents = numerics.LadderPairs(i, n)
		} else {
			opponents = allExcept(i, n)
		}
		for _, q := range opponents {
			tq := teams[q]
			c := math.Sqrt(ti.SigmaSq + tq.SigmaSq + 2*beta*beta)
			p := 1 / (1 + math.Exp((tq.Mu-ti.Mu)/c))
			var s float64
			switch {
			case tq.Rank > ti.Rank:
				s = 1
			case tq.Rank == ti.Rank:
				s = 0.5
			default:
				s = 0
			}
			omega[i] += (ti.SigmaSq / c) * (s - p)
			var wRow []float64
			if weights != nil {
				wRow = weights[i]
			}
			gammaVal := gamma(c, n, ti.Mu, ti.SigmaSq, ti.Players, ti.Rank, wRow)
			delta[i] += gammaVal * (ti.SigmaSq / (c * c)) * p * (1 - p)
		}
	}
	return omega, delta
}

// allExcept returns {0, ..., n-1} \ {i}, in order.
func allExcept(i, n int) []int {
	out := make([]int, 0, n-1)
	for q := 0; q < n; q++ {
		if q != i {
			out = append(out, q)
		}
	}
	return out
}
