package ratingengine

import (
	"math"

	"ratingengine/internal/teamagg"
)

// plackettLuce implements the single-global-denominator model, grounded on
// original_source/openskill/models/weng_lin/plackett_luce.py's _compute.
// It never reads weights -- per-player weighting only applies to the
// Bradley-Terry/Thurstone-Mosteller families.
type plackettLuce struct{}

func (plackettLuce) computeTeamDeltas(teams []teamagg.Team, beta, kappa, margin float64, gamma GammaFunc, weights [][]float64) (omega, delta []float64) {
	n := len(teams)
	c := 0.0
	for _, t := range teams {
		c += t.SigmaSq + beta*beta
	}
	c = math.Sqrt(c)

	e := make([]float64, n)
	for i, t := range teams {
		e[i] = math.Exp(t.Mu / c)
	}

	sumQ := make([]float64, n)
	aCount := make([]int, n)
	for q, tq := range teams {
		for s, ts := range teams {
			if ts.Rank >= tq.Rank {
				sumQ[q] += e[s]
			}
			if ts.Rank == tq.Rank {
				aCount[q]++
			}
		}
	}

	omega = make([]float64, n)
	delta = make([]float64, n)
	for i, ti := range teams {
		var omegaSum, deltaSum float64
		for q, tq := range teams {
			if tq.Rank > ti.Rank {
				continue
			}
			frac := e[i] / sumQ[q]
			indicator := 0.0
			if q == i {
				indicator = 1
			}
			omegaSum += (indicator - frac) / float64(aCount[q])
			deltaSum += (frac * (1 - frac)) / float64(aCount[q])
		}
		gammaVal := gamma(c, n, ti.Mu, ti.SigmaSq, ti.Players, ti.Rank, nil)
		omega[i] = (ti.SigmaSq / c) * omegaSum
		delta[i] = (ti.SigmaSq / (c * c)) * gammaVal * deltaSum
	}
	return omega, delta
}
