// Package numerics implements the scalar primitives the Weng-Lin update
// rules depend on: the standard normal CDF/PDF/inverse-CDF, the v/w/vtilde/
// wtilde correction functions, and small deterministic utilities (argsort,
// competition ranking, ladder pairs, weight-bounds rescaling).
//
// Every function here is pure and total: given the same inputs, on the same
// platform, it returns the same bit pattern. There is nothing to fail on
// scalar math; callers guarantee sigma > 0 and so on before calling in.
package numerics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// epsMach is the machine epsilon fallback threshold used by v/w/vtilde/wtilde,
// matching the reference implementation's sys.float_info.epsilon guards.
const epsMach = 2.220446049250313e-16

var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Phi is the CDF of the standard normal distribution.
func Phi(x float64) float64 { return standardNormal.CDF(x) }

// PhiInv is the inverse CDF (quantile function) of the standard normal
// distribution, defined on (0, 1).
func PhiInv(p float64) float64 { return standardNormal.Quantile(p) }

// PhiMinor is the PDF of the standard normal distribution.
func PhiMinor(x float64) float64 { return standardNormal.Prob(x) }

// V is the Thurstone-Mosteller "win" mean-shift term.
func V(x, t float64) float64 {
	xt := x - t
	denom := Phi(xt)
	if denom < epsMach {
		return -xt
	}
	return PhiMinor(xt) / denom
}

// W is the variance-correction companion to V.
func W(x, t float64) float64 {
	xt := x - t
	denom := Phi(xt)
	if denom < epsMach {
		if x < 0 {
			return 1
		}
		return 0
	}
	vv := V(x, t)
	return vv * (vv + xt)
}

// Vt (v-tilde) is the symmetric tie variant of V.
func Vt(x, t float64) float64 {
	xx := math.Abs(x)
	b := Phi(t-xx) - Phi(-t-xx)
	if b < 1e-5 {
		if x < 0 {
			return -x - t
		}
		return -x + t
	}
	a := PhiMinor(-t-xx) - PhiMinor(t-xx)
	if x < 0 {
		return -a / b
	}
	return a / b
}

// Wt (w-tilde) is the variance-correction companion to Vt.
func Wt(x, t float64) float64 {
	xx := math.Abs(x)
	b := Phi(t-xx) - Phi(-t-xx)
	if b < epsMach {
		return 1.0
	}
	vt := Vt(x, t)
	return ((t-xx)*PhiMinor(t-xx)+(t+xx)*PhiMinor(-t-xx))/b + vt*vt
}

// Ordinal computes a single-scalar skill summary: alpha*((mu - z*sigma) +
// target/alpha). Defaults z=3, alpha=1, target=0 are applied by callers
// that don't need to override them (see ratingengine.Rating.Ordinal).
func Ordinal(mu, sigma, z, alpha, target float64) float64 {
	return alpha * ((mu - z*sigma) + target/alpha)
}

// WeightBounds affine-rescales w into [lo, hi]. If every element of w is
// equal, every output element is hi (matching the reference's "no spread"
// fallback, which otherwise would divide by zero).
func WeightBounds(w []float64, lo, hi float64) []float64 {
	out := make([]float64, len(w))
	if len(w) == 0 {
		return out
	}
	min, max := floats.Min(w), floats.Max(w)
	if max == min {
		for i := range out {
			out[i] = hi
		}
		return out
	}
	scale := (hi - lo) / (max - min)
	for i, v := range w {
		out[i] = lo + (v-min)*scale
	}
	return out
}

// Argsort returns the permutation of indices that sorts v ascending.
func Argsort(v []float64) []int {
	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })
	return idx
}

// RankData assigns competition ranking (1, 1, 3, 4, ...) 1-based ranks to v,
// equivalent to scipy.stats.rankdata's default "average"-free variant used
// by the reference (ties share the lower rank; the next distinct value
// resumes at position+1).
func RankData(v []float64) []int {
	n := len(v)
	order := Argsort(v)
	sorted := make([]float64, n)
	for i, j := range order {
		sorted[i] = v[j]
	}
	ranks := make([]int, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && sorted[j+1] == sorted[i] {
			j++
		}
		for k := i; k <= j; k++ {
			ranks[order[k]] = i + 1
		}
		i = j + 1
	}
	return ranks
}

// RankIndices converts RankData's 1-based competition ranks into 0-based
// rank indices (still sharing values across ties), matching the spec's
// "0-based rank indices with ties" contract for scores->ranks conversion.
func RankIndices(v []float64) []int {
	ranks := RankData(v)
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r - 1
	}
	return out
}

// LadderPairs returns the rank-adjacent position indices {i-1, i+1},
// clipped to [0, n-1] and excluding i itself, for position i among n total
// positions. Used by the "Part" (partial-pairing) models.
func LadderPairs(i, n int) []int {
	var pairs []int
	if i-1 >= 0 {
		pairs = append(pairs, i-1)
	}
	if i+1 < n {
		pairs = append(pairs, i+1)
	}
	return pairs
}
