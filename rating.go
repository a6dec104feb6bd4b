package ratingengine

import "ratingengine/internal/numerics"

// Rating is a player's belief: a Gaussian with mean Mu and standard
// deviation Sigma, plus an optional display name. Ratings are value types
// -- Rate never mutates its inputs, it returns fresh Rating values.
type Rating struct {
	Mu    float64
	Sigma float64
	Name  string
}

// Ordinal is the single-scalar skill summary mu - z*sigma (default z=3),
// used for sorting and for the optional balance re-weighting.
func (r Rating) Ordinal() float64 {
	return numerics.Ordinal(r.Mu, r.Sigma, 3, 1, 0)
}

// OrdinalWith computes the ordinal with explicit z, alpha and target, per
// the generalised alpha*((mu - z*sigma) + target/alpha) form.
func (r Rating) OrdinalWith(z, alpha, target float64) float64 {
	return numerics.Ordinal(r.Mu, r.Sigma, z, alpha, target)
}

// Equal reports whether two Ratings match within tolerance on (Mu, Sigma).
func (r Rating) Equal(other Rating, tol float64) bool {
	return absf(r.Mu-other.Mu) <= tol && absf(r.Sigma-other.Sigma) <= tol
}

// Less orders Ratings by Ordinal, ascending.
func (r Rating) Less(other Rating) bool { return r.Ordinal() < other.Ordinal() }

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
