package numerics

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestPhiKnownPoints(t *testing.T) {
	if !almostEqual(Phi(0), 0.5, 1e-9) {
		t.Fatalf("Phi(0) = %v, want 0.5", Phi(0))
	}
	if !almostEqual(Phi(1.959963984540054), 0.975, 1e-6) {
		t.Fatalf("Phi(1.96) = %v, want ~0.975", Phi(1.959963984540054))
	}
}

func TestPhiInvRoundTrip(t *testing.T) {
	for _, p := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
		x := PhiInv(p)
		if got := Phi(x); !almostEqual(got, p, 1e-9) {
			t.Fatalf("Phi(PhiInv(%v)) = %v, want %v", p, got, p)
		}
	}
}

func TestPhiMinorPeak(t *testing.T) {
	if got := PhiMinor(0); !almostEqual(got, 1/math.Sqrt(2*math.Pi), 1e-9) {
		t.Fatalf("PhiMinor(0) = %v", got)
	}
}

func TestVEpsilonFallback(t *testing.T) {
	// Far into the tail, Phi(xt) underflows below epsMach and V must fall
	// back to -xt rather than dividing by (near) zero.
	got := V(-100, 0)
	want := 100.0
	if !almostEqual(got, want, 1e-6) {
		t.Fatalf("V(-100, 0) = %v, want %v", got, want)
	}
}

func TestWEpsilonFallback(t *testing.T) {
	if got := W(-100, 0); got != 1 {
		t.Fatalf("W(-100, 0) = %v, want 1", got)
	}
	if got := W(100, 0); got != 0 {
		t.Fatalf("W(100, 0) = %v, want 0", got)
	}
}

func TestVtSymmetric(t *testing.T) {
	// Vt(x, t) should be antisymmetric in x for a fixed t within the normal
	// tie regime.
	a := Vt(0.5, 0.1)
	b := Vt(-0.5, 0.1)
	if !almostEqual(a, -b, 1e-9) {
		t.Fatalf("Vt(0.5,0.1)=%v, Vt(-0.5,0.1)=%v, expected negatives", a, b)
	}
}

func TestWtPositive(t *testing.T) {
	if got := Wt(0, 0.1); got <= 0 {
		t.Fatalf("Wt(0, 0.1) = %v, want > 0", got)
	}
}

func TestOrdinalDefaultZ(t *testing.T) {
	got := Ordinal(25, 25.0/3.0, 3, 1, 0)
	want := 25 - 3*25.0/3.0
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("Ordinal = %v, want %v", got, want)
	}
}

func TestWeightBoundsAllEqual(t *testing.T) {
	out := WeightBounds([]float64{5, 5, 5}, 1, 2)
	for _, v := range out {
		if v != 2 {
			t.Fatalf("expected all-hi fallback, got %v", out)
		}
	}
}

func TestWeightBoundsRescale(t *testing.T) {
	out := WeightBounds([]float64{0, 5, 10}, 1, 2)
	want := []float64{1, 1.5, 2}
	for i := range out {
		if !almostEqual(out[i], want[i], 1e-9) {
			t.Fatalf("WeightBounds = %v, want %v", out, want)
		}
	}
}

func TestRankDataTies(t *testing.T) {
	got := RankData([]float64{10, 20, 20, 40})
	want := []int{1, 2, 2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RankData = %v, want %v", got, want)
		}
	}
}

func TestRankIndicesZeroBased(t *testing.T) {
	got := RankIndices([]float64{5, 5, 3, 3, 9})
	want := []int{2, 2, 0, 0, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RankIndices = %v, want %v", got, want)
		}
	}
}

func TestLadderPairsBoundaries(t *testing.T) {
	cases := []struct {
		i, n int
		want []int
	}{
		{0, 5, []int{1}},
		{4, 5, []int{3}},
		{2, 5, []int{1, 3}},
		{0, 1, nil},
	}
	for _, c := range cases {
		got := LadderPairs(c.i, c.n)
		if len(got) != len(c.want) {
			t.Fatalf("LadderPairs(%d,%d) = %v, want %v", c.i, c.n, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("LadderPairs(%d,%d) = %v, want %v", c.i, c.n, got, c.want)
			}
		}
	}
}

func TestArgsortStable(t *testing.T) {
	got := Argsort([]float64{3, 1, 2})
	want := []int{1, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Argsort = %v, want %v", got, want)
		}
	}
}
