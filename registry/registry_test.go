package registry

import (
	"errors"
	"math"
	"testing"

	"ratingengine"
	"ratingengine/batch"
)

func almostEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestGetAutoRegisters(t *testing.T) {
	model := ratingengine.NewDefault(ratingengine.PlackettLuce)
	reg := New(model, 0)
	v, err := reg.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defMu, defSigma := model.DefaultMuSigma()
	almostEqual(t, v.Mu(), defMu, 1e-9)
	almostEqual(t, v.Sigma(), defSigma, 1e-9)
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
}

func TestFlyweightLiveness(t *testing.T) {
	model := ratingengine.NewDefault(ratingengine.PlackettLuce)
	reg := New(model, 0)
	v, err := reg.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	before := v.Mu()
	if err := reg.Rate([][]string{{"alice"}, {"bob"}}, []float64{1, 2}, nil, nil); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if v.Mu() == before {
		t.Fatalf("flyweight did not observe the in-place update")
	}
}

func TestCapacityExceeded(t *testing.T) {
	model := ratingengine.NewDefault(ratingengine.PlackettLuce)
	reg := New(model, 1)
	if _, err := reg.Get("alice"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	_, err := reg.Get("bob")
	if err == nil {
		t.Fatalf("expected CapacityExceeded")
	}
	var engErr *ratingengine.Error
	if !errors.As(err, &engErr) || engErr.Kind != ratingengine.CapacityExceeded {
		t.Fatalf("expected CapacityExceeded, got %v", err)
	}
}

func TestRateBatchMatchesSequentialRate(t *testing.T) {
	model := ratingengine.NewDefault(ratingengine.PlackettLuce)
	regBatch := New(model, 0)
	regSeq := New(model, 0)

	games := []batch.Game{
		{Teams: [][]string{{"a", "b"}, {"c", "d"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"a"}, {"e"}}, Ranks: []float64{2, 1}},
	}
	if err := regBatch.RateBatch(games); err != nil {
		t.Fatalf("RateBatch: %v", err)
	}
	for _, g := range games {
		if err := regSeq.Rate(g.Teams, g.Ranks, g.Scores, g.Weights); err != nil {
			t.Fatalf("Rate: %v", err)
		}
	}
	batchMap, seqMap := regBatch.ToMap(), regSeq.ToMap()
	for id, want := range seqMap {
		got, ok := batchMap[id]
		if !ok {
			t.Fatalf("entity %q missing from RateBatch result", id)
		}
		if math.Abs(got[0]-want[0]) > 1e-9 || math.Abs(got[1]-want[1]) > 1e-9 {
			t.Fatalf("entity %q = %v, want %v", id, got, want)
		}
	}
}

func TestAddExplicitValues(t *testing.T) {
	model := ratingengine.NewDefault(ratingengine.PlackettLuce)
	reg := New(model, 0)
	mu, sigma := 30.0, 5.0
	v, err := reg.Add("star", &mu, &sigma)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	almostEqual(t, v.Mu(), 30, 1e-9)
	almostEqual(t, v.Sigma(), 5, 1e-9)
}
