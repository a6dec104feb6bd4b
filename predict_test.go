package ratingengine

import "testing"

func TestPredictWinSumsToOne(t *testing.T) {
	m := NewDefault(PlackettLuce)
	teams := [][]Rating{
		{m.CreateRating(30, 5, "A")},
		{m.CreateRating(25, 6, "B")},
		{m.CreateRating(20, 7, "C")},
	}
	probs, err := m.PredictWin(teams)
	if err != nil {
		t.Fatalf("PredictWin: %v", err)
	}
	var sum float64
	for _, p := range probs {
		sum += p
	}
	almostEqual(t, sum, 1, 1e-9)
}

func TestPredictWinStrongerFavoured(t *testing.T) {
	m := NewDefault(PlackettLuce)
	teams := [][]Rating{{m.CreateRating(35, 5, "A")}, {m.CreateRating(15, 5, "B")}}
	probs, err := m.PredictWin(teams)
	if err != nil {
		t.Fatalf("PredictWin: %v", err)
	}
	if probs[0] <= probs[1] {
		t.Fatalf("expected stronger team favoured, got %v vs %v", probs[0], probs[1])
	}
}

func TestPredictDrawBounded(t *testing.T) {
	m := NewDefault(PlackettLuce)
	teams := [][]Rating{{m.CreateRating(25, 8, "A")}, {m.CreateRating(25, 8, "B")}}
	p, err := m.PredictDraw(teams)
	if err != nil {
		t.Fatalf("PredictDraw: %v", err)
	}
	if p < 0 || p > 1 {
		t.Fatalf("predict_draw out of bounds: %v", p)
	}
}

func TestPredictRankIsCompetitionRanking(t *testing.T) {
	m := NewDefault(PlackettLuce)
	teams := [][]Rating{
		{m.CreateRating(30, 5, "A")},
		{m.CreateRating(25, 6, "B")},
		{m.CreateRating(20, 7, "C")},
	}
	ranks, err := m.PredictRank(teams)
	if err != nil {
		t.Fatalf("PredictRank: %v", err)
	}
	if len(ranks) != 3 {
		t.Fatalf("expected 3 ranks, got %d", len(ranks))
	}
	if ranks[0].Rank != 1 {
		t.Fatalf("expected the strongest team to place 1st, got rank %d", ranks[0].Rank)
	}
	var sum float64
	for _, r := range ranks {
		sum += r.Probability
	}
	almostEqual(t, sum, 1, 1e-9)
}
