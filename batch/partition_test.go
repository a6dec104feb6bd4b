package batch

import "testing"

func waveIndices(wave []indexedGame) []int {
	out := make([]int, len(wave))
	for i, ig := range wave {
		out[i] = ig.Index
	}
	return out
}

func TestPartitionWavesFourGames(t *testing.T) {
	games := []Game{
		{Teams: [][]string{{"a", "b"}, {"c", "d"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"e", "f"}, {"g", "h"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"a", "e"}, {"i", "j"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"c", "g"}, {"k", "l"}}, Ranks: []float64{1, 2}},
	}
	waves := PartitionWaves(games)
	if len(waves) != 2 {
		t.Fatalf("expected 2 waves, got %d", len(waves))
	}
	if got := waveIndices(waves[0]); !sameSet(got, []int{0, 1}) {
		t.Fatalf("wave 0 = %v, want {0,1}", got)
	}
	if got := waveIndices(waves[1]); !sameSet(got, []int{2, 3}) {
		t.Fatalf("wave 1 = %v, want {2,3}", got)
	}
}

func TestPartitionWavesSafetyAndChronology(t *testing.T) {
	games := []Game{
		{Teams: [][]string{{"a"}, {"b"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"b"}, {"c"}}, Ranks: []float64{1, 2}},
		{Teams: [][]string{{"d"}, {"e"}}, Ranks: []float64{1, 2}},
	}
	waves := PartitionWaves(games)
	waveOf := make(map[int]int)
	for w, wave := range waves {
		for _, ig := range wave {
			waveOf[ig.Index] = w
		}
		seen := map[string]struct{}{}
		for _, ig := range wave {
			for id := range ig.Game.entities() {
				if _, dup := seen[id]; dup {
					t.Fatalf("entity %q appears twice in wave %d", id, w)
				}
				seen[id] = struct{}{}
			}
		}
	}
	if waveOf[0] >= waveOf[1] {
		t.Fatalf("game 0 and game 1 share entity b: wave(0)=%d must be < wave(1)=%d", waveOf[0], waveOf[1])
	}
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	set := map[int]bool{}
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}
