// Package batch partitions streams of game outcomes into conflict-free
// "waves" and drives their parallel execution against a shared (mu,
// sigma) rating store, without per-game input validation (each game still
// builds short-lived Rating slices for its update), grounded on
// original_source/openskill/batch.py.
package batch

// Game is one outcome: teams of entity-identifier strings, plus exactly
// one of Ranks/Scores (nil/nil means default rank order), and an
// optional per-player weight matrix shaped like Teams.
type Game struct {
	Teams   [][]string
	Ranks   []float64
	Scores  []float64
	Weights [][]float64
}

// entities returns the set of distinct participants in g.
func (g Game) entities() map[string]struct{} {
	ents := make(map[string]struct{})
	for _, team := range g.Teams {
		for _, id := range team {
			ents[id] = struct{}{}
		}
	}
	return ents
}

// indexedGame pairs a game with its original position in the input
// sequence, the unit moved between waves by PartitionWaves.
type indexedGame struct {
	Index int
	Game  Game
}

// PartitionWaves groups games into the minimal-wave-count partition
// satisfying: (safety) no entity appears twice within one wave; and
// (chronology) if game i precedes game j and they share an entity,
// wave(i) < wave(j). It is a direct port of partition_waves's greedy
// lower-bound-then-first-fit scan.
func PartitionWaves(games []Game) [][]indexedGame {
	var waves [][]indexedGame
	var waveEntities []map[string]struct{}
	entityLatestWave := make(map[string]int)

	for idx, game := range games {
		ents := game.entities()

		lowerBound := 0
		for ent := range ents {
			if w, ok := entityLatestWave[ent]; ok && w+1 > lowerBound {
				lowerBound = w + 1
			}
		}

		placed := false
		for w := lowerBound; w < len(waves); w++ {
			if disjoint(ents, waveEntities[w]) {
				waves[w] = append(waves[w], indexedGame{Index: idx, Game: game})
				for ent := range ents {
					waveEntities[w][ent] = struct{}{}
					entityLatestWave[ent] = w
				}
				placed = true
				break
			}
		}
		if !placed {
			newIdx := len(waves)
			waves = append(waves, []indexedGame{{Index: idx, Game: game}})
			waveEntities = append(waveEntities, ents)
			for ent := range ents {
				entityLatestWave[ent] = newIdx
			}
		}
	}
	return waves
}

func disjoint(a, b map[string]struct{}) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return false
		}
	}
	return true
}
