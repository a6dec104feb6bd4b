// Package registry is a long-lived in-place rating store backed by two
// contiguous (mu, sigma) slices, with flyweight Views that read through
// to the live arrays, grounded on original_source/openskill/ladder.py.
package registry

import (
	"ratingengine"
	"ratingengine/batch"
)

// DefaultCapacity matches the reference's MAX_ENTITIES: two float64
// slices at this size consume 16_000 * 2 * 8 = 256 KB.
const DefaultCapacity = 16_000

// View is a flyweight handle into a Registry's backing slices: reading
// Mu()/Sigma() always reflects the latest write, with no map lookup on
// the hot path. A View must not outlive the Registry it came from.
type View struct {
	reg *Registry
	idx int
	id  string
}

// Mu reads the entity's current mean directly from the backing slice.
func (v View) Mu() float64 { return v.reg.mus[v.idx] }

// Sigma reads the entity's current standard deviation directly from the
// backing slice.
func (v View) Sigma() float64 { return v.reg.sigmas[v.idx] }

// ID returns the entity identifier this View refers to.
func (v View) ID() string { return v.id }

// Ordinal is the live mu - z*sigma skill summary (default z=3).
func (v View) Ordinal(z float64) float64 {
	if z == 0 {
		z = 3
	}
	return v.Mu() - z*v.Sigma()
}

// Registry maps entity identifiers to indices into two fixed-capacity
// (mu, sigma) slices. It is not safe for concurrent Rate/Add calls from
// outside RateBatch; RateBatch is its own sole mutator during a call and
// applies the wave-partitioned games one at a time, wave by wave, on the
// calling goroutine.
type Registry struct {
	model      *ratingengine.Model
	capacity   int
	mus        []float64
	sigmas     []float64
	entityToID map[string]int
	defaultMu  float64
	defaultSig float64
}

// New constructs a Registry for model with the given capacity. A
// capacity <= 0 uses DefaultCapacity.
func New(model *ratingengine.Model, capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	defMu, defSigma := model.DefaultMuSigma()
	return &Registry{
		model:      model,
		capacity:   capacity,
		mus:        make([]float64, 0, capacity),
		sigmas:     make([]float64, 0, capacity),
		entityToID: make(map[string]int),
		defaultMu:  defMu,
		defaultSig: defSigma,
	}
}

// Len reports the number of registered entities.
func (r *Registry) Len() int { return len(r.entityToID) }

// Contains reports whether id is already registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.entityToID[id]
	return ok
}

// Get returns a View for id, auto-registering it at the Model's default
// (mu, sigma) if it isn't already known.
func (r *Registry) Get(id string) (View, error) {
	if idx, ok := r.entityToID[id]; ok {
		return View{reg: r, idx: idx, id: id}, nil
	}
	return r.register(id, r.defaultMu, r.defaultSig)
}

// Add registers id with explicit (mu, sigma), or updates an existing
// entity's values in place.
func (r *Registry) Add(id string, mu, sigma *float64) (View, error) {
	if idx, ok := r.entityToID[id]; ok {
		if mu != nil {
			r.mus[idx] = *mu
		}
		if sigma != nil {
			r.sigmas[idx] = *sigma
		}
		return View{reg: r, idx: idx, id: id}, nil
	}
	m, s := r.defaultMu, r.defaultSig
	if mu != nil {
		m = *mu
	}
	if sigma != nil {
		s = *sigma
	}
	return r.register(id, m, s)
}

func (r *Registry) register(id string, mu, sigma float64) (View, error) {
	idx := len(r.mus)
	if idx >= r.capacity {
		return View{}, &ratingengine.Error{Kind: ratingengine.CapacityExceeded, Field: "id", Msg: "registry is full"}
	}
	r.mus = append(r.mus, mu)
	r.sigmas = append(r.sigmas, sigma)
	r.entityToID[id] = idx
	return View{reg: r, idx: idx, id: id}, nil
}

// Rate runs one fast-path update (bypassing Model.Rate's validation,
// since the registry already owns well-formed entity state) against the
// backing slices,
// auto-registering any entity not yet seen.
func (r *Registry) Rate(teams [][]string, ranks, scores []float64, weights [][]float64) error {
	for _, team := range teams {
		for _, id := range team {
			if !r.Contains(id) {
				if _, err := r.Get(id); err != nil {
					return err
				}
			}
		}
	}
	game := batch.Game{Teams: teams, Ranks: ranks, Scores: scores, Weights: weights}
	batch.RateGameFastInto(r.model, r.entityToID, r.mus, r.sigmas, game)
	return nil
}

// RateBatch wave-partitions games and applies updates in place, wave by
// wave, pre-registering every entity it sees before processing begins.
func (r *Registry) RateBatch(games []batch.Game) error {
	for _, game := range games {
		for _, team := range game.Teams {
			for _, id := range team {
				if !r.Contains(id) {
					if _, err := r.Get(id); err != nil {
						return err
					}
				}
			}
		}
	}
	for _, wave := range batch.PartitionWaves(games) {
		for _, ig := range wave {
			batch.RateGameFastInto(r.model, r.entityToID, r.mus, r.sigmas, ig.Game)
		}
	}
	return nil
}

// ToMap exports a snapshot of every registered entity's (mu, sigma).
func (r *Registry) ToMap() map[string][2]float64 {
	out := make(map[string][2]float64, len(r.entityToID))
	for id, idx := range r.entityToID {
		out[id] = [2]float64{r.mus[idx], r.sigmas[idx]}
	}
	return out
}
