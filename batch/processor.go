package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ratingengine"
)

// ExecutionMode selects how a Processor parallelises work within a wave.
// Go has a single address space regardless of mode -- both are goroutine
// pools -- but the distinction is kept as a first-class contract because
// sequential, in-process-parallel, and process-pool-style parallel
// execution must all reach bit-identical ratings.
type ExecutionMode int

const (
	// ModeSharedMemory lets workers read/write the shared (mu, sigma)
	// slices directly inside a wave, relying solely on wave-disjointness
	// for safety -- the Go analogue of the reference's ThreadPoolExecutor
	// path on free-threaded builds.
	ModeSharedMemory ExecutionMode = iota
	// ModeSnapshot has workers operate on a private copy of each game's
	// (index, mu, sigma) tuples and return updates that are applied to
	// the shared slices only after the wave's goroutines all return --
	// the Go analogue of the reference's ProcessPoolExecutor path.
	ModeSnapshot
)

// ProcessorOptions configures a Processor. Workers <= 0 defaults to
// runtime.NumCPU(); Pipeline, if true, partitions waves on a background
// goroutine while earlier waves are still being processed.
type ProcessorOptions struct {
	Workers  int
	Pipeline bool
	Mode     ExecutionMode
}

// Processor partitions a game sequence into conflict-free waves and
// drives their (optionally parallel) execution against a flat (mu,
// sigma) rating store, grounded on
// original_source/openskill/batch.py's BatchProcessor.
type Processor struct {
	model *ratingengine.Model
	opts  ProcessorOptions
}

// NewProcessor builds a Processor for model with the given options.
func NewProcessor(model *ratingengine.Model, opts ProcessorOptions) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Processor{model: model, opts: opts}
}

// Process runs every game in games, in order, against ratings seeded
// from initial (or the Model's defaults for entities not present in
// initial), and returns the final (mu, sigma) for every entity seen.
func (p *Processor) Process(ctx context.Context, games []Game, initial map[string][2]float64) (map[string][2]float64, error) {
	if len(games) == 0 {
		out := make(map[string][2]float64, len(initial))
		for k, v := range initial {
			out[k] = v
		}
		return out, nil
	}

	entityToIdx := make(map[string]int)
	for _, game := range games {
		for _, team := range game.Teams {
			for _, id := range team {
				if _, ok := entityToIdx[id]; !ok {
					entityToIdx[id] = len(entityToIdx)
				}
			}
		}
	}

	n := len(entityToIdx)
	defMu, defSigma := p.model.DefaultMuSigma()
	mus := make([]float64, n)
	sigmas := make([]float64, n)
	for i := range mus {
		mus[i] = defMu
		sigmas[i] = defSigma
	}
	for id, ms := range initial {
		if idx, ok := entityToIdx[id]; ok {
			mus[idx] = ms[0]
			sigmas[idx] = ms[1]
		}
	}

	var err error
	switch {
	case p.opts.Workers <= 1:
		err = p.processSequential(games, entityToIdx, mus, sigmas)
	case p.opts.Pipeline:
		err = p.processPipelined(ctx, games, entityToIdx, mus, sigmas)
	default:
		waves := PartitionWaves(games)
		err = p.processWaves(ctx, waves, entityToIdx, mus, sigmas)
	}
	if err != nil {
		return nil, err
	}

	idxToID := make([]string, n)
	for id, idx := range entityToIdx {
		idxToID[idx] = id
	}
	out := make(map[string][2]float64, n)
	for i := 0; i < n; i++ {
		out[idxToID[i]] = [2]float64{mus[i], sigmas[i]}
	}
	return out, nil
}

func (p *Processor) processSequential(games []Game, entityToIdx map[string]int, mus, sigmas []float64) error {
	for _, game := range games {
		rateGameFast(p.model, entityToIdx, mus, sigmas, game)
	}
	return nil
}

func (p *Processor) processPipelined(ctx context.Context, games []Game, entityToIdx map[string]int, mus, sigmas []float64) error {
	waveCh := make(chan []indexedGame, p.opts.Workers*2)
	go func() {
		defer close(waveCh)
		for _, wave := range PartitionWaves(games) {
			waveCh <- wave
		}
	}()

	for wave := range waveCh {
		if err := p.executeWave(ctx, wave, entityToIdx, mus, sigmas); err != nil {
			// Drain the remaining pipeline so the producer goroutine
			// never blocks on a full channel after we stop consuming.
			for range waveCh {
			}
			return err
		}
	}
	return nil
}

func (p *Processor) processWaves(ctx context.Context, waves [][]indexedGame, entityToIdx map[string]int, mus, sigmas []float64) error {
	for _, wave := range waves {
		if err := p.executeWave(ctx, wave, entityToIdx, mus, sigmas); err != nil {
			return err
		}
	}
	return nil
}

// executeWave processes one wave, inline if it is too small to be worth
// dispatching, otherwise fanned out across p.opts.Workers goroutines per
// p.opts.Mode. A failing game cancels the group and aborts the whole
// wave; the caller treats that as aborting the whole Process call (no
// partial-wave state is left visible).
func (p *Processor) executeWave(ctx context.Context, wave []indexedGame, entityToIdx map[string]int, mus, sigmas []float64) error {
	if len(wave) <= 2 {
		for _, ig := range wave {
			rateGameFast(p.model, entityToIdx, mus, sigmas, ig.Game)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	if p.opts.Mode == ModeSharedMemory {
		for _, ig := range wave {
			ig := ig
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rateGameFast(p.model, entityToIdx, mus, sigmas, ig.Game)
				return nil
			})
		}
		return g.Wait()
	}

	// ModeSnapshot: compute against private snapshots, collect updates,
	// apply to the shared slices only after every goroutine returns.
	updatesPerGame := make([][]entityUpdate, len(wave))
	for i, ig := range wave {
		i, ig := i, ig
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			updatesPerGame[i] = snapshotRateGame(p.model, entityToIdx, mus, sigmas, ig.Game)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, updates := range updatesPerGame {
		for _, u := range updates {
			mus[u.index] = u.mu
			sigmas[u.index] = u.sigma
		}
	}
	return nil
}
