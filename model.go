// Package ratingengine computes multiplayer Bayesian skill ratings using
// the Weng-Lin family of closed-form update rules (Plackett-Luce,
// Bradley-Terry Full/Part, Thurstone-Mosteller Full/Part), plus predictive
// win/draw/rank queries. See batch and registry for parallel and
// in-place-store layers built on top of this core.
package ratingengine

import (
	"math"

	"ratingengine/internal/numerics"
)

// ModelKind selects which of the five update rules a Model uses.
type ModelKind int

const (
	PlackettLuce ModelKind = iota
	BradleyTerryFull
	BradleyTerryPart
	ThurstoneMostellerFull
	ThurstoneMostellerPart
)

// Model is immutable once constructed and may be shared freely across
// goroutines: Rate/PredictWin/PredictDraw/PredictRank never mutate it.
type Model struct {
	kind ModelKind
	cfg  Config
	algo algorithm
}

func newAlgorithm(kind ModelKind) algorithm {
	switch kind {
	case BradleyTerryFull:
		return bradleyTerry{part: false}
	case BradleyTerryPart:
		return bradleyTerry{part: true}
	case ThurstoneMostellerFull:
		return thurstoneMosteller{part: false}
	case ThurstoneMostellerPart:
		return thurstoneMosteller{part: true}
	default:
		return plackettLuce{}
	}
}

// New constructs a Model of the given kind, filling zero-valued Config
// fields with the Weng-Lin defaults. It reports an OutOfRange error if
// the resolved Beta, Kappa, or Tau is negative.
func New(kind ModelKind, cfg Config) (*Model, error) {
	resolved := resolveConfig(cfg)
	if err := validateConfig(resolved); err != nil {
		return nil, err
	}
	return &Model{kind: kind, cfg: resolved, algo: newAlgorithm(kind)}, nil
}

// NewDefault constructs a Model of the given kind with every Config
// field at its default. The defaults are always in range, so this never
// fails.
func NewDefault(kind ModelKind) *Model {
	m, err := New(kind, Config{})
	if err != nil {
		panic("ratingengine: default config out of range: " + err.Error())
	}
	return m
}

// NewRating builds a Rating using the Model's default mu/sigma wherever
// mu or sigma is nil.
func (m *Model) NewRating(mu, sigma *float64, name string) Rating {
	r := Rating{Mu: m.cfg.Mu, Sigma: m.cfg.Sigma, Name: name}
	if mu != nil {
		r.Mu = *mu
	}
	if sigma != nil {
		r.Sigma = *sigma
	}
	return r
}

// CreateRating builds a Rating from explicit (mu, sigma).
func (m *Model) CreateRating(mu, sigma float64, name string) Rating {
	return Rating{Mu: mu, Sigma: sigma, Name: name}
}

// DefaultMuSigma returns the Model's configured default (mu, sigma),
// used to seed newly-registered entities in the registry and batch
// packages.
func (m *Model) DefaultMuSigma() (float64, float64) {
	return m.cfg.Mu, m.cfg.Sigma
}

// LimitSigma reports the Model's configured limit_sigma default.
func (m *Model) LimitSigma() bool {
	return m.cfg.LimitSigma
}

// RateOptions carries the per-call inputs and overrides for Rate: exactly
// one of Ranks/Scores may be set (both empty means ranks = 0..len(teams)-1
// in input order), Weights is an optional per-player weight matrix shaped
// like teams, and Tau/LimitSigma override the Model's defaults for this
// call only.
type RateOptions struct {
	Ranks      []float64
	Scores     []float64
	Weights    [][]float64
	Tau        *float64
	LimitSigma *bool
}

// Rate runs the shared tau-injection/rank-sort/weight-normalisation
// pipeline around the Model's algorithm-specific update, returning fresh
// per-player Ratings in the same team order as the input. teams is never
// mutated.
func (m *Model) Rate(teams [][]Rating, opts RateOptions) ([][]Rating, error) {
	if err := validateRate(teams, opts); err != nil {
		return nil, err
	}
	return m.RateUnchecked(teams, opts), nil
}

// RateUnchecked runs the same pre/post-processing contract as Rate but
// skips input validation, for callers that already guarantee well-formed
// input (batch.Processor and registry.Registry's per-game fast path,
// grounded on original_source/openskill/batch.py's _rate_game_fast).
func (m *Model) RateUnchecked(teams [][]Rating, opts RateOptions) [][]Rating {
	tau := m.cfg.Tau
	if opts.Tau != nil {
		tau = *opts.Tau
	}
	limitSigma := m.cfg.LimitSigma
	if opts.LimitSigma != nil {
		limitSigma = *opts.LimitSigma
	}

	// 1. Snapshot pre-tau sigmas, indexed the same way as teams/names.
	snapshot := make([][]float64, len(teams))
	names := make([][]string, len(teams))
	for i, team := range teams {
		snapshot[i] = make([]float64, len(team))
		names[i] = make([]string, len(team))
		for j, p := range team {
			snapshot[i][j] = p.Sigma
			names[i][j] = p.Name
		}
	}

	// 2. Tau injection into a working copy.
	working := make([][]Rating, len(teams))
	tauSq := tau * tau
	for i, team := range teams {
		working[i] = make([]Rating, len(team))
		for j, p := range team {
			working[i][j] = Rating{Mu: p.Mu, Sigma: math.Sqrt(p.Sigma*p.Sigma + tauSq)}
		}
	}

	// 3. Scores -> ranks, or use the supplied/default ranks.
	var ranks []float64
	switch {
	case len(opts.Scores) > 0:
		negated := make([]float64, len(opts.Scores))
		for i, s := range opts.Scores {
			negated[i] = -s
		}
		idx := numerics.RankIndices(negated)
		ranks = make([]float64, len(idx))
		for i, r := range idx {
			ranks[i] = float64(r)
		}
	case len(opts.Ranks) > 0:
		ranks = opts.Ranks
	default:
		ranks = make([]float64, len(teams))
		for i := range ranks {
			ranks[i] = float64(i)
		}
	}

	// 4. Weight normalisation into [WeightBoundsLo, WeightBoundsHi].
	var weights [][]float64
	if opts.Weights != nil {
		weights = make([][]float64, len(opts.Weights))
		for i, row := range opts.Weights {
			weights[i] = numerics.WeightBounds(row, m.cfg.WeightBoundsLo, m.cfg.WeightBoundsHi)
		}
	}

	// 5. Rank-stable permutation; order is the tenet used to un-permute.
	order := numerics.Argsort(ranks)
	sortedTeams := make([][]Rating, len(order))
	sortedRanksF := make([]float64, len(order))
	var sortedWeights [][]float64
	if weights != nil {
		sortedWeights = make([][]float64, len(order))
	}
	for newPos, oldPos := range order {
		sortedTeams[newPos] = working[oldPos]
		sortedRanksF[newPos] = ranks[oldPos]
		if weights != nil {
			sortedWeights[newPos] = weights[oldPos]
		}
	}
	rankIdx := numerics.RankIndices(sortedRanksF)

	// Weighting and balance re-weighting only apply to the Bradley-Terry/
	// Thurstone-Mosteller families; Plackett-Luce ignores per-player
	// weights and never emphasises a team's strongest member.
	updateWeights := sortedWeights
	balance := m.cfg.Balance
	if m.kind == PlackettLuce {
		updateWeights = nil
		balance = false
	}

	// Core compute.
	aggTeams := buildTeams(sortedTeams, rankIdx, balance, m.cfg.Kappa)
	omega, delta := m.algo.computeTeamDeltas(aggTeams, m.cfg.Beta, m.cfg.Kappa, m.cfg.Margin, m.cfg.Gamma, updateWeights)
	sortedResult := applyUpdate(aggTeams, omega, delta, updateWeights, m.cfg.Kappa)

	// 6. Un-permute back to input order.
	result := make([][]Rating, len(teams))
	for newPos, oldPos := range order {
		result[oldPos] = sortedResult[newPos]
	}

	// 7. Sigma clamp against the pre-tau snapshot, and reattach names.
	for i, team := range result {
		for j := range team {
			if limitSigma && team[j].Sigma > snapshot[i][j] {
				team[j].Sigma = snapshot[i][j]
			}
			team[j].Name = names[i][j]
		}
	}
	return result
}
