// Package hazard runs the power failure cascades of a grid.
//
// A primary power failure appears on a random open square at the end of a turn and lasts a few
// turns. It drags a secondary that orbits it every couple of actions, and the secondary pushes a
// tertiary ahead of it that moves after every action. All three tiers put the same power failure
// layer on their square.
package hazard

import (
	"math/rand/v2"
	"slices"

	"github.com/argus-labs/gridwars/pkg/assert"
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/turn"
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// System is the registry of the power failures attached to a grid. Turn events are dispatched to
// it and it forwards them to every attached power failure.
type System struct {
	grid    *grid.Grid
	rng     *rand.Rand
	options Options
	logger  zerolog.Logger

	cells   bitmap.Bitmap         // Indices of squares with an attached power failure
	byIndex map[int]*PowerFailure // Square index -> attached power failure
}

// NewSystem returns a registry for g. The zero fields of opts take their defaults.
func NewSystem(g *grid.Grid, rng *rand.Rand, logger zerolog.Logger, opts Options) (*System, error) {
	if g == nil {
		return nil, eris.New("hazard system needs a grid")
	}
	if rng == nil {
		return nil, eris.New("hazard system needs a random source")
	}

	options := newDefaultOptions()
	options.apply(opts)
	if err := options.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid hazard options")
	}

	return &System{
		grid:    g,
		rng:     rng,
		options: options,
		logger:  logger,
		byIndex: make(map[int]*PowerFailure),
	}, nil
}

// Options returns the effective options.
func (s *System) Options() Options { return s.options }

// Dispatch forwards ev to every power failure attached when the dispatch starts, primaries first.
// A power failure detached or moved by an earlier one in the same dispatch is skipped. At the end of
// a turn, eligible squares then get their chance to lose power.
func (s *System) Dispatch(ev turn.Event) {
	type target struct {
		pf    *PowerFailure
		index int
	}
	targets := make([]target, 0, s.cells.Count())
	s.cells.Range(func(idx uint32) {
		targets = append(targets, target{pf: s.byIndex[int(idx)], index: int(idx)})
	})
	slices.SortStableFunc(targets, func(a, b target) int {
		return int(a.pf.tier) - int(b.pf.tier)
	})

	for _, t := range targets {
		if t.pf.square == nil || t.pf.square.Index() != t.index {
			continue
		}
		t.pf.UpdateStatus(ev)
	}

	if ev == turn.EndTurn {
		s.spawn()
	}
	if ev == turn.EndGame {
		s.logger.Debug().Int("attached", s.cells.Count()).Msg("game ended")
	}
}

// CreatePrimary attaches a primary power failure to sq and immediately tries to give it a secondary
// and a tertiary.
func (s *System) CreatePrimary(sq *grid.Square) (*PowerFailure, error) {
	if sq == nil {
		return nil, eris.Wrap(grid.ErrIllegalPlacement, "square is nil")
	}
	if sq.IsWall() {
		return nil, eris.Wrapf(grid.ErrUnsupportedOnWall, "cannot cut power of wall %v", sq.Position())
	}
	if !eligible(sq) {
		return nil, eris.Wrapf(grid.ErrIllegalPlacement, "square %v already has a power failure", sq.Position())
	}

	rotation := grid.Clockwise
	if s.rng.IntN(2) == 1 {
		rotation = grid.CounterClockwise
	}
	pf := &PowerFailure{tier: TierPrimary, ttl: s.options.PrimaryTTL, system: s, rotation: rotation}
	s.attach(pf, sq)
	pf.spawnSecondary()

	s.logger.Debug().
		Interface("position", sq.Position()).
		Stringer("rotation", rotation).
		Bool("secondary", pf.secondary != nil).
		Msg("primary power failure created")
	return pf, nil
}

// At returns the power failure attached to sq.
func (s *System) At(sq *grid.Square) (*PowerFailure, bool) {
	if sq == nil || !s.cells.Contains(uint32(sq.Index())) { //nolint:gosec // indices are small
		return nil, false
	}
	return s.byIndex[sq.Index()], true
}

// Active returns the attached power failures, primaries first, then by square index.
func (s *System) Active() []*PowerFailure {
	active := make([]*PowerFailure, 0, s.cells.Count())
	s.cells.Range(func(idx uint32) {
		active = append(active, s.byIndex[int(idx)])
	})
	slices.SortStableFunc(active, func(a, b *PowerFailure) int {
		return int(a.tier) - int(b.tier)
	})
	return active
}

// Len returns the number of squares without power.
func (s *System) Len() int { return s.cells.Count() }

func (s *System) spawn() {
	for _, sq := range s.grid.Squares() {
		if !eligible(sq) {
			continue
		}
		if s.rng.Float64() >= s.options.SpawnChance {
			continue
		}
		_, err := s.CreatePrimary(sq)
		assert.That(err == nil, "failed to create primary on eligible square: %v", err)
	}
}

func (s *System) attach(pf *PowerFailure, sq *grid.Square) {
	assert.That(pf.square == nil, "%s power failure attached twice", pf.tier)
	layer := grid.NewPowerFailure()
	err := sq.AddProperty(layer)
	assert.That(err == nil, "failed to attach %s power failure to %v: %v", pf.tier, sq.Position(), err)

	pf.square = sq
	pf.layer = layer
	s.cells.Set(uint32(sq.Index())) //nolint:gosec // indices are small
	s.byIndex[sq.Index()] = pf
}

func (s *System) detach(pf *PowerFailure) {
	if pf.square == nil {
		return
	}
	removed := pf.square.RemoveProperty(pf.layer)
	assert.That(removed, "%s power failure layer missing from %v", pf.tier, pf.square.Position())

	s.cells.Remove(uint32(pf.square.Index())) //nolint:gosec // indices are small
	delete(s.byIndex, pf.square.Index())
	pf.square = nil
	pf.layer = nil
}
