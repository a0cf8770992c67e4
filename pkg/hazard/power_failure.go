package hazard

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/turn"
)

// Tier is the rank of a power failure within its cascade.
type Tier uint8

const (
	// TierPrimary decays after a number of turns and owns the secondary.
	TierPrimary Tier = iota + 1
	// TierSecondary orbits the primary.
	TierSecondary
	// TierTertiary wanders ahead of the secondary.
	TierTertiary
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// PowerFailure is one tier of a power failure cascade. While attached it owns a power failure layer
// on exactly one square.
type PowerFailure struct {
	tier   Tier
	ttl    int
	square *grid.Square
	layer  *grid.PowerFailure
	system *System

	// Primary
	secondary *PowerFailure
	rotation  grid.Rotation
	heading   grid.Direction // Where the next rotation starts from
	actions   int

	// Secondary
	primary   *PowerFailure
	direction grid.Direction // Position relative to the primary
	tertiary  *PowerFailure

	// Tertiary, nil parent once orphaned
	parent *PowerFailure
}

func (pf *PowerFailure) Tier() Tier { return pf.tier }

// TTL returns the remaining lifetime: turns for a primary, actions for a tertiary. Secondaries live
// as long as their primary and report zero.
func (pf *PowerFailure) TTL() int { return pf.ttl }

// Square returns the square the power failure is attached to, nil when detached.
func (pf *PowerFailure) Square() *grid.Square { return pf.square }

func (pf *PowerFailure) Attached() bool { return pf.square != nil }

// Rotation returns the sense the secondary orbits a primary in.
func (pf *PowerFailure) Rotation() grid.Rotation { return pf.rotation }

// Secondary returns the secondary of a primary.
func (pf *PowerFailure) Secondary() *PowerFailure { return pf.secondary }

// Primary returns the primary of a secondary.
func (pf *PowerFailure) Primary() *PowerFailure { return pf.primary }

// Tertiary returns the tertiary of a secondary.
func (pf *PowerFailure) Tertiary() *PowerFailure { return pf.tertiary }

// Parent returns the secondary a tertiary follows, nil once orphaned.
func (pf *PowerFailure) Parent() *PowerFailure { return pf.parent }

// Direction returns the direction of a secondary as seen from its primary.
func (pf *PowerFailure) Direction() grid.Direction { return pf.direction }

// UpdateStatus advances the power failure by one event.
func (pf *PowerFailure) UpdateStatus(ev turn.Event) {
	switch pf.tier {
	case TierPrimary:
		pf.updatePrimary(ev)
	case TierTertiary:
		pf.updateTertiary(ev)
	case TierSecondary:
		// Moved by its primary.
	}
}

func (pf *PowerFailure) updatePrimary(ev turn.Event) {
	switch ev {
	case turn.EndTurn:
		pf.ttl--
		if pf.ttl <= 0 {
			pf.retire()
		}
	case turn.EndAction:
		pf.actions++
		if pf.actions%pf.system.options.RotationInterval == 0 {
			pf.rotate()
		}
	case turn.EndGame:
	}
}

// retire removes the primary and its secondary. The tertiary is left to run out on its own.
func (pf *PowerFailure) retire() {
	s := pf.system
	s.detach(pf)
	if sec := pf.secondary; sec != nil {
		if t := sec.tertiary; t != nil {
			t.parent = nil
		}
		s.detach(sec)
		sec.primary = nil
		sec.tertiary = nil
		pf.secondary = nil
	}
	s.logger.Debug().Msg("primary power failure retired")
}

// rotate moves the secondary one compass step around the primary. A blocked step leaves the
// secondary where it is; the next rotation continues from the blocked heading. The secondary's own
// tertiary does not block it: the tertiary is dropped and a new one placed ahead of the secondary.
func (pf *PowerFailure) rotate() {
	s := pf.system
	if pf.secondary == nil {
		pf.spawnSecondary()
		return
	}

	sec := pf.secondary
	pf.heading = pf.heading.Rotate(pf.rotation)
	dest, ok := pf.square.Neighbour(pf.heading)
	ownTertiary := ok && sec.tertiary != nil && sec.tertiary.square == dest
	if !ok || (!eligible(dest) && !ownTertiary) {
		s.logger.Debug().Stringer("heading", pf.heading).Msg("secondary rotation blocked")
		return
	}

	if t := sec.tertiary; t != nil {
		s.detach(t)
		t.parent = nil
		sec.tertiary = nil
	}
	s.detach(sec)
	s.attach(sec, dest)
	sec.direction = pf.heading
	sec.spawnTertiary()
}

func (pf *PowerFailure) spawnSecondary() {
	s := pf.system
	d := grid.Directions()[s.rng.IntN(len(grid.Directions()))]
	n, ok := pf.square.Neighbour(d)
	if !ok || !eligible(n) {
		return
	}

	sec := &PowerFailure{tier: TierSecondary, system: s, primary: pf, direction: d}
	s.attach(sec, n)
	pf.secondary = sec
	pf.heading = d
	sec.spawnTertiary()
}

func (pf *PowerFailure) spawnTertiary() {
	t := &PowerFailure{tier: TierTertiary, system: pf.system, parent: pf}
	if t.place() {
		pf.tertiary = t
	}
}

func (pf *PowerFailure) updateTertiary(ev turn.Event) {
	if ev != turn.EndAction {
		return
	}
	pf.ttl--
	if pf.ttl > 0 {
		return
	}
	pf.system.detach(pf)
	if pf.parent == nil || !pf.parent.Attached() {
		return
	}
	pf.place()
}

// place attaches a tertiary to one of the squares ahead of its secondary.
func (pf *PowerFailure) place() bool {
	candidates := TertiaryCandidates(pf.parent.square, pf.parent.direction)
	eligibleCandidates := candidates[:0]
	for _, sq := range candidates {
		if eligible(sq) {
			eligibleCandidates = append(eligibleCandidates, sq)
		}
	}
	if len(eligibleCandidates) == 0 {
		return false
	}

	s := pf.system
	s.attach(pf, eligibleCandidates[s.rng.IntN(len(eligibleCandidates))])
	pf.ttl = s.options.TertiaryTTL
	return true
}

// TertiaryCandidates returns the existing squares a tertiary may occupy: one step further along the
// primary to secondary axis, and two squares flanking the axis next to the secondary. On a cardinal
// axis the flanks are perpendicular to it, so they touch the primary, the secondary and the first
// candidate. No square touches all three on a diagonal axis, so the flanks sit 45 degrees off it.
func TertiaryCandidates(secondary *grid.Square, axis grid.Direction) []*grid.Square {
	cw, ccw := axis.Rotate(grid.Clockwise), axis.Rotate(grid.CounterClockwise)
	if !axis.IsDiagonal() {
		cw, ccw = cw.Rotate(grid.Clockwise), ccw.Rotate(grid.CounterClockwise)
	}

	candidates := make([]*grid.Square, 0, 3)
	for _, d := range []grid.Direction{axis, cw, ccw} {
		if sq, ok := secondary.Neighbour(d); ok {
			candidates = append(candidates, sq)
		}
	}
	return candidates
}

func eligible(sq *grid.Square) bool {
	return sq != nil && !sq.IsWall() && !sq.HasProperty(grid.TagPowerFailure)
}
