package grid

import (
	"math/rand/v2"

	"github.com/rotisserie/eris"
)

const (
	// DefaultExplosionDamage is the number of actions an explosion costs its victim.
	DefaultExplosionDamage = 3
	// PowerFailurePenalty is the number of actions a power failure costs.
	PowerFailurePenalty = 1

	maxFlagDraws = 9
)

// EmptyEffect does nothing. Chains start with it when the square has nothing else to apply.
type EmptyEffect struct{}

func (EmptyEffect) Execute(Object) error { return nil }

// -------------------------------------------------------------------------------------------------
// Explosion
// -------------------------------------------------------------------------------------------------

// ExplodeEffect detonates a grenade under an explosion-reactive target.
type ExplodeEffect struct {
	grenade Explodable
	damage  int
}

func NewExplodeEffect(g Explodable) *ExplodeEffect {
	return &ExplodeEffect{grenade: g, damage: DefaultExplosionDamage}
}

// Damage returns the number of actions the explosion costs.
func (e *ExplodeEffect) Damage() int { return e.damage }

func (e *ExplodeEffect) Execute(target Object) error {
	victim, ok := target.(ExplosionReactive)
	if !ok || e.grenade == nil || !e.grenade.IsExplodable() {
		return nil
	}
	e.grenade.Explode()
	victim.OnExplosion(e.damage)
	return nil
}

// -------------------------------------------------------------------------------------------------
// Power failure
// -------------------------------------------------------------------------------------------------

// PowerFailureEffect costs a hazard-reactive target one action. When an explosion is appended behind
// it, the penalty is folded into the explosion instead: the explosion deals one more action of
// damage and this step does nothing.
type PowerFailureEffect struct {
	penalty  int
	deferred bool
}

func NewPowerFailureEffect() *PowerFailureEffect {
	return &PowerFailureEffect{penalty: PowerFailurePenalty}
}

// Penalty returns the penalty this step will inflict, zero once deferred to an explosion.
func (e *PowerFailureEffect) Penalty() int {
	if e.deferred {
		return 0
	}
	return e.penalty
}

func (e *PowerFailureEffect) observeAppend(next Effect) {
	explosion, ok := next.(*ExplodeEffect)
	if !ok {
		return
	}
	explosion.damage += e.penalty
	e.deferred = true
}

func (e *PowerFailureEffect) Execute(target Object) error {
	victim, ok := target.(HazardReactive)
	if !ok || e.deferred {
		return nil
	}
	victim.OnPowerFailure(e.penalty)
	return nil
}

// -------------------------------------------------------------------------------------------------
// Teleportation
// -------------------------------------------------------------------------------------------------

// TeleportationEffect moves a teleportable target to the square of the teleporter's destination.
// The destination is flagged so that arriving does not bounce the target back.
type TeleportationEffect struct {
	teleporter Teleporter
}

func NewTeleportationEffect(t Teleporter) *TeleportationEffect {
	return &TeleportationEffect{teleporter: t}
}

func (e *TeleportationEffect) Execute(target Object) error {
	mover, ok := target.(Teleportable)
	if !ok || !mover.CanTeleport() || e.teleporter == nil {
		return nil
	}
	if e.teleporter.SkipNext() {
		e.teleporter.SetSkipNext(false)
		return nil
	}

	from := target.Square()
	if from == nil {
		return nil
	}
	dest := e.teleporter.Destination()
	if dest == nil || dest.Square() == nil {
		return eris.Wrapf(ErrInvalidTeleportDestination, "teleporter %s has no destination on the board",
			e.teleporter.ID())
	}
	to := dest.Square()
	if err := to.canAdd(target); err != nil {
		return eris.Wrapf(ErrInvalidTeleportDestination, "square %v refuses %s: %v", to.Position(), target.ID(), err)
	}

	dest.SetSkipNext(true)
	if err := from.Remove(target); err != nil {
		dest.SetSkipNext(false)
		return eris.Wrap(err, "failed to leave teleporter square")
	}
	if err := to.add(target); err != nil {
		return eris.Wrap(err, "failed to arrive at destination teleporter")
	}
	return nil
}

// -------------------------------------------------------------------------------------------------
// Flag drop
// -------------------------------------------------------------------------------------------------

// DropFlagEffect makes a flag bearer drop its flag on a random open neighbouring square. A draw
// landing on a square that refuses the flag is retried, up to nine draws.
type DropFlagEffect struct {
	rng *rand.Rand
}

func NewDropFlagEffect(rng *rand.Rand) *DropFlagEffect {
	return &DropFlagEffect{rng: rng}
}

func (e *DropFlagEffect) Execute(target Object) error {
	bearer, ok := target.(FlagBearer)
	if !ok {
		return nil
	}
	flag, ok := bearer.HeldFlag()
	if !ok {
		return nil
	}
	from := target.Square()
	if from == nil {
		return nil
	}

	var candidates []*Square
	for _, n := range from.Neighbours() {
		if !n.IsWall() {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return eris.Wrapf(ErrConfiguration, "square %v has no open neighbour to drop a flag on", from.Position())
	}

	for range maxFlagDraws {
		n := candidates[e.rng.IntN(len(candidates))]
		if n.canAdd(flag) != nil {
			continue
		}
		bearer.ReleaseFlag()
		return eris.Wrap(n.AddItem(flag), "failed to drop flag")
	}
	return eris.Wrapf(ErrConfiguration, "no square around %v accepted the flag in %d draws",
		from.Position(), maxFlagDraws)
}
