package grid

import (
	"math/rand/v2"
	"strings"

	"github.com/rotisserie/eris"
)

// Mode selects the rule set a game is played with.
type Mode uint8

const (
	ModeRace Mode = iota
	ModeCTF
)

func (m Mode) String() string {
	if m == ModeCTF {
		return "ctf"
	}
	return "race"
}

// ParseMode converts "race" or "ctf" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "race":
		return ModeRace, nil
	case "ctf":
		return ModeCTF, nil
	default:
		return ModeRace, eris.Errorf("unknown game mode %q (must be 'race' or 'ctf')", s)
	}
}

// Factory builds the effects a square chains together for a trigger. Each game mode has its own
// factory.
type Factory interface {
	Mode() Mode
	Empty() Effect
	Explode(g Explodable) Effect
	Teleport(t Teleporter) Effect
	PowerFailure() Effect
	DropFlag() Effect
}

// NewFactory returns the factory for mode. Capture the flag draws flag drop positions from rng.
func NewFactory(mode Mode, rng *rand.Rand) (Factory, error) {
	switch mode {
	case ModeRace:
		return RaceFactory{}, nil
	case ModeCTF:
		if rng == nil {
			return nil, eris.New("capture the flag needs a random source")
		}
		return NewCTFFactory(rng), nil
	default:
		return nil, eris.Errorf("unknown game mode %d", mode)
	}
}

// RaceFactory returns the base effects unchanged.
type RaceFactory struct{}

var _ Factory = RaceFactory{}

func (RaceFactory) Mode() Mode { return ModeRace }

func (RaceFactory) Empty() Effect { return EmptyEffect{} }

func (RaceFactory) Explode(g Explodable) Effect { return NewExplodeEffect(g) }

func (RaceFactory) Teleport(t Teleporter) Effect { return NewTeleportationEffect(t) }

func (RaceFactory) PowerFailure() Effect { return NewPowerFailureEffect() }

// DropFlag is a no-op, there are no flags in a race.
func (RaceFactory) DropFlag() Effect { return EmptyEffect{} }

// CTFFactory makes flag bearers drop their flag when they are blown up or teleported.
type CTFFactory struct {
	RaceFactory
	rng *rand.Rand
}

var _ Factory = CTFFactory{}

func NewCTFFactory(rng *rand.Rand) CTFFactory {
	return CTFFactory{rng: rng}
}

func (CTFFactory) Mode() Mode { return ModeCTF }

func (f CTFFactory) DropFlag() Effect { return NewDropFlagEffect(f.rng) }

// Explode drops the flag after the explosion.
func (f CTFFactory) Explode(g Explodable) Effect {
	chain := NewChain(f.RaceFactory.Explode(g))
	chain.Append(f.DropFlag())
	return chain
}

// Teleport drops the flag around the square being left, then teleports.
func (f CTFFactory) Teleport(t Teleporter) Effect {
	chain := NewChain(f.DropFlag())
	chain.Append(f.RaceFactory.Teleport(t))
	return chain
}
