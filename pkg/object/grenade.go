package object

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

type GrenadeState uint8

const (
	GrenadeInactive GrenadeState = iota
	GrenadeActive
	GrenadeExploded
)

func (s GrenadeState) String() string {
	switch s {
	case GrenadeInactive:
		return "inactive"
	case GrenadeActive:
		return "active"
	case GrenadeExploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// LightGrenade explodes under the next piece entering its square once it has been armed.
type LightGrenade struct {
	id     uuid.UUID
	square *grid.Square
	state  GrenadeState
}

var (
	_ grid.Explodable = (*LightGrenade)(nil)
	_ grid.Consumable = (*LightGrenade)(nil)
)

func NewLightGrenade() *LightGrenade {
	return &LightGrenade{id: uuid.New()}
}

func (g *LightGrenade) ID() uuid.UUID { return g.id }

func (g *LightGrenade) Square() *grid.Square { return g.square }

func (g *LightGrenade) SetSquare(sq *grid.Square) { g.square = sq }

func (g *LightGrenade) State() GrenadeState { return g.state }

// Activate arms the grenade.
func (g *LightGrenade) Activate() error {
	if g.state != GrenadeInactive {
		return eris.Wrapf(ErrInvalidState, "cannot activate %s grenade", g.state)
	}
	g.state = GrenadeActive
	return nil
}

func (g *LightGrenade) IsExplodable() bool { return g.state == GrenadeActive }

func (g *LightGrenade) Explode() {
	if g.state == GrenadeActive {
		g.state = GrenadeExploded
	}
}

func (g *LightGrenade) Consumed() bool { return g.state == GrenadeExploded }

func (g *LightGrenade) Effect(f grid.Factory) grid.Effect {
	if g.state != GrenadeActive {
		return nil
	}
	return f.Explode(g)
}
