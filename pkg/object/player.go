// Package object provides the pieces and items placed on a grid.
package object

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// Player is the piece a participant moves around the board. Explosions and power failures make it
// skip actions; the penalty accumulates until the game driver drains it.
type Player struct {
	id        uuid.UUID
	number    int
	square    *grid.Square
	inventory *Inventory
	penalty   int
	flag      *Flag
}

var (
	_ grid.Piece             = (*Player)(nil)
	_ grid.ExplosionReactive = (*Player)(nil)
	_ grid.HazardReactive    = (*Player)(nil)
	_ grid.Teleportable      = (*Player)(nil)
	_ grid.FlagBearer        = (*Player)(nil)
)

func NewPlayer(number int) *Player {
	return &Player{
		id:        uuid.New(),
		number:    number,
		inventory: NewInventory(DefaultInventoryCapacity),
	}
}

func (p *Player) ID() uuid.UUID { return p.id }

func (p *Player) Number() int { return p.number }

func (p *Player) Square() *grid.Square { return p.square }

func (p *Player) SetSquare(sq *grid.Square) { p.square = sq }

func (p *Player) Inventory() *Inventory { return p.inventory }

func (p *Player) CanTeleport() bool { return true }

func (p *Player) OnExplosion(damage int) { p.penalty += damage }

func (p *Player) OnPowerFailure(penalty int) { p.penalty += penalty }

// Penalty returns the number of actions the player still has to skip.
func (p *Player) Penalty() int { return p.penalty }

// TakePenalty drains at most limit skipped actions and returns how many were drained.
func (p *Player) TakePenalty(limit int) int {
	n := min(p.penalty, limit)
	p.penalty -= n
	return n
}

// CarryFlag hands f to the player.
func (p *Player) CarryFlag(f *Flag) error {
	if p.flag != nil {
		return eris.Wrap(ErrInvalidState, "player already carries a flag")
	}
	p.flag = f
	return nil
}

func (p *Player) HeldFlag() (grid.Item, bool) {
	if p.flag == nil {
		return nil, false
	}
	return p.flag, true
}

func (p *Player) ReleaseFlag() { p.flag = nil }
