package object

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/google/uuid"
)

// IdentityDisk is a throwable item. While travelling it is destroyed by an active force field.
type IdentityDisk struct {
	id         uuid.UUID
	square     *grid.Square
	travelling bool
	destroyed  bool
}

var (
	_ grid.Travelling   = (*IdentityDisk)(nil)
	_ grid.Destructible = (*IdentityDisk)(nil)
	_ grid.Teleportable = (*IdentityDisk)(nil)
)

func NewIdentityDisk() *IdentityDisk {
	return &IdentityDisk{id: uuid.New()}
}

func (d *IdentityDisk) ID() uuid.UUID { return d.id }

func (d *IdentityDisk) Square() *grid.Square { return d.square }

func (d *IdentityDisk) SetSquare(sq *grid.Square) { d.square = sq }

func (d *IdentityDisk) SetTravelling(travelling bool) { d.travelling = travelling }

func (d *IdentityDisk) IsTravelling() bool { return d.travelling }

func (d *IdentityDisk) Destroy() {
	d.destroyed = true
	d.travelling = false
}

func (d *IdentityDisk) Destroyed() bool { return d.destroyed }

func (d *IdentityDisk) CanTeleport() bool { return !d.destroyed }

func (d *IdentityDisk) Effect(grid.Factory) grid.Effect { return nil }
