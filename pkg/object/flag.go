package object

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/google/uuid"
)

// Flag is the capture the flag objective of a player.
type Flag struct {
	id     uuid.UUID
	square *grid.Square
	owner  int
}

var _ grid.Item = (*Flag)(nil)

func NewFlag(owner int) *Flag {
	return &Flag{id: uuid.New(), owner: owner}
}

func (f *Flag) ID() uuid.UUID { return f.id }

func (f *Flag) Square() *grid.Square { return f.square }

func (f *Flag) SetSquare(sq *grid.Square) { f.square = sq }

// Owner returns the number of the player the flag belongs to.
func (f *Flag) Owner() int { return f.owner }

func (f *Flag) Effect(grid.Factory) grid.Effect { return nil }
