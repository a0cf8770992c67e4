package object

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/google/uuid"
)

// Teleporter sends whatever enters its square to the square of its paired teleporter.
type Teleporter struct {
	id          uuid.UUID
	square      *grid.Square
	destination *Teleporter
	skipNext    bool
}

var _ grid.Teleporter = (*Teleporter)(nil)

func NewTeleporter() *Teleporter {
	return &Teleporter{id: uuid.New()}
}

// PairTeleporters makes a and b each other's destination.
func PairTeleporters(a, b *Teleporter) {
	a.destination = b
	b.destination = a
}

func (t *Teleporter) ID() uuid.UUID { return t.id }

func (t *Teleporter) Square() *grid.Square { return t.square }

func (t *Teleporter) SetSquare(sq *grid.Square) { t.square = sq }

func (t *Teleporter) Destination() grid.Teleporter {
	if t.destination == nil {
		return nil
	}
	return t.destination
}

func (t *Teleporter) SkipNext() bool { return t.skipNext }

func (t *Teleporter) SetSkipNext(skip bool) { t.skipNext = skip }

func (t *Teleporter) Effect(f grid.Factory) grid.Effect {
	return f.Teleport(t)
}
