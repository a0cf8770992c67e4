package grid

import (
	"slices"

	"github.com/argus-labs/gridwars/pkg/assert"
	"github.com/rotisserie/eris"
)

// Square is the stable identity of a board position. It owns the cell at that position, the
// properties stacked on it, and its links to neighbouring squares.
//
// Properties form a stack: the most recently added one is the outermost and is consulted first.
// Every mutation either succeeds or returns an error leaving the square unchanged, except for the
// consequences of the effect chain triggered by a successful placement.
type Square struct {
	index      int
	pos        Position
	cell       cell
	neighbours [numDirections]*Square
	layers     []Property // innermost first
	grid       *Grid
}

func newSquare(pos Position, kind CellKind) *Square {
	return &Square{pos: pos, cell: cell{kind: kind}}
}

// Index returns the dense index of the square within its grid.
func (sq *Square) Index() int { return sq.index }

func (sq *Square) Position() Position { return sq.pos }

func (sq *Square) Kind() CellKind { return sq.cell.kind }

func (sq *Square) IsWall() bool { return sq.cell.kind == CellWall }

// Neighbour returns the square adjacent in direction d.
func (sq *Square) Neighbour(d Direction) (*Square, bool) {
	if d >= numDirections {
		return nil, false
	}
	n := sq.neighbours[d]
	return n, n != nil
}

// Neighbours returns the existing neighbours in clockwise order starting at North.
func (sq *Square) Neighbours() []*Square {
	neighbours := make([]*Square, 0, numDirections)
	for _, n := range sq.neighbours {
		if n != nil {
			neighbours = append(neighbours, n)
		}
	}
	return neighbours
}

// Piece returns the piece occupying the square.
func (sq *Square) Piece() (Piece, bool) {
	return sq.cell.piece, sq.cell.piece != nil
}

// Items returns the items on the square in placement order.
func (sq *Square) Items() []Item {
	return slices.Clone(sq.cell.items)
}

func (sq *Square) Contains(o Object) bool {
	return sq.cell.contains(o)
}

// -------------------------------------------------------------------------------------------------
// Property stack
// -------------------------------------------------------------------------------------------------

// AddProperty stacks p on top of the square's properties. Walls accept no property and a square
// carries at most one power failure.
func (sq *Square) AddProperty(p Property) error {
	if sq.IsWall() {
		return eris.Wrap(ErrUnsupportedOnWall, "cannot add property")
	}
	if p == nil {
		return eris.Wrap(ErrIllegalPlacement, "property is nil")
	}
	if slices.Contains(sq.layers, p) {
		return eris.Wrapf(ErrIllegalPlacement, "%s already on square %v", p.Tag(), sq.pos)
	}
	if p.Tag() == TagPowerFailure && sq.HasProperty(TagPowerFailure) {
		return eris.Wrapf(ErrIllegalPlacement, "square %v already has a power failure", sq.pos)
	}
	sq.layers = append(sq.layers, p)
	return nil
}

// RemoveProperty removes p wherever it sits in the stack. It reports whether p was present.
func (sq *Square) RemoveProperty(p Property) bool {
	n := len(sq.layers)
	sq.layers = slices.DeleteFunc(sq.layers, func(l Property) bool { return l == p })
	return len(sq.layers) != n
}

func (sq *Square) HasProperty(tag Tag) bool {
	_, ok := sq.Property(tag)
	return ok
}

// Property returns the outermost property with the given tag.
func (sq *Square) Property(tag Tag) (Property, bool) {
	for _, p := range slices.Backward(sq.layers) {
		if p.Tag() == tag {
			return p, true
		}
	}
	return nil, false
}

// Properties returns the stack, outermost first.
func (sq *Square) Properties() []Property {
	props := slices.Clone(sq.layers)
	slices.Reverse(props)
	return props
}

// -------------------------------------------------------------------------------------------------
// Placement
// -------------------------------------------------------------------------------------------------

// CanAddPiece reports whether AddPiece would accept p.
func (sq *Square) CanAddPiece(p Piece) bool {
	return sq.checkPiece(p) == nil
}

// AddPiece places p on the square and executes the entry chain against it.
func (sq *Square) AddPiece(p Piece) error {
	if err := sq.checkPiece(p); err != nil {
		return err
	}
	err := sq.cell.addPiece(p)
	assert.That(err == nil, "checked piece placement failed: %v", err)
	p.SetSquare(sq)
	return sq.trigger(p, sq.EntryEffect(p))
}

// AddItem places it on the square and executes the entry chain against it. An item consumed by a
// property (a travelling disk hitting an active force field) is destroyed instead of placed.
func (sq *Square) AddItem(it Item) error {
	consumed, err := sq.checkItem(it)
	if err != nil {
		return err
	}
	if consumed {
		if d, ok := it.(Destructible); ok {
			d.Destroy()
		}
		return nil
	}
	err = sq.cell.addItem(it)
	assert.That(err == nil, "checked item placement failed: %v", err)
	it.SetSquare(sq)
	return sq.trigger(it, sq.EntryEffect(it))
}

// Remove takes o off the square.
func (sq *Square) Remove(o Object) error {
	if err := sq.cell.canRemove(o); err != nil {
		return err
	}
	for _, p := range slices.Backward(sq.layers) {
		if g, ok := p.(removeGuard); ok {
			if err := g.guardRemove(sq, o); err != nil {
				return err
			}
		}
	}
	err := sq.cell.remove(o)
	assert.That(err == nil, "checked removal failed: %v", err)
	o.SetSquare(nil)
	return nil
}

// StartTurn executes the start-of-turn chain against p, which must be on the square.
func (sq *Square) StartTurn(p Piece) error {
	if p == nil || sq.cell.piece != p {
		return eris.Wrapf(ErrIllegalPlacement, "piece is not on square %v", sq.pos)
	}
	return sq.trigger(p, sq.StartEffect())
}

// EntryEffect assembles the chain for an object entering the square: the effects of the items
// already there, wrapped by the properties.
func (sq *Square) EntryEffect(entering Object) Effect {
	f := sq.factory()
	chain := NewChain(f.Empty())
	for _, it := range sq.cell.items {
		if Object(it) == entering {
			continue
		}
		chain.Append(it.Effect(f))
	}
	return sq.wrap(f, chain)
}

// StartEffect assembles the chain for a piece starting its turn on the square. Only properties
// contribute to it.
func (sq *Square) StartEffect() Effect {
	f := sq.factory()
	return sq.wrap(f, NewChain(f.Empty()))
}

func (sq *Square) wrap(f Factory, inner Effect) Effect {
	for _, p := range sq.layers {
		if w, ok := p.(effectWrapper); ok {
			inner = w.wrapEffect(f, inner)
		}
	}
	return inner
}

func (sq *Square) trigger(target Object, e Effect) error {
	err := e.Execute(target)
	sq.pruneConsumed()
	return err
}

func (sq *Square) pruneConsumed() {
	sq.cell.items = slices.DeleteFunc(sq.cell.items, func(it Item) bool {
		c, ok := it.(Consumable)
		if ok && c.Consumed() {
			it.SetSquare(nil)
			return true
		}
		return false
	})
}

func (sq *Square) factory() Factory {
	assert.That(sq.grid != nil, "square %v is not part of a grid", sq.pos)
	return sq.grid.factory
}

func (sq *Square) checkPiece(p Piece) error {
	if sq.IsWall() {
		return eris.Wrap(ErrUnsupportedOnWall, "cannot add piece")
	}
	if p == nil {
		return eris.Wrap(ErrIllegalPlacement, "piece is nil")
	}
	for _, l := range slices.Backward(sq.layers) {
		if g, ok := l.(pieceGuard); ok {
			if err := g.guardPiece(sq, p); err != nil {
				return err
			}
		}
	}
	return sq.cell.canAddPiece(p)
}

func (sq *Square) checkItem(it Item) (bool, error) {
	if sq.IsWall() {
		return false, eris.Wrap(ErrUnsupportedOnWall, "cannot add item")
	}
	if it == nil {
		return false, eris.Wrap(ErrIllegalPlacement, "item is nil")
	}
	for _, l := range slices.Backward(sq.layers) {
		if g, ok := l.(itemGuard); ok {
			consumed, err := g.guardItem(sq, it)
			if err != nil || consumed {
				return consumed, err
			}
		}
	}
	return false, sq.cell.canAddItem(it)
}

// canAdd checks whether o could be placed, as a piece or as an item.
func (sq *Square) canAdd(o Object) error {
	switch v := o.(type) {
	case Piece:
		return sq.checkPiece(v)
	case Item:
		_, err := sq.checkItem(v)
		return err
	default:
		return eris.Wrapf(ErrIllegalPlacement, "object %s is neither a piece nor an item", o.ID())
	}
}

func (sq *Square) add(o Object) error {
	switch v := o.(type) {
	case Piece:
		return sq.AddPiece(v)
	case Item:
		return sq.AddItem(v)
	default:
		return eris.Wrapf(ErrIllegalPlacement, "object %s is neither a piece nor an item", o.ID())
	}
}
