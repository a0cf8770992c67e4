package grid

import (
	"slices"

	"github.com/rotisserie/eris"
)

// CellKind distinguishes the two cell variants.
type CellKind uint8

const (
	// CellOpen holds at most one piece and any number of items, and accepts properties.
	CellOpen CellKind = iota
	// CellWall holds nothing and rejects every mutation.
	CellWall
)

func (k CellKind) String() string {
	if k == CellWall {
		return "wall"
	}
	return "open"
}

// cell is the innermost layer of a square. Properties wrap it.
type cell struct {
	kind  CellKind
	piece Piece
	items []Item
}

func (c *cell) canAddPiece(p Piece) error {
	if c.kind == CellWall {
		return eris.Wrap(ErrUnsupportedOnWall, "cannot add piece")
	}
	if c.piece != nil {
		return eris.Wrapf(ErrIllegalPlacement, "square already holds piece %s", c.piece.ID())
	}
	if p == nil {
		return eris.Wrap(ErrIllegalPlacement, "piece is nil")
	}
	return nil
}

func (c *cell) addPiece(p Piece) error {
	if err := c.canAddPiece(p); err != nil {
		return err
	}
	c.piece = p
	return nil
}

func (c *cell) canAddItem(it Item) error {
	if c.kind == CellWall {
		return eris.Wrap(ErrUnsupportedOnWall, "cannot add item")
	}
	if it == nil {
		return eris.Wrap(ErrIllegalPlacement, "item is nil")
	}
	if c.contains(it) {
		return eris.Wrapf(ErrIllegalPlacement, "item %s already on square", it.ID())
	}
	return nil
}

func (c *cell) addItem(it Item) error {
	if err := c.canAddItem(it); err != nil {
		return err
	}
	c.items = append(c.items, it)
	return nil
}

func (c *cell) canRemove(o Object) error {
	if c.kind == CellWall {
		return eris.Wrap(ErrUnsupportedOnWall, "cannot remove object")
	}
	if o == nil {
		return eris.Wrap(ErrIllegalPlacement, "object is nil")
	}
	if !c.contains(o) {
		return eris.Wrapf(ErrIllegalPlacement, "object %s is not on square", o.ID())
	}
	return nil
}

func (c *cell) remove(o Object) error {
	if err := c.canRemove(o); err != nil {
		return err
	}
	if c.piece != nil && Object(c.piece) == o {
		c.piece = nil
		return nil
	}
	c.items = slices.DeleteFunc(c.items, func(it Item) bool { return Object(it) == o })
	return nil
}

func (c *cell) contains(o Object) bool {
	if o == nil {
		return false
	}
	if c.piece != nil && Object(c.piece) == o {
		return true
	}
	return slices.ContainsFunc(c.items, func(it Item) bool { return Object(it) == o })
}
