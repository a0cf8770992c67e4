package grid

import "github.com/rotisserie/eris"

// ForceField blocks pieces while active. A single force field may be stacked on every square
// between two generators.
type ForceField struct {
	active       bool
	interactions int
}

var _ Property = (*ForceField)(nil)

// NewForceField returns a force field in the given state.
func NewForceField(active bool) *ForceField {
	return &ForceField{active: active}
}

func (f *ForceField) Tag() Tag { return TagForceField }

func (f *ForceField) property() {}

// Active reports whether the field currently blocks.
func (f *ForceField) Active() bool { return f.active }

// Interact records an interaction with the field. The field flips state on every second one.
func (f *ForceField) Interact() {
	f.interactions++
	if f.interactions%2 == 0 {
		f.active = !f.active
	}
}

func (f *ForceField) guardPiece(_ *Square, _ Piece) error {
	if f.active {
		return eris.Wrap(ErrIllegalPlacement, "force field is active")
	}
	return nil
}

func (f *ForceField) guardItem(_ *Square, it Item) (bool, error) {
	if !f.active {
		return false, nil
	}
	disk, ok := it.(Travelling)
	return ok && disk.IsTravelling(), nil
}

func (f *ForceField) guardRemove(sq *Square, o Object) error {
	if f.active && sq.cell.piece != nil && Object(sq.cell.piece) == o {
		return eris.Wrap(ErrIllegalPlacement, "piece is trapped by an active force field")
	}
	return nil
}
