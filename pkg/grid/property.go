package grid

// Tag identifies a property kind.
type Tag uint8

const (
	TagPowerFailure Tag = iota + 1
	TagForceField
	TagLightTrail
	TagStartingPosition
)

func (t Tag) String() string {
	switch t {
	case TagPowerFailure:
		return "power_failure"
	case TagForceField:
		return "force_field"
	case TagLightTrail:
		return "light_trail"
	case TagStartingPosition:
		return "starting_position"
	default:
		return "unknown"
	}
}

// Property is a capability layer stacked on an open square. The catalogue is fixed: power failure,
// force field, light trail and starting position.
type Property interface {
	Tag() Tag
	property()
}

// A property overrides a square operation by implementing one of the hooks below. Hooks are
// consulted from the outermost layer inwards and may veto the operation before the cell is touched.

type pieceGuard interface {
	guardPiece(sq *Square, p Piece) error
}

// itemGuard may consume the item instead of letting it be placed.
type itemGuard interface {
	guardItem(sq *Square, it Item) (consumed bool, err error)
}

type removeGuard interface {
	guardRemove(sq *Square, o Object) error
}

// effectWrapper chains its own effect in front of the effect assembled by the inner layers.
type effectWrapper interface {
	wrapEffect(f Factory, inner Effect) Effect
}
