package grid

import "github.com/google/uuid"

// Object is anything an open square can hold.
type Object interface {
	ID() uuid.UUID
	// Square returns the square currently holding the object, or nil.
	Square() *Square
	// SetSquare is called by the square when the object is placed on or removed from it.
	SetSquare(sq *Square)
}

// Piece is an object that occupies a square. A square holds at most one piece.
type Piece interface {
	Object
	Number() int
}

// Item is an object lying on a square. Any number of items may share a square.
type Item interface {
	Object
	// Effect returns the consequence the item has on objects entering its square, or nil.
	Effect(f Factory) Effect
}

// -------------------------------------------------------------------------------------------------
// Capabilities
// -------------------------------------------------------------------------------------------------
// Effects inspect their target through these interfaces and skip targets that do not implement
// them.
// -------------------------------------------------------------------------------------------------

// ExplosionReactive targets lose actions when caught in an explosion.
type ExplosionReactive interface {
	OnExplosion(damage int)
}

// HazardReactive targets lose actions when affected by a power failure.
type HazardReactive interface {
	OnPowerFailure(penalty int)
}

// Teleportable targets can be moved by a teleporter.
type Teleportable interface {
	Object
	CanTeleport() bool
}

// FlagBearer targets may carry a flag.
type FlagBearer interface {
	Object
	HeldFlag() (Item, bool)
	// ReleaseFlag removes the held flag from the bearer's possession.
	ReleaseFlag()
}

// Explodable items explode once.
type Explodable interface {
	Item
	IsExplodable() bool
	Explode()
}

// Teleporter items send objects to a paired teleporter.
type Teleporter interface {
	Item
	Destination() Teleporter
	SkipNext() bool
	SetSkipNext(skip bool)
}

// Travelling items are in flight. A travelling disk is destroyed by an active force field.
type Travelling interface {
	Item
	IsTravelling() bool
}

// Destructible items can be destroyed instead of placed.
type Destructible interface {
	Item
	Destroy()
}

// Consumable items are pruned from their square once Consumed reports true.
type Consumable interface {
	Item
	Consumed() bool
}
