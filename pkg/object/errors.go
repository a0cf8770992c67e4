package object

import "github.com/rotisserie/eris"

var (
	// ErrInventoryFull is returned when picking up an item would exceed the inventory capacity.
	ErrInventoryFull = eris.New("inventory is full")

	// ErrNotInInventory is returned when using or dropping an item the player does not carry.
	ErrNotInInventory = eris.New("item is not in inventory")

	// ErrInvalidState is returned when an item is asked to do something its state does not allow.
	ErrInvalidState = eris.New("invalid item state")
)
