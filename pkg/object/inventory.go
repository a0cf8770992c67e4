package object

import (
	"slices"

	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/rotisserie/eris"
)

// DefaultInventoryCapacity is the number of items a player can carry.
const DefaultInventoryCapacity = 6

// Inventory is an ordered, bounded bag of items.
type Inventory struct {
	items    []grid.Item
	capacity int
}

func NewInventory(capacity int) *Inventory {
	return &Inventory{capacity: capacity}
}

func (inv *Inventory) Add(it grid.Item) error {
	if slices.Contains(inv.items, it) {
		return eris.Errorf("item %s already in inventory", it.ID())
	}
	if len(inv.items) >= inv.capacity {
		return eris.Wrapf(ErrInventoryFull, "capacity %d", inv.capacity)
	}
	inv.items = append(inv.items, it)
	return nil
}

// Remove reports whether it was carried.
func (inv *Inventory) Remove(it grid.Item) bool {
	n := len(inv.items)
	inv.items = slices.DeleteFunc(inv.items, func(x grid.Item) bool { return x == it })
	return len(inv.items) != n
}

func (inv *Inventory) Contains(it grid.Item) bool {
	return slices.Contains(inv.items, it)
}

// Items returns the carried items in pickup order.
func (inv *Inventory) Items() []grid.Item {
	return slices.Clone(inv.items)
}

func (inv *Inventory) Len() int { return len(inv.items) }
