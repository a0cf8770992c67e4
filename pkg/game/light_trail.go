package game

import (
	"github.com/argus-labs/gridwars/pkg/grid"
)

// lightTrail tracks the squares a player vacated most recently. Each of them carries a
// grid.LightTrail that keeps pieces out.
type lightTrail struct {
	owner  int
	length int
	marks  []trailMark // Oldest first
}

type trailMark struct {
	square   *grid.Square
	property *grid.LightTrail
}

// leave marks sq as vacated by the owner and clears marks beyond the trail length.
func (l *lightTrail) leave(sq *grid.Square) {
	if l.length <= 0 {
		return
	}
	prop := grid.NewLightTrail(l.owner)
	if err := sq.AddProperty(prop); err != nil {
		return
	}
	l.marks = append(l.marks, trailMark{square: sq, property: prop})
	for len(l.marks) > l.length {
		l.marks[0].square.RemoveProperty(l.marks[0].property)
		l.marks = l.marks[1:]
	}
}

// squares returns the squares currently covered by the trail, oldest first.
func (l *lightTrail) squares() []*grid.Square {
	squares := make([]*grid.Square, len(l.marks))
	for i, m := range l.marks {
		squares[i] = m.square
	}
	return squares
}
