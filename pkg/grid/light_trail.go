package grid

import "github.com/rotisserie/eris"

// LightTrail marks a square recently vacated by a player. No piece may enter it.
type LightTrail struct {
	owner int
}

var _ Property = (*LightTrail)(nil)

func NewLightTrail(owner int) *LightTrail {
	return &LightTrail{owner: owner}
}

func (l *LightTrail) Tag() Tag { return TagLightTrail }

func (l *LightTrail) property() {}

// Owner returns the number of the player who left the trail.
func (l *LightTrail) Owner() int { return l.owner }

func (l *LightTrail) guardPiece(_ *Square, _ Piece) error {
	return eris.Wrapf(ErrIllegalPlacement, "square carries the light trail of player %d", l.owner)
}
