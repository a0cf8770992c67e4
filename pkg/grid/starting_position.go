package grid

import "github.com/rotisserie/eris"

// StartingPosition marks the square a player starts on. Items cannot be placed on it.
type StartingPosition struct {
	player int
}

var _ Property = (*StartingPosition)(nil)

func NewStartingPosition(player int) *StartingPosition {
	return &StartingPosition{player: player}
}

func (s *StartingPosition) Tag() Tag { return TagStartingPosition }

func (s *StartingPosition) property() {}

// Player returns the number of the player starting here.
func (s *StartingPosition) Player() int { return s.player }

func (s *StartingPosition) guardItem(_ *Square, it Item) (bool, error) {
	return false, eris.Wrapf(ErrIllegalPlacement, "cannot place item %s on the start of player %d", it.ID(), s.player)
}
