package game

import "github.com/rotisserie/eris"

var (
	// ErrIllegalMove is returned when the current player cannot perform the requested action. The
	// game state is unchanged and no action is consumed.
	ErrIllegalMove = eris.New("illegal move")

	// ErrGameOver is returned for actions attempted after the game ended.
	ErrGameOver = eris.New("game is over")
)
