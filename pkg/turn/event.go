// Package turn defines the events a game driver emits as play advances.
package turn

// Event is emitted exactly once per completed action.
type Event uint8

const (
	// EndAction follows an action that did not finish the acting player's turn.
	EndAction Event = iota + 1
	// EndTurn follows the action that finished a turn.
	EndTurn
	// EndGame is emitted once when the game is over.
	EndGame
)

func (e Event) String() string {
	switch e {
	case EndAction:
		return "end_action"
	case EndTurn:
		return "end_turn"
	case EndGame:
		return "end_game"
	default:
		return "unknown"
	}
}
