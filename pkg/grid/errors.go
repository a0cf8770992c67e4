package grid

import "github.com/rotisserie/eris"

var (
	// ErrIllegalPlacement is returned when a property of the square, or its occupancy, refuses a
	// placement or removal. The square is left unchanged.
	ErrIllegalPlacement = eris.New("illegal placement")

	// ErrUnsupportedOnWall is returned for any mutation attempted on a wall square.
	ErrUnsupportedOnWall = eris.New("operation not supported on a wall")

	// ErrInvalidTeleportDestination is returned when the square of a teleporter's destination refuses
	// the teleported object.
	ErrInvalidTeleportDestination = eris.New("invalid teleport destination")

	// ErrConfiguration signals a malformed board: an asymmetric neighbour graph, or a square with no
	// usable neighbour where one is required.
	ErrConfiguration = eris.New("invalid grid configuration")
)
