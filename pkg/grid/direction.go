package grid

// Direction is one of the eight compass directions, numbered clockwise from North.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

const numDirections = 8

// Directions returns the eight compass directions in clockwise order starting at North.
func Directions() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + numDirections/2) % numDirections
}

// Rotate returns the direction one compass step (45 degrees) away in the given rotation.
func (d Direction) Rotate(r Rotation) Direction {
	if r == CounterClockwise {
		return (d + numDirections - 1) % numDirections
	}
	return (d + 1) % numDirections
}

// IsDiagonal reports whether d is one of the four intercardinal directions.
func (d Direction) IsDiagonal() bool {
	return d%2 == 1
}

// Offset returns the position delta of one step in d. Y grows southwards.
func (d Direction) Offset() Position {
	switch d {
	case North:
		return Position{X: 0, Y: -1}
	case NorthEast:
		return Position{X: 1, Y: -1}
	case East:
		return Position{X: 1, Y: 0}
	case SouthEast:
		return Position{X: 1, Y: 1}
	case South:
		return Position{X: 0, Y: 1}
	case SouthWest:
		return Position{X: -1, Y: 1}
	case West:
		return Position{X: -1, Y: 0}
	case NorthWest:
		return Position{X: -1, Y: -1}
	default:
		return Position{}
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return "?"
	}
}

// Rotation is a turning sense around a square.
type Rotation int8

const (
	Clockwise        Rotation = 1
	CounterClockwise Rotation = -1
)

func (r Rotation) String() string {
	if r == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// Position addresses a square on a rectangular board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the position one step away in d.
func (p Position) Step(d Direction) Position {
	o := d.Offset()
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}
