package grid

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Grid is a built board: a fixed set of squares and a frozen, symmetric neighbour graph.
type Grid struct {
	squares []*Square
	byPos   map[Position]*Square
	width   int
	height  int
	factory Factory
}

// Factory returns the effect factory squares of this grid build their chains with.
func (g *Grid) Factory() Factory { return g.factory }

// Square returns the square at pos.
func (g *Grid) Square(pos Position) (*Square, bool) {
	sq, ok := g.byPos[pos]
	return sq, ok
}

// SquareAt returns the square with the given index.
func (g *Grid) SquareAt(index int) (*Square, bool) {
	if index < 0 || index >= len(g.squares) {
		return nil, false
	}
	return g.squares[index], true
}

// Squares returns every square in index order.
func (g *Grid) Squares() []*Square {
	squares := make([]*Square, len(g.squares))
	copy(squares, g.squares)
	return squares
}

func (g *Grid) Len() int { return len(g.squares) }

// Width and Height are those of the bounding box of every position, counted from the origin.
func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

// StartingSquare returns the square carrying the starting position of player.
func (g *Grid) StartingSquare(player int) (*Square, bool) {
	for _, sq := range g.squares {
		if p, ok := sq.Property(TagStartingPosition); ok && p.(*StartingPosition).Player() == player {
			return sq, true
		}
	}
	return nil, false
}

// -------------------------------------------------------------------------------------------------
// Builder
// -------------------------------------------------------------------------------------------------

// Builder collects squares and neighbour links. Errors are deferred to Build.
type Builder struct {
	squares []*Square
	byPos   map[Position]*Square
	err     error
}

func NewBuilder() *Builder {
	return &Builder{byPos: make(map[Position]*Square)}
}

// Open adds an open square at pos.
func (b *Builder) Open(pos Position) *Builder {
	return b.add(pos, CellOpen)
}

// Wall adds a wall square at pos.
func (b *Builder) Wall(pos Position) *Builder {
	return b.add(pos, CellWall)
}

func (b *Builder) add(pos Position, kind CellKind) *Builder {
	if b.err != nil {
		return b
	}
	if _, ok := b.byPos[pos]; ok {
		b.err = eris.Wrapf(ErrConfiguration, "duplicate square at %v", pos)
		return b
	}
	sq := newSquare(pos, kind)
	sq.index = len(b.squares)
	b.squares = append(b.squares, sq)
	b.byPos[pos] = sq
	return b
}

// Link makes to the neighbour of from in direction d. Links are one-way: the reverse link must be
// added as well or Build fails.
func (b *Builder) Link(from Position, d Direction, to Position) *Builder {
	if b.err != nil {
		return b
	}
	a, ok := b.byPos[from]
	if !ok {
		b.err = eris.Wrapf(ErrConfiguration, "link from unknown square %v", from)
		return b
	}
	n, ok := b.byPos[to]
	if !ok {
		b.err = eris.Wrapf(ErrConfiguration, "link to unknown square %v", to)
		return b
	}
	if d >= numDirections {
		b.err = eris.Wrapf(ErrConfiguration, "invalid direction %d", d)
		return b
	}
	a.neighbours[d] = n
	return b
}

// LinkAdjacent links every square to the squares one step away in each direction.
func (b *Builder) LinkAdjacent() *Builder {
	for _, sq := range b.squares {
		for _, d := range Directions() {
			if n, ok := b.byPos[sq.pos.Step(d)]; ok {
				sq.neighbours[d] = n
			}
		}
	}
	return b
}

// Build validates the neighbour graph and returns the grid. The builder must not be reused.
func (b *Builder) Build(f Factory) (*Grid, error) {
	if b.err != nil {
		return nil, b.err
	}
	if f == nil {
		return nil, eris.Wrap(ErrConfiguration, "grid needs an effect factory")
	}
	if len(b.squares) == 0 {
		return nil, eris.Wrap(ErrConfiguration, "grid has no squares")
	}

	g := &Grid{squares: b.squares, byPos: b.byPos, factory: f}
	for _, sq := range b.squares {
		for d, n := range sq.neighbours {
			if n == nil {
				continue
			}
			dir := Direction(d)
			if n == sq {
				return nil, eris.Wrapf(ErrConfiguration, "square %v is its own %s neighbour", sq.pos, dir)
			}
			if n.neighbours[dir.Opposite()] != sq {
				return nil, eris.Wrapf(ErrConfiguration, "asymmetric link: %v -%s-> %v has no %s link back",
					sq.pos, dir, n.pos, dir.Opposite())
			}
		}
		sq.grid = g
		g.width = max(g.width, sq.pos.X+1)
		g.height = max(g.height, sq.pos.Y+1)
	}
	return g, nil
}

// NewRectangular builds a width by height board of open squares, with walls at the given positions,
// linked to their geometric neighbours.
func NewRectangular(width, height int, walls []Position, f Factory) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, eris.Wrapf(ErrConfiguration, "invalid board size %dx%d", width, height)
	}
	isWall := make(map[Position]bool, len(walls))
	for _, w := range walls {
		isWall[w] = true
	}
	b := NewBuilder()
	for y := range height {
		for x := range width {
			pos := Position{X: x, Y: y}
			if isWall[pos] {
				b.Wall(pos)
			} else {
				b.Open(pos)
			}
		}
	}
	return b.LinkAdjacent().Build(f)
}

// ParseLayout builds a board from an ASCII drawing: '#' is a wall, '.' an open square, and a digit
// an open square carrying the starting position of that player. Blank lines and surrounding
// whitespace are ignored.
func ParseLayout(layout string, f Factory) (*Grid, error) {
	b := NewBuilder()
	starts := make(map[Position]int)
	y := 0
	for line := range strings.Lines(layout) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for x, ch := range line {
			pos := Position{X: x, Y: y}
			switch {
			case ch == '#':
				b.Wall(pos)
			case ch == '.':
				b.Open(pos)
			case ch >= '1' && ch <= '9':
				b.Open(pos)
				starts[pos] = int(ch - '0')
			default:
				return nil, eris.Wrapf(ErrConfiguration, "unknown layout character %q at %v", ch, pos)
			}
		}
		y++
	}

	g, err := b.LinkAdjacent().Build(f)
	if err != nil {
		return nil, err
	}
	for pos, player := range starts {
		sq, _ := g.Square(pos)
		if err := sq.AddProperty(NewStartingPosition(player)); err != nil {
			return nil, eris.Wrap(err, "failed to mark starting position")
		}
	}
	return g, nil
}
