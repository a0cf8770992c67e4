package game

import (
	"fmt"
	"strings"

	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/hazard"
	"github.com/argus-labs/gridwars/pkg/object"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Snapshot is a JSON encodable view of the game.
type Snapshot struct {
	Mode    string           `json:"mode"`
	Turn    int              `json:"turn"`
	Current int              `json:"current"`
	Actions int              `json:"actionsLeft"`
	Over    bool             `json:"over"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Squares []SquareSnapshot `json:"squares"`
	Players []PlayerSnapshot `json:"players"`
	Hazards []HazardSnapshot `json:"hazards"`
}

type SquareSnapshot struct {
	Position   grid.Position `json:"position"`
	Wall       bool          `json:"wall,omitempty"`
	Piece      int           `json:"piece,omitempty" jsonschema:"description=number of the player on the square"`
	Items      []string      `json:"items,omitempty"`
	Properties []string      `json:"properties,omitempty" jsonschema:"description=outermost first"`
}

type PlayerSnapshot struct {
	Number    int             `json:"number"`
	Position  grid.Position   `json:"position"`
	Penalty   int             `json:"penalty"`
	Inventory []string        `json:"inventory,omitempty"`
	Flag      int             `json:"flag,omitempty" jsonschema:"description=owner of the carried flag"`
	Trail     []grid.Position `json:"trail,omitempty"`
}

type HazardSnapshot struct {
	Tier      string        `json:"tier"`
	Position  grid.Position `json:"position"`
	TTL       int           `json:"ttl,omitempty"`
	Direction string        `json:"direction,omitempty"`
}

// Snapshot captures the current state of the game.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:    g.mode.String(),
		Turn:    g.turn,
		Current: g.CurrentPlayer().Number(),
		Actions: g.actionsLeft,
		Over:    g.over,
		Width:   g.grid.Width(),
		Height:  g.grid.Height(),
	}

	for _, sq := range g.grid.Squares() {
		s := SquareSnapshot{Position: sq.Position(), Wall: sq.IsWall()}
		if p, ok := sq.Piece(); ok {
			s.Piece = p.Number()
		}
		for _, it := range sq.Items() {
			s.Items = append(s.Items, itemKind(it))
		}
		for _, p := range sq.Properties() {
			s.Properties = append(s.Properties, p.Tag().String())
		}
		snap.Squares = append(snap.Squares, s)
	}

	for _, p := range g.players {
		ps := PlayerSnapshot{Number: p.Number(), Penalty: p.Penalty()}
		if sq := p.Square(); sq != nil {
			ps.Position = sq.Position()
		}
		for _, it := range p.Inventory().Items() {
			ps.Inventory = append(ps.Inventory, itemKind(it))
		}
		if flag, ok := p.HeldFlag(); ok {
			ps.Flag = flag.(*object.Flag).Owner()
		}
		for _, sq := range g.trails[p.Number()].squares() {
			ps.Trail = append(ps.Trail, sq.Position())
		}
		snap.Players = append(snap.Players, ps)
	}

	for _, pf := range g.hazards.Active() {
		hs := HazardSnapshot{Tier: pf.Tier().String(), Position: pf.Square().Position()}
		switch pf.Tier() {
		case hazard.TierPrimary, hazard.TierTertiary:
			hs.TTL = pf.TTL()
		case hazard.TierSecondary:
			hs.Direction = pf.Direction().String()
		}
		snap.Hazards = append(snap.Hazards, hs)
	}
	return snap
}

// SnapshotJSON encodes the current snapshot.
func (g *Game) SnapshotJSON() ([]byte, error) {
	b, err := json.Marshal(g.Snapshot())
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode snapshot")
	}
	return b, nil
}

// Render draws the board as text, one character per square:
//
//	#    wall
//	1-9  player
//	*    power failure
//	~    light trail
//	+    force field
//	o    item
//	.    empty square
func (s Snapshot) Render() string {
	rows := make([][]byte, s.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(" ", s.Width))
	}
	for _, sq := range s.Squares {
		x, y := sq.Position.X, sq.Position.Y
		if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
			continue
		}
		rows[y][x] = squareGlyph(sq)
	}

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "turn %d, player %d to act (%d left), %d hazards\n",
		s.Turn, s.Current, s.Actions, len(s.Hazards))
	return b.String()
}

func squareGlyph(sq SquareSnapshot) byte {
	switch {
	case sq.Wall:
		return '#'
	case sq.Piece > 0:
		return byte('0' + sq.Piece)
	}
	for _, p := range sq.Properties {
		switch p {
		case grid.TagPowerFailure.String():
			return '*'
		case grid.TagLightTrail.String():
			return '~'
		case grid.TagForceField.String():
			return '+'
		}
	}
	if len(sq.Items) > 0 {
		return 'o'
	}
	return '.'
}

func itemKind(it grid.Item) string {
	switch v := it.(type) {
	case *object.LightGrenade:
		return "grenade:" + v.State().String()
	case *object.Teleporter:
		return "teleporter"
	case *object.IdentityDisk:
		return "disk"
	case *object.Flag:
		return fmt.Sprintf("flag:%d", v.Owner())
	default:
		return fmt.Sprintf("%T", it)
	}
}
