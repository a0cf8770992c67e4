package main

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/argus-labs/gridwars/pkg/game"
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/object"
	"github.com/argus-labs/gridwars/pkg/telemetry"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// maxBotAttempts bounds how many random actions a bot tries before it ends its turn.
const maxBotAttempts = 8

type simulateConfig struct {
	mode         string
	width        int
	height       int
	players      int
	turns        int
	seed         uint64
	hazardChance float64
	json         bool
}

func newSimulateCmd(c *cli) *cobra.Command {
	cfg := simulateConfig{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a game between random bots and print the final board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.seed == 0 {
				cfg.seed = uint64(time.Now().UnixNano()) //nolint:gosec // it's ok
			}
			g, err := simulate(cmd.Context(), cfg, c.tel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.json {
				data, err := g.SnapshotJSON()
				if err != nil {
					return err
				}
				_, err = out.Write(append(data, '\n'))
				return err
			}
			_, err = out.Write([]byte(g.Snapshot().Render()))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.mode, "mode", "", "rule set, race or ctf (overrides GRIDWARS_MODE)")
	flags.IntVar(&cfg.width, "width", 12, "board width including the outer wall")
	flags.IntVar(&cfg.height, "height", 8, "board height including the outer wall")
	flags.IntVar(&cfg.players, "players", 2, "number of bots, at most 9")
	flags.IntVar(&cfg.turns, "turns", 50, "number of turns to play")
	flags.Uint64Var(&cfg.seed, "seed", 0, "seed of the board, the bots and the game (0 picks one)")
	flags.Float64Var(&cfg.hazardChance, "hazard-chance", 0, "power failure chance per square per turn (overrides GRIDWARS_HAZARD_CHANCE)")
	flags.BoolVar(&cfg.json, "json", false, "print the final snapshot as JSON")
	return cmd
}

// simulate plays cfg.turns turns between random bots on a generated board.
func simulate(ctx context.Context, cfg simulateConfig, tel telemetry.Telemetry) (*game.Game, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)) //nolint:gosec // simulation only

	layout, err := randomLayout(rng, cfg.width, cfg.height, cfg.players)
	if err != nil {
		return nil, err
	}
	g, err := game.New(layout, game.Options{
		Mode:         cfg.mode,
		Seed:         cfg.seed,
		HazardChance: cfg.hazardChance,
	}, tel)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create game")
	}
	if err := furnish(rng, g); err != nil {
		return nil, err
	}

	logger := tel.GetLogger("simulate")
	for g.Turn() < cfg.turns {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "simulation interrupted")
		}
		botAct(ctx, rng, g)
	}
	g.End()

	logger.Info().
		Int("turns", g.Turn()).
		Int("hazards", g.Hazards().Len()).
		Msg("simulation finished")
	return g, nil
}

// randomLayout draws a walled board with scattered inner walls and the starting positions of the
// given number of players.
func randomLayout(rng *rand.Rand, width, height, players int) (string, error) {
	if width < 3 || height < 3 {
		return "", eris.Errorf("board must be at least 3x3, got %dx%d", width, height)
	}
	if players < 1 || players > 9 {
		return "", eris.Errorf("player count must be between 1 and 9, got %d", players)
	}

	rows := make([][]byte, height)
	var open []grid.Position
	for y := range rows {
		rows[y] = make([]byte, width)
		for x := range rows[y] {
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			if border || rng.IntN(10) == 0 {
				rows[y][x] = '#'
				continue
			}
			rows[y][x] = '.'
			open = append(open, grid.Position{X: x, Y: y})
		}
	}
	if len(open) < players {
		return "", eris.Errorf("board of %dx%d has room for %d players only", width, height, len(open))
	}

	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	for i, pos := range open[:players] {
		rows[pos.Y][pos.X] = byte('1' + i)
	}

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// furnish scatters items over the board: grenades, identity disks, a teleporter pair, a force field,
// and the flags in capture the flag.
func furnish(rng *rand.Rand, g *game.Game) error {
	var free []*grid.Square
	for _, sq := range g.Grid().Squares() {
		if !sq.IsWall() && !sq.HasProperty(grid.TagStartingPosition) {
			free = append(free, sq)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	items := make([]grid.Item, 0, len(free)/4)
	for range len(free) / 8 {
		items = append(items, object.NewLightGrenade())
	}
	for range len(free) / 16 {
		items = append(items, object.NewIdentityDisk())
	}
	if len(free) >= 8 {
		a, b := object.NewTeleporter(), object.NewTeleporter()
		object.PairTeleporters(a, b)
		items = append(items, a, b)
	}
	if g.Mode() == grid.ModeCTF {
		for _, p := range g.Players() {
			items = append(items, object.NewFlag(p.Number()))
		}
	}

	for i, it := range items {
		if i >= len(free) {
			break
		}
		if err := g.PlaceItem(free[i].Position(), it); err != nil {
			return eris.Wrap(err, "failed to furnish board")
		}
	}

	if len(free) > len(items) {
		if err := g.AddForceField(grid.NewForceField(rng.IntN(2) == 0), free[len(items)].Position()); err != nil {
			return eris.Wrap(err, "failed to place force field")
		}
	}
	return nil
}

// botAct makes the current player try random actions until one is accepted, and ends the turn when
// none is.
func botAct(ctx context.Context, rng *rand.Rand, g *game.Game) {
	p := g.CurrentPlayer()
	for range maxBotAttempts {
		var err error
		switch roll := rng.IntN(10); {
		case roll < 2 && len(p.Square().Items()) > 0:
			items := p.Square().Items()
			err = g.PickUp(ctx, items[rng.IntN(len(items))])
		case roll == 2 && p.Inventory().Len() > 0:
			err = useOrThrow(ctx, rng, g, p)
		default:
			err = g.Move(ctx, grid.Directions()[rng.IntN(len(grid.Directions()))])
		}
		if !eris.Is(err, game.ErrIllegalMove) && !eris.Is(err, object.ErrNotInInventory) {
			return
		}
	}
	_ = g.EndTurn(ctx)
}

func useOrThrow(ctx context.Context, rng *rand.Rand, g *game.Game, p *object.Player) error {
	items := p.Inventory().Items()
	switch it := items[rng.IntN(len(items))].(type) {
	case *object.LightGrenade:
		return g.Use(ctx, it)
	case *object.IdentityDisk:
		return g.Throw(ctx, it, grid.Directions()[rng.IntN(len(grid.Directions()))])
	default:
		return game.ErrIllegalMove
	}
}
