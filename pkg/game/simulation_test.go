package game_test

import (
	"context"
	"errors"
	"testing"

	"github.com/argus-labs/gridwars/pkg/game"
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/object"
	"github.com/argus-labs/gridwars/pkg/telemetry"
	"github.com/argus-labs/gridwars/pkg/testutils"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------------------------------------------------------------------------------
// Randomized game simulation
// -------------------------------------------------------------------------------------------------
// Players pick random actions on a board seeded with items, force fields and a high power failure
// chance. Rejected actions must leave the turn untouched, and after every action the board must
// stay consistent with the players and the hazard system.
// -------------------------------------------------------------------------------------------------

const simBoard = `
##########
#1.......#
#..#..#..#
#........#
#.#....#.#
#........#
#..#..#.2#
##########
`

func TestGame_SimulationFuzz(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)
	ctx := context.Background()

	const (
		rounds     = 10
		actionsMax = 400
		opMove     = "move"
		opPickUp   = "pick_up"
		opUse      = "use"
		opThrow    = "throw"
		opEndTurn  = "end_turn"
	)

	for range rounds {
		mode := testutils.RandElem(prng, []string{"race", "ctf"})
		g, err := game.New(simBoard, game.Options{
			Mode:         mode,
			Seed:         prng.Uint64() | 1,
			HazardChance: 0.05,
		}, telemetry.Nop())
		require.NoError(t, err)
		seedBoard(t, g)

		weights := testutils.RandOpWeights(prng, []string{opMove, opPickUp, opUse, opThrow, opEndTurn})
		for range actionsMax {
			p := g.CurrentPlayer()
			turnBefore, actionsBefore := g.Turn(), g.ActionsLeft()

			switch testutils.RandWeightedOp(prng, weights) {
			case opMove:
				err = g.Move(ctx, testutils.RandElem(prng, grid.Directions()))
			case opPickUp:
				items := p.Square().Items()
				if len(items) == 0 {
					continue
				}
				err = g.PickUp(ctx, testutils.RandElem(prng, items))
			case opUse:
				err = useAny(ctx, g, p)
			case opThrow:
				err = throwAny(ctx, g, p, testutils.RandElem(prng, grid.Directions()))
			case opEndTurn:
				err = g.EndTurn(ctx)
			}

			if eris.Is(err, game.ErrIllegalMove) || eris.Is(err, object.ErrNotInInventory) ||
				eris.Is(err, object.ErrInventoryFull) {
				// Property: a rejected action consumes nothing.
				assert.Equal(t, turnBefore, g.Turn())
				assert.Equal(t, actionsBefore, g.ActionsLeft())
			} else if err != nil {
				// Effects may still fail after the action counted, like a teleport into an occupied square.
				// Several failing steps come back joined.
				assert.True(t, errors.Is(err, grid.ErrInvalidTeleportDestination) || errors.Is(err, grid.ErrConfiguration),
					"unexpected error: %v", err)
			}

			checkGame(t, g)
		}
		g.End()
		assert.True(t, g.Over())
	}
}

func seedBoard(t *testing.T, g *game.Game) {
	t.Helper()
	for _, pos := range []grid.Position{{X: 3, Y: 1}, {X: 5, Y: 5}, {X: 2, Y: 3}} {
		require.NoError(t, g.PlaceItem(pos, object.NewLightGrenade()))
	}
	a, b := object.NewTeleporter(), object.NewTeleporter()
	object.PairTeleporters(a, b)
	require.NoError(t, g.PlaceItem(grid.Position{X: 4, Y: 3}, a))
	require.NoError(t, g.PlaceItem(grid.Position{X: 7, Y: 5}, b))
	require.NoError(t, g.PlaceItem(grid.Position{X: 8, Y: 1}, object.NewIdentityDisk()))
	require.NoError(t, g.PlaceItem(grid.Position{X: 1, Y: 5}, object.NewIdentityDisk()))
	if g.Mode() == grid.ModeCTF {
		require.NoError(t, g.PlaceItem(grid.Position{X: 2, Y: 1}, object.NewFlag(1)))
		require.NoError(t, g.PlaceItem(grid.Position{X: 7, Y: 6}, object.NewFlag(2)))
	}
	require.NoError(t, g.AddForceField(grid.NewForceField(true), grid.Position{X: 4, Y: 4}, grid.Position{X: 5, Y: 4}))
}

func useAny(ctx context.Context, g *game.Game, p *object.Player) error {
	for _, it := range p.Inventory().Items() {
		if grenade, ok := it.(*object.LightGrenade); ok {
			return g.Use(ctx, grenade)
		}
	}
	return g.Use(ctx, nil)
}

func throwAny(ctx context.Context, g *game.Game, p *object.Player, d grid.Direction) error {
	for _, it := range p.Inventory().Items() {
		if disk, ok := it.(*object.IdentityDisk); ok {
			return g.Throw(ctx, disk, d)
		}
	}
	return g.Throw(ctx, nil, d)
}

func checkGame(t *testing.T, g *game.Game) {
	t.Helper()

	// Property: every player stands on exactly one open square, alone.
	for _, p := range g.Players() {
		sq := p.Square()
		require.NotNil(t, sq, "player %d is off the board", p.Number())
		assert.False(t, sq.IsWall())
		piece, ok := sq.Piece()
		require.True(t, ok)
		assert.Equal(t, p.Number(), piece.Number())
	}

	// Property: the hazard registry matches the power failure layers on the board.
	var layered int
	for _, sq := range g.Grid().Squares() {
		if sq.HasProperty(grid.TagPowerFailure) {
			layered++
			_, ok := g.Hazards().At(sq)
			assert.True(t, ok, "untracked power failure on %v", sq.Position())
		}
		for _, it := range sq.Items() {
			assert.Same(t, sq, it.Square())
		}
	}
	assert.Equal(t, g.Hazards().Len(), layered)

	// Property: the current player always has an action left.
	assert.Positive(t, g.ActionsLeft())
	assert.LessOrEqual(t, g.ActionsLeft(), g.Options().ActionsPerTurn)
}
