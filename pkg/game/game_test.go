package game_test

import (
	"context"
	"strings"
	"testing"

	"github.com/argus-labs/gridwars/pkg/game"
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/object"
	"github.com/argus-labs/gridwars/pkg/telemetry"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const board = `
#######
#1....#
#.....#
#....2#
#######
`

func newGame(t *testing.T, opts game.Options) *game.Game {
	t.Helper()
	if opts.HazardChance == 0 {
		opts.HazardChance = -1
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	g, err := game.New(board, opts, telemetry.Nop())
	require.NoError(t, err)
	return g
}

func at(x, y int) grid.Position { return grid.Position{X: x, Y: y} }

func squareAt(t *testing.T, g *game.Game, x, y int) *grid.Square {
	t.Helper()
	sq, ok := g.Grid().Square(at(x, y))
	require.True(t, ok)
	return sq
}

func player(t *testing.T, g *game.Game, number int) *object.Player {
	t.Helper()
	p, ok := g.Player(number)
	require.True(t, ok)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	g := newGame(t, game.Options{})
	require.Len(t, g.Players(), 2)
	assert.Equal(t, at(1, 1), player(t, g, 1).Square().Position())
	assert.Equal(t, at(5, 3), player(t, g, 2).Square().Position())
	assert.Equal(t, 1, g.CurrentPlayer().Number())
	assert.Equal(t, 3, g.ActionsLeft())
	assert.Equal(t, grid.ModeRace, g.Mode())
	assert.Equal(t, uint64(1), g.Options().Seed)

	t.Run("no starting position", func(t *testing.T) {
		t.Parallel()
		_, err := game.New("###\n#.#\n###", game.Options{}, telemetry.Nop())
		require.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()
		_, err := game.New(board, game.Options{Mode: "tag"}, telemetry.Nop())
		require.Error(t, err)
	})

	t.Run("zero telemetry", func(t *testing.T) {
		t.Parallel()
		g, err := game.New(board, game.Options{HazardChance: -1}, telemetry.Telemetry{})
		require.NoError(t, err)
		require.NoError(t, g.EndTurn(context.Background()))
	})
}

func TestGame_Move(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("moves and leaves a trail", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		p := player(t, g, 1)

		require.NoError(t, g.Move(ctx, grid.East))
		assert.Equal(t, at(2, 1), p.Square().Position())
		assert.True(t, squareAt(t, g, 1, 1).HasProperty(grid.TagLightTrail))
		assert.Equal(t, 2, g.ActionsLeft())

		// The trail blocks its own owner.
		err := g.Move(ctx, grid.West)
		require.True(t, eris.Is(err, game.ErrIllegalMove))
		assert.Equal(t, 2, g.ActionsLeft())
	})

	t.Run("into a wall", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})

		err := g.Move(ctx, grid.North)
		assert.True(t, eris.Is(err, game.ErrIllegalMove))
		assert.Equal(t, 3, g.ActionsLeft())
		assert.Equal(t, at(1, 1), player(t, g, 1).Square().Position())
	})

	t.Run("trail keeps its length", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})

		for range 3 {
			require.NoError(t, g.Move(ctx, grid.East))
		}
		require.NoError(t, g.EndTurn(ctx))
		require.NoError(t, g.Move(ctx, grid.South))

		assert.False(t, squareAt(t, g, 1, 1).HasProperty(grid.TagLightTrail))
		for x := 2; x <= 4; x++ {
			assert.True(t, squareAt(t, g, x, 1).HasProperty(grid.TagLightTrail), "x=%d", x)
		}
		assert.Equal(t, []grid.Position{at(2, 1), at(3, 1), at(4, 1)}, g.Snapshot().Players[0].Trail)
	})

	t.Run("blocked by an active force field", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		require.NoError(t, g.AddForceField(grid.NewForceField(true), at(2, 1)))

		err := g.Move(ctx, grid.East)
		require.True(t, eris.Is(err, game.ErrIllegalMove))
	})

	t.Run("trapped by an active force field", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		require.NoError(t, g.AddForceField(grid.NewForceField(true), at(1, 1)))

		err := g.Move(ctx, grid.East)
		require.True(t, eris.Is(err, game.ErrIllegalMove))
		assert.Equal(t, at(1, 1), player(t, g, 1).Square().Position())
	})
}

func TestGame_TurnSequence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	g := newGame(t, game.Options{ActionsPerTurn: 2})
	require.NoError(t, g.Move(ctx, grid.East))
	require.NoError(t, g.Move(ctx, grid.East))
	assert.Equal(t, 2, g.CurrentPlayer().Number())
	assert.Equal(t, 1, g.Turn())
	assert.Equal(t, 2, g.ActionsLeft())

	require.NoError(t, g.EndTurn(ctx))
	assert.Equal(t, 1, g.CurrentPlayer().Number())
	assert.Equal(t, 2, g.Turn())
}

func TestGame_SkippedTurnsAreBounded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// A lone player on a tertiary power failure. With one action per turn no action ends mid-turn,
	// so the tertiary never moves and every start of turn costs the player its only action.
	var g *game.Game
	for seed := uint64(1); seed <= 200 && g == nil; seed++ {
		candidate, err := game.New("1....", game.Options{ActionsPerTurn: 1, HazardChance: -1, Seed: seed},
			telemetry.Nop())
		require.NoError(t, err)
		primary, err := candidate.Hazards().CreatePrimary(squareAt(t, candidate, 2, 0))
		require.NoError(t, err)
		if sec := primary.Secondary(); sec != nil && sec.Tertiary() != nil &&
			sec.Tertiary().Square() == squareAt(t, candidate, 0, 0) {
			g = candidate
		}
	}
	require.NotNil(t, g, "no seed put a tertiary under the player")
	p := player(t, g, 1)

	for round := 1; round <= 5; round++ {
		turnBefore := g.Turn()
		require.NoError(t, g.EndTurn(ctx))

		// One skipped turn, then the player gets control back and owes the rest.
		assert.Equal(t, turnBefore+2, g.Turn())
		assert.Equal(t, 1, g.ActionsLeft())
		assert.Equal(t, round, p.Penalty())
	}
}

func TestGame_Grenade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("explosion costs the next turn", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		grenade := object.NewLightGrenade()
		require.NoError(t, grenade.Activate())
		require.NoError(t, g.PlaceItem(at(4, 2), grenade))

		require.NoError(t, g.EndTurn(ctx))
		require.NoError(t, g.Move(ctx, grid.NorthWest))
		p2 := player(t, g, 2)
		assert.Equal(t, grid.DefaultExplosionDamage, p2.Penalty())
		assert.Empty(t, squareAt(t, g, 4, 2).Items())

		require.NoError(t, g.EndTurn(ctx))
		require.NoError(t, g.EndTurn(ctx))

		// Player 2 lost every action and was skipped.
		assert.Equal(t, 1, g.CurrentPlayer().Number())
		assert.Equal(t, 4, g.Turn())
		assert.Zero(t, p2.Penalty())
	})

	t.Run("pick up and use", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		grenade := object.NewLightGrenade()
		require.NoError(t, g.PlaceItem(at(2, 1), grenade))

		require.NoError(t, g.Move(ctx, grid.East))
		assert.Zero(t, player(t, g, 1).Penalty())
		require.NoError(t, g.PickUp(ctx, grenade))
		assert.True(t, player(t, g, 1).Inventory().Contains(grenade))
		require.NoError(t, g.Move(ctx, grid.East))
		require.NoError(t, g.EndTurn(ctx))

		require.NoError(t, g.Use(ctx, grenade))
		assert.Equal(t, object.GrenadeActive, grenade.State())
		assert.True(t, squareAt(t, g, 3, 1).Contains(grenade))
		assert.Equal(t, 0, player(t, g, 1).Inventory().Len())
		assert.Equal(t, 2, g.ActionsLeft())

		err := g.Use(ctx, grenade)
		require.True(t, eris.Is(err, object.ErrNotInInventory))
	})

	t.Run("cannot be dropped on a starting position", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		grenade := object.NewLightGrenade()
		require.NoError(t, player(t, g, 1).Inventory().Add(grenade))

		err := g.Use(ctx, grenade)
		require.True(t, eris.Is(err, game.ErrIllegalMove))
		assert.Equal(t, object.GrenadeInactive, grenade.State())
		assert.True(t, player(t, g, 1).Inventory().Contains(grenade))
		assert.Equal(t, 3, g.ActionsLeft())
	})
}

func TestGame_Throw(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("lands after its range", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		disk := object.NewIdentityDisk()
		require.NoError(t, player(t, g, 1).Inventory().Add(disk))

		require.NoError(t, g.Throw(ctx, disk, grid.East))
		assert.True(t, squareAt(t, g, 5, 1).Contains(disk))
		assert.False(t, disk.IsTravelling())
		assert.False(t, disk.Destroyed())
	})

	t.Run("stops at a wall", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		disk := object.NewIdentityDisk()
		require.NoError(t, player(t, g, 1).Inventory().Add(disk))

		require.NoError(t, g.Throw(ctx, disk, grid.SouthEast))
		assert.True(t, squareAt(t, g, 3, 3).Contains(disk))
	})

	t.Run("stops before a player", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		disk := object.NewIdentityDisk()
		require.NoError(t, player(t, g, 2).Inventory().Add(disk))

		require.NoError(t, g.EndTurn(ctx))
		require.NoError(t, g.Move(ctx, grid.North))
		require.NoError(t, g.Move(ctx, grid.North))
		require.NoError(t, g.EndTurn(ctx))
		require.NoError(t, g.EndTurn(ctx))

		// Player 2 at (5, 1) throws west, player 1 waits at (1, 1).
		require.NoError(t, g.Throw(ctx, disk, grid.West))
		assert.True(t, squareAt(t, g, 2, 1).Contains(disk))
	})

	t.Run("destroyed by an active force field", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		require.NoError(t, g.AddForceField(grid.NewForceField(true), at(3, 1)))
		disk := object.NewIdentityDisk()
		require.NoError(t, player(t, g, 1).Inventory().Add(disk))

		require.NoError(t, g.Throw(ctx, disk, grid.East))
		assert.True(t, disk.Destroyed())
		assert.Nil(t, disk.Square())
		assert.Empty(t, squareAt(t, g, 3, 1).Items())
		assert.Zero(t, player(t, g, 1).Inventory().Len())
	})
}

func TestGame_Flag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("carried in capture the flag", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{Mode: "ctf"})
		flag := object.NewFlag(2)
		require.NoError(t, g.PlaceItem(at(2, 1), flag))

		require.NoError(t, g.Move(ctx, grid.East))
		require.NoError(t, g.PickUp(ctx, flag))
		held, ok := player(t, g, 1).HeldFlag()
		require.True(t, ok)
		assert.Same(t, flag, held)
		assert.Nil(t, flag.Square())
		assert.Equal(t, 2, g.Snapshot().Players[0].Flag)
	})

	t.Run("own flag", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{Mode: "ctf"})
		flag := object.NewFlag(1)
		require.NoError(t, g.PlaceItem(at(2, 1), flag))

		require.NoError(t, g.Move(ctx, grid.East))
		require.True(t, eris.Is(g.PickUp(ctx, flag), game.ErrIllegalMove))
	})

	t.Run("not in a race", func(t *testing.T) {
		t.Parallel()
		g := newGame(t, game.Options{})
		flag := object.NewFlag(2)
		require.NoError(t, g.PlaceItem(at(2, 1), flag))

		require.NoError(t, g.Move(ctx, grid.East))
		require.True(t, eris.Is(g.PickUp(ctx, flag), game.ErrIllegalMove))
		assert.True(t, squareAt(t, g, 2, 1).Contains(flag))
	})
}

func TestGame_End(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	g := newGame(t, game.Options{})
	g.End()
	assert.True(t, g.Over())

	assert.True(t, eris.Is(g.Move(ctx, grid.East), game.ErrGameOver))
	assert.True(t, eris.Is(g.EndTurn(ctx), game.ErrGameOver))
	assert.Equal(t, 0, g.Turn())
}

func TestGame_Snapshot(t *testing.T) {
	t.Parallel()

	g := newGame(t, game.Options{})
	require.NoError(t, g.PlaceItem(at(3, 2), object.NewLightGrenade()))

	raw, err := g.SnapshotJSON()
	require.NoError(t, err)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, "race", snap.Mode)
	assert.Equal(t, 7, snap.Width)
	assert.Equal(t, 5, snap.Height)
	require.Len(t, snap.Players, 2)
	assert.Equal(t, at(5, 3), snap.Players[1].Position)
	assert.Len(t, snap.Squares, 35)

	lines := strings.Split(snap.Render(), "\n")
	assert.Equal(t, []string{"#######", "#1....#", "#..o..#", "#....2#", "#######"}, lines[:5])
}
