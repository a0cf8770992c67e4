package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/argus-labs/gridwars/pkg/game"
	"github.com/argus-labs/gridwars/pkg/telemetry"
	"github.com/argus-labs/gridwars/pkg/testutils"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomLayout(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)

	for range 50 {
		width, height := prng.IntN(10)+5, prng.IntN(10)+5
		players := prng.IntN(4) + 1
		layout, err := randomLayout(prng, width, height, players)
		require.NoError(t, err)

		rows := strings.Split(strings.TrimSpace(layout), "\n")
		require.Len(t, rows, height)
		assert.Equal(t, strings.Repeat("#", width), rows[0])
		assert.Equal(t, strings.Repeat("#", width), rows[height-1])
		for n := 1; n <= players; n++ {
			assert.Equal(t, 1, strings.Count(layout, string(rune('0'+n))), "player %d", n)
		}
	}

	_, err := randomLayout(rand.New(rand.NewPCG(1, 1)), 2, 5, 1)
	require.Error(t, err)
	_, err = randomLayout(rand.New(rand.NewPCG(1, 1)), 5, 5, 10)
	require.Error(t, err)
}

func TestSimulate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := simulateConfig{mode: "ctf", width: 10, height: 8, players: 3, turns: 30, seed: 7, hazardChance: 0.05}
	a, err := simulate(ctx, cfg, telemetry.Nop())
	require.NoError(t, err)
	assert.True(t, a.Over())
	assert.GreaterOrEqual(t, a.Turn(), cfg.turns)
	assert.Len(t, a.Players(), 3)

	// Same seed, same game.
	b, err := simulate(ctx, cfg, telemetry.Nop())
	require.NoError(t, err)
	rawA, err := a.SnapshotJSON()
	require.NoError(t, err)
	rawB, err := b.SnapshotJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(rawA), string(rawB))
}

func TestCommands(t *testing.T) {
	t.Run("simulate json", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"simulate", "--turns", "5", "--seed", "3", "--json", "--log-level", "error"})
		require.NoError(t, cmd.Execute())

		var snap game.Snapshot
		require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
		assert.True(t, snap.Over)
		assert.Len(t, snap.Players, 2)
	})

	t.Run("simulate render", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"simulate", "--turns", "2", "--seed", "3", "--width", "6", "--height", "5"})
		require.NoError(t, cmd.Execute())

		rows := strings.Split(out.String(), "\n")
		assert.Equal(t, "######", rows[0])
		assert.Equal(t, "######", rows[4])
	})

	t.Run("schema", func(t *testing.T) {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"schema"})
		require.NoError(t, cmd.Execute())

		var schema map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
		assert.Equal(t, "Gridwars snapshot", schema["title"])
		props, ok := schema["properties"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, props, "hazards")
		assert.Contains(t, props, "squares")
	})

	t.Run("bad log level", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"schema", "--log-level", "loud"})
		require.Error(t, cmd.Execute())
	})
}
