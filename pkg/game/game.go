// Package game drives play on a grid: players take turns of a few actions, and every completed
// action is reported to the hazard system as a turn event.
package game

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/hazard"
	"github.com/argus-labs/gridwars/pkg/object"
	"github.com/argus-labs/gridwars/pkg/telemetry"
	"github.com/argus-labs/gridwars/pkg/turn"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const maxPlayers = 9

// Game is a single match. It is not safe for concurrent use.
type Game struct {
	options Options
	mode    grid.Mode
	rng     *rand.Rand

	grid    *grid.Grid
	hazards *hazard.System

	players     []*object.Player // In turn order
	trails      map[int]*lightTrail
	forceFields []*grid.ForceField
	current     int
	actionsLeft int
	turn        int
	over        bool

	logger zerolog.Logger
	tracer trace.Tracer
}

// New creates a game on the board drawn by layout (see grid.ParseLayout). Every starting position
// in the layout gets a player, in ascending player number.
func New(layout string, opts Options, tel telemetry.Telemetry) (*Game, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load game config")
	}

	options := newDefaultOptions()
	cfg.applyToOptions(&options)
	options.apply(opts)
	if err := options.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid game options")
	}
	if options.Seed == 0 {
		options.Seed = uint64(time.Now().UnixNano()) //nolint:gosec // it's ok
	}

	mode, err := grid.ParseMode(options.Mode)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(options.Seed, options.Seed)) //nolint:gosec // game randomness
	factory, err := grid.NewFactory(mode, rng)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create effect factory")
	}
	board, err := grid.ParseLayout(layout, factory)
	if err != nil {
		return nil, eris.Wrap(err, "failed to build board")
	}

	logger := tel.GetLogger("game")
	spawnChance := options.HazardChance
	if spawnChance == 0 {
		spawnChance = -1 // The hazard system reads zero as its default chance.
	}
	hazards, err := hazard.NewSystem(board, rng, tel.GetLogger("hazard"), hazard.Options{
		SpawnChance: spawnChance,
		PrimaryTTL:  options.PrimaryTTL,
	})
	if err != nil {
		return nil, eris.Wrap(err, "failed to create hazard system")
	}

	tracer := tel.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("gridwars")
	}

	g := &Game{
		options: options,
		mode:    mode,
		rng:     rng,
		grid:    board,
		hazards: hazards,
		trails:  make(map[int]*lightTrail),
		logger:  logger,
		tracer:  tracer,
	}
	for number := 1; number <= maxPlayers; number++ {
		start, ok := board.StartingSquare(number)
		if !ok {
			continue
		}
		p := object.NewPlayer(number)
		if err := start.AddPiece(p); err != nil {
			return nil, eris.Wrapf(err, "failed to place player %d", number)
		}
		g.players = append(g.players, p)
		g.trails[number] = &lightTrail{owner: number, length: options.TrailLength}
	}
	if len(g.players) == 0 {
		return nil, eris.New("layout has no starting position")
	}

	g.actionsLeft = options.ActionsPerTurn
	logger.Info().
		Str("mode", mode.String()).
		Uint64("seed", options.Seed).
		Int("players", len(g.players)).
		Int("squares", board.Len()).
		Msg("game created")
	return g, nil
}

func (g *Game) Grid() *grid.Grid { return g.grid }

func (g *Game) Hazards() *hazard.System { return g.hazards }

func (g *Game) Mode() grid.Mode { return g.mode }

// Options returns the effective options, including the seed actually used.
func (g *Game) Options() Options { return g.options }

// Rand returns the random source of the game, shared with the effects and the hazards.
func (g *Game) Rand() *rand.Rand { return g.rng }

// Players returns the players in turn order.
func (g *Game) Players() []*object.Player { return slices.Clone(g.players) }

// Player returns the player with the given number.
func (g *Game) Player(number int) (*object.Player, bool) {
	for _, p := range g.players {
		if p.Number() == number {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *object.Player { return g.players[g.current] }

// ActionsLeft returns the number of actions left in the current turn.
func (g *Game) ActionsLeft() int { return g.actionsLeft }

// Turn returns the number of completed turns.
func (g *Game) Turn() int { return g.turn }

func (g *Game) Over() bool { return g.over }

// PlaceItem puts it on the square at pos. It is meant for setting up a board.
func (g *Game) PlaceItem(pos grid.Position, it grid.Item) error {
	sq, ok := g.grid.Square(pos)
	if !ok {
		return eris.Wrapf(grid.ErrIllegalPlacement, "no square at %v", pos)
	}
	return sq.AddItem(it)
}

// AddForceField stacks ff on the squares at the given positions. The field is interacted with once
// after every completed action.
func (g *Game) AddForceField(ff *grid.ForceField, positions ...grid.Position) error {
	squares := make([]*grid.Square, 0, len(positions))
	for _, pos := range positions {
		sq, ok := g.grid.Square(pos)
		if !ok {
			return eris.Wrapf(grid.ErrIllegalPlacement, "no square at %v", pos)
		}
		squares = append(squares, sq)
	}
	for i, sq := range squares {
		if err := sq.AddProperty(ff); err != nil {
			for _, added := range squares[:i] {
				added.RemoveProperty(ff)
			}
			return eris.Wrap(err, "failed to add force field")
		}
	}
	g.forceFields = append(g.forceFields, ff)
	return nil
}

// End finishes the game.
func (g *Game) End() {
	if g.over {
		return
	}
	g.over = true
	g.hazards.Dispatch(turn.EndGame)
	g.logger.Info().Int("turns", g.turn).Msg("game over")
}

// -------------------------------------------------------------------------------------------------
// Turn sequencing
// -------------------------------------------------------------------------------------------------

// completeAction reports a completed action: force fields are interacted with and exactly one turn
// event is dispatched, EndTurn if the action was the last of the turn.
func (g *Game) completeAction() {
	for _, ff := range g.forceFields {
		ff.Interact()
	}
	g.actionsLeft--
	if g.actionsLeft > 0 {
		g.hazards.Dispatch(turn.EndAction)
		return
	}
	g.endTurn()
}

// endTurn hands the turn to the next player, skipping players whose penalty eats a whole turn. At
// most one full round of players is skipped in a row: the player after that keeps one action and
// carries the rest of its penalty.
func (g *Game) endTurn() {
	for skipped := 0; ; skipped++ {
		g.hazards.Dispatch(turn.EndTurn)
		g.turn++
		g.current = (g.current + 1) % len(g.players)
		if g.startTurn(skipped < len(g.players)) {
			return
		}
	}
}

// startTurn applies the start of turn chain of the new current player's square and drains its
// penalty from the new turn. It reports false when the player lost every action of the turn, which
// only happens when canSkip is set.
func (g *Game) startTurn(canSkip bool) bool {
	p := g.CurrentPlayer()
	g.actionsLeft = g.options.ActionsPerTurn
	if sq := p.Square(); sq != nil {
		if err := sq.StartTurn(p); err != nil {
			g.logger.Warn().Err(err).Int("player", p.Number()).Msg("start of turn effect failed")
		}
	}

	limit := g.actionsLeft
	if !canSkip {
		limit--
	}
	skipped := p.TakePenalty(limit)
	g.actionsLeft -= skipped
	if skipped > 0 {
		g.logger.Debug().Int("player", p.Number()).Int("skipped", skipped).Msg("actions skipped")
	}
	if g.actionsLeft == 0 {
		g.logger.Debug().Int("player", p.Number()).Int("turn", g.turn).Msg("turn skipped")
		return false
	}
	return true
}
