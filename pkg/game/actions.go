package game

import (
	"context"

	"github.com/argus-labs/gridwars/pkg/assert"
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/object"
	"github.com/rotisserie/eris"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// diskRange is the number of squares a thrown identity disk travels at most.
const diskRange = 4

// Move moves the current player one square in direction d. The vacated square joins the player's
// light trail. Errors raised by the effects of the destination are returned, but the move still
// counts as an action.
func (g *Game) Move(ctx context.Context, d grid.Direction) error {
	_, span := g.startSpan(ctx, "game.move", attribute.String("direction", d.String()))
	defer span.End()

	p, err := g.actor()
	if err != nil {
		return g.fail(span, err)
	}
	from := p.Square()
	to, ok := from.Neighbour(d)
	if !ok || to.IsWall() {
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "no open square %s of %v", d, from.Position()))
	}
	if !to.CanAddPiece(p) {
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "square %v refuses player %d", to.Position(), p.Number()))
	}
	if err := from.Remove(p); err != nil {
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "player %d cannot leave %v: %v", p.Number(), from.Position(), err))
	}
	g.trails[p.Number()].leave(from)

	err = to.AddPiece(p)
	g.logger.Debug().
		Int("player", p.Number()).
		Interface("from", from.Position()).
		Interface("to", to.Position()).
		Int("penalty", p.Penalty()).
		Msg("player moved")
	g.completeAction()
	if err != nil {
		return g.fail(span, eris.Wrap(err, "effect of destination failed"))
	}
	return nil
}

// PickUp moves it from the current player's square into its inventory. A flag is carried instead.
func (g *Game) PickUp(ctx context.Context, it grid.Item) error {
	_, span := g.startSpan(ctx, "game.pick_up")
	defer span.End()

	p, err := g.actor()
	if err != nil {
		return g.fail(span, err)
	}
	sq := p.Square()
	if it == nil || !sq.Contains(it) {
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "item is not on %v", sq.Position()))
	}

	if _, ok := it.(*object.Teleporter); ok {
		return g.fail(span, eris.Wrap(ErrIllegalMove, "teleporters cannot be picked up"))
	}
	if flag, ok := it.(*object.Flag); ok {
		if g.mode != grid.ModeCTF || flag.Owner() == p.Number() {
			return g.fail(span, eris.Wrapf(ErrIllegalMove, "player %d cannot carry this flag", p.Number()))
		}
		if err := p.CarryFlag(flag); err != nil {
			return g.fail(span, eris.Wrap(ErrIllegalMove, err.Error()))
		}
	} else if err := p.Inventory().Add(it); err != nil {
		return g.fail(span, eris.Wrap(ErrIllegalMove, err.Error()))
	}

	err = sq.Remove(it)
	if err != nil {
		// Roll back the pickup.
		if _, ok := it.(*object.Flag); ok {
			p.ReleaseFlag()
		} else {
			p.Inventory().Remove(it)
		}
		return g.fail(span, eris.Wrap(err, "failed to pick up item"))
	}
	g.logger.Debug().Int("player", p.Number()).Str("item", itemKind(it)).Msg("item picked up")
	g.completeAction()
	return nil
}

// Use arms a light grenade from the inventory and drops it on the current player's square.
func (g *Game) Use(ctx context.Context, it grid.Item) error {
	_, span := g.startSpan(ctx, "game.use")
	defer span.End()

	p, err := g.actor()
	if err != nil {
		return g.fail(span, err)
	}
	grenade, ok := it.(*object.LightGrenade)
	if !ok {
		return g.fail(span, eris.Wrap(ErrIllegalMove, "only light grenades can be used"))
	}
	if !p.Inventory().Contains(grenade) {
		return g.fail(span, eris.Wrap(object.ErrNotInInventory, "cannot use grenade"))
	}
	if grenade.State() != object.GrenadeInactive {
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "grenade is %s", grenade.State()))
	}

	sq := p.Square()
	err = sq.AddItem(grenade)
	if err != nil && grenade.Square() == nil {
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "cannot drop grenade on %v: %v", sq.Position(), err))
	}
	p.Inventory().Remove(grenade)
	activateErr := grenade.Activate()
	assert.That(activateErr == nil, "inactive grenade failed to activate: %v", activateErr)
	g.logger.Debug().Int("player", p.Number()).Interface("square", sq.Position()).Msg("grenade armed")
	g.completeAction()
	if err != nil {
		return g.fail(span, eris.Wrap(err, "effect of square failed"))
	}
	return nil
}

// Throw sends an identity disk from the inventory in direction d. The disk flies until it has
// covered diskRange squares, the next square is a wall or holds a piece, or it enters an active
// force field, and lands there.
func (g *Game) Throw(ctx context.Context, disk *object.IdentityDisk, d grid.Direction) error {
	_, span := g.startSpan(ctx, "game.throw", attribute.String("direction", d.String()))
	defer span.End()

	p, err := g.actor()
	if err != nil {
		return g.fail(span, err)
	}
	if disk == nil || !p.Inventory().Contains(disk) {
		return g.fail(span, eris.Wrap(object.ErrNotInInventory, "cannot throw disk"))
	}

	landing := p.Square()
	for range diskRange {
		next, ok := landing.Neighbour(d)
		if !ok || next.IsWall() {
			break
		}
		if _, occupied := next.Piece(); occupied {
			break
		}
		landing = next
		if ff, ok := landing.Property(grid.TagForceField); ok && ff.(*grid.ForceField).Active() {
			break
		}
	}

	p.Inventory().Remove(disk)
	disk.SetTravelling(true)
	err = landing.AddItem(disk)
	disk.SetTravelling(false)
	if err != nil && disk.Square() == nil && !disk.Destroyed() {
		if addErr := p.Inventory().Add(disk); addErr != nil {
			g.logger.Error().Err(addErr).Msg("failed to return disk to inventory")
		}
		return g.fail(span, eris.Wrapf(ErrIllegalMove, "disk cannot land on %v: %v", landing.Position(), err))
	}
	g.logger.Debug().
		Int("player", p.Number()).
		Bool("destroyed", disk.Destroyed()).
		Interface("landing", landing.Position()).
		Msg("disk thrown")
	g.completeAction()
	if err != nil {
		return g.fail(span, eris.Wrap(err, "effect of landing square failed"))
	}
	return nil
}

// EndTurn ends the current player's turn without using the remaining actions.
func (g *Game) EndTurn(ctx context.Context) error {
	_, span := g.startSpan(ctx, "game.end_turn")
	defer span.End()

	p, err := g.actor()
	if err != nil {
		return g.fail(span, err)
	}
	g.logger.Debug().Int("player", p.Number()).Int("unused", g.actionsLeft).Msg("turn ended")
	g.endTurn()
	return nil
}

func (g *Game) actor() (*object.Player, error) {
	if g.over {
		return nil, ErrGameOver
	}
	return g.CurrentPlayer(), nil
}

func (g *Game) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.Int("player", g.CurrentPlayer().Number()),
		attribute.Int("turn", g.turn),
	)
	return g.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (g *Game) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	g.logger.Debug().Err(err).Msg("action rejected")
	return err
}
