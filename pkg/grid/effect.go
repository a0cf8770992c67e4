package grid

import (
	"errors"

	"github.com/argus-labs/gridwars/pkg/assert"
)

// Effect is a consequence applied to an object entering, or starting its turn on, a square.
type Effect interface {
	Execute(target Object) error
}

// appendObserver is implemented by steps that react to steps appended behind them.
type appendObserver interface {
	observeAppend(next Effect)
}

// Chain is an ordered list of effects executed front to back. It is built fresh for every trigger
// and executed once.
type Chain struct {
	steps []Effect
}

var _ Effect = (*Chain)(nil)

// NewChain returns a chain whose first step is head.
func NewChain(head Effect) *Chain {
	c := &Chain{}
	c.Append(head)
	return c
}

// Append adds e at the tail of the chain. Each step already in the chain observes e before it is
// stored. A chain is appended step by step. Nil effects are ignored.
func (c *Chain) Append(e Effect) {
	if e == nil {
		return
	}
	inner, ok := e.(*Chain)
	if !ok {
		c.append(e)
		return
	}
	assert.That(inner != c, "chain appended to itself")
	for _, step := range inner.steps {
		c.append(step)
	}
}

func (c *Chain) append(e Effect) {
	for _, step := range c.steps {
		if o, ok := step.(appendObserver); ok {
			o.observeAppend(e)
		}
	}
	c.steps = append(c.steps, e)
}

// Execute runs every step in order against target. A failing step does not stop the chain: the
// remaining steps still run, and the errors of the failing steps are returned together.
func (c *Chain) Execute(target Object) error {
	var errs []error
	for _, step := range c.steps {
		if err := step.Execute(target); err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}

// Len returns the number of steps.
func (c *Chain) Len() int { return len(c.steps) }

// Steps returns a copy of the steps in execution order.
func (c *Chain) Steps() []Effect {
	steps := make([]Effect, len(c.steps))
	copy(steps, c.steps)
	return steps
}
