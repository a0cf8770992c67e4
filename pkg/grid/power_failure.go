package grid

// PowerFailure is the layer a power failure puts on its square. Objects entering the square, and
// pieces starting their turn on it, go through a PowerFailureEffect first. The layer carries no
// state: the power failure that owns it tracks its square on its own.
type PowerFailure struct{}

var _ Property = (*PowerFailure)(nil)

func NewPowerFailure() *PowerFailure {
	return &PowerFailure{}
}

func (p *PowerFailure) Tag() Tag { return TagPowerFailure }

func (p *PowerFailure) property() {}

func (p *PowerFailure) wrapEffect(f Factory, inner Effect) Effect {
	chain := NewChain(f.PowerFailure())
	chain.Append(inner)
	return chain
}
