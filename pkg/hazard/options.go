package hazard

import "github.com/rotisserie/eris"

const (
	DefaultSpawnChance      = 0.01
	DefaultPrimaryTTL       = 3 // turns
	DefaultTertiaryTTL      = 1 // actions
	DefaultRotationInterval = 2 // actions
)

type Options struct {
	SpawnChance      float64 // Chance for an eligible square to lose power at the end of a turn, negative for never
	PrimaryTTL       int     // Number of turns a primary power failure lasts
	TertiaryTTL      int     // Number of actions a tertiary stays on a square before moving
	RotationInterval int     // Number of actions between two rotations of the secondary
}

func newDefaultOptions() Options {
	return Options{
		SpawnChance:      DefaultSpawnChance,
		PrimaryTTL:       DefaultPrimaryTTL,
		TertiaryTTL:      DefaultTertiaryTTL,
		RotationInterval: DefaultRotationInterval,
	}
}

// apply merges the given options into the current options, overriding non-zero values.
func (opt *Options) apply(newOpt Options) {
	if newOpt.SpawnChance != 0 {
		opt.SpawnChance = max(newOpt.SpawnChance, 0)
	}
	if newOpt.PrimaryTTL != 0 {
		opt.PrimaryTTL = newOpt.PrimaryTTL
	}
	if newOpt.TertiaryTTL != 0 {
		opt.TertiaryTTL = newOpt.TertiaryTTL
	}
	if newOpt.RotationInterval != 0 {
		opt.RotationInterval = newOpt.RotationInterval
	}
}

// validate checks that all required options are set and valid.
func (opt *Options) validate() error {
	if opt.SpawnChance > 1 {
		return eris.Errorf("spawn chance must be between 0 and 1, got %v", opt.SpawnChance)
	}
	if opt.PrimaryTTL < 1 {
		return eris.New("primary TTL must be at least 1 turn")
	}
	if opt.TertiaryTTL < 1 {
		return eris.New("tertiary TTL must be at least 1 action")
	}
	if opt.RotationInterval < 1 {
		return eris.New("rotation interval must be at least 1 action")
	}
	return nil
}
