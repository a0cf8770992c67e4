package game

import (
	"github.com/argus-labs/gridwars/pkg/grid"
	"github.com/argus-labs/gridwars/pkg/hazard"
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

// gameConfig holds the configuration of a game read from environment variables.
type gameConfig struct {
	// Rule set, "race" or "ctf".
	Mode string `env:"GRIDWARS_MODE" envDefault:"race"`

	// Seed of the game's random source. Zero picks one from the clock.
	Seed uint64 `env:"GRIDWARS_SEED"`

	// Number of actions a player gets per turn.
	ActionsPerTurn int `env:"GRIDWARS_ACTIONS_PER_TURN" envDefault:"3"`

	// Chance for an open square to lose power at the end of a turn. Negative disables power failures.
	HazardChance float64 `env:"GRIDWARS_HAZARD_CHANCE" envDefault:"0.01"`

	// Number of turns a primary power failure lasts.
	PrimaryTTL int `env:"GRIDWARS_PRIMARY_TTL" envDefault:"3"`

	// Number of squares behind a player covered by its light trail.
	TrailLength int `env:"GRIDWARS_TRAIL_LENGTH" envDefault:"3"`
}

// loadGameConfig loads the game configuration from environment variables.
func loadGameConfig() (gameConfig, error) {
	cfg := gameConfig{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse game config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *gameConfig) validate() error {
	if _, err := grid.ParseMode(cfg.Mode); err != nil {
		return err
	}
	if cfg.ActionsPerTurn < 1 {
		return eris.New("actions per turn must be at least 1")
	}
	if cfg.HazardChance > 1 {
		return eris.New("hazard chance must not exceed 1")
	}
	if cfg.PrimaryTTL < 1 {
		return eris.New("primary TTL must be at least 1")
	}
	if cfg.TrailLength < 0 {
		return eris.New("trail length cannot be negative")
	}
	return nil
}

// applyToOptions applies the configuration values to the given Options.
func (cfg *gameConfig) applyToOptions(opt *Options) {
	opt.Mode = cfg.Mode
	opt.Seed = cfg.Seed
	opt.ActionsPerTurn = cfg.ActionsPerTurn
	opt.HazardChance = cfg.HazardChance
	opt.PrimaryTTL = cfg.PrimaryTTL
	opt.TrailLength = cfg.TrailLength
}

type Options struct {
	Mode           string  // "race" or "ctf"
	Seed           uint64  // Seed of the random source, zero for a clock based one
	ActionsPerTurn int     // Number of actions per turn
	HazardChance   float64 // Power failure chance per square per turn, negative to disable
	PrimaryTTL     int     // Turns a primary power failure lasts
	TrailLength    int     // Squares covered by a light trail
}

// newDefaultOptions creates Options with default values.
func newDefaultOptions() Options {
	return Options{
		Mode:           grid.ModeRace.String(),
		ActionsPerTurn: 3,
		HazardChance:   hazard.DefaultSpawnChance,
		PrimaryTTL:     hazard.DefaultPrimaryTTL,
		TrailLength:    3,
	}
}

// apply merges the given options into the current options, overriding non-zero values.
func (opt *Options) apply(newOpt Options) {
	if newOpt.Mode != "" {
		opt.Mode = newOpt.Mode
	}
	if newOpt.Seed != 0 {
		opt.Seed = newOpt.Seed
	}
	if newOpt.ActionsPerTurn != 0 {
		opt.ActionsPerTurn = newOpt.ActionsPerTurn
	}
	if newOpt.HazardChance != 0 {
		opt.HazardChance = newOpt.HazardChance
	}
	if newOpt.PrimaryTTL != 0 {
		opt.PrimaryTTL = newOpt.PrimaryTTL
	}
	if newOpt.TrailLength != 0 {
		opt.TrailLength = newOpt.TrailLength
	}
}

// validate checks that all required options are set and valid.
func (opt *Options) validate() error {
	if _, err := grid.ParseMode(opt.Mode); err != nil {
		return err
	}
	if opt.ActionsPerTurn < 1 {
		return eris.New("actions per turn must be at least 1")
	}
	if opt.HazardChance > 1 {
		return eris.New("hazard chance must not exceed 1")
	}
	if opt.PrimaryTTL < 1 {
		return eris.New("primary TTL must be at least 1")
	}
	if opt.TrailLength < 0 {
		return eris.New("trail length cannot be negative")
	}
	return nil
}
