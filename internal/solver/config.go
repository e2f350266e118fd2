package solver

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/fhw-wedel/timetable-solver/pkg/errors"
)

// Config recognises the evolutionary search options and their effects,
// matching the specification's configuration table. Defaults are applied by
// DefaultConfig; cmd/timetable-solver overrides a subset via CLI flags
// before calling Validate.
type Config struct {
	PopulationSize          int     `validate:"gt=0"`
	NumGenerations          int     `validate:"gt=0"`
	NumParentsMating        int     `validate:"gt=0"`
	TournamentK             int     `validate:"gt=0"`
	MutationProbabilityHigh float64 `validate:"gte=0,lte=1"`
	MutationProbabilityLow  float64 `validate:"gte=0,lte=1"`
	Elitism                 int     `validate:"gte=0"`
	StopOnZero              bool
	RandomSeed              int64
	// Workers bounds the internal/solver worker pool used for evaluation.
	// 0 or 1 evaluates sequentially on the driver goroutine.
	Workers int `validate:"gte=0"`
}

// DefaultConfig returns the specification's default GA configuration.
func DefaultConfig() Config {
	return Config{
		PopulationSize:          300,
		NumGenerations:          20000,
		NumParentsMating:        10,
		TournamentK:             30,
		MutationProbabilityHigh: 0.10,
		MutationProbabilityLow:  0.01,
		Elitism:                 1,
		StopOnZero:              true,
		RandomSeed:              0,
		Workers:                 1,
	}
}

// Validate checks the configuration and returns a ConfigurationError, or nil
// if cfg is usable. A struct-tag failure lists every failing field; the
// cross-field checks (elitism, tournament_k against population size) run
// only after the tags pass and report the first one that fails.
func (cfg Config) Validate() error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return errors.Clone(errors.ErrConfiguration, fmt.Sprintf("invalid solver configuration: %v", err))
	}
	if cfg.Elitism > cfg.PopulationSize {
		return errors.Clone(errors.ErrConfiguration,
			fmt.Sprintf("elitism (%d) cannot exceed population size (%d)", cfg.Elitism, cfg.PopulationSize))
	}
	if cfg.TournamentK > cfg.PopulationSize {
		return errors.Clone(errors.ErrConfiguration,
			fmt.Sprintf("tournament_k (%d) cannot exceed population size (%d)", cfg.TournamentK, cfg.PopulationSize))
	}
	return nil
}
