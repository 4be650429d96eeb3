package lightning

import (
	"errors"
	"fmt"
)

// MaxGenerationsLimit bounds MaxGenerations; every generation doubles the
// segment count of each branch.
const MaxGenerationsLimit = 12

var (
	// ErrInvalidConfig is returned when a Config field is out of range.
	ErrInvalidConfig = errors.New("invalid lightning config")

	// ErrDegenerateBolt is returned when origin and impact coincide.
	ErrDegenerateBolt = errors.New("origin and impact coincide")
)

// Config holds the tunable shape parameters.
type Config struct {
	Seed int64 `json:"seed" yaml:"seed" toml:"seed"`

	// MinGenerations is carried and validated but never read by the
	// subdivision loop; only MaxGenerations bounds it.
	MinGenerations int `json:"min_generations" yaml:"min_generations" toml:"min_generations"`
	MaxGenerations int `json:"max_generations" yaml:"max_generations" toml:"max_generations"`

	// NextGenerationSupportPercentage is carried and validated but unused.
	NextGenerationSupportPercentage float64 `json:"next_generation_support_percentage" yaml:"next_generation_support_percentage" toml:"next_generation_support_percentage"`

	MaxMiddlePointDisplacement                 float64 `json:"max_middle_point_displacement" yaml:"max_middle_point_displacement" toml:"max_middle_point_displacement"`
	DisplacementDecreaseMultiplierByGeneration float64 `json:"displacement_decrease_multiplier_by_generation" yaml:"displacement_decrease_multiplier_by_generation" toml:"displacement_decrease_multiplier_by_generation"`

	NewBranchBirthChance              float64 `json:"new_branch_birth_chance" yaml:"new_branch_birth_chance" toml:"new_branch_birth_chance"`
	BirthChanceMultiplierByGeneration float64 `json:"birth_chance_multiplier_by_generation" yaml:"birth_chance_multiplier_by_generation" toml:"birth_chance_multiplier_by_generation"`
	MaxBranchesCount                  int     `json:"max_branches_count" yaml:"max_branches_count" toml:"max_branches_count"`

	NewBranchIntensityDecreaseMultiplier float64 `json:"new_branch_intensity_decrease_multiplier" yaml:"new_branch_intensity_decrease_multiplier" toml:"new_branch_intensity_decrease_multiplier"`
	NewBranchWidthDecreaseMultiplier     float64 `json:"new_branch_width_decrease_multiplier" yaml:"new_branch_width_decrease_multiplier" toml:"new_branch_width_decrease_multiplier"`
}

// DefaultConfig returns a bolt with a handful of forks over five generations.
func DefaultConfig() Config {
	return Config{
		MinGenerations:                  3,
		MaxGenerations:                  5,
		NextGenerationSupportPercentage: 0.5,

		MaxMiddlePointDisplacement:                 1.5,
		DisplacementDecreaseMultiplierByGeneration: 0.55,

		NewBranchBirthChance:              0.1,
		BirthChanceMultiplierByGeneration: 1.2,
		MaxBranchesCount:                  8,

		NewBranchIntensityDecreaseMultiplier: 0.6,
		NewBranchWidthDecreaseMultiplier:     0.5,
	}
}

// Validate checks every field against its documented range.
func (c Config) Validate() error {
	switch {
	case c.MaxGenerations < 1 || c.MaxGenerations > MaxGenerationsLimit:
		return invalid("max_generations %d outside [1, %d]", c.MaxGenerations, MaxGenerationsLimit)
	case c.MinGenerations < 0 || c.MinGenerations > c.MaxGenerations:
		return invalid("min_generations %d outside [0, %d]", c.MinGenerations, c.MaxGenerations)
	case !unit(c.NextGenerationSupportPercentage):
		return invalid("next_generation_support_percentage %g outside [0, 1]", c.NextGenerationSupportPercentage)
	case !(c.MaxMiddlePointDisplacement > 0):
		return invalid("max_middle_point_displacement %g must be > 0", c.MaxMiddlePointDisplacement)
	case !unit(c.DisplacementDecreaseMultiplierByGeneration):
		return invalid("displacement_decrease_multiplier_by_generation %g outside [0, 1]", c.DisplacementDecreaseMultiplierByGeneration)
	case !unit(c.NewBranchBirthChance):
		return invalid("new_branch_birth_chance %g outside [0, 1]", c.NewBranchBirthChance)
	case !(c.BirthChanceMultiplierByGeneration >= 0 && c.BirthChanceMultiplierByGeneration <= 2):
		return invalid("birth_chance_multiplier_by_generation %g outside [0, 2]", c.BirthChanceMultiplierByGeneration)
	case c.MaxBranchesCount < 1:
		return invalid("max_branches_count %d must be >= 1", c.MaxBranchesCount)
	case !unit(c.NewBranchIntensityDecreaseMultiplier):
		return invalid("new_branch_intensity_decrease_multiplier %g outside [0, 1]", c.NewBranchIntensityDecreaseMultiplier)
	case !unit(c.NewBranchWidthDecreaseMultiplier):
		return invalid("new_branch_width_decrease_multiplier %g outside [0, 1]", c.NewBranchWidthDecreaseMultiplier)
	}
	return nil
}

// unit also rejects NaN.
func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("lightning: %s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}
