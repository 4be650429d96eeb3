package batch

import (
	"errors"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"lightning-mesh/internal/config"
	"lightning-mesh/internal/mathutil"
)

var ErrDuplicateJob = errors.New("duplicate job name")

// ShapeOverride replaces individual shape parameters of the base config.
// Nil fields keep the base value; a pointer to zero sets zero.
type ShapeOverride struct {
	MinGenerations                  *int     `yaml:"min_generations"`
	MaxGenerations                  *int     `yaml:"max_generations"`
	NextGenerationSupportPercentage *float64 `yaml:"next_generation_support_percentage"`

	MaxMiddlePointDisplacement                 *float64 `yaml:"max_middle_point_displacement"`
	DisplacementDecreaseMultiplierByGeneration *float64 `yaml:"displacement_decrease_multiplier_by_generation"`

	NewBranchBirthChance              *float64 `yaml:"new_branch_birth_chance"`
	BirthChanceMultiplierByGeneration *float64 `yaml:"birth_chance_multiplier_by_generation"`
	MaxBranchesCount                  *int     `yaml:"max_branches_count"`

	NewBranchIntensityDecreaseMultiplier *float64 `yaml:"new_branch_intensity_decrease_multiplier"`
	NewBranchWidthDecreaseMultiplier     *float64 `yaml:"new_branch_width_decrease_multiplier"`
}

// Job is one bolt of a batch manifest.
type Job struct {
	Name   string         `yaml:"name"`
	Seed   int64          `yaml:"seed"`
	Origin *mathutil.Vec3 `yaml:"origin"`
	Impact *mathutil.Vec3 `yaml:"impact"`
	Ramp   string         `yaml:"ramp"`
	Shape  ShapeOverride  `yaml:"shape"`
}

type jobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobs reads a YAML manifest with a top-level jobs list. Jobs without
// a name are called bolt-NNN after their position.
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(f.Jobs))
	for i := range f.Jobs {
		if f.Jobs[i].Name == "" {
			f.Jobs[i].Name = fmt.Sprintf("bolt-%03d", i)
		}
		if seen[f.Jobs[i].Name] {
			return nil, fmt.Errorf("batch: %s: %q: %w", path, f.Jobs[i].Name, ErrDuplicateJob)
		}
		seen[f.Jobs[i].Name] = true
	}
	return f.Jobs, nil
}

// Apply returns base with the job's seed, endpoints, ramp and shape
// overrides applied.
func (j Job) Apply(base config.Config) (config.Config, error) {
	cfg := base
	if err := copier.CopyWithOption(&cfg.Shape, &j.Shape, copier.Option{IgnoreEmpty: true}); err != nil {
		return config.Config{}, fmt.Errorf("batch: job %s: %w", j.Name, err)
	}
	cfg.Shape.Seed = j.Seed
	if j.Origin != nil {
		cfg.Origin = *j.Origin
	}
	if j.Impact != nil {
		cfg.Impact = *j.Impact
	}
	if j.Ramp != "" {
		cfg.Render.Ramp = j.Ramp
	}
	return cfg, nil
}
