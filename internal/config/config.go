package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lightning-mesh/internal/imageio"
	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mathutil"
	"lightning-mesh/internal/mesh"
	"lightning-mesh/internal/viewmatrix"
)

var (
	ErrUnknownExt = errors.New("unsupported config extension")
	ErrInvalid    = errors.New("invalid config")
)

// Config holds the bolt shape, mesh tessellation and render settings.
type Config struct {
	Shape  lightning.Config `json:"shape" yaml:"shape" toml:"shape"`
	Mesh   Mesh             `json:"mesh" yaml:"mesh" toml:"mesh"`
	Render Render           `json:"render" yaml:"render" toml:"render"`

	// Origin and Impact are world-space endpoints of the main branch.
	Origin mathutil.Vec3 `json:"origin" yaml:"origin" toml:"origin"`
	Impact mathutil.Vec3 `json:"impact" yaml:"impact" toml:"impact"`

	// Transform places the bolt owner; generation runs in its local space.
	Transform mathutil.Transform `json:"transform" yaml:"transform" toml:"transform"`

	OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	Workers   int    `json:"workers" yaml:"workers" toml:"workers"`
}

// Mesh controls tube tessellation.
type Mesh struct {
	Resolution int     `json:"resolution" yaml:"resolution" toml:"resolution"`
	Radius     float32 `json:"radius" yaml:"radius" toml:"radius"`
}

// Render controls rasterization and output encoding.
type Render struct {
	Size        int    `json:"size" yaml:"size" toml:"size"`
	Supersample int    `json:"supersample" yaml:"supersample" toml:"supersample"`
	Format      string `json:"format" yaml:"format" toml:"format"`

	// Ramp names a color ramp in RampDir, or a file path. Empty selects
	// the built-in ramp.
	Ramp    string `json:"ramp" yaml:"ramp" toml:"ramp"`
	RampDir string `json:"ramp_dir" yaml:"ramp_dir" toml:"ramp_dir"`

	Camera viewmatrix.Camera `json:"camera" yaml:"camera" toml:"camera"`

	Glow          bool    `json:"glow" yaml:"glow" toml:"glow"`
	GlowPixels    float64 `json:"glow_pixels" yaml:"glow_pixels" toml:"glow_pixels"`
	BloomRadius   int     `json:"bloom_radius" yaml:"bloom_radius" toml:"bloom_radius"`
	BloomStrength float64 `json:"bloom_strength" yaml:"bloom_strength" toml:"bloom_strength"`
}

// Default returns a vertical bolt ten units tall rendered to a 256px webp.
func Default() Config {
	return Config{
		Shape: lightning.DefaultConfig(),
		Mesh: Mesh{
			Resolution: 6,
			Radius:     0.08,
		},
		Render: Render{
			Size:          256,
			Supersample:   2,
			Format:        string(imageio.WebP),
			Glow:          true,
			GlowPixels:    3,
			BloomRadius:   6,
			BloomStrength: 0.6,
		},
		Origin:    mathutil.Vec3{0, 10, 0},
		Impact:    mathutil.Vec3{0, 0, 0},
		Transform: mathutil.Identity,
		OutputDir: "out",
	}
}

// Load reads a config file on top of Default. The decoder is chosen by
// extension: .json, .yaml/.yml or .toml. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: %w", path, ErrUnknownExt)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone; Seed applies when SeedSet.
type Flags struct {
	Seed       int64
	SeedSet    bool
	OutputDir  string
	Format     string
	Size       int
	Resolution int
	Radius     float64
	Ramp       string
	Workers    int
}

// Resolve applies flag overrides and fills unset settings with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SeedSet {
		c.Shape.Seed = flags.Seed
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Render.Format = flags.Format
	}
	if flags.Size > 0 {
		c.Render.Size = flags.Size
	}
	if flags.Resolution > 0 {
		c.Mesh.Resolution = flags.Resolution
	}
	if flags.Radius > 0 {
		c.Mesh.Radius = float32(flags.Radius)
	}
	if flags.Ramp != "" {
		c.Render.Ramp = flags.Ramp
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults for render settings
	if c.Render.Size <= 0 {
		c.Render.Size = 256
	}
	if c.Render.Supersample <= 0 {
		c.Render.Supersample = 1
	}
	if c.Render.Format == "" {
		c.Render.Format = string(imageio.WebP)
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate checks the shape config and the mesh and render ranges.
func (c Config) Validate() error {
	if err := c.Shape.Validate(); err != nil {
		return fmt.Errorf("config: shape: %w", err)
	}
	if c.Mesh.Resolution < mesh.MinResolution {
		return fmt.Errorf("config: mesh resolution %d below %d: %w", c.Mesh.Resolution, mesh.MinResolution, ErrInvalid)
	}
	if !(c.Mesh.Radius > 0) {
		return fmt.Errorf("config: mesh radius %g: %w", c.Mesh.Radius, ErrInvalid)
	}
	if c.Render.Size <= 0 || c.Render.Supersample <= 0 {
		return fmt.Errorf("config: render size %d, supersample %d: %w", c.Render.Size, c.Render.Supersample, ErrInvalid)
	}
	if _, err := imageio.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Origin == c.Impact {
		return fmt.Errorf("config: origin equals impact: %w", ErrInvalid)
	}
	return nil
}
