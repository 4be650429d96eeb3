package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mathutil"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	cases := map[string]string{
		"bolt.json": `{"shape": {"seed": 42, "max_generations": 4}, "mesh": {"resolution": 8}, "impact": [1, 0, 0]}`,
		"bolt.yaml": "shape:\n  seed: 42\n  max_generations: 4\nmesh:\n  resolution: 8\nimpact: [1, 0, 0]\n",
		"bolt.toml": "impact = [1.0, 0.0, 0.0]\n\n[shape]\nseed = 42\nmax_generations = 4\n\n[mesh]\nresolution = 8\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, name, body))
			require.NoError(t, err)

			assert.Equal(t, int64(42), cfg.Shape.Seed)
			assert.Equal(t, 4, cfg.Shape.MaxGenerations)
			assert.Equal(t, 8, cfg.Mesh.Resolution)
			assert.Equal(t, mathutil.Vec3{1, 0, 0}, cfg.Impact)

			// untouched fields keep defaults
			def := Default()
			assert.Equal(t, def.Mesh.Radius, cfg.Mesh.Radius)
			assert.Equal(t, def.Origin, cfg.Origin)
			assert.Equal(t, def.Shape.NewBranchBirthChance, cfg.Shape.NewBranchBirthChance)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "bolt.ini", "x=1"))
	assert.ErrorIs(t, err, ErrUnknownExt)

	_, err = Load(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveOverrides(t *testing.T) {
	cfg := Default()
	cfg.Shape.Seed = 5
	cfg.Resolve(Flags{
		Seed:       0,
		SeedSet:    true,
		Format:     "png",
		Size:       64,
		Resolution: 4,
		Radius:     0.2,
		Workers:    3,
	})

	assert.Equal(t, int64(0), cfg.Shape.Seed)
	assert.Equal(t, "png", cfg.Render.Format)
	assert.Equal(t, 64, cfg.Render.Size)
	assert.Equal(t, 4, cfg.Mesh.Resolution)
	assert.InDelta(t, 0.2, cfg.Mesh.Radius, 1e-6)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestResolveFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, 256, cfg.Render.Size)
	assert.Equal(t, 1, cfg.Render.Supersample)
	assert.Equal(t, "webp", cfg.Render.Format)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Positive(t, cfg.Workers)
}

func TestValidate(t *testing.T) {
	ok := Default()
	require.NoError(t, ok.Validate())

	bad := Default()
	bad.Shape.MaxBranchesCount = 0
	assert.ErrorIs(t, bad.Validate(), lightning.ErrInvalidConfig)

	bad = Default()
	bad.Mesh.Resolution = 2
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = Default()
	bad.Render.Format = "gif"
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Impact = bad.Origin
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)
}
