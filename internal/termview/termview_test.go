package termview

import (
	"image"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mathutil"
	"lightning-mesh/internal/texture"
	"lightning-mesh/internal/viewmatrix"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func testBolt(t *testing.T) []*lightning.Branch {
	t.Helper()
	cfg := lightning.DefaultConfig()
	cfg.Seed = 3
	g, err := lightning.New(cfg, nil)
	require.NoError(t, err)
	branches, err := g.GenerateShape(mathutil.Vec3{0, 10, 0}, mathutil.Vec3{0, 0, 0})
	require.NoError(t, err)
	return branches
}

func countGlyphs(s tcell.SimulationScreen, w, h int) int {
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			if r != ' ' && r != 0 {
				n++
			}
		}
	}
	return n
}

func TestDrawMarksCells(t *testing.T) {
	s := newScreen(t, 40, 20)
	Draw(s, testBolt(t), viewmatrix.Camera{}, texture.DefaultRamp())

	assert.Greater(t, countGlyphs(s, 40, 19), 10)
	assert.Zero(t, countGlyphs(s, 40, 20)-countGlyphs(s, 40, 19), "status row must stay free")
}

func TestDrawEmpty(t *testing.T) {
	s := newScreen(t, 20, 10)
	Draw(s, nil, viewmatrix.Camera{}, nil)
	assert.Zero(t, countGlyphs(s, 20, 10))
}

func TestDrawColorsByIntensity(t *testing.T) {
	s := newScreen(t, 20, 10)
	branches := []*lightning.Branch{{
		Points: []lightning.Point{
			{Position: mathutil.Vec3{0, 5, 0}},
			{Position: mathutil.Vec3{0, 0, 0}},
		},
		Intensity: 1,
		Parent:    -1,
	}}
	ramp := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	ramp.Pix = []uint8{0, 0, 0, 255, 255, 0, 0, 255}
	Draw(s, branches, viewmatrix.Camera{}, ramp)

	found := false
	for y := 0; y < 9; y++ {
		for x := 0; x < 20; x++ {
			r, _, st, _ := s.GetContent(x, y)
			if r == ' ' || r == 0 {
				continue
			}
			fg, _, _ := st.Decompose()
			assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
			found = true
		}
	}
	assert.True(t, found)
}

func TestDrawStatus(t *testing.T) {
	s := newScreen(t, 10, 3)
	DrawStatus(s, "gen 3")
	r, _, _, _ := s.GetContent(0, 2)
	assert.Equal(t, 'g', r)
	r, _, _, _ = s.GetContent(4, 2)
	assert.Equal(t, '3', r)
}

func TestTraceQuadrants(t *testing.T) {
	cells := map[image.Point]*cell{}
	trace(cells, 0, 0, 1, 0, 0.5)
	require.Len(t, cells, 1)
	c := cells[image.Point{}]
	assert.Equal(t, '▀', quadrantChars[c.bits])
	assert.Equal(t, 0.5, c.intensity)

	trace(cells, 0, 1, 1, 1, 0.8)
	assert.Equal(t, '█', quadrantChars[c.bits])
	assert.Equal(t, 0.8, c.intensity)
}
