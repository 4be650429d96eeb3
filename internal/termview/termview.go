// Package termview draws branch polylines into a terminal with quadrant
// block characters, giving 2x2 sub-cell resolution.
package termview

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mathutil"
	"lightning-mesh/internal/viewmatrix"
)

// quadrantChars maps a 2x2 hit bitmap to a block glyph.
// Bitmap encoding: bit0=UL, bit1=UR, bit2=LL, bit3=LR
var quadrantChars = [16]rune{
	' ', '▘', '▝', '▀',
	'▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜',
	'▄', '▙', '▟', '█',
}

// CellAspect is how many columns one row's worth of height spans.
const CellAspect = 2.0

type cell struct {
	bits      uint8
	intensity float64
}

// Draw clears screen and renders branches seen through cam, leaving the
// bottom row free for a status line. Colors come from ramp by intensity;
// a nil ramp draws in the default foreground.
func Draw(screen tcell.Screen, branches []*lightning.Branch, cam viewmatrix.Camera, ramp *image.NRGBA) {
	screen.Clear()
	w, h := screen.Size()
	h--
	if w <= 0 || h <= 0 || len(branches) == 0 {
		return
	}

	var pts []mathutil.Vec3
	for _, b := range branches {
		for _, p := range b.Points {
			pts = append(pts, p.Position)
		}
	}
	frame := viewmatrix.Fit(pts, cam, 2*w, 2*h, 1, CellAspect)

	cells := make(map[image.Point]*cell)
	for _, b := range branches {
		for i := 1; i < len(b.Points); i++ {
			x0, y0, _ := frame.Project(b.Points[i-1].Position)
			x1, y1, _ := frame.Project(b.Points[i].Position)
			trace(cells, int(x0), int(y0), int(x1), int(y1), b.Intensity)
		}
	}

	for pos, c := range cells {
		if pos.X < 0 || pos.Y < 0 || pos.X >= w || pos.Y >= h {
			continue
		}
		screen.SetContent(pos.X, pos.Y, quadrantChars[c.bits], nil, style(ramp, c.intensity))
	}
}

// DrawStatus writes text on the bottom row.
func DrawStatus(screen tcell.Screen, text string) {
	w, h := screen.Size()
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		screen.SetContent(x, h-1, r, nil, tcell.StyleDefault.Reverse(true))
		x++
	}
	for ; x < w; x++ {
		screen.SetContent(x, h-1, ' ', nil, tcell.StyleDefault.Reverse(true))
	}
}

func style(ramp *image.NRGBA, intensity float64) tcell.Style {
	if ramp == nil {
		return tcell.StyleDefault
	}
	x := ramp.Rect.Min.X + int(intensity*float64(ramp.Rect.Dx()-1)+0.5)
	x = min(max(x, ramp.Rect.Min.X), ramp.Rect.Max.X-1)
	c := ramp.NRGBAAt(x, ramp.Rect.Min.Y)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// trace walks a sub-cell line with Bresenham, marking quadrants.
func trace(cells map[image.Point]*cell, sx0, sy0, sx1, sy1 int, intensity float64) {
	dx := abs(sx1 - sx0)
	dy := abs(sy1 - sy0)
	stepX, stepY := -1, -1
	if sx0 < sx1 {
		stepX = 1
	}
	if sy0 < sy1 {
		stepY = 1
	}

	err := dx - dy
	for {
		if sx0 >= 0 && sy0 >= 0 {
			pos := image.Point{sx0 / 2, sy0 / 2}
			c := cells[pos]
			if c == nil {
				c = &cell{}
				cells[pos] = c
			}
			c.bits |= 1 << ((sy0&1)*2 + sx0&1)
			c.intensity = max(c.intensity, intensity)
		}

		if sx0 == sx1 && sy0 == sy1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			sx0 += stepX
		}
		if e2 < dx {
			err += dx
			sy0 += stepY
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
