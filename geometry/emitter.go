// seehuhn.de/go/isopipe - procedural isometric pipe sprites
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package geometry turns pipe shapes into pixels.  It projects the shape
// catalog onto the isometric canvas, rasterises each stroke and records,
// per pixel, which run direction painted it.
package geometry

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/raster"
)

// Mode selects how a stroke is rasterised.
type Mode uint8

const (
	// Smooth uses the thick-line stroker.  It gives clean end caps and is
	// used for floor runs.
	Smooth Mode = iota

	// Multiline draws Thickness parallel one-pixel lines.  Coverage does not
	// depend on sub-pixel positions, which keeps wall strokes stable when
	// sprites are composed.
	Multiline
)

func (m Mode) String() string {
	if m == Multiline {
		return "multiline"
	}
	return "smooth"
}

// Stroke is a single line segment to be drawn.
type Stroke struct {
	From, To  image.Point // endpoints, in pixels
	Thickness int
	Dir       RunDirection
	Color     color.NRGBA
	Mode      Mode
	Cap       graphics.LineCapStyle // smooth mode only
}

// solidCoverage is the coverage at which a smooth stroke makes a pixel
// solid.
const solidCoverage = 0.5

var pixelCentres = matrix.Translate(0.5, 0.5)

// Emitter draws strokes onto a canvas and records run membership for every
// pixel a stroke makes solid.
type Emitter struct {
	canvas *canvas.Canvas
	runs   *RunMap
	ras    *raster.Rasteriser
	clip   rect.Rect
	mask   *canvas.Mask
}

// NewEmitter returns an emitter drawing onto c, with an empty run map.
func NewEmitter(c *canvas.Canvas) *Emitter {
	w, h := c.Width(), c.Height()
	clip := rect.Rect{URx: float64(w), URy: float64(h)}
	return &Emitter{
		canvas: c,
		runs:   NewRunMap(w, h),
		ras:    raster.NewRasteriser(clip),
		clip:   clip,
		mask:   canvas.NewMask(w, h),
	}
}

// Canvas returns the canvas the emitter draws on.
func (e *Emitter) Canvas() *canvas.Canvas { return e.canvas }

// Runs returns the run map built so far.
func (e *Emitter) Runs() *RunMap { return e.runs }

// DrawStroke paints s onto the canvas and adds s.Dir to the run map entry
// of every pixel the stroke covers, whether or not that pixel was already
// solid.  It returns the number of pixels covered.  A stroke with a fully
// transparent colour paints nothing and records nothing.
func (e *Emitter) DrawStroke(s Stroke) int {
	if s.Color.A == 0 || s.Thickness <= 0 {
		return 0
	}
	n := 0
	for p := range e.Coverage(s).Points {
		e.canvas.Set(p, s.Color)
		e.runs.Add(p, s.Dir)
		n++
	}
	return n
}

// Coverage rasterises s into an initially empty scratch mask and returns
// it.  The result depends only on s, never on the canvas contents.  The
// mask is reused by the next call.
func (e *Emitter) Coverage(s Stroke) *canvas.Mask {
	e.mask.Clear()
	switch s.Mode {
	case Multiline:
		e.coverMultiline(s)
	default:
		e.coverSmooth(s)
	}
	return e.mask
}

func (e *Emitter) coverSmooth(s Stroke) {
	e.ras.Reset(e.clip)
	// endpoints are pixel indices; pixel (x, y) has its centre at
	// (x+0.5, y+0.5)
	e.ras.CTM = pixelCentres
	e.ras.Width = float64(s.Thickness)
	e.ras.Cap = s.Cap

	a := vec.Vec2{X: float64(s.From.X), Y: float64(s.From.Y)}
	b := vec.Vec2{X: float64(s.To.X), Y: float64(s.To.Y)}

	e.ras.Stroke(a, b, func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c >= solidCoverage {
				e.mask.Set(image.Point{X: xMin + i, Y: y})
			}
		}
	})
}

func (e *Emitter) coverMultiline(s Stroke) {
	// Offset perpendicular to the dominant axis: horizontally for steep
	// segments such as risers, vertically for everything else.
	off := image.Point{Y: 1}
	if abs(s.To.Y-s.From.Y) > abs(s.To.X-s.From.X) {
		off = image.Point{X: 1}
	}
	half := s.Thickness / 2
	for k := -half; k < s.Thickness-half; k++ {
		o := off.Mul(k)
		line(s.From.Add(o), s.To.Add(o), e.mask.Set)
	}
}

// line calls plot for every pixel of the one-pixel-wide Bresenham line
// from p to q, both endpoints included.
func line(p, q image.Point, plot func(image.Point)) {
	dx := abs(q.X - p.X)
	dy := -abs(q.Y - p.Y)
	sx, sy := 1, 1
	if p.X > q.X {
		sx = -1
	}
	if p.Y > q.Y {
		sy = -1
	}
	err := dx + dy
	for {
		plot(p)
		if p == q {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
