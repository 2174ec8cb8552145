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

// Package raster converts straight line segments into per-pixel coverage
// values.  It provides the thick-line primitive used to draw smooth pipe
// strokes.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser computes coverage values, the fraction of each pixel's area
// covered by a stroked segment, ranging from 0 (outside) to 1 (inside).
// Internal buffers grow as needed and are reused across calls.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM transforms from user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls how closely round caps follow the circle, in
	// device pixels.  Must be positive.
	Flatness float64

	// Width sets stroke thickness in user-space units.
	Width float64

	// Cap sets the style for stroke endpoints.
	Cap graphics.LineCapStyle

	cover []float32 // cover change per pixel; reused as output
	area  []float32 // area within pixel
	edges []edge
	rows  []bool // per-scanline flag: true if any edge contributes

	poly []vec.Vec2 // scratch polygon for round caps

	bboxEmpty bool
	devXMin   float64 // device-space bounding box of the edges
	devXMax   float64
	devYMin   float64
	devYMax   float64
}

// NewRasteriser returns a Rasteriser with the given clip rectangle and
// default values for the other parameters.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is preserved.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapButt

	r.edges = r.edges[:0]
	r.poly = r.poly[:0]
}

func (r *Rasteriser) beginEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge adds an edge given in user space, transforming it to device space.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dx0, dy0 := r.CTM.Apply(p0.X, p0.Y)
	dx1, dy1 := r.CTM.Apply(p1.X, p1.Y)

	if r.bboxEmpty {
		r.devXMin, r.devXMax = min(dx0, dx1), max(dx0, dx1)
		r.devYMin, r.devYMax = min(dy0, dy1), max(dy0, dy1)
		r.bboxEmpty = false
	} else {
		r.devXMin = min(r.devXMin, dx0, dx1)
		r.devXMax = max(r.devXMax, dx0, dx1)
		r.devYMin = min(r.devYMin, dy0, dy1)
		r.devYMax = max(r.devYMax, dy0, dy1)
	}

	dy := dy1 - dy0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})
}

// bounds returns the device-space bounding box of the collected edges,
// clamped to the clip rectangle.
func (r *Rasteriser) bounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage accumulation model:
//
// For each pixel two values are tracked.  cover is the signed vertical
// extent of the edges crossing the pixel, area is the same extent weighted
// by how far left inside the pixel the crossing happens.  Integrating a
// row from left to right,
//
//	coverage[i] = sum(cover[0:i]) + area[i]
//
// gives the signed area of the path inside each pixel.

// accumulate adds the part of e inside scanline y to the row buffers.
// Index 0 of the buffers corresponds to device column x0.
func accumulate(e *edge, y int, cover, area []float32, x0 int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	n := len(cover)
	put := func(pix int, dy, xMid float64) {
		c := sign * float32(dy)
		switch idx := pix - x0; {
		case idx < 0:
			// everything to the right of the edge is affected
			cover[0] += c
			area[0] += c
		case idx < n:
			cover[idx] += c
			area[idx] += c * float32(1-(xMid-float64(pix)))
		}
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	if xa > xb {
		xa, xb = xb, xa
	}
	dy := yBot - yTop
	if xb-xa < horizontalEdgeThreshold {
		put(int(math.Floor(xa)), dy, (xa+xb)/2)
		return
	}

	// y is linear in x along the edge, so each pixel column receives a
	// share of dy proportional to its share of the x-range.
	for lo := xa; lo < xb; {
		pix := int(math.Floor(lo))
		hi := min(float64(pix+1), xb)
		put(pix, dy*(hi-lo)/(xb-xa), (lo+hi)/2)
		lo = hi
	}
}

// integrateNonZero converts accumulated cover/area to coverage values
// using the nonzero winding rule.  The cover slice is modified in place.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero portion of coverage and its offset.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// fill rasterises the collected edges with the nonzero rule.
func (r *Rasteriser) fill(emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.bounds()
	if !ok {
		return
	}
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rows = slices.Grow(r.rows[:0], height)[:height]
	clear(r.rows)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin)
			r.rows[row] = true
		}
	}

	for row := range height {
		if !r.rows[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateNonZero(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// Default values for rasteriser parameters.
const (
	// defaultFlatness is the default tolerance for round caps, in device
	// pixels.
	defaultFlatness = 0.25
)

// Numerical tolerances for the rasteriser.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length for a stroke segment.
	zeroLengthThreshold = 1e-10
)
