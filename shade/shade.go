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

// Package shade applies stylised light and shadow bands to a classified
// canvas.
//
// Bands are triggered by run termini: every pixel whose flags have both
// Point and EdgePerp set for some direction starts a shadow or highlight
// band running inward along the scan axis, and a contact glow on the
// transparent pixels just outside the run.  Apply mutates the canvas and
// may run only once per canvas.
package shade

import (
	"errors"
	"image"
	"image/color"

	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/classify"
	"seehuhn.de/go/isopipe/geometry"
)

// ErrAlreadyShaded is returned by Apply for a canvas which has been shaded
// before.
var ErrAlreadyShaded = errors.New("shade: canvas already shaded")

// Bands holds the overlay opacities of the three band kinds.  Each
// sequence starts at the trigger pixel (or, for Glow, at the first pixel
// outside the run) and decreases away from it.
type Bands struct {
	Shadow    [4]float64
	Highlight [2]float64
	Glow      [2]float64
}

// DefaultBands are the band opacities used by the generator.
var DefaultBands = Bands{
	Shadow:    [4]float64{0.55, 0.35, 0.22, 0.10},
	Highlight: [2]float64{0.45, 0.18},
	Glow:      [2]float64{0.20, 0.10},
}

// Validate checks that all opacities are in [0, 1].
func (b Bands) Validate() error {
	all := make([]float64, 0, 8)
	all = append(all, b.Shadow[:]...)
	all = append(all, b.Highlight[:]...)
	all = append(all, b.Glow[:]...)
	for _, a := range all {
		if !(a >= 0 && a <= 1) {
			return errors.New("shade: band opacity outside [0, 1]")
		}
	}
	return nil
}

// Stats counts what a shading pass did.
type Stats struct {
	Triggers   int // pixels which started a band
	Shadow     int // pixels darkened by shadow bands
	Highlight  int // pixels lightened by highlight bands
	Glow       int // transparent pixels given contact glow
	Undirected int // triggers without a resolved edge side
}

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Apply shades c in place.
//
// Triggers are visited in row-major order.  For a pixel which is a
// trigger for more than one direction, only the first direction in
// geometry.Directions is used.  The inward/outward decision and the
// transparency test for contact glow both use the opacity of c before
// shading started, so that the result does not depend on the visiting
// order.
func Apply(c *canvas.Canvas, runs *geometry.RunMap, flags *classify.Result, b Bands) (Stats, error) {
	var st Stats
	if c.Shaded() {
		return st, ErrAlreadyShaded
	}
	c.MarkShaded()

	opaque := c.Opacity()
	for p, dirs := range runs.Entries {
		d, f, ok := trigger(flags, p, dirs)
		if !ok {
			continue
		}
		st.Triggers++

		in, out := inward(opaque, runs, p, d)

		switch f.Side {
		case classify.SideDark:
			st.Shadow += band(c, opaque, p, in, b.Shadow[:], black)
		case classify.SideLight:
			st.Highlight += band(c, opaque, p, in, b.Highlight[:], white)
		default:
			st.Undirected++
		}

		q := p.Add(out)
		for _, a := range b.Glow {
			if !c.In(q) || opaque.Get(q) {
				break
			}
			overlay(c, q, black, a, true)
			st.Glow++
			q = q.Add(out)
		}
	}
	return st, nil
}

func trigger(flags *classify.Result, p image.Point, dirs geometry.DirSet) (geometry.RunDirection, classify.Flags, bool) {
	for _, d := range geometry.Directions {
		if !dirs.Has(d) {
			continue
		}
		f, ok := flags.At(p, d)
		if ok && f.Point && f.EdgePerp {
			return d, f, true
		}
	}
	return 0, classify.Flags{}, false
}

// inward returns the scan offsets of direction d at p which point into
// and out of the run.  A neighbour which continues the run is preferred
// over one which is only opaque; if neither scan neighbour is opaque, the
// band runs along the second scan offset.
func inward(opaque *canvas.Mask, runs *geometry.RunMap, p image.Point, d geometry.RunDirection) (in, out image.Point) {
	scan := classify.AxesFor(d).Scan
	inRun := func(off image.Point) bool {
		q := p.Add(off)
		return opaque.Get(q) && runs.At(q).Has(d)
	}
	switch {
	case inRun(scan[0]):
		return scan[0], scan[1]
	case inRun(scan[1]):
		return scan[1], scan[0]
	case opaque.Get(p.Add(scan[0])):
		return scan[0], scan[1]
	default:
		return scan[1], scan[0]
	}
}

// band overlays the pixels p, p+step, p+2*step, ... with col, using the
// given opacities in turn.  The band stops at the first pixel which was
// transparent before shading.  The number of pixels touched is returned.
func band(c *canvas.Canvas, opaque *canvas.Mask, p, step image.Point, alphas []float64, col color.NRGBA) int {
	n := 0
	for _, a := range alphas {
		if !opaque.Get(p) {
			break
		}
		overlay(c, p, col, a, false)
		n++
		p = p.Add(step)
	}
	return n
}

// overlay blends the colour channels of the pixel at p toward col with
// opacity a.  If force is set, the alpha channel is raised to at least a.
func overlay(c *canvas.Canvas, p image.Point, col color.NRGBA, a float64, force bool) {
	a = min(max(a, 0), 1)
	dst := c.At(p)
	dst.R = mix(dst.R, col.R, a)
	dst.G = mix(dst.G, col.G, a)
	dst.B = mix(dst.B, col.B, a)
	if force {
		dst.A = max(dst.A, uint8(255*a))
	}
	c.Set(p, dst)
}

func mix(dst, src uint8, a float64) uint8 {
	return uint8(float64(dst)*(1-a) + float64(src)*a)
}
