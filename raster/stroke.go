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

package raster

import (
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the segment from a to b, given in user space, as a thick
// line using Width and Cap.  The emit callback receives coverage row by
// row; its slice argument is valid only during the call.
//
// The outline is one quadrilateral for the segment plus the two cap
// pieces.  All pieces share the same orientation, so filling them
// together with the nonzero rule paints overlapping regions exactly once.
func (r *Rasteriser) Stroke(a, b vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.beginEdges()
	d := r.Width / 2

	delta := b.Sub(a)
	length := delta.Length()
	if length < zeroLengthThreshold {
		// degenerate segment: only a round cap produces output
		if r.Cap == graphics.LineCapRound {
			r.addCircle(a, d)
		}
		r.fill(emit)
		return
	}

	T := delta.Mul(1 / length)
	N := vec.Vec2{X: -T.Y, Y: T.X}
	r.addPolygon(a.Add(N.Mul(d)), b.Add(N.Mul(d)), b.Sub(N.Mul(d)), a.Sub(N.Mul(d)))
	r.addCap(a, T.Mul(-1), d)
	r.addCap(b, T, d)
	r.fill(emit)
}

// addCap adds a line cap at P.  T is the outward tangent direction.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(P, d)
	case graphics.LineCapSquare:
		N := vec.Vec2{X: -T.Y, Y: T.X}
		ext := P.Add(T.Mul(d))
		r.addPolygon(P.Add(N.Mul(d)), ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)), P.Sub(N.Mul(d)))
	}
}

// addCircle adds a full circle of radius rad around center.
func (r *Rasteriser) addCircle(center vec.Vec2, rad float64) {
	devRad := max(
		r.transformLinear(vec.Vec2{X: rad}).Length(),
		r.transformLinear(vec.Vec2{Y: rad}).Length(),
	)
	n := 8
	if devRad > r.Flatness {
		// chord deviation r(1-cos(θ/2)) must stay below Flatness
		step := 2 * math.Acos(1-r.Flatness/devRad)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	r.poly = r.poly[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, center.Add(vec.Vec2{X: rad * math.Cos(phi), Y: rad * math.Sin(phi)}))
	}
	r.addPolygonSlice(r.poly)
}

// addPolygon adds a closed polygon to the edge list.
func (r *Rasteriser) addPolygon(pts ...vec.Vec2) {
	r.addPolygonSlice(pts)
}

// addPolygonSlice adds a closed polygon to the edge list, normalised to
// counter-clockwise orientation in user space.
func (r *Rasteriser) addPolygonSlice(pts []vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	var area2 float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		area2 += a.X*b.Y - b.X*a.Y
	}
	if math.Abs(area2) < zeroLengthThreshold {
		return
	}
	n := len(pts)
	for i := range n {
		j := (i + 1) % n
		if area2 > 0 {
			r.addEdge(pts[i], pts[j])
		} else {
			r.addEdge(pts[j], pts[i])
		}
	}
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}
