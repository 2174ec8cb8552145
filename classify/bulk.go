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

package classify

import (
	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/geometry"
)

// Bulk returns the junction mass of the drawing.  A pixel of runs is bulk
// if all four 4-connected neighbours are inside the canvas and solid, and
// either the pixel itself has at least two run directions or its
// neighbours together do.  The second rule recovers junction pixels whose
// own multi-direction membership was lost to rasterisation gaps.
func Bulk(c *canvas.Canvas, runs *geometry.RunMap) *canvas.Mask {
	bulk := canvas.NewMask(runs.Width(), runs.Height())
	for p, dirs := range runs.Entries {
		enclosed := true
		var around geometry.DirSet
		for _, off := range canvas.Neighbours4 {
			q := p.Add(off)
			if !c.Solid(q) {
				enclosed = false
				break
			}
			around |= runs.At(q)
		}
		if enclosed && (dirs.Len() >= 2 || around.Len() >= 2) {
			bulk.Set(p)
		}
	}
	return bulk
}

// BulkAdjacentEdge returns the silhouette ring around the bulk mass: solid
// pixels of runs that are not bulk themselves, touch a bulk pixel, and
// touch a transparent or out-of-canvas pixel.
func BulkAdjacentEdge(c *canvas.Canvas, runs *geometry.RunMap, bulk *canvas.Mask) *canvas.Mask {
	ring := canvas.NewMask(runs.Width(), runs.Height())
	for p := range runs.Entries {
		if bulk.Get(p) || !c.Solid(p) {
			continue
		}
		nextToBulk, exposed := false, false
		for _, off := range canvas.Neighbours4 {
			q := p.Add(off)
			switch {
			case bulk.Get(q):
				nextToBulk = true
			case !c.Solid(q):
				exposed = true
			}
		}
		if nextToBulk && exposed {
			ring.Set(p)
		}
	}
	return ring
}

// BulkEdge returns the bulk pixels with at least one 4-neighbour outside
// the bulk set.
func BulkEdge(bulk *canvas.Mask) *canvas.Mask {
	edge := canvas.NewMask(bulk.Width(), bulk.Height())
	for p := range bulk.Points {
		for _, off := range canvas.Neighbours4 {
			if !bulk.Get(p.Add(off)) {
				edge.Set(p)
				break
			}
		}
	}
	return edge
}
