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

package canvas

import "image"

// Mask is a dense set of pixel coordinates on a fixed-size grid.
type Mask struct {
	w, h int
	bits []bool
}

// NewMask returns an empty mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{w: width, h: height, bits: make([]bool, width*height)}
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height.
func (m *Mask) Height() int { return m.h }

// Get reports whether p is in the set.  Points outside the grid are not.
func (m *Mask) Get(p image.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= m.w || p.Y >= m.h {
		return false
	}
	return m.bits[p.Y*m.w+p.X]
}

// Set adds p to the set.  Points outside the grid are ignored.
func (m *Mask) Set(p image.Point) {
	if p.X < 0 || p.Y < 0 || p.X >= m.w || p.Y >= m.h {
		return
	}
	m.bits[p.Y*m.w+p.X] = true
}

// Clear removes all points.
func (m *Mask) Clear() {
	clear(m.bits)
}

// Len returns the number of points in the set.
func (m *Mask) Len() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Points calls yield for every point in the set, in row-major order.
func (m *Mask) Points(yield func(image.Point) bool) {
	for i, b := range m.bits {
		if b && !yield(image.Point{X: i % m.w, Y: i / m.w}) {
			return
		}
	}
}

// Equal reports whether m and other contain the same points on grids of
// the same size.
func (m *Mask) Equal(other *Mask) bool {
	if m.w != other.w || m.h != other.h {
		return false
	}
	for i := range m.bits {
		if m.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// Neighbours4 lists the 4-connected neighbour offsets.
var Neighbours4 = [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
