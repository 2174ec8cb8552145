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

package geometry

import (
	"fmt"
	"image"
)

// RunDirection is one of the directional axes a pipe segment can follow.
type RunDirection uint8

// The run directions, in priority order.
const (
	// IsoX is the isometric east-west run (a screen diagonal on floors).
	IsoX RunDirection = iota
	// IsoY is the isometric north-south run (the other screen diagonal).
	IsoY
	// IsoZ is a vertical riser.
	IsoZ
)

// Directions lists all run directions in priority order.  Every pass that
// visits the directions of a pixel uses this order.
var Directions = [...]RunDirection{IsoX, IsoY, IsoZ}

func (d RunDirection) String() string {
	switch d {
	case IsoX:
		return "IsoX"
	case IsoY:
		return "IsoY"
	case IsoZ:
		return "IsoZ"
	default:
		return fmt.Sprintf("RunDirection(%d)", uint8(d))
	}
}

// DirSet is a set of run directions.
type DirSet uint8

// Has reports whether d is in the set.
func (s DirSet) Has(d RunDirection) bool { return s&(1<<d) != 0 }

// With returns the set with d added.
func (s DirSet) With(d RunDirection) DirSet { return s | 1<<d }

// Len returns the number of directions in the set.
func (s DirSet) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// All calls yield for each member, in priority order.
func (s DirSet) All(yield func(RunDirection) bool) {
	for _, d := range Directions {
		if s.Has(d) && !yield(d) {
			return
		}
	}
}

// RunMap records, per pixel, which run directions painted that pixel.
// Entries are only ever added.  Once frozen, the map is read-only.
type RunMap struct {
	w, h   int
	sets   []DirSet
	frozen bool
}

// NewRunMap returns an empty run map for a width×height canvas.
func NewRunMap(width, height int) *RunMap {
	return &RunMap{w: width, h: height, sets: make([]DirSet, width*height)}
}

// Width returns the width of the underlying grid.
func (m *RunMap) Width() int { return m.w }

// Height returns the height of the underlying grid.
func (m *RunMap) Height() int { return m.h }

// Add records that direction d painted p.  Points outside the grid are
// ignored.  Add panics if the map is frozen.
func (m *RunMap) Add(p image.Point, d RunDirection) {
	if m.frozen {
		panic("geometry: Add on frozen RunMap")
	}
	if p.X < 0 || p.Y < 0 || p.X >= m.w || p.Y >= m.h {
		return
	}
	m.sets[p.Y*m.w+p.X] = m.sets[p.Y*m.w+p.X].With(d)
}

// At returns the directions recorded for p.  Pixels without entries,
// including all pixels outside the grid, return the empty set.
func (m *RunMap) At(p image.Point) DirSet {
	if p.X < 0 || p.Y < 0 || p.X >= m.w || p.Y >= m.h {
		return 0
	}
	return m.sets[p.Y*m.w+p.X]
}

// Freeze makes the map read-only.
func (m *RunMap) Freeze() { m.frozen = true }

// Frozen reports whether Freeze has been called.
func (m *RunMap) Frozen() bool { return m.frozen }

// Len returns the number of pixels with at least one direction.
func (m *RunMap) Len() int {
	n := 0
	for _, s := range m.sets {
		if s != 0 {
			n++
		}
	}
	return n
}

// Entries calls yield for every pixel with at least one direction, in
// row-major order.
func (m *RunMap) Entries(yield func(image.Point, DirSet) bool) {
	for i, s := range m.sets {
		if s != 0 && !yield(image.Point{X: i % m.w, Y: i / m.w}, s) {
			return
		}
	}
}
