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

// Package classify derives the structural role of every painted pixel from
// canvas opacity and run membership.
//
// For each pixel and each run direction it paints, Classify determines
// whether the pixel ends its run along the scan axis (edge_scan, point),
// whether it lies on the run's silhouette (edge_perp) and which side of
// the silhouette faces the light.  Bulk and BulkAdjacentEdge find junction
// mass independently of the per-direction flags.
package classify

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/geometry"
)

// Side tells which way an exposed silhouette pixel faces.
type Side uint8

const (
	// SideUndefined is used when neither or both perpendicular neighbours
	// are exposed.
	SideUndefined Side = iota
	SideLight
	SideDark
)

func (s Side) String() string {
	switch s {
	case SideLight:
		return "light"
	case SideDark:
		return "dark"
	default:
		return "undefined"
	}
}

// Axes are the neighbour offsets used to classify pixels of one run
// direction.
type Axes struct {
	// Scan holds the two opposite offsets along which the run extends.
	Scan [2]image.Point

	// Perp holds the two offsets across the run.
	Perp [2]image.Point

	// Normal[i] is the unit screen-space normal of the run on the side
	// of Perp[i].
	Normal [2]vec.Vec2
}

var (
	// screen-space normals of the floor diagonals, whose run vectors are
	// (2, 1) and (-2, 1)
	nx = vec.Vec2{X: 1, Y: -2}.Mul(1 / math.Sqrt(5))
	ny = vec.Vec2{X: -1, Y: -2}.Mul(1 / math.Sqrt(5))

	axes = [...]Axes{
		geometry.IsoX: {
			Scan:   [2]image.Point{{-1, -1}, {1, 1}},
			Perp:   [2]image.Point{{1, -1}, {-1, 1}},
			Normal: [2]vec.Vec2{nx, nx.Mul(-1)},
		},
		geometry.IsoY: {
			Scan:   [2]image.Point{{1, -1}, {-1, 1}},
			Perp:   [2]image.Point{{-1, -1}, {1, 1}},
			Normal: [2]vec.Vec2{ny, ny.Mul(-1)},
		},
		geometry.IsoZ: {
			Scan:   [2]image.Point{{0, -1}, {0, 1}},
			Perp:   [2]image.Point{{-1, 0}, {1, 0}},
			Normal: [2]vec.Vec2{{X: -1}, {X: 1}},
		},
	}
)

// AxesFor returns the scan and perpendicular axes of direction d.
func AxesFor(d geometry.RunDirection) Axes {
	return axes[d]
}

// Flags is the classification of one pixel for one run direction.
type Flags struct {
	EdgeScan bool // some scan neighbour is not part of the run
	Point    bool // run terminus; equal to EdgeScan with two scan neighbours
	EdgePerp bool // some perpendicular neighbour is not part of the run
	Side     Side // set only if exactly one perpendicular neighbour is exposed
}

// Result holds the flags of all classified (pixel, direction) pairs.
type Result struct {
	w, h  int
	dirs  []geometry.DirSet
	flags [][len(geometry.Directions)]Flags
}

// At returns the flags of p for direction d.  The second result is false
// if p has no run membership for d.
func (r *Result) At(p image.Point, d geometry.RunDirection) (Flags, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= r.w || p.Y >= r.h {
		return Flags{}, false
	}
	i := p.Y*r.w + p.X
	if !r.dirs[i].Has(d) {
		return Flags{}, false
	}
	return r.flags[i][d], true
}

// Dirs returns the classified directions of p.
func (r *Result) Dirs(p image.Point) geometry.DirSet {
	if p.X < 0 || p.Y < 0 || p.X >= r.w || p.Y >= r.h {
		return 0
	}
	return r.dirs[p.Y*r.w+p.X]
}

// Len returns the number of classified (pixel, direction) pairs.
func (r *Result) Len() int {
	n := 0
	for _, s := range r.dirs {
		n += s.Len()
	}
	return n
}

// Classify computes the flags of every pixel present in runs, for every
// direction recorded there.  light is the light direction in screen space;
// only its sign relative to the run normals matters.
//
// A neighbour extends a run of direction d only if it is inside the
// canvas, solid, and has d in its own run map entry.
func Classify(c *canvas.Canvas, runs *geometry.RunMap, light vec.Vec2) *Result {
	w, h := runs.Width(), runs.Height()
	res := &Result{
		w:     w,
		h:     h,
		dirs:  make([]geometry.DirSet, w*h),
		flags: make([][len(geometry.Directions)]Flags, w*h),
	}

	for p, dirs := range runs.Entries {
		i := p.Y*w + p.X
		res.dirs[i] = dirs
		for d := range dirs.All {
			res.flags[i][d] = classifyPixel(c, runs, p, d, light)
		}
	}
	return res
}

func classifyPixel(c *canvas.Canvas, runs *geometry.RunMap, p image.Point, d geometry.RunDirection, light vec.Vec2) Flags {
	ax := axes[d]
	inRun := func(off image.Point) bool {
		q := p.Add(off)
		return c.Solid(q) && runs.At(q).Has(d)
	}

	s1, s2 := inRun(ax.Scan[0]), inRun(ax.Scan[1])
	p1, p2 := inRun(ax.Perp[0]), inRun(ax.Perp[1])

	var f Flags
	f.EdgeScan = !(s1 && s2)
	f.Point = f.EdgeScan && (!s1 || !s2)
	f.EdgePerp = !(p1 && p2)

	if p1 != p2 {
		n := ax.Normal[0]
		if p1 {
			n = ax.Normal[1]
		}
		if n.Dot(light) > 0 {
			f.Side = SideLight
		} else {
			f.Side = SideDark
		}
	}
	return f
}
