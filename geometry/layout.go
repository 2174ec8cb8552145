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
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Surface identifies the plane a sprite is drawn on.
type Surface string

// The supported surfaces.
const (
	Floor Surface = "floor"
	WallN Surface = "wall_n"
	WallW Surface = "wall_w"
)

// Surfaces lists all surfaces in canonical order.
var Surfaces = []Surface{Floor, WallN, WallW}

// Layout holds the screen-space anchors of a sprite tile.  World
// coordinates on the floor plane map to the screen by the 2:1 isometric
// projection
//
//	x' = CX + (x - y)
//	y' = CY + (x + y)/2
//
// Walls are three cubes high.  Horizontal wall runs sit at the centre of
// cube LiftCube, counted from the floor.
type Layout struct {
	CX, CY   int // screen position of the floor tile centre
	Half     int // arm length in world units
	Cube     int // height of one wall cube, in pixels
	LiftCube int
}

// NewLayout returns the layout for a width×height tile.  For the standard
// 128×256 tile this puts the floor centre at (63, 223), uses arms of 32
// units and 64 pixel cubes.
func NewLayout(width, height int) Layout {
	return Layout{
		CX:       width/2 - 1,
		CY:       height - 33,
		Half:     width / 4,
		Cube:     width / 2,
		LiftCube: 1,
	}
}

// CTM returns the floor projection as a transformation matrix.
func (l Layout) CTM() matrix.Matrix {
	return matrix.Matrix{1, 0.5, -1, 0.5, float64(l.CX), float64(l.CY)}
}

// Floor projects the floor point (wx, wy) to the pixel containing it.
func (l Layout) Floor(wx, wy int) image.Point {
	x, y := l.CTM().Apply(float64(wx), float64(wy))
	return image.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// WallHeight returns the height of a wall in pixels.
func (l Layout) WallHeight() int { return 3 * l.Cube }

// Lift returns how far horizontal wall runs are raised above the floor
// line, in pixels.
func (l Layout) Lift() int { return l.LiftCube*l.Cube + l.Cube/2 }

// wallFrame describes a wall face in screen space.
type wallFrame struct {
	base        image.Point // face centre on the floor line
	left, right image.Point // screen-left/right end of the face on the floor line
	horiz       RunDirection
}

func (l Layout) wall(s Surface) wallFrame {
	h := l.Half
	if s == WallW {
		return wallFrame{
			base:  l.Floor(-h, 0),
			left:  l.Floor(-h, h),
			right: l.Floor(-h, -h),
			horiz: IsoY,
		}
	}
	return wallFrame{
		base:  l.Floor(0, -h),
		left:  l.Floor(-h, -h),
		right: l.Floor(h, -h),
		horiz: IsoX,
	}
}
