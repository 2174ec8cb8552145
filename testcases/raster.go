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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf/graphics"
)

var capCases = []RasterCase{
	{
		Name:   "line_butt",
		From:   pt(10, 32),
		To:     pt(54, 32),
		Width:  64,
		Height: 64,
		Line:   8,
		Cap:    graphics.LineCapButt,
		Area:   44 * 8,
	},
	{
		Name:   "line_round",
		From:   pt(10, 32),
		To:     pt(54, 32),
		Width:  64,
		Height: 64,
		Line:   8,
		Cap:    graphics.LineCapRound,
		Area:   44*8 + 16*math.Pi,
	},
	{
		Name:   "line_square",
		From:   pt(10, 32),
		To:     pt(54, 32),
		Width:  64,
		Height: 64,
		Line:   8,
		Cap:    graphics.LineCapSquare,
		Area:   52 * 8,
	},
	{
		Name:   "clipped",
		From:   pt(-10, 32),
		To:     pt(30, 32),
		Width:  64,
		Height: 64,
		Line:   4,
		Cap:    graphics.LineCapButt,
		Area:   30 * 4,
	},
}

// runCases follow the run directions of the sprites.  The last case
// strokes pixel indices through a pixel-centre CTM, as the geometry
// emitter does.
var runCases = []RasterCase{
	{
		Name:   "riser",
		From:   pt(32, 8),
		To:     pt(32, 56),
		Width:  64,
		Height: 64,
		Line:   6,
		Cap:    graphics.LineCapButt,
		Area:   48 * 6,
	},
	{
		Name:   "floor_x",
		From:   pt(8, 12),
		To:     pt(56, 36),
		Width:  64,
		Height: 64,
		Line:   6,
		Cap:    graphics.LineCapButt,
		Area:   6 * math.Sqrt(48*48+24*24),
	},
	{
		Name:   "floor_y",
		From:   pt(56, 12),
		To:     pt(8, 36),
		Width:  64,
		Height: 64,
		Line:   6,
		Cap:    graphics.LineCapSquare,
		Area:   6 * (math.Sqrt(48*48+24*24) + 6),
	},
	{
		Name:   "pixel_centres",
		From:   pt(10, 20),
		To:     pt(40, 20),
		Width:  64,
		Height: 64,
		Line:   4,
		Cap:    graphics.LineCapButt,
		CTM:    matrix.Translate(0.5, 0.5),
		Area:   30 * 4,
	},
}
