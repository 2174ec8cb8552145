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

// Package debugviz renders a diagnostic view of the classification.
package debugviz

import (
	"image"
	"image/color"

	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/classify"
	"seehuhn.de/go/isopipe/geometry"
)

// Colours of the bulk overlay.
var (
	BulkInterior = color.NRGBA{255, 255, 255, 255}
	BulkEdge     = color.NRGBA{220, 220, 220, 255}
	BulkAdjacent = color.NRGBA{200, 200, 200, 255}
	Interior     = color.NRGBA{64, 64, 64, 255}
)

// Palette holds the per-direction colours.
type Palette struct {
	Point    color.NRGBA
	EdgeScan color.NRGBA
	EdgePerp color.NRGBA
}

// Palettes is indexed by run direction.
var Palettes = [...]Palette{
	geometry.IsoX: {
		Point:    color.NRGBA{255, 0, 255, 255},
		EdgeScan: color.NRGBA{0, 255, 255, 255},
		EdgePerp: color.NRGBA{0, 0, 180, 255},
	},
	geometry.IsoY: {
		Point:    color.NRGBA{255, 255, 0, 255},
		EdgeScan: color.NRGBA{0, 255, 0, 255},
		EdgePerp: color.NRGBA{0, 128, 128, 255},
	},
	geometry.IsoZ: {
		Point:    color.NRGBA{255, 0, 0, 255},
		EdgeScan: color.NRGBA{255, 128, 0, 255},
		EdgePerp: color.NRGBA{128, 64, 0, 255},
	},
}

// sideTint is the strength of the light/dark tint on edge colours.
const sideTint = 0.35

// Render returns a new canvas of the same size as c in which every pixel
// of runs is painted with a colour showing its classification.  Pixels
// not in runs stay transparent.  The colour is chosen by priority: bulk
// interior, bulk edge, bulk-adjacent edge, then the per-direction
// categories point, scan edge and perpendicular edge, and finally the
// interior colour.  Within a category the directions are tried in the
// order of geometry.Directions.
func Render(c *canvas.Canvas, runs *geometry.RunMap, flags *classify.Result, bulk, bulkAdjacent *canvas.Mask) *canvas.Canvas {
	out := canvas.New(c.Width(), c.Height())
	bulkEdge := classify.BulkEdge(bulk)
	for p, dirs := range runs.Entries {
		var col color.NRGBA
		switch {
		case bulk.Get(p) && !bulkEdge.Get(p):
			col = BulkInterior
		case bulkEdge.Get(p):
			col = BulkEdge
		case bulkAdjacent.Get(p):
			col = BulkAdjacent
		default:
			col = pixelColour(flags, p, dirs)
		}
		out.Set(p, col)
	}
	return out
}

func pixelColour(flags *classify.Result, p image.Point, dirs geometry.DirSet) color.NRGBA {
	var fs [len(geometry.Directions)]classify.Flags
	for d := range dirs.All {
		fs[d], _ = flags.At(p, d)
	}

	for d := range dirs.All {
		if fs[d].Point {
			return Palettes[d].Point
		}
	}
	for d := range dirs.All {
		if fs[d].EdgeScan {
			return tint(Palettes[d].EdgeScan, fs[d].Side)
		}
	}
	for d := range dirs.All {
		if fs[d].EdgePerp {
			return tint(Palettes[d].EdgePerp, fs[d].Side)
		}
	}
	return Interior
}

func tint(col color.NRGBA, side classify.Side) color.NRGBA {
	var target uint8
	switch side {
	case classify.SideLight:
		target = 255
	case classify.SideDark:
		target = 0
	default:
		return col
	}
	mix := func(v uint8) uint8 {
		return uint8(float64(v)*(1-sideTint) + float64(target)*sideTint)
	}
	return color.NRGBA{mix(col.R), mix(col.G), mix(col.B), col.A}
}
