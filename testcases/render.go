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
	"image"
	"image/color"
	"strings"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/isopipe"
	"seehuhn.de/go/isopipe/geometry"
)

// Catalog is an in-memory pipe set catalog.
type Catalog map[string]*isopipe.PipeSet

// PipeSet implements isopipe.Catalog.
func (c Catalog) PipeSet(id string) (*isopipe.PipeSet, bool) {
	ps, ok := c[id]
	return ps, ok
}

// PipeSets holds the pipe sets used by the render scenarios.
var PipeSets = Catalog{
	"steel": {
		ID:        "steel",
		Body:      color.NRGBA{R: 120, G: 124, B: 130, A: 255},
		Thickness: 6,
		Cap:       graphics.LineCapButt,
		Offsets:   noOffsets(),
	},
	"copper": {
		ID:        "copper",
		Body:      color.NRGBA{R: 184, G: 115, B: 51, A: 255},
		Thickness: 4,
		Cap:       graphics.LineCapRound,
		Offsets:   noOffsets(),
	},
	"conduit": {
		ID:        "conduit",
		Body:      color.NRGBA{R: 60, G: 90, B: 60, A: 255},
		Thickness: 3,
		Cap:       graphics.LineCapSquare,
		Offsets: map[geometry.Surface]image.Point{
			geometry.Floor: {X: 0, Y: -4},
			geometry.WallN: {X: 4, Y: 0},
			geometry.WallW: {X: -4, Y: 0},
		},
	},
}

func noOffsets() map[geometry.Surface]image.Point {
	res := make(map[geometry.Surface]image.Point, len(geometry.Surfaces))
	for _, s := range geometry.Surfaces {
		res[s] = image.Point{}
	}
	return res
}

// surfaceCases returns one scenario for each shape and variant on the
// given surface.
func surfaceCases(surface geometry.Surface, pipeSet string) []TestCase {
	var cases []TestCase
	for _, shape := range geometry.Shapes {
		for _, v := range geometry.Variants(shape) {
			cases = append(cases, TestCase{
				Name: string(shape) + "_" + strings.ToLower(v),
				Request: isopipe.Request{
					PipeSet: pipeSet,
					Surface: surface,
					Shape:   shape,
					Variant: v,
				},
			})
		}
	}
	return cases
}

var pipeSetCases = []TestCase{
	{
		Name:    "copper_floor_cross",
		Request: isopipe.Request{PipeSet: "copper", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"},
	},
	{
		Name:    "copper_wall_n_tee",
		Request: isopipe.Request{PipeSet: "copper", Surface: geometry.WallN, Shape: geometry.Tee, Variant: "NES"},
	},
	{
		Name:    "conduit_floor_elbow",
		Request: isopipe.Request{PipeSet: "conduit", Surface: geometry.Floor, Shape: geometry.Elbow, Variant: "ES"},
	},
	{
		Name:    "conduit_wall_w_straight",
		Request: isopipe.Request{PipeSet: "conduit", Surface: geometry.WallW, Shape: geometry.Straight, Variant: "NS"},
	},
}

var configCases = []TestCase{
	{
		Name:    "light_from_right",
		Request: isopipe.Request{PipeSet: "steel", Surface: geometry.WallN, Shape: geometry.Cross, Variant: "NESW"},
		Config: func(cfg *isopipe.Config) {
			cfg.Light.X = -cfg.Light.X
		},
	},
	{
		Name:    "lift_cube_0",
		Request: isopipe.Request{PipeSet: "steel", Surface: geometry.WallW, Shape: geometry.Tee, Variant: "NSW"},
		Config: func(cfg *isopipe.Config) {
			cfg.LiftCube = 0
		},
	},
	{
		Name:    "debug",
		Request: isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Tee, Variant: "NEW"},
		Config: func(cfg *isopipe.Config) {
			cfg.Debug = true
		},
	},
	{
		Name:    "small_tile",
		Request: isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"},
		Config: func(cfg *isopipe.Config) {
			cfg.Width, cfg.Height = 64, 128
		},
	},
}
