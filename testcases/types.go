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

// Package testcases holds canonical inputs shared by the tests and tools
// of this module: rasteriser cases for the thick-line primitive, render
// scenarios covering the shape catalog, and a fixed pipe set catalog.
package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/isopipe"
)

// RasterCase defines a single rasteriser test: one stroked segment.
type RasterCase struct {
	Name     string                // lowercase a-z and _ only
	From, To vec.Vec2              // segment endpoints, in user space
	Width    int                   // canvas width in pixels
	Height   int                   // canvas height in pixels
	Line     float64               // line width (>0)
	Cap      graphics.LineCapStyle // LineCapButt, LineCapRound, LineCapSquare
	CTM      matrix.Matrix         // transformation matrix (zero-value means no transform)

	// Area is the expected total coverage, in pixels.  Zero means no
	// expectation.
	Area float64
}

// TestCase is a render scenario.
type TestCase struct {
	Name    string // lowercase a-z, 0-9 and _ only
	Request isopipe.Request

	// Config modifies the default configuration.  Nil means
	// isopipe.DefaultConfig().
	Config func(*isopipe.Config)
}

// RenderConfig returns the configuration for tc.
func (tc TestCase) RenderConfig() isopipe.Config {
	cfg := isopipe.DefaultConfig()
	if tc.Config != nil {
		tc.Config(&cfg)
	}
	return cfg
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
