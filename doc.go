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

// Package isopipe generates isometric pipe sprites.
//
// A sprite is described by a [Request]: a pipe set, a surface (the floor
// or one of two wall faces), a shape and a variant.  [Render] draws the
// shape's line geometry onto a fresh canvas, records for every pixel which
// run directions painted it, classifies the pixels by their role in the
// drawing, and applies light and shadow bands driven by that
// classification.
//
// The passes live in sub-packages: geometry (strokes and run membership),
// classify (edge, point and bulk detection), shade (bands) and debugviz
// (diagnostic recolouring).  Render runs them once each, in this order.
// Render keeps no state between calls and may be called concurrently.
package isopipe
