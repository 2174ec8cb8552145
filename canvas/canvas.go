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

// Package canvas provides the fixed-size pixel buffers used by the sprite
// pipeline: an RGBA Canvas and a dense boolean Mask over the same grid.
//
// Lookups outside the grid never fail.  They read as transparent pixels
// and unset mask entries.
package canvas

import (
	"image"
	"image/color"
)

// Canvas is a fixed-size grid of non-premultiplied RGBA pixels.  A pixel is
// solid if its alpha is greater than zero.  The dimensions never change
// after creation.
type Canvas struct {
	img    *image.NRGBA
	shaded bool
}

// New allocates a fully transparent canvas.
func New(width, height int) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Bounds returns the pixel rectangle of the canvas.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// In reports whether p lies inside the canvas.
func (c *Canvas) In(p image.Point) bool {
	return p.In(c.img.Rect)
}

// Solid reports whether p is inside the canvas and has non-zero alpha.
func (c *Canvas) Solid(p image.Point) bool {
	if !c.In(p) {
		return false
	}
	return c.img.Pix[c.img.PixOffset(p.X, p.Y)+3] > 0
}

// At returns the colour at p, or transparent black outside the canvas.
func (c *Canvas) At(p image.Point) color.NRGBA {
	if !c.In(p) {
		return color.NRGBA{}
	}
	return c.img.NRGBAAt(p.X, p.Y)
}

// Set stores col at p.  Points outside the canvas are ignored.
func (c *Canvas) Set(p image.Point, col color.NRGBA) {
	if !c.In(p) {
		return
	}
	c.img.SetNRGBA(p.X, p.Y, col)
}

// Opacity returns a snapshot of the solid pixels.
func (c *Canvas) Opacity() *Mask {
	m := NewMask(c.Width(), c.Height())
	for y := range c.Height() {
		for x := range c.Width() {
			if c.img.Pix[c.img.PixOffset(x, y)+3] > 0 {
				m.bits[y*m.w+x] = true
			}
		}
	}
	return m
}

// Image returns the canvas as an image.  The image shares its pixels with
// the canvas.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Clone returns a deep copy of the canvas, including its shading state.
func (c *Canvas) Clone() *Canvas {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return &Canvas{img: img, shaded: c.shaded}
}

// Shaded reports whether light and shadow bands have been applied.
func (c *Canvas) Shaded() bool { return c.shaded }

// MarkShaded records that light and shadow bands have been applied.
func (c *Canvas) MarkShaded() { c.shaded = true }
