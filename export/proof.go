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

package export

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

// WriteProof writes a single-page PDF showing img as a grid of grey
// squares, each pixel scale points wide, for printing and inspection of
// the shading bands.  Pixels are composited over white and converted to
// grey by luminance; horizontal runs of equal grey are merged into one
// rectangle.
func WriteProof(fname string, img *image.NRGBA, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	paper := &pdf.Rectangle{URx: w * scale, URy: h * scale}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left, image origin top-left.
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, h * scale})

	for y := b.Min.Y; y < b.Max.Y; y++ {
		x := b.Min.X
		for x < b.Max.X {
			g, ok := grey(img, x, y)
			if !ok {
				x++
				continue
			}
			start := x
			for x++; x < b.Max.X; x++ {
				g2, ok2 := grey(img, x, y)
				if !ok2 || g2 != g {
					break
				}
			}
			page.SetFillColor(color.DeviceGray(float64(g) / 255))
			page.Rectangle(float64(start-b.Min.X), float64(y-b.Min.Y), float64(x-start), 1)
			page.Fill()
		}
	}

	return page.Close()
}

// grey returns the luminance of the pixel composited over white.  The
// second result is false for fully transparent pixels.
func grey(img *image.NRGBA, x, y int) (uint8, bool) {
	c := img.NRGBAAt(x, y)
	if c.A == 0 {
		return 0, false
	}
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	a := float64(c.A) / 255
	return uint8(lum*a + 255*(1-a) + 0.5), true
}
