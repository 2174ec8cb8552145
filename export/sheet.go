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

	"golang.org/x/image/draw"
)

// Sheet packs tiles into a grid with cols columns, in reading order.  All
// cells have the size of the largest tile; smaller tiles are placed at the
// top left of their cell.
func Sheet(tiles []image.Image, cols int) *image.NRGBA {
	if len(tiles) == 0 || cols <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	cols = min(cols, len(tiles))
	rows := (len(tiles) + cols - 1) / cols

	var cell image.Point
	for _, t := range tiles {
		size := t.Bounds().Size()
		cell.X = max(cell.X, size.X)
		cell.Y = max(cell.Y, size.Y)
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, cols*cell.X, rows*cell.Y))
	for i, t := range tiles {
		dp := image.Pt((i%cols)*cell.X, (i/cols)*cell.Y)
		draw.Copy(sheet, dp, t, t.Bounds(), draw.Src, nil)
	}
	return sheet
}

// Enlarge scales img up by an integer factor, without interpolation.
func Enlarge(img image.Image, scale int) *image.NRGBA {
	scale = max(scale, 1)
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
