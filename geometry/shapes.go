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
	"errors"
	"fmt"
	"image"
	"slices"
)

// Shape is a pipe primitive.
type Shape string

// The shapes of the catalog.
const (
	Straight Shape = "straight"
	Elbow    Shape = "elbow"
	Tee      Shape = "tee"
	Cross    Shape = "cross"
	End      Shape = "end"
)

// Shapes lists all shapes in canonical order.
var Shapes = []Shape{Straight, Elbow, Tee, Cross, End}

// Each variant names the arms of a shape by compass letter.  On walls N
// and S point up and down, E and W to the screen-right and screen-left
// end of the face.  Straight pipes are the exception: "EW" and "NS" are a
// single segment through the centre (on walls "NS" is the full-height
// riser).
var variants = map[Shape][]string{
	Straight: {"EW", "NS"},
	Elbow:    {"NE", "ES", "SW", "WN"},
	Tee:      {"NEW", "NES", "ESW", "NSW"},
	Cross:    {"NESW"},
	End:      {"N", "E", "S", "W"},
}

// Variants returns the variants defined for shape.
func Variants(shape Shape) []string {
	return slices.Clone(variants[shape])
}

// Segment is one projected line segment of a shape.
type Segment struct {
	From, To image.Point
	Dir      RunDirection
	Mode     Mode
}

// Translate returns the segment moved by off.
func (s Segment) Translate(off image.Point) Segment {
	s.From = s.From.Add(off)
	s.To = s.To.Add(off)
	return s
}

// UnsupportedError is returned when no geometry is defined for a
// surface/shape/variant combination.  Callers are expected to skip the
// job.
type UnsupportedError struct {
	Surface Surface
	Shape   Shape
	Variant string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("geometry: %s/%s/%s not implemented", e.Surface, e.Shape, e.Variant)
}

// Is makes UnsupportedError match errors.ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == errors.ErrUnsupported
}

// Segments returns the projected segments of shape/variant on surface.
func (l Layout) Segments(surface Surface, shape Shape, variant string) ([]Segment, error) {
	if !slices.Contains(Surfaces, surface) || !slices.Contains(variants[shape], variant) {
		return nil, &UnsupportedError{Surface: surface, Shape: shape, Variant: variant}
	}
	if surface == Floor {
		return l.floorSegments(shape, variant), nil
	}
	return l.wallSegments(surface, shape, variant), nil
}

func (l Layout) floorSegments(shape Shape, variant string) []Segment {
	h := l.Half
	if shape == Straight {
		if variant == "EW" {
			return []Segment{{From: l.Floor(-h, 0), To: l.Floor(h, 0), Dir: IsoX, Mode: Smooth}}
		}
		return []Segment{{From: l.Floor(0, -h), To: l.Floor(0, h), Dir: IsoY, Mode: Smooth}}
	}

	origin := l.Floor(0, 0)
	var segs []Segment
	for _, arm := range variant {
		seg := Segment{From: origin, Mode: Smooth}
		switch arm {
		case 'N':
			seg.To, seg.Dir = l.Floor(0, -h), IsoY
		case 'S':
			seg.To, seg.Dir = l.Floor(0, h), IsoY
		case 'E':
			seg.To, seg.Dir = l.Floor(h, 0), IsoX
		case 'W':
			seg.To, seg.Dir = l.Floor(-h, 0), IsoX
		}
		segs = append(segs, seg)
	}
	return segs
}

func (l Layout) wallSegments(surface Surface, shape Shape, variant string) []Segment {
	f := l.wall(surface)
	top := f.base.Y - l.WallHeight()
	lift := image.Point{Y: -l.Lift()}
	left, right := f.left.Add(lift), f.right.Add(lift)

	if shape == Straight {
		if variant == "NS" {
			return []Segment{{From: f.base, To: image.Point{X: f.base.X, Y: top}, Dir: IsoZ, Mode: Multiline}}
		}
		return []Segment{{From: left, To: right, Dir: f.horiz, Mode: Multiline}}
	}

	centre := f.base.Add(lift)
	var segs []Segment
	for _, arm := range variant {
		seg := Segment{From: centre, Mode: Multiline}
		switch arm {
		case 'N':
			seg.To, seg.Dir = image.Point{X: centre.X, Y: top}, IsoZ
		case 'S':
			seg.To, seg.Dir = f.base, IsoZ
		case 'E':
			seg.To, seg.Dir = right, f.horiz
		case 'W':
			seg.To, seg.Dir = left, f.horiz
		}
		segs = append(segs, seg)
	}
	return segs
}
