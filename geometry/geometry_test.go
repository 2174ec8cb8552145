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
	"image"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/isopipe/canvas"
)

var body = color.NRGBA{R: 120, G: 124, B: 130, A: 255}

func TestDirSet(t *testing.T) {
	var s DirSet
	if s.Len() != 0 || s.Has(IsoX) {
		t.Fatal("zero DirSet is not empty")
	}
	s = s.With(IsoZ).With(IsoX).With(IsoZ)
	if s.Len() != 2 || !s.Has(IsoX) || s.Has(IsoY) || !s.Has(IsoZ) {
		t.Errorf("unexpected set %b", s)
	}

	var got []RunDirection
	for d := range s.All {
		got = append(got, d)
	}
	if len(got) != 2 || got[0] != IsoX || got[1] != IsoZ {
		t.Errorf("All yields %v, want [iso_x iso_z]", got)
	}
}

func TestRunMap(t *testing.T) {
	m := NewRunMap(4, 4)
	m.Add(image.Pt(1, 2), IsoY)
	m.Add(image.Pt(1, 2), IsoX)
	m.Add(image.Pt(-1, 2), IsoX)
	m.Add(image.Pt(4, 0), IsoX)

	if got := m.At(image.Pt(1, 2)); got.Len() != 2 {
		t.Errorf("At = %b, want two directions", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if m.At(image.Pt(-1, 2)) != 0 {
		t.Error("out of bounds pixel has entries")
	}

	m.Freeze()
	defer func() {
		if recover() == nil {
			t.Error("Add on frozen map did not panic")
		}
	}()
	m.Add(image.Pt(0, 0), IsoZ)
}

func TestLayout(t *testing.T) {
	l := NewLayout(128, 256)
	cases := []struct {
		wx, wy int
		want   image.Point
	}{
		{0, 0, image.Pt(63, 223)},
		{32, 0, image.Pt(95, 239)},
		{0, 32, image.Pt(31, 239)},
		{-32, 0, image.Pt(31, 207)},
		{0, -32, image.Pt(95, 207)},
		{1, 0, image.Pt(64, 223)},
	}
	for _, c := range cases {
		if got := l.Floor(c.wx, c.wy); got != c.want {
			t.Errorf("Floor(%d, %d) = %v, want %v", c.wx, c.wy, got, c.want)
		}
	}
	for wx := -32; wx <= 32; wx += 8 {
		for wy := -32; wy <= 32; wy += 8 {
			x, y := l.CTM().Apply(float64(wx), float64(wy))
			want := image.Pt(int(math.Floor(x)), int(math.Floor(y)))
			if got := l.Floor(wx, wy); got != want {
				t.Errorf("Floor(%d, %d) = %v, CTM gives %v", wx, wy, got, want)
			}
		}
	}
	if l.WallHeight() != 192 || l.Lift() != 96 {
		t.Errorf("wall height %d, lift %d", l.WallHeight(), l.Lift())
	}
}

func TestSegments(t *testing.T) {
	l := NewLayout(128, 256)
	for _, s := range Surfaces {
		for _, shape := range Shapes {
			for _, v := range Variants(shape) {
				segs, err := l.Segments(s, shape, v)
				if err != nil {
					t.Errorf("%s/%s/%s: %v", s, shape, v, err)
					continue
				}
				want := len(v)
				if shape == Straight {
					want = 1
				}
				if len(segs) != want {
					t.Errorf("%s/%s/%s: %d segments, want %d", s, shape, v, len(segs), want)
				}
				for _, seg := range segs {
					wantMode := Multiline
					if s == Floor {
						wantMode = Smooth
					}
					if seg.Mode != wantMode {
						t.Errorf("%s/%s/%s: mode %s", s, shape, v, seg.Mode)
					}
					if s == Floor && seg.Dir == IsoZ {
						t.Errorf("%s/%s/%s: riser on the floor", s, shape, v)
					}
				}
			}
		}
	}
}

func TestUnsupported(t *testing.T) {
	l := NewLayout(128, 256)
	cases := []struct {
		surface Surface
		shape   Shape
		variant string
	}{
		{"ceiling", Straight, "EW"},
		{Floor, "valve", "EW"},
		{Floor, Elbow, "NS"},
		{WallN, Cross, "nesw"},
	}
	for _, c := range cases {
		_, err := l.Segments(c.surface, c.shape, c.variant)
		var u *UnsupportedError
		if !errors.As(err, &u) {
			t.Errorf("%s/%s/%s: got %v, want UnsupportedError", c.surface, c.shape, c.variant, err)
			continue
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			t.Errorf("%s/%s/%s: error does not match ErrUnsupported", c.surface, c.shape, c.variant)
		}
		if u.Variant != c.variant {
			t.Errorf("variant %q, want %q", u.Variant, c.variant)
		}
	}
}

// TestCoverageIsIsolated checks that the coverage of a stroke does not
// depend on what has been drawn before.
func TestCoverageIsIsolated(t *testing.T) {
	a := Stroke{From: image.Pt(10, 10), To: image.Pt(50, 30), Thickness: 6, Dir: IsoX, Color: body}
	b := Stroke{From: image.Pt(50, 10), To: image.Pt(10, 30), Thickness: 6, Dir: IsoY, Color: body}

	fresh := NewEmitter(canvas.New(64, 64))
	want := fresh.Coverage(b)
	wantLen := want.Len()
	wantPts := map[image.Point]bool{}
	for p := range want.Points {
		wantPts[p] = true
	}

	used := NewEmitter(canvas.New(64, 64))
	used.DrawStroke(a)
	got := used.Coverage(b)
	if got.Len() != wantLen {
		t.Fatalf("coverage has %d pixels, want %d", got.Len(), wantLen)
	}
	for p := range got.Points {
		if !wantPts[p] {
			t.Errorf("unexpected pixel %v", p)
		}
	}
}

// TestOverlapRecorded checks that pixels painted by two strokes carry both
// directions, even though the second stroke finds them already solid.
func TestOverlapRecorded(t *testing.T) {
	e := NewEmitter(canvas.New(64, 64))
	a := Stroke{From: image.Pt(10, 10), To: image.Pt(50, 30), Thickness: 6, Dir: IsoX, Color: body}
	b := Stroke{From: image.Pt(50, 10), To: image.Pt(10, 30), Thickness: 6, Dir: IsoY, Color: body}
	na := e.DrawStroke(a)
	nb := e.DrawStroke(b)

	both := 0
	for p, dirs := range e.Runs().Entries {
		if !e.Canvas().Solid(p) {
			t.Errorf("%v: run map entry for transparent pixel", p)
		}
		if dirs.Len() == 2 {
			both++
		}
	}
	if both == 0 {
		t.Fatal("no pixel has both directions")
	}
	if got := e.Runs().Len(); got != na+nb-both {
		t.Errorf("run map has %d pixels, want %d", got, na+nb-both)
	}
}

func TestTransparentStroke(t *testing.T) {
	e := NewEmitter(canvas.New(16, 16))
	s := Stroke{From: image.Pt(2, 2), To: image.Pt(12, 12), Thickness: 3, Dir: IsoX}
	if n := e.DrawStroke(s); n != 0 {
		t.Errorf("transparent stroke covered %d pixels", n)
	}
	s.Color = body
	s.Thickness = 0
	if n := e.DrawStroke(s); n != 0 {
		t.Errorf("zero-width stroke covered %d pixels", n)
	}
	if e.Runs().Len() != 0 {
		t.Error("run map is not empty")
	}
}

func TestMultilineRiser(t *testing.T) {
	e := NewEmitter(canvas.New(32, 64))
	s := Stroke{
		From: image.Pt(15, 60), To: image.Pt(15, 4),
		Thickness: 6, Dir: IsoZ, Color: body, Mode: Multiline,
	}
	n := e.DrawStroke(s)
	if n != 6*57 {
		t.Errorf("riser covers %d pixels, want %d", n, 6*57)
	}
	for y := 4; y <= 60; y++ {
		for x := 10; x < 20; x++ {
			want := x >= 12 && x <= 17
			if got := e.Canvas().Solid(image.Pt(x, y)); got != want {
				t.Errorf("(%d,%d): solid=%t, want %t", x, y, got, want)
			}
		}
	}
}

func TestMultilineDiagonal(t *testing.T) {
	e := NewEmitter(canvas.New(64, 64))
	s := Stroke{
		From: image.Pt(4, 10), To: image.Pt(44, 30),
		Thickness: 4, Dir: IsoX, Color: body, Mode: Multiline,
	}
	e.DrawStroke(s)
	// every column of the segment holds exactly Thickness pixels
	for x := 4; x <= 44; x++ {
		n := 0
		for y := range 64 {
			if e.Canvas().Solid(image.Pt(x, y)) {
				n++
			}
		}
		if n != 4 {
			t.Errorf("column %d: %d pixels, want 4", x, n)
		}
	}
}

func TestSmoothCaps(t *testing.T) {
	base := Stroke{From: image.Pt(10, 16), To: image.Pt(40, 16), Thickness: 3, Dir: IsoX, Color: body}
	var sizes []int
	for _, c := range []graphics.LineCapStyle{graphics.LineCapButt, graphics.LineCapRound, graphics.LineCapSquare} {
		s := base
		s.Cap = c
		e := NewEmitter(canvas.New(64, 32))
		sizes = append(sizes, e.DrawStroke(s))
	}
	if !(sizes[0] < sizes[1] && sizes[1] < sizes[2]) {
		t.Errorf("pixel counts butt/round/square = %v, want increasing", sizes)
	}
	// the end columns are exactly half covered, which counts as solid
	if sizes[0] != 31*3 {
		t.Errorf("butt stroke covers %d pixels, want %d", sizes[0], 31*3)
	}
}
