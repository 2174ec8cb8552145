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

package isopipe_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/isopipe"
	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/classify"
	"seehuhn.de/go/isopipe/geometry"
	"seehuhn.de/go/isopipe/testcases"
)

// TestScenarios checks the classification invariants on all scenarios.
func TestScenarios(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				cfg := tc.RenderConfig()
				res, err := isopipe.Render(tc.Request, testcases.PipeSets, cfg)
				if err != nil {
					t.Fatal(err)
				}
				if res.Runs.Len() == 0 {
					t.Fatal("nothing drawn")
				}
				failed := false
				fail := func(format string, args ...any) {
					t.Helper()
					t.Errorf(format, args...)
					failed = true
				}

				for p, dirs := range res.Runs.Entries {
					if !res.Canvas.Solid(p) {
						fail("%v: transparent pixel in run map", p)
					}
					for d := range dirs.All {
						f, ok := res.Flags.At(p, d)
						if !ok {
							fail("%v/%s: not classified", p, d)
							continue
						}
						ax := classify.AxesFor(d)
						s1 := inRun(res, p.Add(ax.Scan[0]), d)
						s2 := inRun(res, p.Add(ax.Scan[1]), d)
						p1 := inRun(res, p.Add(ax.Perp[0]), d)
						p2 := inRun(res, p.Add(ax.Perp[1]), d)
						if f.EdgeScan != (!s1 || !s2) {
							fail("%v/%s: edge_scan=%t with scan neighbours %t %t", p, d, f.EdgeScan, s1, s2)
						}
						if f.Point != f.EdgeScan {
							fail("%v/%s: point=%t, edge_scan=%t", p, d, f.Point, f.EdgeScan)
						}
						if f.EdgePerp != (!p1 || !p2) {
							fail("%v/%s: edge_perp=%t with perp neighbours %t %t", p, d, f.EdgePerp, p1, p2)
						}
						if (f.Side != classify.SideUndefined) != (p1 != p2) {
							fail("%v/%s: side %s with perp neighbours %t %t", p, d, f.Side, p1, p2)
						}
					}
				}

				for p := range res.BulkEdge.Points {
					if res.Bulk.Get(p) {
						fail("%v: in bulk and in bulk-adjacent edge", p)
					}
				}
				if failed {
					writeDebug(t, name, res)
				}
			})
		}
	}
}

func inRun(res *isopipe.Result, q image.Point, d geometry.RunDirection) bool {
	return res.Canvas.Solid(q) && res.Runs.At(q).Has(d)
}

func TestDeterminism(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			cfg := tc.RenderConfig()
			cfg.Debug = true
			a, err := isopipe.Render(tc.Request, testcases.PipeSets, cfg)
			if err != nil {
				t.Fatal(err)
			}
			b, err := isopipe.Render(tc.Request, testcases.PipeSets, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a.Canvas.Image().Pix, b.Canvas.Image().Pix) {
				t.Errorf("%s_%s: canvases differ", category, tc.Name)
			}
			if !bytes.Equal(a.Debug.Image().Pix, b.Debug.Image().Pix) {
				t.Errorf("%s_%s: debug canvases differ", category, tc.Name)
			}
		}
	}
}

// TestFloorStraightTermini checks that every scan line through a floor
// straight is a single span with run termini at both ends.
func TestFloorStraightTermini(t *testing.T) {
	req := isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Straight, Variant: "EW"}
	res, err := isopipe.Render(req, testcases.PipeSets, isopipe.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	// IsoX scans along (1,1): pixels on one scan line share x-y
	spans := map[int][]image.Point{}
	for p, dirs := range res.Runs.Entries {
		if dirs != geometry.DirSet(0).With(geometry.IsoX) {
			t.Fatalf("%v: directions %b", p, dirs)
		}
		spans[p.X-p.Y] = append(spans[p.X-p.Y], p)
	}
	if len(spans) < 6 {
		t.Fatalf("only %d scan lines", len(spans))
	}

	for key, pts := range spans {
		// row-major order sorts the points along the scan line
		for i := 1; i < len(pts); i++ {
			if pts[i] != pts[i-1].Add(image.Pt(1, 1)) {
				t.Errorf("scan line %d: gap between %v and %v", key, pts[i-1], pts[i])
			}
		}
		var points []image.Point
		for _, p := range pts {
			f, _ := res.Flags.At(p, geometry.IsoX)
			if f.Point {
				if !f.EdgeScan {
					t.Errorf("%v: point without edge_scan", p)
				}
				points = append(points, p)
			}
		}
		want := []image.Point{pts[0], pts[len(pts)-1]}
		if len(pts) == 1 {
			want = want[:1]
		}
		if !slices.Equal(points, want) {
			t.Errorf("scan line %d: termini %v, want %v", key, points, want)
		}
	}
}

// TestFloorCrossBulk checks that junction mass stays at the centre of a
// cross.
func TestFloorCrossBulk(t *testing.T) {
	req := isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"}
	cfg := isopipe.DefaultConfig()
	res, err := isopipe.Render(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}

	origin := geometry.NewLayout(cfg.Width, cfg.Height).Floor(0, 0)
	near := func(p image.Point) bool {
		d := p.Sub(origin)
		return max(d.X, -d.X) <= 12 && max(d.Y, -d.Y) <= 12
	}

	if res.Bulk.Len() == 0 {
		t.Fatal("empty bulk")
	}
	for p := range res.Bulk.Points {
		if !near(p) {
			t.Errorf("%v: bulk pixel away from the centre", p)
		}
	}
	dirsSeen := geometry.DirSet(0)
	for p, dirs := range res.Runs.Entries {
		dirsSeen |= dirs
		if !near(p) && dirs.Len() > 1 {
			t.Errorf("%v: %d directions away from the centre", p, dirs.Len())
		}
	}
	if dirsSeen.Len() != 2 {
		t.Errorf("cross uses %d directions, want 2", dirsSeen.Len())
	}
}

// TestWallRiserLightFlip checks that mirroring the light horizontally
// flips the resolved sides of a riser and nothing else.
func TestWallRiserLightFlip(t *testing.T) {
	req := isopipe.Request{PipeSet: "steel", Surface: geometry.WallN, Shape: geometry.Straight, Variant: "NS"}
	cfg := isopipe.DefaultConfig()
	a, err := isopipe.Render(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Light.X = -cfg.Light.X
	b, err := isopipe.Render(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}

	resolved := 0
	for p := range a.Runs.Entries {
		fa, _ := a.Flags.At(p, geometry.IsoZ)
		fb, ok := b.Flags.At(p, geometry.IsoZ)
		if !ok {
			t.Fatalf("%v: missing in second render", p)
		}
		if fa.EdgeScan != fb.EdgeScan || fa.Point != fb.Point || fa.EdgePerp != fb.EdgePerp {
			t.Errorf("%v: flags changed: %+v vs %+v", p, fa, fb)
		}
		switch fa.Side {
		case classify.SideLight:
			resolved++
			if fb.Side != classify.SideDark {
				t.Errorf("%v: light side became %s", p, fb.Side)
			}
		case classify.SideDark:
			resolved++
			if fb.Side != classify.SideLight {
				t.Errorf("%v: dark side became %s", p, fb.Side)
			}
		default:
			if fb.Side != classify.SideUndefined {
				t.Errorf("%v: undefined side became %s", p, fb.Side)
			}
		}
	}
	if resolved == 0 {
		t.Error("no resolved sides")
	}
}

// TestOrderIndependence checks that bulk detection and classification do
// not influence each other.
func TestOrderIndependence(t *testing.T) {
	for _, tc := range testcases.All["floor"] {
		cfg := tc.RenderConfig()
		c, runs, err := isopipe.Draw(tc.Request, testcases.PipeSets, cfg)
		if err != nil {
			t.Fatal(err)
		}
		light := cfg.Light.Screen()

		f1 := classify.Classify(c, runs, light)
		b1 := classify.Bulk(c, runs)

		b2 := classify.Bulk(c, runs)
		f2 := classify.Classify(c, runs, light)

		if !b1.Equal(b2) {
			t.Errorf("%s: bulk depends on order", tc.Name)
		}
		for p, dirs := range runs.Entries {
			for d := range dirs.All {
				x, _ := f1.At(p, d)
				y, _ := f2.At(p, d)
				if x != y {
					t.Errorf("%s: %v/%s: flags depend on order", tc.Name, p, d)
				}
			}
		}
	}
}

// TestBulkMonotonic draws the arms of a cross one at a time and checks
// that the bulk never loses pixels.
func TestBulkMonotonic(t *testing.T) {
	ps := testcases.PipeSets["steel"]
	layout := geometry.NewLayout(128, 256)
	segs, err := layout.Segments(geometry.Floor, geometry.Cross, "NESW")
	if err != nil {
		t.Fatal(err)
	}
	extra, err := layout.Segments(geometry.Floor, geometry.Straight, "NS")
	if err != nil {
		t.Fatal(err)
	}
	segs = append(segs, extra...)

	c := canvas.New(128, 256)
	em := geometry.NewEmitter(c)
	prev := canvas.NewMask(128, 256)
	for i, seg := range segs {
		em.DrawStroke(geometry.Stroke{
			From: seg.From, To: seg.To, Dir: seg.Dir, Mode: seg.Mode,
			Thickness: ps.Thickness, Color: ps.Body, Cap: ps.Cap,
		})
		bulk := classify.Bulk(c, em.Runs())
		for p := range prev.Points {
			if !bulk.Get(p) {
				t.Errorf("stroke %d removed %v from the bulk", i, p)
			}
		}
		prev = bulk
	}
	if prev.Len() == 0 {
		t.Error("no bulk after all strokes")
	}
}

func TestErrors(t *testing.T) {
	cfg := isopipe.DefaultConfig()

	_, err := isopipe.Render(isopipe.Request{PipeSet: "lead", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"}, testcases.PipeSets, cfg)
	if !errors.Is(err, isopipe.ErrUnknownPipeSet) {
		t.Errorf("unknown pipe set: got %v", err)
	}

	_, err = isopipe.Render(isopipe.Request{PipeSet: "steel", Surface: geometry.WallW, Shape: "valve", Variant: "EW"}, testcases.PipeSets, cfg)
	var unsupported *isopipe.UnsupportedGeometryError
	if !errors.As(err, &unsupported) {
		t.Errorf("unsupported geometry: got %v", err)
	} else if unsupported.Shape != "valve" || unsupported.Surface != geometry.WallW {
		t.Errorf("unexpected error details %+v", unsupported)
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("unsupported geometry does not match errors.ErrUnsupported")
	}

	bad := cfg
	bad.Width = 0
	_, err = isopipe.Render(isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"}, testcases.PipeSets, bad)
	if !errors.Is(err, isopipe.ErrInvalidConfig) {
		t.Errorf("bad canvas size: got %v", err)
	}

	bad = cfg
	bad.Bands.Glow[0] = 1.5
	_, err = isopipe.Render(isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"}, testcases.PipeSets, bad)
	if !errors.Is(err, isopipe.ErrInvalidConfig) {
		t.Errorf("bad band: got %v", err)
	}

	thin := testcases.Catalog{"thin": {ID: "thin", Body: testcases.PipeSets["steel"].Body}}
	_, err = isopipe.Render(isopipe.Request{PipeSet: "thin", Surface: geometry.Floor, Shape: geometry.Cross, Variant: "NESW"}, thin, cfg)
	if !errors.Is(err, isopipe.ErrInvalidConfig) {
		t.Errorf("zero thickness: got %v", err)
	}
}

func TestDebugFlag(t *testing.T) {
	req := isopipe.Request{PipeSet: "steel", Surface: geometry.WallW, Shape: geometry.Tee, Variant: "ESW"}
	cfg := isopipe.DefaultConfig()
	plain, err := isopipe.Render(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if plain.Debug != nil {
		t.Error("debug canvas without Debug flag")
	}

	cfg.Debug = true
	dbg, err := isopipe.Render(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if dbg.Debug == nil {
		t.Fatal("no debug canvas")
	}
	if dbg.Debug.Bounds() != dbg.Canvas.Bounds() {
		t.Errorf("debug canvas size %v, want %v", dbg.Debug.Bounds(), dbg.Canvas.Bounds())
	}
	if !bytes.Equal(plain.Canvas.Image().Pix, dbg.Canvas.Image().Pix) {
		t.Error("debug mode changed the sprite")
	}
}

// TestShading checks that shading only adds glow outside the drawing and
// keeps the sprite's own pixels opaque.
func TestShading(t *testing.T) {
	req := isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.Elbow, Variant: "NE"}
	cfg := isopipe.DefaultConfig()
	before, _, err := isopipe.Draw(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := isopipe.Render(req, testcases.PipeSets, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Shading.Triggers == 0 || res.Shading.Glow == 0 {
		t.Fatalf("shading stats %+v", res.Shading)
	}
	if res.Shading.Shadow+res.Shading.Highlight == 0 {
		t.Errorf("no bands drawn: %+v", res.Shading)
	}

	glow := 0
	for y := range cfg.Height {
		for x := range cfg.Width {
			p := image.Pt(x, y)
			was, is := before.At(p), res.Canvas.At(p)
			switch {
			case was.A > 0 && is.A != was.A:
				t.Errorf("%v: alpha of a drawn pixel changed from %d to %d", p, was.A, is.A)
			case was.A == 0 && is.A > 0:
				glow++
				if res.Runs.At(p) != 0 {
					t.Errorf("%v: glow on a run pixel", p)
				}
			}
		}
	}
	if glow == 0 {
		t.Error("no glow pixels")
	}
}

type recordHandler struct {
	msgs *[]string
}

func (h recordHandler) Enabled(_ context.Context, l slog.Level) bool { return true }
func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	*h.msgs = append(*h.msgs, r.Message)
	return nil
}
func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler      { return h }

func TestLogger(t *testing.T) {
	var msgs []string
	isopipe.SetLogger(slog.New(recordHandler{msgs: &msgs}))
	defer isopipe.SetLogger(nil)

	req := isopipe.Request{PipeSet: "steel", Surface: geometry.Floor, Shape: geometry.End, Variant: "S"}
	if _, err := isopipe.Render(req, testcases.PipeSets, isopipe.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(msgs, "rendered") {
		t.Errorf("log messages %v", msgs)
	}

	isopipe.SetLogger(nil)
	if isopipe.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

// writeDebug saves the sprite and its classification under debug/.
func writeDebug(t *testing.T, name string, res *isopipe.Result) {
	t.Helper()
	if err := os.MkdirAll("debug", 0755); err != nil {
		t.Log(err)
		return
	}
	imgs := map[string]*canvas.Canvas{"": res.Canvas, ".debug": res.Debug}
	for suffix, c := range imgs {
		if c == nil {
			continue
		}
		fname := filepath.Join("debug", strings.ReplaceAll(name, "/", "_")+suffix+".png")
		f, err := os.Create(fname)
		if err != nil {
			t.Log(err)
			return
		}
		err = png.Encode(f, c.Image())
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			t.Log(err)
		}
	}
}
