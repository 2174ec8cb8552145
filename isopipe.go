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

package isopipe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/isopipe/canvas"
	"seehuhn.de/go/isopipe/classify"
	"seehuhn.de/go/isopipe/debugviz"
	"seehuhn.de/go/isopipe/geometry"
	"seehuhn.de/go/isopipe/shade"
)

// ErrUnknownPipeSet is returned (wrapped) when a request names a pipe set
// the catalog does not know.
var ErrUnknownPipeSet = errors.New("isopipe: unknown pipe set")

// UnsupportedGeometryError is returned when no geometry is defined for the
// requested surface, shape and variant.  Batch callers should skip such
// requests.
type UnsupportedGeometryError = geometry.UnsupportedError

// Request identifies one sprite.
type Request struct {
	PipeSet string
	Surface geometry.Surface
	Shape   geometry.Shape
	Variant string
}

func (r Request) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", r.PipeSet, r.Surface, r.Shape, r.Variant)
}

// PipeSet describes the look of a family of pipes.
type PipeSet struct {
	ID        string
	Body      color.NRGBA
	Thickness int
	Cap       graphics.LineCapStyle

	// Offsets moves the geometry of each surface by a fixed number of
	// pixels.
	Offsets map[geometry.Surface]image.Point
}

// Catalog resolves pipe set IDs.
type Catalog interface {
	PipeSet(id string) (*PipeSet, bool)
}

// Result is the output of Render.
type Result struct {
	// Canvas is the shaded sprite.
	Canvas *canvas.Canvas

	// Debug is the diagnostic view, or nil if Config.Debug is not set.
	Debug *canvas.Canvas

	Runs     *geometry.RunMap
	Flags    *classify.Result
	Bulk     *canvas.Mask
	BulkEdge *canvas.Mask // bulk-adjacent silhouette ring
	Shading  shade.Stats
}

// Draw runs the geometry stage for req: it draws all strokes of the shape
// onto a fresh canvas and returns the canvas together with the frozen run
// map.  Errors are as for Render.
func Draw(req Request, cat Catalog, cfg Config) (*canvas.Canvas, *geometry.RunMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	ps, ok := cat.PipeSet(req.PipeSet)
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownPipeSet, req.PipeSet)
	}
	if ps.Thickness <= 0 || ps.Body.A == 0 {
		return nil, nil, fmt.Errorf("%w: pipe set %q: invisible strokes", ErrInvalidConfig, ps.ID)
	}

	layout := geometry.NewLayout(cfg.Width, cfg.Height)
	layout.LiftCube = cfg.LiftCube
	segs, err := layout.Segments(req.Surface, req.Shape, req.Variant)
	if err != nil {
		return nil, nil, err
	}

	c := canvas.New(cfg.Width, cfg.Height)
	em := geometry.NewEmitter(c)
	off := ps.Offsets[req.Surface]
	for _, seg := range segs {
		seg = seg.Translate(off)
		em.DrawStroke(geometry.Stroke{
			From:      seg.From,
			To:        seg.To,
			Thickness: ps.Thickness,
			Dir:       seg.Dir,
			Color:     ps.Body,
			Mode:      seg.Mode,
			Cap:       ps.Cap,
		})
	}
	runs := em.Runs()
	runs.Freeze()
	return c, runs, nil
}

// Render produces the sprite for req.
//
// If the pipe set is not in cat, the returned error wraps
// ErrUnknownPipeSet.  If the geometry is not defined, the error is an
// *UnsupportedGeometryError.
func Render(req Request, cat Catalog, cfg Config) (*Result, error) {
	c, runs, err := Draw(req, cat, cfg)
	if err != nil {
		return nil, err
	}

	flags := classify.Classify(c, runs, cfg.Light.Screen())
	bulk := classify.Bulk(c, runs)
	ring := classify.BulkAdjacentEdge(c, runs, bulk)

	res := &Result{
		Canvas:   c,
		Runs:     runs,
		Flags:    flags,
		Bulk:     bulk,
		BulkEdge: ring,
	}

	res.Shading, err = shade.Apply(c, runs, flags, cfg.Bands)
	if err != nil {
		return nil, err
	}

	if cfg.Debug {
		res.Debug = debugviz.Render(c, runs, flags, bulk, ring)
	}

	Logger().Debug("rendered",
		slog.String("request", req.String()),
		slog.Int("pixels", runs.Len()),
		slog.Int("classified", flags.Len()),
		slog.Int("bulk", bulk.Len()),
		slog.Int("ring", ring.Len()),
		slog.Int("triggers", res.Shading.Triggers))
	return res, nil
}
