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

package pipeset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/isopipe"
	"seehuhn.de/go/isopipe/geometry"
)

// Sets maps pipe set IDs to pipe sets.  It implements isopipe.Catalog.
type Sets map[string]*isopipe.PipeSet

// PipeSet implements isopipe.Catalog.
func (s Sets) PipeSet(id string) (*isopipe.PipeSet, bool) {
	ps, ok := s[id]
	return ps, ok
}

// IDs returns the pipe set IDs in sorted order.
func (s Sets) IDs() []string {
	return slices.Sorted(maps.Keys(s))
}

type pipeSetYAML struct {
	Colors struct {
		Body []int `yaml:"body"`
	} `yaml:"colors"`
	Thickness int              `yaml:"thickness"`
	Cap       string           `yaml:"cap"`
	Offsets   map[string][]int `yaml:"offsets"`
}

// ParsePipeSets decodes and validates the contents of pipe_sets.yaml.
func ParsePipeSets(data []byte) (Sets, error) {
	var raw map[string]pipeSetYAML
	if err := decodeStrict(data, &raw); err != nil {
		return nil, &ValidationError{File: PipeSetsFile, Msg: err.Error()}
	}
	if len(raw) == 0 {
		return nil, &ValidationError{File: PipeSetsFile, Msg: "no pipe sets defined"}
	}

	sets := make(Sets, len(raw))
	for id, r := range raw {
		ps, err := r.pipeSet(id)
		if err != nil {
			return nil, err
		}
		sets[id] = ps
	}
	return sets, nil
}

func (r *pipeSetYAML) pipeSet(id string) (*isopipe.PipeSet, error) {
	fail := func(format string, args ...any) error {
		return &ValidationError{File: PipeSetsFile, Item: id, Msg: fmt.Sprintf(format, args...)}
	}

	body, err := parseColor(r.Colors.Body)
	if err != nil {
		return nil, fail("colors.body: %v", err)
	}
	if r.Thickness <= 0 {
		return nil, fail("thickness must be positive, got %d", r.Thickness)
	}
	lineCap, err := parseCap(r.Cap)
	if err != nil {
		return nil, fail("%v", err)
	}

	if r.Offsets == nil {
		return nil, fail("missing offsets")
	}
	offsets := make(map[geometry.Surface]image.Point, len(geometry.Surfaces))
	for _, s := range geometry.Surfaces {
		v, ok := r.Offsets[string(s)]
		if !ok {
			return nil, fail("missing offset for surface %q", s)
		}
		if len(v) != 2 {
			return nil, fail("offset for surface %q must be [dx, dy]", s)
		}
		offsets[s] = image.Point{X: v[0], Y: v[1]}
	}
	for name := range r.Offsets {
		if !slices.Contains(geometry.Surfaces, geometry.Surface(name)) {
			return nil, fail("offset for unknown surface %q", name)
		}
	}

	return &isopipe.PipeSet{
		ID:        id,
		Body:      body,
		Thickness: r.Thickness,
		Cap:       lineCap,
		Offsets:   offsets,
	}, nil
}

func parseColor(v []int) (color.NRGBA, error) {
	if len(v) != 3 && len(v) != 4 {
		return color.NRGBA{}, fmt.Errorf("need [r, g, b] or [r, g, b, a], got %d values", len(v))
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return color.NRGBA{}, fmt.Errorf("component %d out of range", c)
		}
	}
	col := color.NRGBA{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2]), A: 255}
	if len(v) == 4 {
		col.A = uint8(v[3])
	}
	if col.A == 0 {
		return color.NRGBA{}, errors.New("colour is fully transparent")
	}
	return col, nil
}

func parseCap(s string) (graphics.LineCapStyle, error) {
	switch s {
	case "", "butt":
		return graphics.LineCapButt, nil
	case "round":
		return graphics.LineCapRound, nil
	case "square":
		return graphics.LineCapSquare, nil
	default:
		return 0, fmt.Errorf("unknown cap style %q", s)
	}
}

// decodeStrict decodes a YAML document, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
