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
	"fmt"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/isopipe"
	"seehuhn.de/go/isopipe/geometry"
)

// Geometry is the list of shapes and variants from geometry.yaml, in file
// order.
type Geometry struct {
	Shapes []ShapeVariants
}

// ShapeVariants lists the variants to generate for one shape.
type ShapeVariants struct {
	Shape    geometry.Shape
	Variants []string
}

// ParseGeometry decodes and validates the contents of geometry.yaml.
//
// Each entry under "pipes" lists its variants either as a sequence under
// "variants", or as the keys of a mapping under "segments".  Shapes and
// variants which have no geometry are accepted here; rendering reports
// them as unsupported.  Other keys in a shape entry are rejected.
func ParseGeometry(data []byte) (*Geometry, error) {
	fail := func(item, format string, args ...any) error {
		return &ValidationError{File: GeometryFile, Item: item, Msg: fmt.Sprintf(format, args...)}
	}

	var doc struct {
		Pipes yaml.Node `yaml:"pipes"`
	}
	if err := decodeStrict(data, &doc); err != nil {
		return nil, &ValidationError{File: GeometryFile, Msg: err.Error()}
	}
	if doc.Pipes.Kind != yaml.MappingNode {
		return nil, fail("", "missing 'pipes' section")
	}

	g := &Geometry{}
	for i := 0; i+1 < len(doc.Pipes.Content); i += 2 {
		name := doc.Pipes.Content[i].Value
		node := doc.Pipes.Content[i+1]
		if node.Kind != yaml.MappingNode {
			return nil, fail(name, "expected a mapping")
		}
		for j := 0; j+1 < len(node.Content); j += 2 {
			if key := node.Content[j]; key.Value != "variants" && key.Value != "segments" {
				return nil, fail(name, "line %d: unknown field %q", key.Line, key.Value)
			}
		}
		var entry struct {
			Variants []string  `yaml:"variants"`
			Segments yaml.Node `yaml:"segments"`
		}
		if err := node.Decode(&entry); err != nil {
			return nil, fail(name, "%v", err)
		}

		variants := entry.Variants
		if entry.Segments.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(entry.Segments.Content); j += 2 {
				variants = append(variants, entry.Segments.Content[j].Value)
			}
		}
		if len(variants) == 0 {
			return nil, fail(name, "no variants defined")
		}
		g.Shapes = append(g.Shapes, ShapeVariants{
			Shape:    geometry.Shape(name),
			Variants: variants,
		})
	}
	if len(g.Shapes) == 0 {
		return nil, fail("", "no shapes defined")
	}
	return g, nil
}

// Jobs enumerates all render requests: every pipe set (in sorted order) on
// every surface, for every shape and variant of the geometry (in file
// order).
func (c *Config) Jobs() []isopipe.Request {
	var jobs []isopipe.Request
	for _, id := range c.PipeSets.IDs() {
		for _, s := range geometry.Surfaces {
			for _, sv := range c.Geometry.Shapes {
				for _, v := range sv.Variants {
					jobs = append(jobs, isopipe.Request{
						PipeSet: id,
						Surface: s,
						Shape:   sv.Shape,
						Variant: v,
					})
				}
			}
		}
	}
	return jobs
}
