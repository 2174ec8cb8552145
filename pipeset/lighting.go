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
	"math"

	"seehuhn.de/go/isopipe"
	"seehuhn.de/go/isopipe/shade"
)

// Lighting holds the settings from lighting.yaml.
type Lighting struct {
	Direction isopipe.Light
	Bands     shade.Bands
}

// DefaultLighting returns the lighting used when lighting.yaml is absent.
func DefaultLighting() Lighting {
	def := isopipe.DefaultConfig()
	return Lighting{Direction: def.Light, Bands: def.Bands}
}

type lightingYAML struct {
	Direction []float64 `yaml:"direction"`
	Bands     struct {
		Shadow    []float64 `yaml:"shadow"`
		Highlight []float64 `yaml:"highlight"`
		Glow      []float64 `yaml:"glow"`
	} `yaml:"bands"`
}

// ParseLighting decodes and validates the contents of lighting.yaml.
// Missing entries keep their default values.
func ParseLighting(data []byte) (Lighting, error) {
	l := DefaultLighting()

	var raw lightingYAML
	if err := decodeStrict(data, &raw); err != nil {
		return l, &ValidationError{File: LightingFile, Msg: err.Error()}
	}

	if raw.Direction != nil {
		if len(raw.Direction) != 3 {
			return l, &ValidationError{File: LightingFile, Item: "direction", Msg: "need [x, y, z]"}
		}
		x, y, z := raw.Direction[0], raw.Direction[1], raw.Direction[2]
		if math.Hypot(x, y) == 0 {
			return l, &ValidationError{File: LightingFile, Item: "direction", Msg: "no horizontal component"}
		}
		l.Direction = isopipe.Light{X: x, Y: y, Z: z}
	}

	bands := []struct {
		name string
		src  []float64
		dst  []float64
	}{
		{"bands.shadow", raw.Bands.Shadow, l.Bands.Shadow[:]},
		{"bands.highlight", raw.Bands.Highlight, l.Bands.Highlight[:]},
		{"bands.glow", raw.Bands.Glow, l.Bands.Glow[:]},
	}
	for _, b := range bands {
		if b.src == nil {
			continue
		}
		if len(b.src) != len(b.dst) {
			return l, &ValidationError{File: LightingFile, Item: b.name,
				Msg: fmt.Sprintf("need %d values, got %d", len(b.dst), len(b.src))}
		}
		copy(b.dst, b.src)
	}
	if err := l.Bands.Validate(); err != nil {
		return l, &ValidationError{File: LightingFile, Item: "bands", Msg: err.Error()}
	}
	return l, nil
}
