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

// Package pipeset loads the generator configuration.
//
// A configuration directory holds three YAML files: pipe_sets.yaml
// describes the look of each pipe set, lighting.yaml the light direction
// and optional shading band overrides, and geometry.yaml the shapes and
// variants to generate.
package pipeset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"seehuhn.de/go/isopipe"
)

// File names inside a configuration directory.
const (
	PipeSetsFile = "pipe_sets.yaml"
	LightingFile = "lighting.yaml"
	GeometryFile = "geometry.yaml"
)

// ValidationError reports a problem with the configuration.
type ValidationError struct {
	File string // configuration file
	Item string // offending entry, if any
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("pipeset: %s: %s", e.File, e.Msg)
	}
	return fmt.Sprintf("pipeset: %s: %s: %s", e.File, e.Item, e.Msg)
}

// Is makes validation errors match isopipe.ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == isopipe.ErrInvalidConfig
}

// Config is a loaded and validated configuration.
type Config struct {
	PipeSets Sets
	Lighting Lighting
	Geometry *Geometry
}

// Load reads the configuration from directory dir.
func Load(dir string) (*Config, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the configuration from the root of fsys.
func LoadFS(fsys fs.FS) (*Config, error) {
	cfg := &Config{}

	data, err := fs.ReadFile(fsys, PipeSetsFile)
	if err != nil {
		return nil, fmt.Errorf("pipeset: %w", err)
	}
	cfg.PipeSets, err = ParsePipeSets(data)
	if err != nil {
		return nil, err
	}

	data, err = fs.ReadFile(fsys, LightingFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg.Lighting = DefaultLighting()
	case err != nil:
		return nil, fmt.Errorf("pipeset: %w", err)
	default:
		cfg.Lighting, err = ParseLighting(data)
		if err != nil {
			return nil, err
		}
	}

	data, err = fs.ReadFile(fsys, GeometryFile)
	if err != nil {
		return nil, fmt.Errorf("pipeset: %w", err)
	}
	cfg.Geometry, err = ParseGeometry(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies the lighting settings into rc.
func (c *Config) Apply(rc *isopipe.Config) {
	rc.Light = c.Lighting.Direction
	rc.Bands = c.Lighting.Bands
}
