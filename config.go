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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/isopipe/shade"
)

// ErrInvalidConfig is returned (wrapped) when a Config or a pipe set
// cannot be used for rendering.
var ErrInvalidConfig = errors.New("isopipe: invalid configuration")

// Light is the light direction.  X and Y are in screen space, with Y
// pointing down.  Only the screen-space part is used for shading; Z is
// kept for completeness of the lighting configuration.
type Light struct {
	X, Y, Z float64
}

// Screen returns the screen-space part of the light direction.
func (l Light) Screen() vec.Vec2 {
	return vec.Vec2{X: l.X, Y: l.Y}
}

// Config holds the settings shared by all renders.  A Config is a plain
// value; Render never modifies it.
type Config struct {
	// Width and Height give the canvas size in pixels.
	Width, Height int

	// Light is the light direction used to decide which side of a run
	// faces the light.
	Light Light

	// Debug enables the diagnostic canvas in Result.Debug.
	Debug bool

	// Bands holds the shading band opacities.
	Bands shade.Bands

	// LiftCube is the wall cube (0, 1 or 2, counted from the floor) at
	// whose centre horizontal wall runs are drawn.
	LiftCube int
}

// DefaultConfig returns the configuration for the standard 128×256 tile.
func DefaultConfig() Config {
	return Config{
		Width:    128,
		Height:   256,
		Light:    Light{X: -0.6, Y: -0.6, Z: 0.4},
		Bands:    shade.DefaultBands,
		LiftCube: 1,
	}
}

// Validate checks that cfg can be used for rendering.
func (cfg Config) Validate() error {
	if cfg.Width < 8 || cfg.Height < 64 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.LiftCube < 0 || cfg.LiftCube > 2 {
		return fmt.Errorf("%w: lift cube %d", ErrInvalidConfig, cfg.LiftCube)
	}
	if err := cfg.Bands.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
