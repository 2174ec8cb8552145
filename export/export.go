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

// Package export writes rendered sprites to disk.
//
// Sprites are stored as
//
//	<dir>/<pipe set>/<surface>/<shape>_<variant>.png
//
// with the variant in lower case.  The diagnostic canvas of a sprite, if
// any, is stored next to it with the extension ".debug.png".
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/isopipe"
)

// Filename returns the file name of the sprite for req.
func Filename(req isopipe.Request) string {
	return fmt.Sprintf("%s_%s.png", req.Shape, strings.ToLower(req.Variant))
}

// DebugFilename returns the file name of the diagnostic image for req.
func DebugFilename(req isopipe.Request) string {
	return strings.TrimSuffix(Filename(req), ".png") + ".debug.png"
}

// Path returns the location of the sprite for req below dir.
func Path(dir string, req isopipe.Request) string {
	return filepath.Join(dir, req.PipeSet, string(req.Surface), Filename(req))
}

// DebugPath returns the location of the diagnostic image for req below dir.
func DebugPath(dir string, req isopipe.Request) string {
	return filepath.Join(dir, req.PipeSet, string(req.Surface), DebugFilename(req))
}

// WritePNG writes img to fname, creating parent directories as needed.
func WritePNG(fname string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return err
	}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", fname, err)
	}
	return f.Close()
}

// Sprite writes the sprite of res, and its diagnostic image if present,
// below dir.  It returns the paths written.
func Sprite(dir string, req isopipe.Request, res *isopipe.Result) ([]string, error) {
	var written []string
	fname := Path(dir, req)
	if err := WritePNG(fname, res.Canvas.Image()); err != nil {
		return written, err
	}
	written = append(written, fname)

	if res.Debug != nil {
		fname = DebugPath(dir, req)
		if err := WritePNG(fname, res.Debug.Image()); err != nil {
			return written, err
		}
		written = append(written, fname)
	}
	return written, nil
}
