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

// Command pipegen renders pipe sprites in bulk.
//
// By default it reads pipe_sets.yaml, lighting.yaml and geometry.yaml from
// the directory given by -config, renders every pipe set on every surface
// for every shape and variant, and writes the sprites below -out.  Jobs
// without geometry are skipped.  With -scenarios, the built-in render
// scenarios are used instead of a configuration directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"seehuhn.de/go/isopipe"
	"seehuhn.de/go/isopipe/export"
	"seehuhn.de/go/isopipe/pipeset"
	"seehuhn.de/go/isopipe/testcases"
)

type job struct {
	name string
	req  isopipe.Request
	cat  isopipe.Catalog
	cfg  isopipe.Config
}

type outcome struct {
	res *isopipe.Result
	err error
}

func main() {
	var (
		configDir = flag.String("config", "config", "configuration directory")
		outDir    = flag.String("out", "generated", "output directory")
		debug     = flag.Bool("debug", false, "also write classification images")
		workers   = flag.Int("workers", runtime.NumCPU(), "number of parallel renders")
		scenarios = flag.Bool("scenarios", false, "render the built-in scenarios instead of -config")
		sheet     = flag.String("sheet", "", "write all sprites into one sheet `file`")
		cols      = flag.Int("cols", 8, "sprites per row of the sheet")
		preview   = flag.Int("preview", 0, "also write the sheet enlarged by this factor")
		proof     = flag.String("proof", "", "write a PDF proof of the sheet to `file`")
		manifest  = flag.String("manifest", "", "write a JSON job list to `file`")
		verbose   = flag.Bool("v", false, "log every render")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	isopipe.SetLogger(logger)

	var jobs []job
	if *scenarios {
		jobs = scenarioJobs(*debug)
	} else {
		var err error
		jobs, err = configJobs(*configDir, *debug)
		if err != nil {
			logger.Error("cannot load configuration", "err", err)
			os.Exit(1)
		}
	}
	logger.Info("prepared render jobs", "count", len(jobs))

	results := render(jobs, max(*workers, 1))

	m := &export.Manifest{}
	var tiles []image.Image
	for i, j := range jobs {
		r := results[i]
		var unsupported *isopipe.UnsupportedGeometryError
		switch {
		case errors.As(r.err, &unsupported):
			logger.Info("skip", "job", j.name)
			m.AddSkipped(j.req, r.err)
			continue
		case r.err != nil:
			logger.Error("render failed", "job", j.name, "err", r.err)
			m.AddFailed(j.req, r.err)
			continue
		}

		dir := *outDir
		req := j.req
		if *scenarios {
			req.PipeSet = filepath.Join("scenarios", strings.SplitN(j.name, "/", 2)[0], req.PipeSet)
		}
		files, err := export.Sprite(dir, req, r.res)
		if err != nil {
			logger.Error("write failed", "job", j.name, "err", err)
			m.AddFailed(j.req, err)
			continue
		}
		for _, f := range files {
			logger.Info("wrote", "file", f)
		}
		m.AddWritten(j.req, r.res, files)
		tiles = append(tiles, r.res.Canvas.Image())
	}

	failed := m.Count(export.StatusFailed)
	logger.Info("done",
		"written", m.Count(export.StatusWritten),
		"skipped", m.Count(export.StatusSkipped),
		"failed", failed)

	if err := writeExtras(tiles, *sheet, *cols, *preview, *proof, *manifest, m); err != nil {
		logger.Error("cannot write output", "err", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// configJobs builds the job list from a configuration directory.
func configJobs(dir string, debug bool) ([]job, error) {
	conf, err := pipeset.Load(dir)
	if err != nil {
		return nil, err
	}
	cfg := isopipe.DefaultConfig()
	conf.Apply(&cfg)
	cfg.Debug = debug

	var jobs []job
	for _, req := range conf.Jobs() {
		jobs = append(jobs, job{name: req.String(), req: req, cat: conf.PipeSets, cfg: cfg})
	}
	return jobs, nil
}

// scenarioJobs builds the job list from the built-in scenarios.
func scenarioJobs(debug bool) []job {
	var jobs []job
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			cfg := tc.RenderConfig()
			cfg.Debug = cfg.Debug || debug
			jobs = append(jobs, job{
				name: category + "/" + tc.Name,
				req:  tc.Request,
				cat:  testcases.PipeSets,
				cfg:  cfg,
			})
		}
	}
	return jobs
}

// render runs all jobs on n workers.  Results are returned in job order.
func render(jobs []job, n int) []outcome {
	results := make([]outcome, len(jobs))
	idx := make(chan int)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				j := jobs[i]
				res, err := isopipe.Render(j.req, j.cat, j.cfg)
				results[i] = outcome{res: res, err: err}
			}
		}()
	}
	for i := range jobs {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return results
}

func writeExtras(tiles []image.Image, sheet string, cols, preview int, proof, manifest string, m *export.Manifest) error {
	if manifest != "" {
		if err := m.WriteFile(manifest); err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
	}
	if sheet == "" && proof == "" {
		return nil
	}

	img := export.Sheet(tiles, cols)
	if sheet != "" {
		if err := export.WritePNG(sheet, img); err != nil {
			return fmt.Errorf("sheet: %w", err)
		}
		if preview > 1 {
			big := export.Enlarge(img, preview)
			fname := strings.TrimSuffix(sheet, filepath.Ext(sheet)) + fmt.Sprintf(".x%d.png", preview)
			if err := export.WritePNG(fname, big); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
		}
	}
	if proof != "" {
		if err := export.WriteProof(proof, img, 2); err != nil {
			return fmt.Errorf("proof: %w", err)
		}
	}
	return nil
}
