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

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"seehuhn.de/go/isopipe"
)

// Manifest records the outcome of a batch run.  It is safe for concurrent
// use.
type Manifest struct {
	mu      sync.Mutex
	entries []ManifestEntry
}

// ManifestEntry describes one job of a batch run.
type ManifestEntry struct {
	Job     string   `json:"job"`
	Status  string   `json:"status"`
	Files   []string `json:"files,omitempty"`
	Bulk    int      `json:"bulk,omitempty"`
	Ring    int      `json:"ring,omitempty"`
	Shadow  int      `json:"shadow,omitempty"`
	Light   int      `json:"highlight,omitempty"`
	Glow    int      `json:"glow,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Job status values.
const (
	StatusWritten = "written"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// AddWritten records a sprite which has been written.
func (m *Manifest) AddWritten(req isopipe.Request, res *isopipe.Result, files []string) {
	m.add(ManifestEntry{
		Job:    req.String(),
		Status: StatusWritten,
		Files:  files,
		Bulk:   res.Bulk.Len(),
		Ring:   res.BulkEdge.Len(),
		Shadow: res.Shading.Shadow,
		Light:  res.Shading.Highlight,
		Glow:   res.Shading.Glow,
	})
}

// AddSkipped records a job without geometry.
func (m *Manifest) AddSkipped(req isopipe.Request, err error) {
	m.add(ManifestEntry{Job: req.String(), Status: StatusSkipped, Message: err.Error()})
}

// AddFailed records a job which failed.
func (m *Manifest) AddFailed(req isopipe.Request, err error) {
	m.add(ManifestEntry{Job: req.String(), Status: StatusFailed, Message: err.Error()})
}

func (m *Manifest) add(e ManifestEntry) {
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
}

// Entries returns the recorded entries, sorted by job.
func (m *Manifest) Entries() []ManifestEntry {
	m.mu.Lock()
	res := slices.Clone(m.entries)
	m.mu.Unlock()
	slices.SortFunc(res, func(a, b ManifestEntry) int {
		return strings.Compare(a.Job, b.Job)
	})
	return res
}

// Count returns the number of entries with the given status.
func (m *Manifest) Count(status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

// WriteFile writes the manifest as indented JSON.
func (m *Manifest) WriteFile(fname string) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return err
	}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	out := struct {
		Jobs []ManifestEntry `json:"jobs"`
	}{Jobs: m.Entries()}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	return f.Close()
}
