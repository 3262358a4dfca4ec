/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package job

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boxsvg/internal/shape"
	"boxsvg/internal/svggen"
)

const trayYAML = `
output: out/tray.svg
formats: [svg, pdf]
render:
  zoom: 2
  window: [100, 50]
  line_color: "0,0,255"
  font_dir: fonts
shapes:
  - [0, 0, 10, 10]
  - [5, 5, 3, red, "stroke-width:2"]
  - [[0, 0], [1, 1], [2, 0], "#00ff00"]
  - [10, 20, 2, 2, "text:HI"]
`

func TestParse_YAML(t *testing.T) {
	j, err := Parse([]byte(trayYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(j.Shapes) != 4 || len(j.Records()) != 4 {
		t.Fatalf("shapes = %d", len(j.Shapes))
	}
	if !j.Shapes[2][0].IsPoint() || !j.Shapes[1][3].IsToken() || !j.Shapes[0][0].IsNumber() {
		t.Fatalf("element kinds not preserved: %v", j.Shapes)
	}
	if strings.Join(j.Formats, ",") != "svg,pdf" || j.Output != "out/tray.svg" {
		t.Fatalf("header mismatch: %+v", j)
	}

	cfg := j.Config(svggen.DefaultConfig())
	if cfg.Zoom != 2 || len(cfg.Window) != 2 || cfg.LineColor != "0,0,255" || cfg.LineWidth != 1 {
		t.Fatalf("config mismatch: %+v", cfg)
	}
	if cfg.FontDir != "fonts" {
		t.Fatalf("font dir = %q", cfg.FontDir)
	}
}

func TestParse_JSON(t *testing.T) {
	j, err := Parse([]byte(`{"shapes": [[1, 2, 3], [[5, 6], [10, 8], [9, 10], "#00FFFF"]]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := svggen.Render(j.Records(), j.Config(svggen.DefaultConfig()))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(res.Primitives) != 2 || res.Primitives[0].Kind != shape.Circle || res.Primitives[1].Kind != shape.Polyline {
		t.Fatalf("primitives = %+v", res.Primitives)
	}
}

func TestParse_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown key":      "shapes: []\ncolour: red\n",
		"bad window":       "shapes: []\nrender:\n  window: [1, 2, 3]\n",
		"zero zoom":        "shapes: []\nrender:\n  zoom: 0\n",
		"negative zoom":    "shapes: []\nrender:\n  zoom: -1\n",
		"nested triple":    "shapes:\n  - [[1, 2, 3]]\n",
		"bool element":     "shapes:\n  - [1, 2, true]\n",
		"unknown format":   "shapes: []\nformats: [gif]\n",
		"nothing to draw":  "output: x.svg\n",
		"negative box dim": "box: {kind: flap, width: -1, height: 1, depth: 1}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			var ve *ValidationError
			if !errors.As(err, &ve) || len(ve.Problems) == 0 {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse([]byte("  \n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := Parse([]byte("shapes: [unclosed")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoad_ResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tray.yaml")
	if err := os.WriteFile(path, []byte(trayYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	j, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := j.OutputPath(); got != filepath.Join(dir, "out", "tray.svg") {
		t.Fatalf("OutputPath = %q", got)
	}
	if got := j.Config(svggen.DefaultConfig()).FontDir; got != filepath.Join(dir, "fonts") {
		t.Fatalf("FontDir = %q", got)
	}

	j.Output = ""
	if got := j.OutputPath(); got != filepath.Join(dir, "tray.svg") {
		t.Fatalf("default OutputPath = %q", got)
	}
	j.Render.FontDir = nil
	if got := j.Config(svggen.DefaultConfig()).FontDir; got != dir {
		t.Fatalf("fonts should default to the job dir, got %q", got)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestBoxJob(t *testing.T) {
	doc := `
box:
  kind: panel
  length: 44
  width: 36
  height: 28
  top: false
shapes:
  - [0, 0, 5]
`
	j, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	recs := j.Records()
	if len(recs) != 6 {
		t.Fatalf("records = %d, want 5 panels + 1 shape", len(recs))
	}

	j, err = Parse([]byte("box: {kind: flap, width: 100, height: 100, depth: 50, open_flap: 20, closed_flap: 20}\nrender: {x_offset: 1}\n"))
	if err != nil {
		t.Fatalf("Parse flap: %v", err)
	}
	cfg := j.Config(svggen.DefaultConfig())
	if cfg.XOffset != 1 || cfg.YOffset != 70 {
		t.Fatalf("explicit offsets should win over box offsets: %+v", cfg)
	}
}
