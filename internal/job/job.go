/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package job reads render jobs: YAML or JSON documents naming the shapes
// (or a generated box) to draw, render overrides and the output files.
package job

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"boxsvg/internal/boxes"
	"boxsvg/internal/shape"
	"boxsvg/internal/svggen"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed job.schema.json
var schemaJSON []byte

// Job is a validated render job.
type Job struct {
	Path    string   `yaml:"-"` // file the job was loaded from, empty for Parse
	Output  string   `yaml:"output"`
	Formats []string `yaml:"formats"`
	Preset  string   `yaml:"preset"`
	Render  Render   `yaml:"render"`
	Box     *Box     `yaml:"box"`

	Shapes []shape.Record `yaml:"-"`
	// layout is the generated box, if any; its records precede Shapes.
	layout *boxes.Layout
}

// Render holds per-job overrides; nil fields keep the caller's defaults.
type Render struct {
	Zoom          *float64  `yaml:"zoom"`
	XOffset       *float64  `yaml:"x_offset"`
	YOffset       *float64  `yaml:"y_offset"`
	Window        []float64 `yaml:"window"`
	LineWidth     *float64  `yaml:"line_width"`
	Fill          *string   `yaml:"fill"`
	LineColor     *string   `yaml:"line_color"`
	AutoClosePoly *bool     `yaml:"autoclose_poly"`
	FontDir       *string   `yaml:"font_dir"`
}

// Box asks for a generated outline.
type Box struct {
	Kind        string   `yaml:"kind"`
	Width       float64  `yaml:"width"`
	Height      float64  `yaml:"height"`
	Depth       float64  `yaml:"depth"`
	Length      float64  `yaml:"length"`
	OpenFlap    float64  `yaml:"open_flap"`
	ClosedFlap  float64  `yaml:"closed_flap"`
	Dashes      int      `yaml:"dashes"`
	DashDensity float64  `yaml:"dash_density"`
	SlotWidth   float64  `yaml:"slot_width"`
	Thickness   *float64 `yaml:"thickness"`
	SideTeeth   *int     `yaml:"side_teeth"`
	BottomTeeth *int     `yaml:"bottom_teeth"`
	TopTeeth    *int     `yaml:"top_teeth"`
	Top         *bool    `yaml:"top"`
}

// ValidationError lists every schema violation of a job document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid job: " + strings.Join(e.Problems, "; ")
}

var ErrEmpty = errors.New("job document is empty")

// Load reads and validates the job at path. Relative output and font paths
// are resolved against the job's directory.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	j, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	j.Path = path
	return j, nil
}

// Parse validates and decodes a job document. JSON is accepted as YAML.
func Parse(data []byte) (*Job, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if doc == nil {
		return nil, ErrEmpty
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	var raw struct {
		Shapes [][]any `yaml:"shapes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}
	j.Shapes = make([]shape.Record, 0, len(raw.Shapes))
	for i, vals := range raw.Shapes {
		rec, err := shape.FromValues(vals)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		j.Shapes = append(j.Shapes, rec)
	}
	if j.Box != nil {
		l, err := j.Box.Build()
		if err != nil {
			return nil, fmt.Errorf("box: %w", err)
		}
		j.layout = &l
	}
	return &j, nil
}

func validate(doc any) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate job: %w", err)
	}
	if res.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range res.Errors() {
		ve.Problems = append(ve.Problems, e.String())
	}
	return ve
}

// Build generates the requested box outline.
func (b Box) Build() (boxes.Layout, error) {
	switch b.Kind {
	case "flap":
		return boxes.Flap(boxes.FlapOptions{
			Width: b.Width, Height: b.Height, Depth: b.Depth,
			OpenFlap: b.OpenFlap, ClosedFlap: b.ClosedFlap, Dashes: b.Dashes,
		})
	case "card":
		return boxes.Card(boxes.CardOptions{
			Width: b.Width, Height: b.Height, Depth: b.Depth,
			OpenFlap: b.OpenFlap, ClosedFlap: b.ClosedFlap, Dashes: b.Dashes,
			DashDensity: b.DashDensity, SlotWidth: b.SlotWidth,
		})
	case "panel":
		o := boxes.DefaultPanelOptions(b.Length, b.Width, b.Height)
		if b.Thickness != nil {
			o.Thickness = *b.Thickness
		}
		if b.SideTeeth != nil {
			o.SideTeeth = *b.SideTeeth
		}
		if b.BottomTeeth != nil {
			o.BottomTeeth = *b.BottomTeeth
		}
		if b.TopTeeth != nil {
			o.TopTeeth = *b.TopTeeth
		}
		if b.Top != nil {
			o.Top = *b.Top
		}
		return boxes.Panel(o)
	}
	return boxes.Layout{}, fmt.Errorf("unknown box kind %q", b.Kind)
}

// Records returns the generated box outline followed by the explicit shapes.
func (j *Job) Records() []shape.Record {
	if j.layout == nil {
		return j.Shapes
	}
	out := make([]shape.Record, 0, len(j.layout.Shapes)+len(j.Shapes))
	out = append(out, j.layout.Shapes...)
	return append(out, j.Shapes...)
}

// Dir is the directory relative paths in the job refer to.
func (j *Job) Dir() string {
	if j.Path == "" {
		return "."
	}
	return filepath.Dir(j.Path)
}

func (j *Job) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(j.Dir(), p)
}

// Config applies the job's box offsets and render overrides to base.
func (j *Job) Config(base svggen.Config) svggen.Config {
	cfg := base
	if j.layout != nil {
		cfg = j.layout.Apply(cfg)
	}
	r := j.Render
	if r.Zoom != nil {
		cfg.Zoom = *r.Zoom
	}
	if r.XOffset != nil {
		cfg.XOffset = *r.XOffset
	}
	if r.YOffset != nil {
		cfg.YOffset = *r.YOffset
	}
	if r.Window != nil {
		cfg.Window = append([]float64(nil), r.Window...)
	}
	if r.LineWidth != nil {
		cfg.LineWidth = *r.LineWidth
	}
	if r.Fill != nil {
		cfg.Fill = *r.Fill
	}
	if r.LineColor != nil {
		cfg.LineColor = *r.LineColor
	}
	if r.AutoClosePoly != nil {
		cfg.AutoClosePoly = *r.AutoClosePoly
	}
	switch {
	case r.FontDir != nil:
		cfg.FontDir = j.resolve(*r.FontDir)
	case cfg.FontDir == "":
		cfg.FontDir = j.Dir()
	}
	return cfg
}

// OutputPath is the SVG destination: the job's output resolved against its
// directory, or the job file name with an .svg extension.
func (j *Job) OutputPath() string {
	if j.Output != "" {
		return j.resolve(j.Output)
	}
	if j.Path == "" {
		return "out.svg"
	}
	return strings.TrimSuffix(j.Path, filepath.Ext(j.Path)) + ".svg"
}
