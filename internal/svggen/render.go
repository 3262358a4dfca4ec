/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svggen

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	applog "boxsvg/internal/log"
	"boxsvg/internal/shape"
	"boxsvg/internal/textlayout"
	"boxsvg/internal/vector"
)

// Primitive is one emitted element with its final (transformed) geometry.
// Kind is never shape.Text: text expands into line and polyline primitives.
type Primitive struct {
	Kind   shape.Kind
	Points []vector.Pt // line, polyline and polygon vertices; polygons omit the closing point
	Center vector.Pt   // circle only
	Radius float64     // circle only
	Style  shape.Style
	Source int // index of the originating record
}

// Result is the outcome of one render call.
type Result struct {
	Document string
	Viewport vector.Viewport
	// Size is the physical width and height written to the header: the
	// maximum corner for computed viewports, the extent for explicit windows.
	Size       vector.Pt
	Primitives []Primitive
	// Skipped lists records that could not be interpreted; they do not appear
	// in the document and do not affect the viewport.
	Skipped []*shape.MalformedShapeError
	// Shapes is the number of input records.
	Shapes int
}

// Render converts records into an SVG document. Malformed records are skipped
// and reported in Result.Skipped; a font that cannot be loaded fails the call.
func Render(records []shape.Record, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := applog.WithOperation(applog.WithComponent("svggen"), "render")
	r := &renderer{
		cfg:      cfg,
		xf:       vector.ZoomOffset(cfg.Zoom, cfg.XOffset, cfg.YOffset),
		defaults: shape.DefaultStyle(cfg.Fill, cfg.LineColor, cfg.LineWidth),
		fonts:    make(map[string]textlayout.GlyphTable),
	}
	res := &Result{Shapes: len(records)}
	for i, rec := range records {
		prims, err := r.shape(i, rec)
		if err != nil {
			var me *shape.MalformedShapeError
			if errors.As(err, &me) {
				me.Index = i
				l.Warn("skipping malformed shape", slog.Int("index", i), slog.String("shape", rec.String()), slog.String("reason", me.Reason))
				res.Skipped = append(res.Skipped, me)
				continue
			}
			l.Error("render failed", slog.Int("index", i), slog.Any("err", err))
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		res.Primitives = append(res.Primitives, prims...)
	}
	res.Viewport, res.Size = cfg.viewport(&r.bounds)
	res.Document = assemble(res.Viewport, res.Size, res.Primitives, "mm")
	l.Debug("rendered",
		slog.Int("shapes", res.Shapes),
		slog.Int("primitives", len(res.Primitives)),
		slog.Int("skipped", len(res.Skipped)),
		slog.Int("points", r.bounds.Len()))
	return res, nil
}

// RenderToFile renders records and writes the document to filename,
// replacing any existing file.
func RenderToFile(records []shape.Record, filename string, cfg Config) (*Result, error) {
	res, err := Render(records, cfg)
	if err != nil {
		return nil, err
	}
	if err := res.WriteFile(filename); err != nil {
		return nil, err
	}
	return res, nil
}

// DocumentIn reassembles the document with its physical size in another
// unit; an empty unit leaves width and height unitless.
func (r *Result) DocumentIn(unit string) string {
	return assemble(r.Viewport, r.Size, r.Primitives, unit)
}

// WriteFile persists the document, overwriting filename.
func (r *Result) WriteFile(filename string) error {
	if err := os.WriteFile(filename, []byte(r.Document), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

type renderer struct {
	cfg      Config
	xf       vector.Affine2D
	defaults shape.Style
	bounds   vector.Bounds
	fonts    map[string]textlayout.GlyphTable
}

func (r *renderer) shape(idx int, rec shape.Record) ([]Primitive, error) {
	p := shape.ParseStyle(rec, r.defaults)
	kind, err := shape.Classify(p, r.cfg.AutoClosePoly)
	if err != nil {
		return nil, err
	}
	switch kind {
	case shape.Text:
		return r.text(idx, p)
	case shape.Circle:
		c := r.xf.Apply(vector.Pt{X: p.Values[0], Y: p.Values[1]})
		rad := p.Values[2] * r.cfg.Zoom
		r.bounds.Add(vector.Pt{X: c.X - rad, Y: c.Y - rad}, vector.Pt{X: c.X + rad, Y: c.Y + rad})
		return []Primitive{{Kind: shape.Circle, Center: c, Radius: rad, Style: p.Style, Source: idx}}, nil
	default:
		pts := p.Points()
		if kind == shape.Polygon {
			pts = pts[:len(pts)-1]
		}
		pts = r.xf.ApplyAll(pts)
		r.bounds.Add(pts...)
		return []Primitive{{Kind: kind, Points: pts, Style: p.Style, Source: idx}}, nil
	}
}

// text lays out a text shape. Its coordinates are layout parameters and the
// placed strokes are not subject to the sheet zoom and offset.
func (r *renderer) text(idx int, p shape.Parsed) ([]Primitive, error) {
	fontName, _ := p.Style.Get(shape.AttrFont)
	glyphs, ok := r.fonts[fontName]
	if !ok {
		var err error
		glyphs, err = textlayout.ResolveFont(fontName, r.cfg.FontDir)
		if err != nil {
			return nil, err
		}
		r.fonts[fontName] = glyphs
	}
	txt, _ := p.Style.Get(shape.AttrText)
	laid := textlayout.Layout(glyphs, textlayout.ParamsFromValues(p.Values), txt)
	r.bounds.Add(laid.Points...)

	style := p.Style.Without(shape.AttrText, shape.AttrFont)
	prims := make([]Primitive, 0, len(laid.Strokes))
	for _, s := range laid.Strokes {
		kind := shape.Polyline
		if len(s) == 2 {
			kind = shape.Line
		}
		prims = append(prims, Primitive{Kind: kind, Points: []vector.Pt(s), Style: style, Source: idx})
	}
	return prims, nil
}

// viewport returns the viewBox bounds and the physical size. A computed
// viewport always contains the origin and its physical size is its maximum
// corner, never negative.
func (c Config) viewport(b *vector.Bounds) (vector.Viewport, vector.Pt) {
	var vp vector.Viewport
	switch len(c.Window) {
	case 2:
		vp = vector.Viewport{
			MinX: c.XOffset,
			MinY: c.YOffset,
			MaxX: c.Window[0]*c.Zoom + c.XOffset,
			MaxY: c.Window[1]*c.Zoom + c.YOffset,
		}
	case 4:
		vp = vector.Viewport{
			MinX: c.Window[0]*c.Zoom + c.XOffset,
			MinY: c.Window[1]*c.Zoom + c.YOffset,
			MaxX: c.Window[2]*c.Zoom + c.XOffset,
			MaxY: c.Window[3]*c.Zoom + c.YOffset,
		}
	default:
		vp = b.Viewport().IncludeOrigin()
		return vp, vector.Pt{X: math.Max(vp.MaxX, 0), Y: math.Max(vp.MaxY, 0)}
	}
	return vp, vector.Pt{X: vp.Width(), Y: vp.Height()}
}
