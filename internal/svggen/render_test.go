/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svggen

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"boxsvg/internal/shape"
	"boxsvg/internal/textlayout"
	"boxsvg/internal/vector"
)

func render(t *testing.T, cfg Config, recs ...shape.Record) *Result {
	t.Helper()
	res, err := Render(recs, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return res
}

func mustContain(t *testing.T, doc, frag string) {
	t.Helper()
	if !strings.Contains(doc, frag) {
		t.Fatalf("document lacks %q:\n%s", frag, doc)
	}
}

func TestRender_LineTransformed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zoom, cfg.XOffset, cfg.YOffset = 2, 10, 20
	res := render(t, cfg, shape.Nums([]float64{1, 2, 3, 4}))
	mustContain(t, res.Document, `  <line fill="none" stroke="black" stroke-width="1" x1="12" y1="24" x2="16" y2="28" />`+"\n")
	if len(res.Primitives) != 1 || res.Primitives[0].Kind != shape.Line {
		t.Fatalf("primitives = %+v", res.Primitives)
	}
}

func TestRender_AutoClosePolygon(t *testing.T) {
	rec := shape.Nums([]float64{0, 0, 10, 0, 10, 10, 0, 0})
	res := render(t, DefaultConfig(), rec)
	mustContain(t, res.Document, `<polygon fill="none" stroke="black" stroke-width="1" points="0,0 10,0 10,10" />`)

	cfg := DefaultConfig()
	cfg.AutoClosePoly = false
	res = render(t, cfg, rec)
	mustContain(t, res.Document, `<polyline fill="none" stroke="black" stroke-width="1" points="0,0 10,0 10,10 0,0" />`)
	if strings.Contains(res.Document, "<polygon") {
		t.Fatalf("autoclose disabled but polygon emitted")
	}
}

func TestRender_Circle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zoom, cfg.XOffset, cfg.YOffset = 2, 1, 3
	res := render(t, cfg, shape.Nums([]float64{11, 12, 5}, "blue", "stroke-width:2"))
	mustContain(t, res.Document, `  <circle fill="none" stroke="blue" stroke-width="2" cx="23" cy="27" r="10" />`)
	want := vector.Viewport{MinX: 0, MinY: 0, MaxX: 33, MaxY: 37}
	if res.Viewport != want {
		t.Fatalf("viewport = %+v, want %+v", res.Viewport, want)
	}
}

func TestRender_StyleTokens(t *testing.T) {
	res := render(t, DefaultConfig(),
		shape.Nums([]float64{0, 0, 1, 1}, "fill:128,64,255", "blue", "opacity:0.5"))
	mustContain(t, res.Document, `<line fill="#8040ff" stroke="blue" stroke-width="1" opacity="0.5" x1="0"`)
}

func TestRender_NestedPoints(t *testing.T) {
	rec := shape.Record{shape.P(5, 6), shape.P(10, 8), shape.P(9, 10), shape.T("#00FFFF")}
	res := render(t, DefaultConfig(), rec)
	mustContain(t, res.Document, `<polyline fill="none" stroke="#00FFFF" stroke-width="1" points="5,6 10,8 9,10" />`)
}

func TestRender_EmptyInput(t *testing.T) {
	res := render(t, DefaultConfig())
	mustContain(t, res.Document, `viewBox="0 0 0 0"`)
	mustContain(t, res.Document, `width="0mm" height="0mm"`)
	if !strings.HasSuffix(res.Document, "</g></svg>") {
		t.Fatalf("missing footer")
	}
	if !strings.HasPrefix(res.Document, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing xml declaration")
	}
}

func TestRender_OnlyMalformed(t *testing.T) {
	res := render(t, DefaultConfig(), shape.Nums([]float64{1, 2, 3, 4, 5}))
	if len(res.Skipped) != 1 || res.Skipped[0].Index != 0 || res.Skipped[0].Count != 5 {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if len(res.Primitives) != 0 || res.Viewport != (vector.Viewport{}) {
		t.Fatalf("malformed shape leaked into output: %+v %+v", res.Primitives, res.Viewport)
	}
	mustContain(t, res.Document, `viewBox="0 0 0 0"`)
}

func TestRender_MalformedDoesNotAffectViewport(t *testing.T) {
	res := render(t, DefaultConfig(),
		shape.Nums([]float64{1, 1, 2, 2, 500}),
		shape.Nums([]float64{0, 0, 4, 4}),
	)
	if res.Viewport.MaxX != 4 || res.Viewport.MaxY != 4 {
		t.Fatalf("viewport = %+v", res.Viewport)
	}
	if len(res.Skipped) != 1 || len(res.Primitives) != 1 || res.Primitives[0].Source != 1 {
		t.Fatalf("unexpected result: skipped=%v prims=%+v", res.Skipped, res.Primitives)
	}
}

func TestRender_ViewportIncludesOrigin(t *testing.T) {
	res := render(t, DefaultConfig(), shape.Nums([]float64{5, 5, 10, 10}))
	if res.Viewport.MinX != 0 || res.Viewport.MinY != 0 {
		t.Fatalf("lower bound should clamp to 0: %+v", res.Viewport)
	}
	mustContain(t, res.Document, `width="10mm" height="10mm"`)
	mustContain(t, res.Document, `viewBox="0 0 10 10"`)
}

// Negative coordinates widen the viewBox; the physical size stays at the
// maximum corner.
func TestRender_NegativeCoordinatesExtendViewport(t *testing.T) {
	res := render(t, DefaultConfig(), shape.Nums([]float64{-5, -2, 10, 10}))
	mustContain(t, res.Document, `viewBox="-5 -2 15 12"`)
	mustContain(t, res.Document, `width="10mm" height="10mm"`)
	if res.Size != (vector.Pt{X: 10, Y: 10}) {
		t.Fatalf("size = %+v, want 10x10", res.Size)
	}
}

func TestRender_AllNegativeCoordinatesZeroSize(t *testing.T) {
	res := render(t, DefaultConfig(), shape.Nums([]float64{-8, -6, -3, -1}))
	mustContain(t, res.Document, `viewBox="-8 -6 5 5"`)
	mustContain(t, res.Document, `width="0mm" height="0mm"`)
}

func TestRender_WindowTwoValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Zoom, cfg.XOffset, cfg.YOffset = 2, 5, 7
	cfg.Window = []float64{100, 50}
	res := render(t, cfg, shape.Nums([]float64{0, 0, 1, 1}))
	want := vector.Viewport{MinX: 5, MinY: 7, MaxX: 205, MaxY: 107}
	if res.Viewport != want {
		t.Fatalf("viewport = %+v, want %+v", res.Viewport, want)
	}
	mustContain(t, res.Document, `viewBox="5 7 200 100"`)
	mustContain(t, res.Document, `width="200mm" height="100mm"`)
}

// The Y corners of a four-value window use the Y offset, not the X offset.
func TestRender_WindowFourValuesPerAxisOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.XOffset, cfg.YOffset = 10, 100
	cfg.Window = []float64{1, 2, 3, 4}
	res := render(t, cfg)
	want := vector.Viewport{MinX: 11, MinY: 102, MaxX: 13, MaxY: 104}
	if res.Viewport != want {
		t.Fatalf("viewport = %+v, want %+v", res.Viewport, want)
	}
}

func TestRender_InputOrderPreserved(t *testing.T) {
	res := render(t, DefaultConfig(),
		shape.Nums([]float64{1, 1, 1}),
		shape.Nums([]float64{0, 0, 1, 1}),
		shape.Nums([]float64{0, 0, 1, 1, 2, 0}),
	)
	ci := strings.Index(res.Document, "<circle")
	li := strings.Index(res.Document, "<line")
	pi := strings.Index(res.Document, "<polyline")
	if !(ci >= 0 && ci < li && li < pi) {
		t.Fatalf("fragments out of order: circle=%d line=%d polyline=%d", ci, li, pi)
	}
}

func writeFont(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.svf")
	font := "A:\n0,0 1,2 2,0\nI:\n0,0 0,2\n"
	if err := os.WriteFile(path, []byte(font), 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	return path
}

func TestRender_Text(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir)
	cfg := DefaultConfig()
	cfg.FontDir = dir
	cfg.Zoom, cfg.XOffset = 3, 50 // text is laid out in its own coordinates
	rec := shape.Nums([]float64{10, 20, 2, 3}, "text:A I", "font:test.svf", "#ff0000", "stroke-width:0.2")
	res := render(t, cfg, rec)
	if len(res.Primitives) != 2 {
		t.Fatalf("primitives = %+v", res.Primitives)
	}
	mustContain(t, res.Document, `<polyline fill="none" stroke="#ff0000" stroke-width="0.2" points="10,20 12,26 14,20" />`)
	// A ends at 14, +1*2 letterspacing, +3*2 space -> I at x=22
	mustContain(t, res.Document, `<line fill="none" stroke="#ff0000" stroke-width="0.2" x1="22" y1="20" x2="22" y2="26" />`)
	if strings.Contains(res.Document, "text=") || strings.Contains(res.Document, "font=") {
		t.Fatalf("text/font leaked into markup")
	}
	if res.Viewport.MaxX != 22 || res.Viewport.MaxY != 26 {
		t.Fatalf("viewport = %+v", res.Viewport)
	}
}

func TestRender_TextBuiltinFont(t *testing.T) {
	res := render(t, DefaultConfig(), shape.Nums([]float64{0, 0}, "text:HI"))
	if len(res.Primitives) == 0 {
		t.Fatalf("builtin font produced no geometry")
	}
}

func TestRender_FontMissingFails(t *testing.T) {
	rec := shape.Nums([]float64{0, 0}, "text:A", "font:"+filepath.Join(t.TempDir(), "missing.svf"))
	_, err := Render([]shape.Record{shape.Nums([]float64{0, 0, 1, 1}), rec}, DefaultConfig())
	var fe *textlayout.FontLoadError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FontLoadError, got %v", err)
	}
}

func TestRenderToFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := os.WriteFile(path, []byte(strings.Repeat("stale", 1000)), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	res, err := RenderToFile([]shape.Record{shape.Nums([]float64{0, 0, 1, 1})}, path, DefaultConfig())
	if err != nil {
		t.Fatalf("RenderToFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != res.Document {
		t.Fatalf("file content differs from returned document")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = []float64{1, 2, 3}
	if _, err := Render(nil, cfg); !errors.Is(err, ErrWindow) {
		t.Fatalf("expected ErrWindow, got %v", err)
	}
	for _, z := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		cfg := DefaultConfig()
		cfg.Zoom = z
		if _, err := Render(nil, cfg); !errors.Is(err, ErrZoom) {
			t.Fatalf("zoom %v: expected ErrZoom, got %v", z, err)
		}
	}
}

func TestEscAttr(t *testing.T) {
	if got := escAttr(`a"b<c&d`); got != "a&quot;b&lt;c&amp;d" {
		t.Fatalf("escAttr = %q", got)
	}
}

func TestDocumentIn(t *testing.T) {
	res := render(t, DefaultConfig(), shape.Nums([]float64{0, 0, 10, 4}))
	doc := res.DocumentIn("")
	mustContain(t, doc, `width="10" height="4"`)
	if strings.Replace(doc, `width="10" height="4"`, `width="10mm" height="4mm"`, 1) != res.Document {
		t.Fatalf("documents differ beyond the unit")
	}
}

func TestRender_DocumentIsWellFormedXML(t *testing.T) {
	res := render(t, DefaultConfig(),
		shape.Nums([]float64{0, 0, 10, 10}, ":red"),
		shape.Nums([]float64{0, 0, 5, 5}, "x1:3"),
		shape.Nums([]float64{1, 1, 4, 4}, `data-note:a"b<c&d`, "opacity:0.5"),
		shape.Nums([]float64{2, 2, 1}),
	)
	if len(res.Skipped) != 2 || len(res.Primitives) != 2 {
		t.Fatalf("skipped=%d primitives=%d, want 2 and 2", len(res.Skipped), len(res.Primitives))
	}
	dec := xml.NewDecoder(strings.NewReader(res.Document))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("document is not well-formed: %v\n%s", err, res.Document)
		}
	}
}
