/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"testing"

	"boxsvg/internal/vector"
)

func glyphA() GlyphTable {
	return GlyphTable{'A': {{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 0}}}}
}

func testParams() Params {
	return Params{Origin: vector.Pt{X: 10, Y: 20}, ZoomX: 2, ZoomY: 3, LetterSpacing: 1, LineSpacing: 7, SpaceWidth: 3}
}

func TestLayout_SpaceAndLetterSpacing(t *testing.T) {
	out := Layout(glyphA(), testParams(), "A A")
	if len(out.Strokes) != 2 {
		t.Fatalf("strokes = %d, want 2", len(out.Strokes))
	}
	first, second := out.Strokes[0], out.Strokes[1]
	if first[0] != (vector.Pt{X: 10, Y: 20}) || first[1] != (vector.Pt{X: 12, Y: 26}) || first[2] != (vector.Pt{X: 14, Y: 20}) {
		t.Fatalf("first glyph = %+v", first)
	}
	// right edge 14 + letterspacing*zoomX 2 = 16, then space 3*2 = 6 -> 22
	if second[0].X != 22 || second[0].Y != 20 {
		t.Fatalf("second glyph origin = %+v, want (22,20)", second[0])
	}
	if len(out.Points) != 6 {
		t.Fatalf("points = %d, want 6", len(out.Points))
	}
}

func TestLayout_Newline(t *testing.T) {
	out := Layout(glyphA(), testParams(), "A\nA")
	second := out.Strokes[1]
	if second[0].X != 10 || second[0].Y != 20+7*3 {
		t.Fatalf("newline should reset x and advance y: %+v", second[0])
	}
}

func TestLayout_UnsupportedGlyphSkipped(t *testing.T) {
	out := Layout(glyphA(), testParams(), "AéA")
	if len(out.Strokes) != 2 {
		t.Fatalf("strokes = %d, want 2", len(out.Strokes))
	}
	if out.Strokes[1][0].X != 16 {
		t.Fatalf("missing glyph must not advance the cursor: %+v", out.Strokes[1][0])
	}
}

func TestParamsFromValues_Defaults(t *testing.T) {
	p := ParamsFromValues([]float64{2, 18, 0.5})
	want := Params{Origin: vector.Pt{X: 2, Y: 18}, ZoomX: 0.5, ZoomY: 1, LetterSpacing: 1, LineSpacing: 7, SpaceWidth: 3}
	if p != want {
		t.Fatalf("params = %+v, want %+v", p, want)
	}
	if d := DefaultParams(); d.Origin != (vector.Pt{}) || d.ZoomX != 1 {
		t.Fatalf("defaults = %+v", d)
	}
}

// The advance starts from the rightmost placed point, even when that lies
// left of the cursor.
func TestLayout_AdvanceFromRightmostPoint(t *testing.T) {
	glyphs := GlyphTable{'B': {{{X: -3, Y: 0}, {X: -1, Y: 2}}}, 'E': {}}
	p := Params{ZoomX: 1, ZoomY: 1, LetterSpacing: 2}
	out := Layout(glyphs, p, "BB")
	// right edge -1 + 2 = 1, second glyph starts at 1-3
	if got := out.Strokes[1][0].X; got != -2 {
		t.Fatalf("second glyph x = %v, want -2", got)
	}

	p.ZoomX = -1
	out = Layout(glyphs, p, "BB")
	// mirrored: points at 3 and 1, right edge 3, advance -2 -> 1
	if got := out.Strokes[1][0].X; got != 4 {
		t.Fatalf("mirrored second glyph x = %v, want 4", got)
	}

	// a glyph without points advances from the cursor
	out = Layout(glyphs, Params{ZoomX: 1, ZoomY: 1, LetterSpacing: 2}, "EB")
	if got := out.Strokes[0][0].X; got != -1 {
		t.Fatalf("glyph after empty glyph x = %v, want -1", got)
	}
}
