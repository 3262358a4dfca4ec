/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Stroke text layout: glyph strokes are scaled and placed along a cursor that
// advances left to right and wraps on explicit newlines only.

import (
	"math"

	"boxsvg/internal/vector"
)

// Params controls placement. Spacing values are in font units and are scaled
// by the matching zoom axis.
type Params struct {
	Origin        vector.Pt
	ZoomX, ZoomY  float64
	LetterSpacing float64
	LineSpacing   float64
	SpaceWidth    float64
}

// defaultValues in positional order: leftX, topY, zoomX, zoomY, letterspacing, linespacing, spacewidth.
var defaultValues = [7]float64{0, 0, 1, 1, 1, 7, 3}

// DefaultParams returns the layout defaults at the origin.
func DefaultParams() Params { return ParamsFromValues(nil) }

// ParamsFromValues reads layout parameters positionally from a text shape's
// coordinates; omitted trailing values fall back to their defaults and extra
// values are ignored.
func ParamsFromValues(values []float64) Params {
	v := defaultValues
	copy(v[:], values)
	return Params{
		Origin:        vector.Pt{X: v[0], Y: v[1]},
		ZoomX:         v[2],
		ZoomY:         v[3],
		LetterSpacing: v[4],
		LineSpacing:   v[5],
		SpaceWidth:    v[6],
	}
}

// Laid is the result of a layout: one polyline per placed glyph stroke, plus
// every placed point for bounds accumulation.
type Laid struct {
	Strokes []Stroke
	Points  []vector.Pt
}

// Layout places text using glyphs. Characters missing from the table are
// skipped without advancing the cursor.
func Layout(glyphs GlyphTable, p Params, text string) Laid {
	var out Laid
	x, y := p.Origin.X, p.Origin.Y
	for _, ch := range text {
		switch ch {
		case '\n':
			x = p.Origin.X
			y += p.LineSpacing * p.ZoomY
			continue
		case ' ':
			x += p.SpaceWidth * p.ZoomX
			continue
		}
		strokes, ok := glyphs[ch]
		if !ok {
			continue
		}
		right := math.Inf(-1)
		for _, s := range strokes {
			placed := make(Stroke, len(s))
			for i, pt := range s {
				placed[i] = vector.Pt{X: x + pt.X*p.ZoomX, Y: y + pt.Y*p.ZoomY}
				right = math.Max(right, placed[i].X)
			}
			out.Strokes = append(out.Strokes, placed)
			out.Points = append(out.Points, placed...)
		}
		if math.IsInf(right, -1) {
			right = x
		}
		x = right + p.LetterSpacing*p.ZoomX
	}
	return out
}
