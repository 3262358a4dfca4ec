/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"unicode"

	"boxsvg/internal/vector"
)

// Parsed is a record after style extraction: flat coordinates plus attributes.
type Parsed struct {
	// Values holds every coordinate in input order; nested points are flattened.
	Values []float64
	// Nested is true if the record carried at least one nested point.
	Nested bool
	Style  Style
	// BadNames lists style names that cannot be written as attributes; they
	// are not applied to Style.
	BadNames []string
}

// ParseStyle separates style tokens from geometry. Every token is applied on top
// of defaults in order of appearance, so later tokens override earlier ones.
func ParseStyle(rec Record, defaults Style) Parsed {
	p := Parsed{Style: defaults.Clone(), Values: make([]float64, 0, len(rec))}
	for _, e := range rec {
		switch e.kind {
		case elemToken:
			name, value := ParseToken(e.tok)
			if !ValidAttrName(name) {
				p.BadNames = append(p.BadNames, name)
				continue
			}
			p.Style.Set(name, value)
		case elemPoint:
			p.Nested = true
			p.Values = append(p.Values, e.pt.X, e.pt.Y)
		default:
			p.Values = append(p.Values, e.num)
		}
	}
	return p
}

// Points pairs up Values. A trailing odd value is ignored.
func (p Parsed) Points() []vector.Pt {
	pts := make([]vector.Pt, 0, len(p.Values)/2)
	for i := 0; i+1 < len(p.Values); i += 2 {
		pts = append(pts, vector.Pt{X: p.Values[i], Y: p.Values[i+1]})
	}
	return pts
}

// geometryAttrs are written by the emitter itself and may not come from tokens.
var geometryAttrs = map[string]bool{
	"x1": true, "y1": true, "x2": true, "y2": true,
	"cx": true, "cy": true, "r": true, "points": true,
}

// ValidAttrName reports whether name is an XML name usable as a style
// attribute: a letter or '_' followed by letters, digits, '-', '.' or '_',
// and not one of the geometry attributes.
func ValidAttrName(name string) bool {
	if name == "" || geometryAttrs[name] {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
