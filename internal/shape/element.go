/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import (
	"fmt"
	"strings"

	"boxsvg/internal/vector"
)

type elemKind uint8

const (
	elemNumber elemKind = iota
	elemToken
	elemPoint
)

// Element is one entry of a shape record: a number, a style token or an x,y point.
type Element struct {
	kind elemKind
	num  float64
	tok  string
	pt   vector.Pt
}

// N returns a numeric coordinate element.
func N(v float64) Element { return Element{kind: elemNumber, num: v} }

// T returns a style token element ("fill:red", "128,64,255", "blue", ...).
func T(s string) Element { return Element{kind: elemToken, tok: s} }

// P returns a nested point element.
func P(x, y float64) Element { return Element{kind: elemPoint, pt: vector.Pt{X: x, Y: y}} }

func (e Element) IsNumber() bool { return e.kind == elemNumber }
func (e Element) IsToken() bool  { return e.kind == elemToken }
func (e Element) IsPoint() bool  { return e.kind == elemPoint }

func (e Element) String() string {
	switch e.kind {
	case elemToken:
		return fmt.Sprintf("%q", e.tok)
	case elemPoint:
		return fmt.Sprintf("[%g %g]", e.pt.X, e.pt.Y)
	default:
		return fmt.Sprintf("%g", e.num)
	}
}

// Record is one input geometry+style unit submitted to the renderer.
type Record []Element

// Nums builds a record from plain coordinates followed by optional style tokens.
func Nums(coords []float64, tokens ...string) Record {
	rec := make(Record, 0, len(coords)+len(tokens))
	for _, c := range coords {
		rec = append(rec, N(c))
	}
	for _, t := range tokens {
		rec = append(rec, T(t))
	}
	return rec
}

// Points builds a record from nested points followed by optional style tokens.
func Points(pts []vector.Pt, tokens ...string) Record {
	rec := make(Record, 0, len(pts)+len(tokens))
	for _, p := range pts {
		rec = append(rec, P(p.X, p.Y))
	}
	for _, t := range tokens {
		rec = append(rec, T(t))
	}
	return rec
}

func (r Record) String() string {
	parts := make([]string, len(r))
	for i, e := range r {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FromValues converts decoded YAML/JSON values into a typed Record.
// Accepted values: numbers, strings and two-element numeric lists (points).
func FromValues(values []any) (Record, error) {
	rec := make(Record, 0, len(values))
	for i, v := range values {
		switch tv := v.(type) {
		case string:
			rec = append(rec, T(tv))
		case []any:
			if len(tv) != 2 {
				return nil, fmt.Errorf("element %d: nested point must have 2 values, got %d", i, len(tv))
			}
			x, okx := toFloat(tv[0])
			y, oky := toFloat(tv[1])
			if !okx || !oky {
				return nil, fmt.Errorf("element %d: nested point must be numeric: %v", i, tv)
			}
			rec = append(rec, P(x, y))
		case []float64:
			if len(tv) != 2 {
				return nil, fmt.Errorf("element %d: nested point must have 2 values, got %d", i, len(tv))
			}
			rec = append(rec, P(tv[0], tv[1]))
		default:
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("element %d: unsupported value %v (%T)", i, v, v)
			}
			rec = append(rec, N(f))
		}
	}
	return rec, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
