/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package shape

import "fmt"

// Kind is the primitive a record renders as.
type Kind uint8

const (
	Circle Kind = iota + 1
	Line
	Polyline
	Polygon
	Text
)

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Line:
		return "line"
	case Polyline:
		return "polyline"
	case Polygon:
		return "polygon"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// MalformedShapeError reports a record whose geometry cannot be interpreted.
// The renderer skips such records and continues.
type MalformedShapeError struct {
	Index  int // position of the record in the input, -1 if unknown
	Count  int // number of coordinates left after style stripping
	Reason string
}

func (e *MalformedShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed shape: %s (%d coordinates)", e.Reason, e.Count)
	}
	return fmt.Sprintf("malformed shape %d: %s (%d coordinates)", e.Index, e.Reason, e.Count)
}

// Classify decides the primitive for p. Records with unusable style names are
// malformed. Otherwise first match wins: text, flat circle, then the
// coordinate-pair shapes.
func Classify(p Parsed, autoclose bool) (Kind, error) {
	if len(p.BadNames) > 0 {
		return 0, &MalformedShapeError{Index: -1, Count: len(p.Values), Reason: fmt.Sprintf("invalid style name %q", p.BadNames[0])}
	}
	if p.Style.Has(AttrText) {
		return Text, nil
	}
	n := len(p.Values)
	if n == 3 && !p.Nested {
		return Circle, nil
	}
	if n%2 != 0 {
		return 0, &MalformedShapeError{Index: -1, Count: n, Reason: "odd number of vertex coordinates"}
	}
	if n < 4 {
		return 0, &MalformedShapeError{Index: -1, Count: n, Reason: "at least two points required"}
	}
	if n == 4 {
		return Line, nil
	}
	if autoclose && IsClosed(p.Values) {
		return Polygon, nil
	}
	return Polyline, nil
}

// IsClosed reports whether the first point of a flat coordinate list equals its last.
func IsClosed(values []float64) bool {
	n := len(values)
	if n < 4 || n%2 != 0 {
		return false
	}
	return values[0] == values[n-2] && values[1] == values[n-1]
}
