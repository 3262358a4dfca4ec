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
	"strconv"
	"strings"
)

// Attribute names with special meaning.
const (
	AttrStroke      = "stroke"
	AttrFill        = "fill"
	AttrStrokeWidth = "stroke-width"
	AttrText        = "text"
	AttrFont        = "font"
)

// Attr is a single presentation attribute.
type Attr struct {
	Name  string
	Value string
}

// Style is an insertion-ordered attribute mapping. Setting an existing name
// replaces its value in place.
type Style struct {
	attrs []Attr
}

// DefaultStyle returns the per-shape starting attributes.
func DefaultStyle(fill, stroke string, width float64) Style {
	var s Style
	s.Set(AttrFill, fill)
	s.Set(AttrStroke, stroke)
	s.Set(AttrStrokeWidth, strconv.FormatFloat(width, 'f', -1, 64))
	return s
}

func (s *Style) Set(name, value string) {
	for i := range s.attrs {
		if s.attrs[i].Name == name {
			s.attrs[i].Value = value
			return
		}
	}
	s.attrs = append(s.attrs, Attr{Name: name, Value: value})
}

func (s Style) Get(name string) (string, bool) {
	for _, a := range s.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (s Style) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Without returns a copy of s with the given names removed.
func (s Style) Without(names ...string) Style {
	out := Style{attrs: make([]Attr, 0, len(s.attrs))}
outer:
	for _, a := range s.attrs {
		for _, n := range names {
			if a.Name == n {
				continue outer
			}
		}
		out.attrs = append(out.attrs, a)
	}
	return out
}

// Attrs returns the attributes in insertion order.
func (s Style) Attrs() []Attr { return append([]Attr(nil), s.attrs...) }

func (s Style) Len() int { return len(s.attrs) }

func (s Style) Clone() Style { return Style{attrs: s.Attrs()} }

// ParseToken splits a style token into name and value. A token without ':'
// is a bare stroke color. Stroke and fill values go through ParseColor.
func ParseToken(tok string) (name, value string) {
	name, value, ok := strings.Cut(tok, ":")
	if !ok {
		name, value = AttrStroke, tok
	}
	if n := strings.ToLower(name); n == AttrStroke || n == AttrFill {
		value = ParseColor(value)
	}
	return name, value
}

// ParseColor converts an "r,g,b" triple of integers 0-255 into #rrggbb.
// Any other value (named colors, hex codes, raw CSS) is returned unchanged.
func ParseColor(v string) string {
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return v
	}
	var rgb [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return v
		}
		rgb[i] = n
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
