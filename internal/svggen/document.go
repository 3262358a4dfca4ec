/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svggen

import (
	"strconv"
	"strings"

	"boxsvg/internal/shape"
	"boxsvg/internal/vector"
)

const (
	header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<!-- Creator: boxsvg --><svg xmlns="http://www.w3.org/2000/svg" xml:space="preserve" width="{physw}{unit}" height="{physh}{unit}" version="1.1" style="shape-rendering:geometricPrecision; text-rendering:geometricPrecision; image-rendering:optimizeQuality; fill-rule:evenodd; clip-rule:evenodd" viewBox="{left} {top} {width} {height}"
 xmlns:xlink="http://www.w3.org/1999/xlink"><g id="Layer1">
`
	footer = `</g></svg>`
)

// assemble joins header, one fragment per primitive in input order, and footer.
// size is the physical width and height in the given unit.
func assemble(vp vector.Viewport, size vector.Pt, prims []Primitive, unit string) string {
	hdr := strings.NewReplacer(
		"{unit}", unit,
		"{physw}", num(size.X),
		"{physh}", num(size.Y),
		"{width}", num(vp.Width()),
		"{height}", num(vp.Height()),
		"{left}", num(vp.MinX),
		"{top}", num(vp.MinY),
	).Replace(header)

	var b strings.Builder
	b.Grow(len(hdr) + len(footer) + 96*len(prims))
	b.WriteString(hdr)
	for _, p := range prims {
		writeFragment(&b, p)
	}
	b.WriteString(footer)
	return b.String()
}

func writeFragment(b *strings.Builder, p Primitive) {
	attrs := attrString(p.Style)
	switch p.Kind {
	case shape.Circle:
		b.WriteString("  <circle ")
		b.WriteString(attrs)
		b.WriteString(` cx="` + num(p.Center.X) + `" cy="` + num(p.Center.Y) + `" r="` + num(p.Radius) + `" />` + "\n")
	case shape.Line:
		a, z := p.Points[0], p.Points[1]
		b.WriteString("  <line ")
		b.WriteString(attrs)
		b.WriteString(` x1="` + num(a.X) + `" y1="` + num(a.Y) + `" x2="` + num(z.X) + `" y2="` + num(z.Y) + `" />` + "\n")
	case shape.Polygon:
		b.WriteString("  <polygon ")
		b.WriteString(attrs)
		b.WriteString(` points="` + pointList(p.Points) + `" />` + "\n")
	default:
		b.WriteString("  <polyline ")
		b.WriteString(attrs)
		b.WriteString(` points="` + pointList(p.Points) + `" />` + "\n")
	}
}

func attrString(s shape.Style) string {
	attrs := s.Attrs()
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.Name + `="` + escAttr(a.Value) + `"`
	}
	return strings.Join(parts, " ")
}

func pointList(pts []vector.Pt) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

// num formats v in its shortest exact decimal form.
func num(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", "\n", " ", "\r", "")

func escAttr(s string) string { return attrEscaper.Replace(s) }
