/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package boxes

import (
	"fmt"
	"math"

	"boxsvg/internal/shape"
	"boxsvg/internal/vector"
)

// PanelOptions describes a box glued from rigid panels of noticeable
// thickness. Length, Width and Height are interior dimensions.
type PanelOptions struct {
	Length, Width, Height float64
	Thickness             float64
	SideTeeth             int // teeth on the vertical side edges
	BottomTeeth           int // teeth joining the bottom to the four sides
	Top                   bool
	TopTeeth              int // 0 gives a plain lid that does not mesh
}

// DefaultPanelOptions returns 3 mm panels with three side and bottom teeth
// and a lid with two teeth.
func DefaultPanelOptions(length, width, height float64) PanelOptions {
	return PanelOptions{
		Length: length, Width: width, Height: height,
		Thickness: 3, SideTeeth: 3, BottomTeeth: 3,
		Top: true, TopTeeth: 2,
	}
}

// Panel lays out four toothed side panels, the bottom and optionally the lid.
// Every panel is one closed outline.
func Panel(o PanelOptions) (Layout, error) {
	if err := firstErr(
		positive("length", o.Length), positive("width", o.Width), positive("height", o.Height),
		positive("thickness", o.Thickness),
	); err != nil {
		return Layout{}, err
	}
	if o.SideTeeth < 0 || o.BottomTeeth < 0 || o.TopTeeth < 0 {
		return Layout{}, fmt.Errorf("teeth counts must not be negative")
	}
	l, w, h, t := o.Length, o.Width, o.Height, o.Thickness

	side := func(span float64) []vector.Pt {
		var p []vector.Pt
		p = append(p, Teeth(pt(t, t), pt(span+t, t), o.TopTeeth, -t, true)...)
		p = append(p, Teeth(pt(span+t, t), pt(span+t, t+h), o.SideTeeth, -t, false)...)
		p = append(p, Teeth(pt(span+t, t+h), pt(t, t+h), o.BottomTeeth, -t, true)...)
		p = append(p, Teeth(pt(t, t+h), pt(t, t), o.SideTeeth, -t, true)...)
		return p
	}
	plate := func(teeth int) []vector.Pt {
		p := []vector.Pt{pt(0, 0)}
		p = append(p, Teeth(pt(t, 0), pt(t+l, 0), teeth, t, true)...)
		p = append(p, pt(l+2*t, 0))
		p = append(p, Teeth(pt(l+2*t, t), pt(l+2*t, t+w), teeth, t, true)...)
		p = append(p, pt(l+2*t, w+2*t))
		p = append(p, Teeth(pt(l+t, w+2*t), pt(t, w+2*t), teeth, t, true)...)
		p = append(p, pt(0, w+2*t))
		p = append(p, Teeth(pt(0, w+t), pt(0, t), teeth, t, true)...)
		p = append(p, pt(0, 0))
		return p
	}

	var recs []shape.Record
	add := func(pts []vector.Pt, dx, dy float64) {
		recs = append(recs, shape.Points(vector.Translate(dx, dy).ApplyAll(pts)))
	}
	long := side(l)
	add(long, 0, 0)
	add(long, l+3*t, 0)
	short := side(w)
	add(short, 0, h+3*t)
	add(short, w+3*t, h+3*t)
	add(plate(o.BottomTeeth), 0, 2*h+6*t)
	if o.Top {
		add(plate(o.TopTeeth), l+3*t, 2*h+6*t)
	}
	return Layout{Shapes: recs}, nil
}

// Teeth returns the vertices of a toothed edge from origin to target with
// the given number of protrusions, offset deep to the right of the walking
// direction. With even set the edge starts with a trough instead of a tooth.
// A non-positive count gives the straight edge.
func Teeth(origin, target vector.Pt, teeth int, offset float64, even bool) []vector.Pt {
	if teeth <= 0 {
		return []vector.Pt{origin, target}
	}
	steps := teeth*2 - 1
	sx := (target.X - origin.X) / float64(steps)
	sy := (target.Y - origin.Y) / float64(steps)
	angle := math.Atan2(target.Y-origin.Y, target.X-origin.X) + math.Pi/2
	dx, dy := math.Cos(angle)*offset, math.Sin(angle)*offset

	out := []vector.Pt{origin}
	if !even {
		out = append(out, pt(origin.X+dx, origin.Y+dy))
	}
	for s := 1; s <= steps; s++ {
		base := pt(origin.X+float64(s)*sx, origin.Y+float64(s)*sy)
		if s == steps {
			base = target // exact, so chained edges stay closed
		}
		deep := pt(base.X+dx, base.Y+dy)
		if (s%2 == 1) != even {
			out = append(out, deep, base)
		} else {
			out = append(out, base)
			if s < steps {
				out = append(out, deep)
			}
		}
	}
	return out
}
