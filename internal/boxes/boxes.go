/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package boxes generates cut and fold outlines for boxes as shape records.
// Coordinates are in sheet units (millimetres once rendered) with y growing
// downward; the front face sits at the origin.
package boxes

import (
	"fmt"
	"math"

	"boxsvg/internal/shape"
	"boxsvg/internal/svggen"
	"boxsvg/internal/vector"
)

// Layout is a generated outline plus the sheet offset that moves all of it
// into positive coordinates.
type Layout struct {
	Shapes  []shape.Record
	XOffset float64
	YOffset float64
}

// Apply returns cfg with the layout offsets set.
func (l Layout) Apply(cfg svggen.Config) svggen.Config {
	cfg.XOffset = l.XOffset
	cfg.YOffset = l.YOffset
	return cfg
}

// Dashed splits the segment p1-p2 into n cut dashes separated by gaps; the
// segment starts and ends with a gap. density widens (positive) or narrows
// (negative) every dash by that fraction of a step on both ends and is
// clamped to (-0.5, 0.5).
func Dashed(p1, p2 vector.Pt, n int, density float64) []shape.Record {
	if n <= 0 {
		return nil
	}
	density = math.Max(-0.499, math.Min(0.499, density))
	steps := float64(n*2 + 1)
	dx, dy := (p2.X-p1.X)/steps, (p2.Y-p1.Y)/steps
	out := make([]shape.Record, 0, n)
	for s := 1; s < n*2+1; s += 2 {
		a, b := float64(s)-density, float64(s+1)+density
		out = append(out, shape.Nums([]float64{
			p1.X + a*dx, p1.Y + a*dy,
			p1.X + b*dx, p1.Y + b*dy,
		}))
	}
	return out
}

// collector accumulates the records of one outline.
type collector struct {
	dashes  int
	density float64
	recs    []shape.Record
}

func (c *collector) line(coords ...float64) {
	c.recs = append(c.recs, shape.Nums(coords))
}

func (c *collector) dash(p1, p2 vector.Pt) {
	c.recs = append(c.recs, Dashed(p1, p2, c.dashes, c.density)...)
}

func pt(x, y float64) vector.Pt { return vector.Pt{X: x, Y: y} }

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a positive number, got %v", name, v)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must not be negative, got %v", name, v)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
