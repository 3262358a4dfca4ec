/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Bounds accumulates points and reports their extremes.
// The zero value is an empty accumulator.
type Bounds struct {
	n                      int
	minX, minY, maxX, maxY float64
}

// Add extends the bounds by pts.
func (b *Bounds) Add(pts ...Pt) {
	for _, p := range pts {
		if b.n == 0 {
			b.minX, b.maxX = p.X, p.X
			b.minY, b.maxY = p.Y, p.Y
		} else {
			b.minX = math.Min(b.minX, p.X)
			b.minY = math.Min(b.minY, p.Y)
			b.maxX = math.Max(b.maxX, p.X)
			b.maxY = math.Max(b.maxY, p.Y)
		}
		b.n++
	}
}

// Len returns the number of points added so far.
func (b *Bounds) Len() int { return b.n }

// Empty reports whether no point was added.
func (b *Bounds) Empty() bool { return b.n == 0 }

// Viewport returns the extremes as a Viewport. An empty accumulator yields the zero Viewport.
func (b *Bounds) Viewport() Viewport {
	if b.n == 0 {
		return Viewport{}
	}
	return Viewport{MinX: b.minX, MinY: b.minY, MaxX: b.maxX, MaxY: b.maxY}
}

// Viewport is a finalized bounding box (minX, minY, maxX, maxY).
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

func (v Viewport) Width() float64  { return v.MaxX - v.MinX }
func (v Viewport) Height() float64 { return v.MaxY - v.MinY }

// IncludeOrigin clamps the minimum corner so that (0,0) lies inside the viewport.
func (v Viewport) IncludeOrigin() Viewport {
	v.MinX = math.Min(v.MinX, 0)
	v.MinY = math.Min(v.MinY, 0)
	return v
}

// Rect returns the viewport as a Rect.
func (v Viewport) Rect() Rect { return Rect{X: v.MinX, Y: v.MinY, W: v.Width(), H: v.Height()} }
