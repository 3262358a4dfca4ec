/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package svggen renders lists of shape records into a minimal SVG document
// sized to the geometry it contains.
package svggen

import (
	"errors"
	"fmt"
	"math"
)

// Config carries every rendering default explicitly; there is no package state.
type Config struct {
	Zoom    float64 // multiplier for all non-text coordinates
	XOffset float64
	YOffset float64
	// Window overrides the computed viewport. Two values give the upper-right
	// corner (lower-left stays at the offsets), four give both corners. Window
	// values are subject to zoom and offset.
	Window []float64

	LineWidth float64
	Fill      string
	LineColor string
	// AutoClosePoly turns polylines whose first and last points coincide into polygons.
	AutoClosePoly bool
	// FontDir is the base directory for relative font paths in text shapes.
	FontDir string
}

// DefaultConfig returns zoom 1, no offsets, black 1-unit strokes without fill
// and polygon detection enabled.
func DefaultConfig() Config {
	return Config{
		Zoom:          1,
		LineWidth:     1,
		Fill:          "none",
		LineColor:     "black",
		AutoClosePoly: true,
	}
}

var (
	ErrZoom   = errors.New("zoom must be a positive finite number")
	ErrWindow = errors.New("window must have 2 or 4 values")
)

// Validate checks the configuration before any shape is processed.
func (c Config) Validate() error {
	if c.Zoom <= 0 || math.IsNaN(c.Zoom) || math.IsInf(c.Zoom, 0) {
		return ErrZoom
	}
	switch len(c.Window) {
	case 0, 2, 4:
	default:
		return fmt.Errorf("%w, got %d", ErrWindow, len(c.Window))
	}
	return nil
}
