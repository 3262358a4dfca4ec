/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"boxsvg/internal/vector"
)

// BuiltinFont names the stroke font compiled into the binary.
const BuiltinFont = "builtin"

//go:embed builtin.svf
var builtinSVF []byte

// Stroke is one pen-down polyline of a glyph in font units.
type Stroke []vector.Pt

// GlyphTable maps a character to its strokes. It is read-only once built.
type GlyphTable map[rune][]Stroke

// FontLoadError reports a font file that is missing, unreadable or holds
// geometry that is not a plain numeric literal.
type FontLoadError struct {
	Path string
	Line int    // 1-based line number, 0 if not line specific
	Text string // offending line
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("font %s: line %d %q: %v", e.Path, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("font %s: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// LoadFont reads and parses a vector font description file.
func LoadFont(path string) (GlyphTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	return ParseFont(f, path)
}

// ResolveFont returns the glyph table for a font reference. An empty name or
// BuiltinFont selects the embedded font; relative paths are resolved against dir.
func ResolveFont(name, dir string) (GlyphTable, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == BuiltinFont {
		return ParseFont(bytes.NewReader(builtinSVF), BuiltinFont)
	}
	if dir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return LoadFont(name)
}

// ParseFont parses the line-oriented font format:
//   - a line ending in ':' starts the block of the character it begins with
//   - a line with two or more commas is one stroke of whitespace separated x,y groups
//   - anything else is ignored, as is geometry before the first character block
func ParseFont(r io.Reader, name string) (GlyphTable, error) {
	glyphs := make(GlyphTable)
	var (
		cur     rune
		haveCur bool
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.Trim(sc.Text(), " \t\r\n")
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			cur = []rune(line)[0]
			haveCur = true
			if _, ok := glyphs[cur]; !ok {
				glyphs[cur] = nil
			}
			continue
		}
		if strings.Count(line, ",") < 2 || !haveCur {
			continue
		}
		stroke, err := parseStroke(line)
		if err != nil {
			return nil, &FontLoadError{Path: name, Line: lineNo, Text: line, Err: err}
		}
		glyphs[cur] = append(glyphs[cur], stroke)
	}
	if err := sc.Err(); err != nil {
		return nil, &FontLoadError{Path: name, Err: err}
	}
	return glyphs, nil
}

func parseStroke(line string) (Stroke, error) {
	groups := strings.Fields(line)
	stroke := make(Stroke, 0, len(groups))
	for _, g := range groups {
		xy := strings.Split(g, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("point %q: want x,y", g)
		}
		x, err := parseNum(xy[0])
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", g, err)
		}
		y, err := parseNum(xy[1])
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", g, err)
		}
		stroke = append(stroke, vector.Pt{X: x, Y: y})
	}
	return stroke, nil
}

// parseNum accepts plain decimal literals only. Hex floats, NaN and Inf are
// rejected even though strconv would take them.
func parseNum(s string) (float64, error) {
	if s == "" || strings.IndexFunc(s, notDecimal) >= 0 {
		return 0, fmt.Errorf("%q is not a decimal number", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func notDecimal(r rune) bool {
	return !strings.ContainsRune("0123456789+-.eE", r)
}
