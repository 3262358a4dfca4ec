/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"

	applog "boxsvg/internal/log"
	"boxsvg/internal/svggen"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
	PresetCut   PresetName = "cut"
)

const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

var (
	ErrUnknownPreset = errors.New("unknown export preset")
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParsePreset accepts preset names case-insensitively; empty means cut.
func ParsePreset(s string) (PresetName, error) {
	switch p := PresetName(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PresetCut, nil
	case PresetWeb, PresetPrint, PresetCut:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
}

// PresetFormats lists the formats a preset writes. SVG is always first.
func PresetFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{FormatSVG, FormatPNG}
	case PresetPrint:
		return []string{FormatSVG, FormatPDF}
	default:
		return []string{FormatSVG}
	}
}

// NormalizeFormats lower-cases, trims and de-duplicates formats, keeping the
// first occurrence order. Unknown names are an error.
func NormalizeFormats(formats []string) ([]string, error) {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "":
			continue
		case FormatSVG, FormatPNG, FormatPDF:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// BatchOptions controls multi-format export of one render result.
//
// Path semantics: Output names the SVG file. Other formats replace its
// extension, so "out/tray.svg" also yields "out/tray.png" and "out/tray.pdf".
type BatchOptions struct {
	Preset  PresetName
	Formats []string // empty means preset defaults
	Output  string
	PNG     PNGOptions
	PDF     PDFOptions
}

// Written is one file produced by Batch.
type Written struct {
	Format string
	Path   string
}

// BatchResult lists written files in format order. Thumb is set when
// PNG.ThumbMax > 0.
type BatchResult struct {
	Files []Written
	Thumb *Thumb
}

// Batch writes res in every requested format.
func Batch(res *svggen.Result, opt BatchOptions) (*BatchResult, error) {
	if res == nil {
		return nil, fmt.Errorf("render result is nil")
	}
	if opt.Output == "" {
		return nil, fmt.Errorf("output path is empty")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = PresetFormats(opt.Preset)
	}
	formats, err := NormalizeFormats(formats)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: none given", ErrUnknownFormat)
	}

	l := applog.WithOperation(applog.WithComponent("export"), "batch")
	base := strings.TrimSuffix(opt.Output, filepath.Ext(opt.Output))
	if err := os.MkdirAll(filepath.Dir(opt.Output), 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	out := &BatchResult{}
	var raster *image.RGBA
	for _, f := range formats {
		path := base + "." + f
		if f == FormatSVG {
			path = opt.Output
		}
		switch f {
		case FormatSVG:
			if err := res.WriteFile(path); err != nil {
				return out, err
			}
		case FormatPNG:
			img, err := WritePNG(res, path, opt.PNG)
			if err != nil {
				return out, fmt.Errorf("png: %w", err)
			}
			raster = img
		case FormatPDF:
			if err := WritePDF(res, path, opt.PDF); err != nil {
				return out, fmt.Errorf("pdf: %w", err)
			}
		}
		l.Info("exported", "format", f, "path", path)
		out.Files = append(out.Files, Written{Format: f, Path: path})
	}

	if opt.PNG.ThumbMax > 0 {
		if raster == nil {
			if raster, err = Rasterize(res, opt.PNG); err != nil {
				return out, fmt.Errorf("thumbnail: %w", err)
			}
		}
		if out.Thumb, err = Thumbnail(raster, opt.PNG.ThumbMax); err != nil {
			return out, err
		}
	}
	return out, nil
}
