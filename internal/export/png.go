/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"boxsvg/internal/svggen"
)

// PNGOptions controls raster output.
//   - Scale: pixels per document unit (mm); values <= 0 mean 1.
//   - ThumbMax: longest side of the history thumbnail; 0 disables it.
type PNGOptions struct {
	Scale    float64
	ThumbMax int
}

func (o PNGOptions) scale() float64 {
	if o.Scale <= 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return 1
	}
	return o.Scale
}

// Rasterize draws the rendered document on a white canvas. The canvas is at
// least 1x1 so that an empty document still produces a valid image.
func Rasterize(res *svggen.Result, opt PNGOptions) (*image.RGBA, error) {
	if res == nil {
		return nil, fmt.Errorf("render result is nil")
	}
	s := opt.scale()
	w := max(int(math.Ceil(res.Viewport.Width()*s)), 1)
	h := max(int(math.Ceil(res.Viewport.Height()*s)), 1)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if res.Viewport.Width() <= 0 || res.Viewport.Height() <= 0 {
		return img, nil
	}

	// oksvg only understands unitless width and height.
	icon, err := oksvg.ReadIconStream(strings.NewReader(res.DocumentIn("")), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

// WritePNG rasterizes res into path and returns the image for further use
// (thumbnails). Parent directories are created.
func WritePNG(res *svggen.Result, path string, opt PNGOptions) (*image.RGBA, error) {
	img, err := Rasterize(res, opt)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close png: %w", err)
	}
	return img, nil
}

// Thumb is an encoded preview image.
type Thumb struct {
	PNG  []byte
	W, H int
}

// Thumbnail scales src so that its longest side is at most maxSide and
// encodes it as PNG. Images already within bounds are encoded unscaled.
func Thumbnail(src image.Image, maxSide int) (*Thumb, error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("thumbnail size must be positive, got %d", maxSide)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxSide || h > maxSide {
		f := float64(maxSide) / float64(max(w, h))
		w = max(int(math.Round(float64(w)*f)), 1)
		h = max(int(math.Round(float64(h)*f)), 1)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return &Thumb{PNG: buf.Bytes(), W: w, H: h}, nil
}
