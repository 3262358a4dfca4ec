/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"boxsvg/internal/shape"
	"boxsvg/internal/svggen"
	"boxsvg/internal/version"
)

// PDFOptions controls PDF metadata. The page always matches the viewport at
// one PDF unit per millimetre.
type PDFOptions struct {
	Title  string
	Author string
}

// WritePDF draws every primitive of res on a single page and writes path.
func WritePDF(res *svggen.Result, path string, opt PDFOptions) error {
	if res == nil {
		return fmt.Errorf("render result is nil")
	}
	vp := res.Viewport
	pageW := math.Max(vp.Width(), 1)
	pageH := math.Max(vp.Height(), 1)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
		OrientationStr: "P",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetCreator("boxsvg "+version.Version, false)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.AddPage()

	for _, p := range res.Primitives {
		drawPrimitive(pdf, p, -vp.MinX, -vp.MinY)
	}
	if pdf.Err() {
		return fmt.Errorf("build pdf: %w", pdf.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// drawPrimitive paints one primitive translated by (dx, dy). Primitives with
// neither a usable stroke nor a usable fill are skipped.
func drawPrimitive(pdf *gofpdf.Fpdf, p svggen.Primitive, dx, dy float64) {
	fillVal, _ := p.Style.Get(shape.AttrFill)
	strokeVal, _ := p.Style.Get(shape.AttrStroke)
	fc, hasFill := paint(fillVal)
	sc, hasStroke := paint(strokeVal)
	if p.Kind == shape.Line {
		hasFill = false
	}
	style := ""
	switch {
	case hasFill && hasStroke:
		style = "FD"
	case hasFill:
		style = "F"
	case hasStroke:
		style = "D"
	default:
		return
	}
	if hasStroke {
		pdf.SetDrawColor(int(sc.R), int(sc.G), int(sc.B))
		pdf.SetLineWidth(strokeWidth(p.Style, 1))
	}
	if hasFill {
		pdf.SetFillColor(int(fc.R), int(fc.G), int(fc.B))
	}
	alpha := opacity(p.Style)
	pdf.SetAlpha(alpha, "Normal")
	defer pdf.SetAlpha(1, "Normal")

	switch p.Kind {
	case shape.Circle:
		pdf.Circle(p.Center.X+dx, p.Center.Y+dy, p.Radius, style)
	case shape.Line:
		if len(p.Points) == 2 {
			pdf.Line(p.Points[0].X+dx, p.Points[0].Y+dy, p.Points[1].X+dx, p.Points[1].Y+dy)
		}
	case shape.Polygon:
		pts := make([]gofpdf.PointType, len(p.Points))
		for i, v := range p.Points {
			pts[i] = gofpdf.PointType{X: v.X + dx, Y: v.Y + dy}
		}
		pdf.Polygon(pts, style)
	case shape.Polyline:
		if len(p.Points) == 0 {
			return
		}
		pdf.MoveTo(p.Points[0].X+dx, p.Points[0].Y+dy)
		for _, v := range p.Points[1:] {
			pdf.LineTo(v.X+dx, v.Y+dy)
		}
		pdf.DrawPath(style)
	}
}
