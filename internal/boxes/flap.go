/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package boxes

// FlapOptions describes a classic tuck-flap box. Zero flap widths are
// derived from the dimensions, zero Dashes means 5.
type FlapOptions struct {
	Width, Height, Depth float64
	OpenFlap             float64 // flaps that open, default (W+H+D)/24
	ClosedFlap           float64 // glued flaps, default (W+H+D)/18
	Dashes               int     // cut dashes per perforated fold
}

// Flap lays out the faces and flaps of a tuck-flap box. Folds are dashed,
// outer edges are solid.
func Flap(o FlapOptions) (Layout, error) {
	if err := firstErr(
		positive("width", o.Width), positive("height", o.Height), positive("depth", o.Depth),
		nonNegative("open flap", o.OpenFlap), nonNegative("closed flap", o.ClosedFlap),
	); err != nil {
		return Layout{}, err
	}
	w, h, d := o.Width, o.Height, o.Depth
	of, cf := o.OpenFlap, o.ClosedFlap
	if of == 0 {
		of = (w + h + d) / 24
	}
	if cf == 0 {
		cf = (w + h + d) / 18
	}
	c := &collector{dashes: o.Dashes}
	if c.dashes == 0 {
		c.dashes = 5
	}

	// front
	pa, pb, pc, pd := pt(0, 0), pt(w, 0), pt(0, h), pt(w, h)
	c.dash(pa, pb)
	c.dash(pa, pc)
	c.dash(pc, pd)
	c.dash(pb, pd)

	// right
	pe, pf := pt(w+d, 0), pt(w+d, h)
	c.dash(pb, pe)
	c.dash(pd, pf)
	c.dash(pe, pf)

	// left
	pi, pj := pt(-d, 0), pt(-d, h)
	c.dash(pa, pi)
	c.dash(pc, pj)
	c.line(pi.X, pi.Y, pi.X, pi.Y+cf)
	c.line(pj.X, pj.Y, pj.X, pj.Y-cf)

	// back
	pg, ph := pt(pe.X+w, 0), pt(pe.X+w, h)
	c.line(pe.X, pe.Y, pg.X, pg.Y)
	c.line(pf.X+cf, pf.Y, ph.X-cf, ph.Y)
	c.line(pg.X, pg.Y+cf, ph.X, ph.Y-cf)

	// top
	pk, pl := pt(0, -d), pt(w, -d)
	c.line(pa.X, pa.Y, pk.X, pk.Y)
	c.line(pb.X, pb.Y, pl.X, pl.Y)
	c.line(pk.X, pk.Y, pk.X+of, pk.Y)
	c.line(pl.X, pl.Y, pl.X-of, pl.Y)
	c.dash(pt(pk.X+of, pk.Y), pt(pl.X-of, pl.Y))

	// bottom
	pm, pn := pt(pc.X, pc.Y+d), pt(pd.X, pd.Y+d)
	c.line(pc.X, pc.Y, pm.X, pm.Y)
	c.line(pd.X, pd.Y, pn.X, pn.Y)
	c.line(pm.X, pm.Y, pm.X+cf, pm.Y)
	c.line(pn.X, pn.Y, pn.X-cf, pn.Y)

	// flaps of the right face
	c.line(pb.X, pb.Y, pb.X+of, pb.Y-of, pe.X, pe.Y-of, pe.X, pe.Y)
	c.line(pd.X, pd.Y, pd.X+cf, pd.Y+cf, pf.X-cf, pf.Y+cf, pf.X, pf.Y)

	// flaps of the left face, including the glue tab
	c.line(pa.X, pa.Y, pa.X-of, pa.Y-of, pi.X, pi.Y-of, pi.X, pi.Y)
	c.line(pc.X, pc.Y, pc.X-cf, pc.Y+cf, pj.X+cf, pj.Y+cf, pj.X, pj.Y)
	c.line(pi.X, pi.Y+cf*.5, pi.X-cf, pi.Y+cf, pj.X-cf, pj.Y-cf, pj.X, pj.Y-cf*.5)
	c.dash(pt(pi.X, pi.Y+cf), pt(pj.X, pj.Y-cf))

	// back tab
	c.line(pg.X, pg.Y, pg.X+cf, pg.Y, ph.X+cf, ph.Y, ph.X, ph.Y, ph.X, ph.Y+cf, pf.X, pf.Y+cf, pf.X, pf.Y)

	// lid
	c.line(pk.X, pk.Y, pk.X+of, pk.Y-of, pl.X-of, pl.Y-of, pl.X, pl.Y)

	// bottom flap
	c.line(pm.X+cf*.5, pm.Y, pm.X+cf, pm.Y+cf, pn.X-cf, pn.Y+cf, pn.X-cf*.5, pn.Y)
	c.dash(pt(pm.X+cf, pm.Y), pt(pn.X-cf, pn.Y))

	return Layout{Shapes: c.recs, XOffset: d + cf, YOffset: d + of}, nil
}
