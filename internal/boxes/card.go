/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package boxes

// CardOptions describes a thin-card box with a locking lid and slotted
// static flaps.
type CardOptions struct {
	Width, Height, Depth float64
	OpenFlap             float64 // default Width/5
	ClosedFlap           float64 // default Width/5
	Dashes               int     // default 5
	// DashDensity shifts how much of each perforation is cut, in percent
	// (-50 nearly uncut, +50 fully cut).
	DashDensity float64
	SlotWidth   float64 // default 1
}

// Card lays out a card box. Compared to Flap the static flaps slide into
// slots on the back face and the lid carries locking shoulders.
func Card(o CardOptions) (Layout, error) {
	if err := firstErr(
		positive("width", o.Width), positive("height", o.Height), positive("depth", o.Depth),
		nonNegative("open flap", o.OpenFlap), nonNegative("closed flap", o.ClosedFlap),
		nonNegative("slot width", o.SlotWidth),
	); err != nil {
		return Layout{}, err
	}
	w, h, d := o.Width, o.Height, o.Depth
	of, cf, slot := o.OpenFlap, o.ClosedFlap, o.SlotWidth
	if of == 0 {
		of = w / 5
	}
	if cf == 0 {
		cf = w / 5
	}
	if slot == 0 {
		slot = 1
	}
	c := &collector{dashes: o.Dashes, density: o.DashDensity / 100}
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

	// back with the two slots
	pg, ph := pt(pe.X+w, 0), pt(pe.X+w, h)
	c.dash(pf, pt(pf.X+cf, pf.Y))
	c.dash(ph, pt(ph.X-cf, ph.Y))
	c.dash(pg, pt(pg.X, pg.Y+cf))
	c.dash(ph, pt(ph.X, ph.Y-cf))
	c.line(pe.X, pe.Y, pg.X, pg.Y)
	c.line(pf.X+cf, pf.Y, ph.X-cf, ph.Y,
		ph.X-cf, ph.Y+slot,
		pf.X+cf, ph.Y+slot,
		pf.X+cf, pf.Y)
	c.line(pg.X, pg.Y+cf, ph.X, ph.Y-cf,
		ph.X+slot, ph.Y-cf,
		ph.X+slot, pg.Y+cf,
		pg.X, pg.Y+cf)

	// top
	pk, pl := pt(0, -d), pt(w, -d)
	c.dash(pt(pk.X+of, pk.Y), pt(pl.X-of, pl.Y))
	c.line(pa.X, pa.Y, pk.X, pk.Y)
	c.line(pb.X, pb.Y, pl.X, pl.Y)
	c.line(pk.X, pk.Y, pk.X+of, pk.Y)
	c.line(pl.X, pl.Y, pl.X-of, pl.Y)

	// bottom
	pm, pn := pt(pc.X, pc.Y+d), pt(pd.X, pd.Y+d)
	c.line(pc.X, pc.Y, pm.X, pm.Y)
	c.line(pd.X, pd.Y, pn.X, pn.Y)
	c.line(pm.X, pm.Y, pm.X+cf, pm.Y)
	c.line(pn.X, pn.Y, pn.X-cf, pn.Y)

	// flaps of the right face
	c.line(pb.X, pb.Y, pb.X+of, pb.Y-of, pe.X, pe.Y-of, pe.X, pe.Y)
	c.line(pd.X, pd.Y, pd.X+cf, pd.Y+cf, pf.X-cf, pf.Y+cf, pf.X, pf.Y)

	// flaps of the left face
	c.line(pa.X, pa.Y, pa.X-of, pa.Y-of, pi.X, pi.Y-of, pi.X, pi.Y)
	c.line(pc.X, pc.Y, pc.X-cf, pc.Y+cf, pj.X+cf, pj.Y+cf, pj.X, pj.Y)
	c.line(pi.X, pi.Y+cf*.8, pi.X-cf, pi.Y+cf, pj.X-cf, pj.Y-cf, pj.X, pj.Y-cf*.8)
	c.dash(pt(pi.X, pi.Y+cf), pt(pj.X, pj.Y-cf))

	// back tab
	c.line(pg.X, pg.Y, pg.X+cf, pg.Y+cf*.3, ph.X+cf, ph.Y-cf*.3,
		ph.X, ph.Y, ph.X-cf*.3, ph.Y+cf, pf.X+cf*.3, pf.Y+cf,
		pf.X, pf.Y)

	// lid with locking shoulders
	c.line(pk.X+of, pk.Y, pk.X+of, pk.Y-of*.2,
		pk.X, pk.Y-of*.2, pk.X+of, pk.Y-of,
		pl.X-of, pl.Y-of, pl.X, pl.Y-of*.2,
		pl.X-of, pl.Y-of*.2, pl.X-of, pl.Y)

	// bottom flap
	c.line(pm.X+cf*.8, pm.Y, pm.X+cf, pm.Y+cf, pn.X-cf, pn.Y+cf, pn.X-cf*.8, pn.Y)
	c.dash(pt(pm.X+cf, pm.Y), pt(pn.X-cf, pn.Y))

	return Layout{Shapes: c.recs, XOffset: d + cf, YOffset: d + of}, nil
}
