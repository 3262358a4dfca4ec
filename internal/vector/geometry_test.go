/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectContainsAndUnion(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	u := r.Union(R(0, 0, 5, 5))
	if u.X != 0 || u.Y != 0 || u.W != 110 || u.H != 70 {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestZoomOffset(t *testing.T) {
	m := ZoomOffset(2, 10, -4)
	got := m.ApplyAll([]Pt{{1, 2}, {0, 0}})
	if got[0] != (Pt{12, 0}) || got[1] != (Pt{10, -4}) {
		t.Fatalf("unexpected zoom/offset result: %+v", got)
	}
}

func TestFloatRound(t *testing.T) {
	if v := FloatRound(1.23456, 2); v != 1.23 {
		t.Fatalf("FloatRound = %v", v)
	}
	if v := FloatRound(1.5, -1); v != 1.5 {
		t.Fatalf("negative places should be identity, got %v", v)
	}
}
