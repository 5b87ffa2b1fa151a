/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 20)
	if !r.Contains(Pt{10, 10}) || !r.Contains(Pt{30, 30}) || !r.Contains(Pt{20, 20}) {
		t.Fatalf("boundary and interior points must be contained")
	}
	if r.Contains(Pt{9, 10}) || r.Contains(Pt{31, 30}) {
		t.Fatalf("outside points must not be contained")
	}
}

func TestInsetAndCenter(t *testing.T) {
	r := R(0, 0, 100, 50).Inset(10, 5)
	if r != (Rect{X: 10, Y: 5, W: 80, H: 40}) {
		t.Fatalf("Inset = %+v", r)
	}
	if c := r.Center(); c != (Pt{50, 25}) {
		t.Fatalf("Center = %+v", c)
	}
}

func TestDistAndLerp(t *testing.T) {
	if d := Dist(Pt{0, 0}, Pt{3, 4}); d != 5 {
		t.Fatalf("Dist = %v, want 5", d)
	}
	mid := Lerp(Pt{0, 0}, Pt{10, 20}, 0.5)
	if mid != (Pt{5, 10}) {
		t.Fatalf("Lerp = %+v", mid)
	}
	if Lerp(Pt{1, 2}, Pt{9, 9}, 0) != (Pt{1, 2}) {
		t.Fatalf("Lerp t=0 must return start")
	}
}

func TestSubMapsViewportToSurface(t *testing.T) {
	got := Sub(Pt{120, 85}, Pt{100, 80})
	if got != (Pt{20, 5}) {
		t.Fatalf("Sub = %+v, want {20 5}", got)
	}
}
