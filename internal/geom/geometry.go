/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom provides the small 2D geometry vocabulary of the trace engine.
// Float values use float32 for compactness and to align with UI toolkits.
package geom

import "math"

// Pt is a 2D point in surface-local pixels.
type Pt struct{ X, Y float32 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Pt { return Pt{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Dist returns the Euclidean distance between two points.
func Dist(a, b Pt) float32 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return float32(math.Hypot(dx, dy))
}

// Lerp interpolates between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b Pt, t float32) Pt {
	return Pt{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Sub translates p by -o, mapping viewport coordinates into surface-local
// coordinates given the surface's on-screen offset o.
func Sub(p, o Pt) Pt { return Pt{X: p.X - o.X, Y: p.Y - o.Y} }
