/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package trace implements the handwriting-practice surface: a faint centered
// guide glyph rendered into an owned raster, with freehand ink strokes
// composited on top. The surface is exclusively owned by one Canvas and all
// operations are synchronous; callers drive it from their event loop.
package trace

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"phonemepal/internal/catalog"
	"phonemepal/internal/geom"
	"phonemepal/internal/glyphfont"
	applog "phonemepal/internal/log"
)

const (
	// inkWidth is the fixed stroke width in surface pixels.
	inkWidth = 8
	// outlineWidth is the guide outline thickness.
	outlineWidth = 2
	// latinScale and burmeseScale size the guide glyph relative to the
	// smaller surface dimension. Burmese glyphs get a smaller nominal size.
	latinScale   = 0.75
	burmeseScale = 0.65
)

var (
	surfaceBg   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	guideFill   = color.RGBA{R: 0, G: 0, B: 0, A: 26} // ~10% ink
	guideStroke = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	inkColor    = color.RGBA{R: 46, G: 94, B: 170, A: 255}
)

// Canvas renders the trace guide and accepts freehand ink. Not safe for
// concurrent use; the event model is single-threaded.
type Canvas struct {
	faces *glyphfont.Library

	img  *image.RGBA
	w, h int

	glyph  string
	script catalog.Script

	strokeOpen bool
	strokeLast geom.Pt

	hist *history
	log  *slog.Logger
}

// New returns a Canvas without a surface; Resize must be called before any
// drawing takes effect.
func New(faces *glyphfont.Library) *Canvas {
	return &Canvas{
		faces: faces,
		hist:  newHistory(16 * 1024 * 1024),
		log:   applog.WithComponent("trace"),
	}
}

// Resize recomputes the backing raster to match the displayed size 1:1 and
// redraws the guide from scratch. Any ink already drawn is discarded, as is an
// open stroke; resizing during tracing resets the trace.
func (c *Canvas) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.w, c.h = w, h
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.strokeOpen = false
	c.hist.clear()
	c.renderGuide()
}

// RenderGuide sets the active glyph and script and redraws the guide, erasing
// all ink. Pixels are reproducible: identical surface dimensions and glyph
// always produce identical output.
func (c *Canvas) RenderGuide(glyph string, script catalog.Script) {
	c.glyph = glyph
	c.script = script
	c.strokeOpen = false
	c.hist.clear()
	c.renderGuide()
}

// Clear erases all ink and restores the guide for the current glyph.
func (c *Canvas) Clear() {
	c.strokeOpen = false
	c.hist.clear()
	c.renderGuide()
}

func (c *Canvas) renderGuide() {
	if c.img == nil {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: surfaceBg}, image.Point{}, draw.Src)
	if c.glyph == "" {
		return
	}

	scale := latinScale
	if c.script == catalog.BurmeseScript {
		scale = burmeseScale
	}
	size := float64(min(c.w, c.h)) * scale
	face, err := c.faces.Face(c.script, size)
	if err != nil {
		c.log.Warn("guide face unavailable", slog.String("glyph", c.glyph), slog.Any("err", err))
		return
	}
	defer face.Close()

	mask := glyphMask(face, c.glyph, c.w, c.h)
	paintGuide(c.img, mask)
}

// glyphMask rasterizes the glyph centered into a coverage mask of the surface
// size.
func glyphMask(face font.Face, glyph string, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	adv := font.MeasureString(face, glyph)
	m := face.Metrics()
	x := (fixed.I(w) - adv) / 2
	// vertically center the em box around the surface midline
	y := fixed.I(h)/2 + (m.Ascent-m.Descent)/2
	d := font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Alpha{A: 255}),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(glyph)
	return mask
}

// paintGuide composites the mask as a low-opacity fill plus an outline ring.
// A pixel is outline when it sits outside the glyph body but within
// outlineWidth of it.
func paintGuide(img *image.RGBA, mask *image.Alpha) {
	b := mask.Bounds()
	const threshold = 128
	inside := func(x, y int) bool {
		if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
			return false
		}
		return mask.AlphaAt(x, y).A >= threshold
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if inside(x, y) {
				blend(img, x, y, guideFill)
				continue
			}
			ring := false
			for dy := -outlineWidth; dy <= outlineWidth && !ring; dy++ {
				for dx := -outlineWidth; dx <= outlineWidth && !ring; dx++ {
					if inside(x+dx, y+dy) {
						ring = true
					}
				}
			}
			if ring {
				img.SetRGBA(x, y, guideStroke)
			}
		}
	}
}

// blend draws src over the current pixel with source-over alpha.
func blend(img *image.RGBA, x, y int, src color.RGBA) {
	dst := img.RGBAAt(x, y)
	a := uint32(src.A)
	inv := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	})
}

// BeginStroke opens a new ink path at p. A begin while a stroke is already
// open is ignored.
func (c *Canvas) BeginStroke(p geom.Pt) {
	if c.img == nil || c.strokeOpen {
		return
	}
	c.hist.push(snapshot(c.img))
	c.strokeOpen = true
	c.strokeLast = p
	c.stamp(p)
}

// ExtendStroke appends a segment from the last point to p with round caps and
// joins. No-op when no stroke is open.
func (c *Canvas) ExtendStroke(p geom.Pt) {
	if c.img == nil || !c.strokeOpen {
		return
	}
	c.segment(c.strokeLast, p)
	c.strokeLast = p
}

// EndStroke closes the current path; extends are ignored until the next begin.
func (c *Canvas) EndStroke() { c.strokeOpen = false }

// UndoStroke restores the surface to its state before the most recent stroke.
// Returns false when there is nothing to undo.
func (c *Canvas) UndoStroke() bool {
	snap, ok := c.hist.pop()
	if !ok || c.img == nil || len(snap) != len(c.img.Pix) {
		return false
	}
	c.strokeOpen = false
	copy(c.img.Pix, snap)
	return true
}

// segment stamps round dots from a to b at sub-pixel steps, which yields
// rounded caps and joins for free.
func (c *Canvas) segment(a, b geom.Pt) {
	dist := geom.Dist(a, b)
	steps := int(dist) + 1
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		c.stamp(geom.Lerp(a, b, t))
	}
}

// stamp draws one filled ink disc of diameter inkWidth at p.
func (c *Canvas) stamp(p geom.Pt) {
	r := float32(inkWidth) / 2
	x0, x1 := int(p.X-r)-1, int(p.X+r)+1
	y0, y1 := int(p.Y-r)-1, int(p.Y+r)+1
	bounds := c.img.Bounds()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x < bounds.Min.X || y < bounds.Min.Y || x >= bounds.Max.X || y >= bounds.Max.Y {
				continue
			}
			center := geom.Pt{X: float32(x) + 0.5, Y: float32(y) + 0.5}
			if geom.Dist(center, p) <= r {
				c.img.SetRGBA(x, y, inkColor)
			}
		}
	}
}

// SurfacePoint maps a viewport coordinate into surface-local space given the
// surface's current on-screen offset.
func SurfacePoint(client, origin geom.Pt) geom.Pt { return geom.Sub(client, origin) }

// Image exposes the backing raster for compositing into the host UI. Callers
// must treat it as read-only.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the current surface dimensions.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Glyph returns the glyph currently rendered as the guide.
func (c *Canvas) Glyph() string { return c.glyph }

func snapshot(img *image.RGBA) []byte {
	out := make([]byte, len(img.Pix))
	copy(out, img.Pix)
	return out
}
