//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"

	"phonemepal/internal/catalog"
	"phonemepal/internal/glyphfont"
	"phonemepal/internal/trace"
)

func newArea(t *testing.T) *traceArea {
	t.Helper()
	lib, err := glyphfont.NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	return newTraceArea(trace.New(lib))
}

func surfacePixels(t *testing.T, a *traceArea) []byte {
	t.Helper()
	img := a.tc.Image()
	if img == nil {
		t.Fatalf("trace surface missing")
	}
	out := make([]byte, len(img.Pix))
	copy(out, img.Pix)
	return out
}

func TestTraceArea_LayoutResizesSurface(t *testing.T) {
	a := newArea(t)
	r, ok := a.CreateRenderer().(*traceAreaRenderer)
	if !ok {
		t.Fatalf("expected traceAreaRenderer, got %T", a.CreateRenderer())
	}
	r.Layout(fyne.NewSize(400, 300))
	w, h := a.tc.Size()
	if w != 400 || h != 300 {
		t.Fatalf("surface size = %dx%d, want 400x300", w, h)
	}
	if r.img.Image == nil {
		t.Fatalf("renderer image not bound to the surface")
	}
}

func TestTraceArea_DragDrawsInk(t *testing.T) {
	a := newArea(t)
	r := a.CreateRenderer().(*traceAreaRenderer)
	r.Layout(fyne.NewSize(200, 150))
	a.SetGlyph("A", catalog.Latin)
	before := surfacePixels(t, a)

	a.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 40)},
		Dragged:    fyne.Delta{DX: 5, DY: 5},
	})
	a.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(120, 90)},
		Dragged:    fyne.Delta{DX: 80, DY: 50},
	})
	a.DragEnd()

	if bytes.Equal(before, surfacePixels(t, a)) {
		t.Fatalf("drag left no ink on the surface")
	}
	if a.dragging {
		t.Fatalf("drag state should be closed after DragEnd")
	}
}

func TestTraceArea_SetGlyphDropsInk(t *testing.T) {
	a := newArea(t)
	r := a.CreateRenderer().(*traceAreaRenderer)
	r.Layout(fyne.NewSize(200, 150))
	a.SetGlyph("B", catalog.Latin)
	clean := surfacePixels(t, a)

	a.Tapped(&fyne.PointEvent{Position: fyne.NewPos(60, 60)})
	if bytes.Equal(clean, surfacePixels(t, a)) {
		t.Fatalf("tap left no ink")
	}
	a.SetGlyph("B", catalog.Latin)
	if !bytes.Equal(clean, surfacePixels(t, a)) {
		t.Fatalf("glyph change must restore a clean guide")
	}
}
