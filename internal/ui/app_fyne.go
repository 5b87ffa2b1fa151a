//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"phonemepal/internal/breakdown"
	"phonemepal/internal/catalog"
	"phonemepal/internal/config"
	"phonemepal/internal/crash"
	"phonemepal/internal/geom"
	"phonemepal/internal/glyphfont"
	applog "phonemepal/internal/log"
	"phonemepal/internal/session"
	"phonemepal/internal/speech"
	"phonemepal/internal/store"
	"phonemepal/internal/telemetry"
	"phonemepal/internal/trace"
	"phonemepal/internal/upload"
)

// Run starts the Fyne-based desktop UI. storageDir optionally overrides the
// configured customization directory.
func Run(storageDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
	}
	if strings.TrimSpace(storageDir) != "" {
		cfg.Storage.Dir = storageDir
	}
	dataDir, err := config.DataDir(cfg)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	defer func() { crash.Recover(dataDir) }()
	telemetry.InitDefault()

	st, err := store.Open(dataDir)
	if err != nil {
		return fmt.Errorf("open customization store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error("store close failed", slog.Any("err", err))
		}
	}()

	fonts, err := glyphfont.NewLibrary()
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	if path, err := fonts.LoadBurmeseSystemFont(); err != nil {
		l.Warn("burmese font unavailable, burmese guides degrade to the fallback face", slog.Any("err", err))
	} else {
		l.Debug("burmese font loaded", slog.String("path", path))
	}

	bc := breakdown.NewClient(cfg.Breakdown.BaseURL, time.Duration(cfg.Breakdown.TimeoutMs)*time.Millisecond)
	accent := session.AccentAmerican
	if strings.EqualFold(cfg.General.Accent, "british") {
		accent = session.AccentBritish
	}
	sess := session.New(session.WithAccent(accent), session.WithBreakdownResetter(bc))
	speaker := speech.New(st, speech.NewExecPlayer(), nil)

	fyneApp := app.NewWithID("phonemepal")
	w := fyneApp.NewWindow("PhonemePal")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 900)
	winH := prefs.IntWithFallback("window.height", 700)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")

	// Learn view: the current glyph large, its position in the sequence, and
	// the custom picture when one is stored.
	glyphText := canvas.NewText("", color.RGBA{R: 30, G: 30, B: 34, A: 255})
	glyphText.Alignment = fyne.TextAlignCenter
	glyphText.TextStyle = fyne.TextStyle{Bold: true}
	positionLabel := widget.NewLabel("")
	positionLabel.Alignment = fyne.TextAlignCenter
	customPic := canvas.NewImageFromResource(nil)
	customPic.FillMode = canvas.ImageFillContain
	customPic.SetMinSize(fyne.NewSize(160, 160))
	customPic.Hide()

	// Trace view
	traceWidget := newTraceArea(trace.New(fonts))

	breakdownResult := widget.NewLabel("")
	breakdownResult.Wrapping = fyne.TextWrapWord
	breakdownButton := widget.NewButton("Phonetic Breakdown", nil)

	refreshLearn := func() {
		glyph := sess.Current()
		seq, _ := catalog.Sequence(sess.Tag())
		glyphText.Text = glyph
		if sess.Script() == catalog.BurmeseScript {
			glyphText.TextSize = 120
		} else {
			glyphText.TextSize = 140
		}
		glyphText.Refresh()
		positionLabel.SetText(fmt.Sprintf("%d / %d", sess.Index()+1, len(seq)))

		if ref, ok := st.Get(glyph, store.KindImage); ok {
			if _, data, err := upload.Decode(ref); err == nil {
				customPic.Resource = fyne.NewStaticResource("custom-"+glyph, data)
				customPic.Refresh()
				customPic.Show()
			} else {
				l.Warn("stored image unreadable", slog.String("glyph", glyph), slog.Any("err", err))
				customPic.Hide()
			}
		} else {
			customPic.Hide()
		}

		if catalog.SupportsBreakdown(sess.Tag()) {
			breakdownButton.Show()
		} else {
			breakdownButton.Hide()
		}
		breakdownResult.SetText("")
	}

	refreshTrace := func() {
		traceWidget.SetGlyph(sess.Current(), sess.Script())
	}
	refreshAll := func() {
		refreshLearn()
		refreshTrace()
	}

	navigate := func(dir session.Direction) {
		sess.Advance(dir)
		refreshAll()
		status.SetText("Showing " + sess.Current())
	}
	prevBtn := widget.NewButton("Previous", func() { navigate(session.Previous) })
	nextBtn := widget.NewButton("Next", func() { navigate(session.Next) })

	playBtn := widget.NewButton("Play Sound", func() {
		glyph := sess.Current()
		tag := sess.Tag()
		acc := sess.Accent()
		go func() {
			err := speaker.PlayGlyph(context.Background(), glyph, tag, acc)
			fyne.Do(func() {
				switch {
				case err == nil:
					status.SetText("Played " + glyph)
				case errors.Is(err, speech.ErrSynthesisUnsupported):
					status.SetText("Speech synthesis is not available on this system")
				default:
					status.SetText("Playback failed: " + err.Error())
				}
			})
		}()
	})

	breakdownButton.OnTapped = func() {
		word := sess.Current()
		breakdownResult.SetText("Looking up " + word + "…")
		go func() {
			res, err := bc.Request(context.Background(), word)
			fyne.Do(func() {
				switch {
				case errors.Is(err, breakdown.ErrSuperseded):
					// a newer request owns the result label
				case err != nil:
					breakdownResult.SetText("Breakdown unavailable: " + err.Error())
				default:
					breakdownResult.SetText(strings.Join(res.Phonemes, " · ") + "\n" + res.Explanation)
				}
			})
		}()
	}

	// Sequence and accent selection
	labels := make([]string, 0, len(catalog.Tags()))
	labelToTag := map[string]catalog.Tag{}
	for _, tag := range catalog.Tags() {
		lb, err := catalog.Label(tag)
		if err != nil {
			continue
		}
		labels = append(labels, lb)
		labelToTag[lb] = tag
	}
	seqSelect := widget.NewSelect(labels, func(lb string) {
		tag, ok := labelToTag[lb]
		if !ok {
			return
		}
		if err := sess.SelectSequence(tag); err != nil {
			dialog.ShowError(err, w)
			return
		}
		telemetry.Event("sequence_selected", map[string]any{"sequence": string(tag)})
		refreshAll()
		status.SetText("Switched to " + lb)
	})
	if lb, err := catalog.Label(sess.Tag()); err == nil {
		seqSelect.SetSelected(lb)
	}

	accentSelect := widget.NewSelect([]string{"American", "British"}, func(v string) {
		if v == "British" {
			sess.SetAccent(session.AccentBritish)
		} else {
			sess.SetAccent(session.AccentAmerican)
		}
	})
	if accent == session.AccentBritish {
		accentSelect.SetSelected("British")
	} else {
		accentSelect.SetSelected("American")
	}

	uploadMedia := func(kind store.Kind) {
		open := dialog.NewFileOpen(func(ur fyne.URIReadCloser, err error) {
			if err != nil || ur == nil {
				return
			}
			path := ur.URI().Path()
			_ = ur.Close()
			glyph := sess.Current()
			ref, err := upload.ReadMedia(path, kind, cfg.Upload.MaxBytes)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if err := st.Put(glyph, kind, ref); err != nil {
				dialog.ShowError(err, w)
				return
			}
			telemetry.Event("custom_media_saved", map[string]any{"kind": string(kind)})
			refreshLearn()
			status.SetText(fmt.Sprintf("Saved custom %s for %s", kind, glyph))
		}, w)
		open.Show()
	}
	uploadSoundBtn := widget.NewButton("Custom Sound…", func() { uploadMedia(store.KindAudio) })
	uploadImageBtn := widget.NewButton("Custom Picture…", func() { uploadMedia(store.KindImage) })

	learnView := container.NewBorder(
		nil,
		container.NewVBox(breakdownButton, breakdownResult),
		nil, nil,
		container.NewVBox(
			container.NewCenter(glyphText),
			positionLabel,
			container.NewCenter(customPic),
			container.NewCenter(container.NewHBox(playBtn, uploadSoundBtn, uploadImageBtn)),
		),
	)

	clearBtn := widget.NewButton("Clear", func() {
		traceWidget.ClearInk()
		status.SetText("Cleared tracing")
	})
	undoBtn := widget.NewButton("Undo Stroke", func() {
		if !traceWidget.Undo() {
			status.SetText("Nothing to undo")
			return
		}
		status.SetText("Stroke undone")
	})
	exportBtn := widget.NewButton("Save as PNG…", func() {
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			defer func() { _ = uc.Close() }()
			if err := traceWidget.tc.WritePNG(uc); err != nil {
				dialog.ShowError(err, w)
				return
			}
			telemetry.Event("trace_exported", nil)
			status.SetText("Tracing saved")
		}, w)
		save.SetFileName(sess.Current() + ".png")
		save.Show()
	})
	traceView := container.NewBorder(
		container.NewHBox(clearBtn, undoBtn, exportBtn),
		nil, nil, nil,
		traceWidget,
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Learn", learnView),
		container.NewTabItem("Trace", traceView),
	)
	tabs.OnSelected = func(ti *container.TabItem) {
		if ti.Text == "Trace" {
			sess.SetViewMode(session.Trace)
			refreshTrace()
		} else {
			sess.SetViewMode(session.Browse)
		}
	}

	topBar := container.NewHBox(
		widget.NewLabel("Sequence:"), seqSelect,
		widget.NewLabel("Accent:"), accentSelect,
	)
	bottomBar := container.NewHBox(prevBtn, nextBtn, status)
	w.SetContent(container.NewBorder(topBar, bottomBar, nil, nil, tabs))

	refreshAll()
	telemetry.Event("session_started", map[string]any{"sequence": string(sess.Tag())})

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})
	w.ShowAndRun()
	return nil
}

// traceArea hosts the tracing surface as a widget. Drags become freehand
// strokes; the surface is resized destructively to the widget's size.
type traceArea struct {
	widget.BaseWidget
	tc       *trace.Canvas
	dragging bool
}

func newTraceArea(tc *trace.Canvas) *traceArea {
	a := &traceArea{tc: tc}
	a.ExtendBaseWidget(a)
	return a
}

// SetGlyph swaps the guide glyph; any ink is discarded.
func (a *traceArea) SetGlyph(glyph string, script catalog.Script) {
	a.tc.RenderGuide(glyph, script)
	a.dragging = false
	a.Refresh()
}

// ClearInk wipes strokes, keeping the guide.
func (a *traceArea) ClearInk() {
	a.tc.Clear()
	a.Refresh()
}

// Undo removes the most recent stroke.
func (a *traceArea) Undo() bool {
	ok := a.tc.UndoStroke()
	if ok {
		a.Refresh()
	}
	return ok
}

func (a *traceArea) Dragged(e *fyne.DragEvent) {
	if !a.dragging {
		start := geom.Pt{X: e.Position.X - e.Dragged.DX, Y: e.Position.Y - e.Dragged.DY}
		a.tc.BeginStroke(start)
		a.dragging = true
	}
	a.tc.ExtendStroke(geom.Pt{X: e.Position.X, Y: e.Position.Y})
	a.Refresh()
}

func (a *traceArea) DragEnd() {
	a.tc.EndStroke()
	a.dragging = false
}

// Tapped stamps a dot, so a click without movement still leaves ink.
func (a *traceArea) Tapped(e *fyne.PointEvent) {
	a.tc.BeginStroke(geom.Pt{X: e.Position.X, Y: e.Position.Y})
	a.tc.EndStroke()
	a.Refresh()
}

func (a *traceArea) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillStretch
	return &traceAreaRenderer{a: a, img: img}
}

type traceAreaRenderer struct {
	a   *traceArea
	img *canvas.Image
}

func (r *traceAreaRenderer) Destroy()                     {}
func (r *traceAreaRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.img} }
func (r *traceAreaRenderer) MinSize() fyne.Size           { return fyne.NewSize(320, 240) }

func (r *traceAreaRenderer) Layout(size fyne.Size) {
	w, h := int(size.Width), int(size.Height)
	cw, ch := r.a.tc.Size()
	if w > 0 && h > 0 && (w != cw || h != ch) {
		// destructive: Resize drops ink and redraws the guide
		r.a.tc.Resize(w, h)
		r.a.dragging = false
	}
	r.img.Image = r.a.tc.Image()
	r.img.Resize(size)
	r.img.Move(fyne.NewPos(0, 0))
	r.img.Refresh()
}

func (r *traceAreaRenderer) Refresh() {
	r.img.Image = r.a.tc.Image()
	r.img.Refresh()
}
