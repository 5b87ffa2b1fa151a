/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package speech resolves "play the current glyph" to either a stored custom
// audio reference or a synthesized-speech request. Playback and synthesis are
// host capabilities injected as interfaces; both may be absent.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"phonemepal/internal/catalog"
	applog "phonemepal/internal/log"
	"phonemepal/internal/session"
	"phonemepal/internal/store"
)

// Locale tags handed to the synthesis capability.
const (
	LocaleBurmese  = "my-MM"
	LocaleAmerican = "en-US"
	LocaleBritish  = "en-GB"
)

var (
	// ErrPlaybackFailed reports a non-fatal failure playing a stored custom
	// sound.
	ErrPlaybackFailed = errors.New("speech: custom audio playback failed")
	// ErrSynthesisUnsupported reports that the host has no synthesis
	// capability. Non-retryable; other functionality is unaffected.
	ErrSynthesisUnsupported = errors.New("speech: synthesis not supported on this host")
)

// Player plays an opaque media reference (a data URI).
type Player interface {
	Play(ctx context.Context, ref string) error
}

// Synthesizer vocalizes text in a locale. Available reports whether the host
// capability exists; it must be checked before Speak.
type Synthesizer interface {
	Available() bool
	Speak(ctx context.Context, text, locale string) error
}

// Dispatcher routes glyph sounds to the right capability.
type Dispatcher struct {
	store  *store.Store
	player Player
	synth  Synthesizer
	log    *slog.Logger
}

// New builds a Dispatcher. player and synth may be nil, which behaves as an
// absent capability.
func New(st *store.Store, player Player, synth Synthesizer) *Dispatcher {
	return &Dispatcher{store: st, player: player, synth: synth, log: applog.WithComponent("speech")}
}

// PlayGlyph plays the sound for glyph within the given sequence and accent:
// a stored custom audio wins, otherwise the phonics phrase (for phonics
// sequences) or the bare glyph is synthesized in the selected locale.
func (d *Dispatcher) PlayGlyph(ctx context.Context, glyph string, tag catalog.Tag, accent session.Accent) error {
	if d.store != nil {
		if ref, ok := d.store.Get(glyph, store.KindAudio); ok {
			if d.player == nil {
				return fmt.Errorf("%w: no player capability", ErrPlaybackFailed)
			}
			if err := d.player.Play(ctx, ref); err != nil {
				d.log.Warn("custom audio failed", slog.String("glyph", glyph), slog.Any("err", err))
				return fmt.Errorf("%w: %v", ErrPlaybackFailed, err)
			}
			return nil
		}
	}

	text := glyph
	if catalog.IsPhonics(tag) {
		if phrase := catalog.Phrase(glyph); phrase != "" {
			text = phrase
		}
	}

	if d.synth == nil || !d.synth.Available() {
		return ErrSynthesisUnsupported
	}
	locale := Locale(tag, accent)
	if err := d.synth.Speak(ctx, text, locale); err != nil {
		return fmt.Errorf("speak %q (%s): %w", text, locale, err)
	}
	d.log.Debug("spoke glyph", slog.String("text", text), slog.String("locale", locale))
	return nil
}

// Locale selects the synthesis locale: Burmese-script sequences always use the
// fixed Burmese tag regardless of accent, everything else follows the accent.
func Locale(tag catalog.Tag, accent session.Accent) string {
	if catalog.ScriptOf(tag) == catalog.BurmeseScript {
		return LocaleBurmese
	}
	if accent == session.AccentBritish {
		return LocaleBritish
	}
	return LocaleAmerican
}
