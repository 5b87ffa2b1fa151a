/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package session tracks which glyph sequence, index, view mode and accent are
// active. All mutations are atomic with respect to the sequence/index pair, so
// the active index is always in bounds for the active sequence.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"phonemepal/internal/catalog"
	applog "phonemepal/internal/log"
)

// ViewMode selects between the browse card and the tracing surface.
type ViewMode int

const (
	Browse ViewMode = iota
	Trace
)

// Accent selects the regional pronunciation locale for synthesized speech.
type Accent int

const (
	AccentAmerican Accent = iota
	AccentBritish
)

// Direction of navigation.
type Direction int

const (
	Previous Direction = iota
	Next
)

// Resetter clears a pending breakdown result. The breakdown client implements
// it; sequence changes propagate through it so stale results never survive a
// catalog switch.
type Resetter interface{ Reset() }

// State is the glyph-session state machine. Safe for concurrent use; rapid
// repeated mutations settle on the final value (last write wins).
type State struct {
	mu        sync.Mutex
	tag       catalog.Tag
	index     int
	mode      ViewMode
	accent    Accent
	breakdown Resetter
	log       *slog.Logger
}

// Option configures a State.
type Option func(*State)

// WithBreakdownResetter wires the hook invoked when the sequence changes.
func WithBreakdownResetter(r Resetter) Option { return func(s *State) { s.breakdown = r } }

// WithAccent sets the initial accent.
func WithAccent(a Accent) Option { return func(s *State) { s.accent = a } }

// New returns a State positioned at the first glyph of the English uppercase
// sequence in browse mode.
func New(opts ...Option) *State {
	s := &State{tag: catalog.EnglishUpper, log: applog.WithComponent("session")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SelectSequence activates tag, resets the index to 0 and clears any pending
// breakdown result. Unknown tags leave the state untouched.
func (s *State) SelectSequence(tag catalog.Tag) error {
	if _, err := catalog.Sequence(tag); err != nil {
		return fmt.Errorf("select sequence: %w", err)
	}
	s.mu.Lock()
	s.tag = tag
	s.index = 0
	s.mu.Unlock()
	if s.breakdown != nil {
		s.breakdown.Reset()
	}
	s.log.Debug("sequence selected", slog.String("tag", string(tag)))
	return nil
}

// Advance moves to the previous or next glyph with wraparound, never leaving
// the valid index range.
func (s *State) Advance(dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := catalog.Sequence(s.tag)
	if err != nil {
		// unreachable: tag was validated on selection
		return
	}
	delta := 1
	if dir == Previous {
		delta = -1
	}
	s.index = (s.index + delta + len(seq)) % len(seq)
}

// SetViewMode switches between browse and trace.
func (s *State) SetViewMode(m ViewMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// SetAccent selects the pronunciation variant.
func (s *State) SetAccent(a Accent) {
	s.mu.Lock()
	s.accent = a
	s.mu.Unlock()
}

// Tag returns the active sequence tag.
func (s *State) Tag() catalog.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tag
}

// Index returns the active glyph index.
func (s *State) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Mode returns the active view mode.
func (s *State) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Accent returns the active accent variant.
func (s *State) Accent() Accent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accent
}

// Current returns the active glyph string.
func (s *State) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := catalog.Sequence(s.tag)
	if err != nil || s.index >= len(seq) {
		return ""
	}
	return seq[s.index]
}

// Script returns the script family of the active sequence.
func (s *State) Script() catalog.Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.ScriptOf(s.tag)
}
