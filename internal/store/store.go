/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store persists per-glyph media customizations. Two JSON collections
// map glyph string to an opaque media reference: customSounds.json and
// customImages.json. Each mutation rewrites the whole collection; the sets are
// bounded by the catalog size, so full rewrites stay cheap.
//
// Entries are keyed by the literal glyph string, not by sequence and index, so
// a glyph shared across sequences shares its customizations. Distinct
// sequences only share glyph strings within the same script family in the
// current catalog, so the collision stays latent.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	applog "phonemepal/internal/log"
)

// Kind tags the media family of a customization.
type Kind string

const (
	KindAudio Kind = "audio"
	KindImage Kind = "image"
)

const (
	SoundsFileName = "customSounds.json"
	ImagesFileName = "customImages.json"
)

// ErrPersistence reports a rejected write of a persisted collection. The
// in-memory mapping is rolled back before this is returned, so memory and disk
// never diverge.
var ErrPersistence = errors.New("store: persistence write rejected")

// Store is the customization store. Safe for concurrent use.
type Store struct {
	dir string

	mu     sync.Mutex
	sounds map[string]string
	images map[string]string

	idx *mediaIndex
	log *slog.Logger
}

// Open loads the persisted collections from dir, creating the directory when
// missing. Unreadable or corrupt collections are treated as empty with a
// warning; startup never fails on bad data.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := &Store{dir: dir, log: applog.WithComponent("store")}
	s.sounds = s.loadCollection(SoundsFileName)
	s.images = s.loadCollection(ImagesFileName)

	idx, err := openMediaIndex(dir)
	if err != nil {
		// index is a convenience view; the JSON collections stay authoritative
		s.log.Warn("media index unavailable", slog.Any("err", err))
	} else {
		s.idx = idx
	}
	return s, nil
}

// Close releases the media index. The JSON collections need no teardown.
func (s *Store) Close() error {
	if s.idx != nil {
		return s.idx.close()
	}
	return nil
}

// Get returns the stored media reference for glyph and kind.
func (s *Store) Get(glyph string, kind Kind) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.collection(kind)[glyph]
	return ref, ok
}

// Put merges a customization into the in-memory mapping and synchronously
// rewrites the persisted collection. When the write is rejected the mapping is
// rolled back to its pre-call value and ErrPersistence is returned.
//
// Upload validation (size ceiling, media family) is the caller's
// responsibility and happens before the reference reaches this method.
func (s *Store) Put(glyph string, kind Kind, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(kind)
	prev, had := col[glyph]
	col[glyph] = ref

	if err := s.persist(kind); err != nil {
		if had {
			col[glyph] = prev
		} else {
			delete(col, glyph)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.idx != nil {
		if err := s.idx.put(glyph, kind, int64(len(ref))); err != nil {
			s.log.Warn("media index update failed", slog.String("glyph", glyph), slog.Any("err", err))
		}
	}
	s.log.Info("customization stored", slog.String("glyph", glyph), slog.String("kind", string(kind)))
	return nil
}

func (s *Store) collection(kind Kind) map[string]string {
	if kind == KindImage {
		return s.images
	}
	return s.sounds
}

func fileFor(kind Kind) string {
	if kind == KindImage {
		return ImagesFileName
	}
	return SoundsFileName
}

func (s *Store) loadCollection(name string) map[string]string {
	path := filepath.Join(s.dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("collection unreadable, starting empty", slog.String("file", name), slog.Any("err", err))
		}
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		s.log.Warn("collection corrupt, starting empty", slog.String("file", name), slog.Any("err", err))
		return make(map[string]string)
	}
	if m == nil {
		m = make(map[string]string)
	}
	return m
}

// persist rewrites the collection for kind transactionally: write to a temp
// file in the same directory, fsync, then rename over the target.
func (s *Store) persist(kind Kind) error {
	data, err := json.MarshalIndent(s.collection(kind), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	data = append(data, '\n')

	target := filepath.Join(s.dir, fileFor(kind))
	temp := filepath.Join(s.dir, fmt.Sprintf(".%s.tmp-%d-%d", fileFor(kind), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		return fmt.Errorf("write temp collection: %w", err)
	}
	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
