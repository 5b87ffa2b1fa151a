/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const IndexFileName = "media.sqlite"

// mediaIndex is an embedded SQLite view over the stored customizations: one
// row per (glyph, kind) with size and freshness, backing the media library
// listing without decoding the JSON collections.
type mediaIndex struct {
	db *sql.DB
}

// MediaInfo describes one stored customization.
type MediaInfo struct {
	Glyph     string
	Kind      Kind
	Bytes     int64
	UpdatedAt time.Time
}

func openMediaIndex(dir string) (*mediaIndex, error) {
	path := filepath.Join(dir, IndexFileName)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS media (
		glyph      TEXT NOT NULL,
		kind       TEXT NOT NULL,
		bytes      INTEGER NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (glyph, kind)
	);`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create media table: %w", err)
	}
	return &mediaIndex{db: db}, nil
}

func (m *mediaIndex) close() error { return m.db.Close() }

func (m *mediaIndex) put(glyph string, kind Kind, bytes int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := m.db.Exec(
		`INSERT INTO media (glyph, kind, bytes, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(glyph, kind) DO UPDATE SET bytes=excluded.bytes, updated_at=excluded.updated_at`,
		glyph, string(kind), bytes, now,
	)
	return err
}

// List returns all indexed customizations ordered by glyph then kind. Returns
// nil when the index was unavailable at open time.
func (s *Store) List(ctx context.Context) ([]MediaInfo, error) {
	if s.idx == nil {
		return nil, nil
	}
	rows, err := s.idx.db.QueryContext(ctx, `SELECT glyph, kind, bytes, updated_at FROM media ORDER BY glyph, kind`)
	if err != nil {
		return nil, fmt.Errorf("query media index: %w", err)
	}
	defer rows.Close()

	var out []MediaInfo
	for rows.Next() {
		var mi MediaInfo
		var kind, ts string
		if err := rows.Scan(&mi.Glyph, &kind, &mi.Bytes, &ts); err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		mi.Kind = Kind(kind)
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			mi.UpdatedAt = t
		}
		out = append(out, mi)
	}
	return out, rows.Err()
}
