/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package upload validates user-supplied media files and converts them to
// data-URI references for storage. The size ceiling is enforced from file
// metadata before any byte is read.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"phonemepal/internal/store"
)

// DefaultMaxBytes is the per-file ceiling: 5 MiB.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

var (
	// ErrTooLarge rejects files over the configured ceiling.
	ErrTooLarge = errors.New("upload: file exceeds size ceiling")
	// ErrUnsupportedMedia rejects files outside the accepted MIME family
	// (audio/* for sounds, image/* for pictures).
	ErrUnsupportedMedia = errors.New("upload: unsupported media type")
)

// family returns the accepted MIME prefix for a customization kind.
func family(kind store.Kind) string {
	if kind == store.KindImage {
		return "image/"
	}
	return "audio/"
}

// ReadMedia validates the file at path against the ceiling and the MIME
// family for kind, then returns its content as a base64 data URI. maxBytes <= 0
// selects DefaultMaxBytes.
func ReadMedia(path string, kind store.Kind, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat upload: %w", err)
	}
	if fi.Size() > maxBytes {
		return "", fmt.Errorf("%w: %d bytes > %d", ErrTooLarge, fi.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	mt := mediaType(path, data)
	if !strings.HasPrefix(mt, family(kind)) {
		return "", fmt.Errorf("%w: %s is not %s*", ErrUnsupportedMedia, mt, family(kind))
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Decode splits a base64 data URI back into its MIME type and raw bytes.
func Decode(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URI", ErrUnsupportedMedia)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: malformed data URI", ErrUnsupportedMedia)
	}
	mt := strings.TrimSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mt, data, nil
}

// mediaType resolves the MIME type from the file extension first, falling
// back to content sniffing.
func mediaType(path string, data []byte) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = mt[:i]
		}
		return mt
	}
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}
