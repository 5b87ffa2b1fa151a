/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package upload

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phonemepal/internal/store"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadMediaProducesDataURI(t *testing.T) {
	payload := []byte("RIFFxxxxWAVEfmt ")
	path := writeTemp(t, "a.wav", payload)
	ref, err := ReadMedia(path, store.KindAudio, 0)
	if err != nil {
		t.Fatalf("ReadMedia: %v", err)
	}
	if !strings.HasPrefix(ref, "data:audio/") {
		t.Fatalf("ref = %q, want data:audio/* prefix", ref)
	}
	i := strings.Index(ref, ";base64,")
	if i < 0 {
		t.Fatalf("ref missing base64 marker: %q", ref)
	}
	decoded, err := base64.StdEncoding.DecodeString(ref[i+len(";base64,"):])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatalf("payload mismatch after round trip")
	}
}

func TestOversizedFileRejectedBeforeRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.mp3")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// sparse file over the ceiling; rejection must come from metadata alone
	if err := f.Truncate(DefaultMaxBytes + 1); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = ReadMedia(path, store.KindAudio, 0)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestExactCeilingAccepted(t *testing.T) {
	path := writeTemp(t, "edge.png", make([]byte, 64))
	if _, err := ReadMedia(path, store.KindImage, 64); err != nil {
		t.Fatalf("file at the ceiling must pass: %v", err)
	}
	if _, err := ReadMedia(path, store.KindImage, 63); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("file over the ceiling must fail, got %v", err)
	}
}

func TestWrongFamilyRejected(t *testing.T) {
	path := writeTemp(t, "pic.png", []byte{0x89, 'P', 'N', 'G'})
	if _, err := ReadMedia(path, store.KindAudio, 0); !errors.Is(err, ErrUnsupportedMedia) {
		t.Fatalf("image file as sound upload: expected ErrUnsupportedMedia, got %v", err)
	}
	if _, err := ReadMedia(path, store.KindImage, 0); err != nil {
		t.Fatalf("image file as image upload should pass: %v", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0}
	path := writeTemp(t, "pic.png", payload)
	ref, err := ReadMedia(path, store.KindImage, 0)
	if err != nil {
		t.Fatalf("ReadMedia: %v", err)
	}
	mt, data, err := Decode(ref)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if mt != "image/png" {
		t.Fatalf("mime = %q", mt)
	}
	if string(data) != string(payload) {
		t.Fatalf("payload mismatch after decode")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "http://example.com/a.png", "data:nope"} {
		if _, _, err := Decode(in); err == nil {
			t.Fatalf("Decode(%q) should fail", in)
		}
	}
}

func TestMissingFile(t *testing.T) {
	_, err := ReadMedia(filepath.Join(t.TempDir(), "nope.wav"), store.KindAudio, 0)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
