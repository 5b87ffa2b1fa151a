/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package glyphfont resolves the font faces used to rasterize guide glyphs.
// A Library holds one OpenType font per script. Go Regular is the built-in
// default; it covers Latin but not Burmese, so hosts that want proper Burmese
// outlines load a suitable TTF via LoadTTF. Resolution is deterministic: the
// same library state, script and size always yield the same face.
package glyphfont

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"phonemepal/internal/catalog"
)

// Library stores loaded OpenType fonts mapped by script.
type Library struct {
	fonts    map[catalog.Script]*opentype.Font
	fallback *opentype.Font
}

// NewLibrary returns a library seeded with the built-in Go Regular fallback.
func NewLibrary() (*Library, error) {
	fb, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse builtin font: %w", err)
	}
	return &Library{fonts: make(map[catalog.Script]*opentype.Font), fallback: fb}, nil
}

// LoadTTF loads a font file into the library for the given script, replacing
// any previous font for that script.
func (l *Library) LoadTTF(script catalog.Script, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return l.LoadTTFData(script, data)
}

// LoadTTFData is LoadTTF for in-memory font data.
func (l *Library) LoadTTFData(script catalog.Script, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	l.fonts[script] = f
	return nil
}

// ErrNoBurmeseFont reports that no Burmese-capable font was found among the
// well-known system locations.
var ErrNoBurmeseFont = errors.New("glyphfont: no burmese-capable system font found")

// LoadBurmeseSystemFont scans well-known system font locations for a
// Burmese-capable face (Noto Sans Myanmar, Padauk, Myanmar Text) and loads the
// first one that parses for BurmeseScript. Returns the loaded path. Without it
// the fallback face renders Burmese glyphs as the .notdef box.
func (l *Library) LoadBurmeseSystemFont() (string, error) {
	for _, pattern := range burmeseFontPatterns() {
		matches, _ := filepath.Glob(pattern)
		for _, path := range matches {
			if err := l.LoadTTF(catalog.BurmeseScript, path); err == nil {
				return path, nil
			}
		}
	}
	return "", ErrNoBurmeseFont
}

func burmeseFontPatterns() []string {
	switch runtime.GOOS {
	case "windows":
		win := os.Getenv("WINDIR")
		if win == "" {
			win = `C:\Windows`
		}
		return []string{
			filepath.Join(win, "Fonts", "mmrtext*.ttf"),
			filepath.Join(win, "Fonts", "NotoSansMyanmar*.ttf"),
		}
	case "darwin":
		home := os.Getenv("HOME")
		return []string{
			filepath.Join(home, "Library", "Fonts", "NotoSansMyanmar*.ttf"),
			filepath.Join(home, "Library", "Fonts", "Padauk*.ttf"),
			"/Library/Fonts/NotoSansMyanmar*.ttf",
			"/Library/Fonts/Padauk*.ttf",
		}
	default: // linux and friends
		return []string{
			"/usr/share/fonts/truetype/noto/NotoSansMyanmar*.ttf",
			"/usr/share/fonts/noto/NotoSansMyanmar*.ttf",
			"/usr/share/fonts/truetype/padauk/Padauk*.ttf",
			"/usr/share/fonts/padauk/Padauk*.ttf",
			"/usr/share/fonts/TTF/Padauk*.ttf",
			"/usr/share/fonts/TTF/NotoSansMyanmar*.ttf",
			"/usr/local/share/fonts/NotoSansMyanmar*.ttf",
			"/usr/local/share/fonts/Padauk*.ttf",
		}
	}
}

// Face resolves a face for the script at the given pixel size. At 72 DPI one
// point equals one pixel, so sizePx maps directly onto the face size.
func (l *Library) Face(script catalog.Script, sizePx float64) (font.Face, error) {
	if sizePx <= 0 {
		sizePx = 12
	}
	f := l.fonts[script]
	if f == nil {
		f = l.fallback
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: sizePx, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("face for script %d at %.0fpx: %w", script, sizePx, err)
	}
	return face, nil
}
