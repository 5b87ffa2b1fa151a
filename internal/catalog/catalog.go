/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog is the static registry of glyph sequences the application
// can teach: alphabets, phonics tokens and numerals in Latin and Burmese
// script. The registry is fixed at build time and read-only; every tag maps to
// exactly one non-empty sequence.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Tag identifies a registered glyph sequence.
type Tag string

const (
	EnglishUpper        Tag = "english"
	EnglishLower        Tag = "english_lowercase"
	EnglishPhonics      Tag = "english_phonics"
	EnglishPhonicsChant Tag = "english_phonics_chant"
	Burmese             Tag = "burmese"
	EnglishNumbers      Tag = "english_numbers"
	BurmeseNumbers      Tag = "burmese_numbers"
)

// Script selects the font/metric treatment for a sequence.
type Script int

const (
	Latin Script = iota
	BurmeseScript
)

// ErrUnknownTag is returned for tags that are not statically registered.
// All tags used by the UI are registered, so hitting this is an invariant
// violation by the caller, not an expected runtime path.
var ErrUnknownTag = errors.New("catalog: unknown sequence tag")

var (
	englishUpper = splitLetters("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	englishLower = splitLetters("abcdefghijklmnopqrstuvwxyz")
	burmese      = splitLetters("ကခဂဃငစဆဇဈညဋဌဍဎဏတထဒဓနပဖဗဘမယရလဝသဟဠအ")

	englishNumbers = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	burmeseNumbers = []string{
		"၁", "၂", "၃", "၄", "၅", "၆", "၇", "၈", "၉", "၁၀",
		"၁၁", "၁၂", "၁၃", "၁၄", "၁၅", "၁၆", "၁၇", "၁၈", "၁၉", "၂၀",
	}

	englishPhonics = buildPhonics()
)

// phrases maps phonics tokens to the spoken phrase used instead of the bare
// glyph when vocalizing a phonics sequence.
var phrases = map[string]string{
	"Aa": "A as in apple",
	"Bb": "B as in bell",
	"Cc": "C as in cat",
	"Dd": "D as in dog",
	"Ee": "E as in ear",
	"Ff": "F as in fish",
	"Gg": "G as in goose",
	"Hh": "H as in hut",
	"Ii": "I as in ice",
	"Jj": "J as in jacket",
	"Kk": "K as in kite",
	"Ll": "L as in lion",
	"Mm": "M as in mouse",
	"Nn": "N as in nail",
	"Oo": "O as in orange",
	"Pp": "P as in pencil",
	"Qq": "Q as in queen",
	"Rr": "R as in ring",
	"Ss": "S as in sun",
	"Tt": "T as in top",
	"Uu": "U as in umbrella",
	"Vv": "V as in violin",
	"Ww": "W as in whistle",
	"Xx": "X as in xylophone",
	"Yy": "Y as in yoke",
	"Zz": "Z as in zebra",
}

type entry struct {
	glyphs []string
	label  string
	script Script
}

var registry = map[Tag]entry{
	EnglishUpper:        {glyphs: englishUpper, label: "English (A-Z)", script: Latin},
	EnglishLower:        {glyphs: englishLower, label: "English (a-z)", script: Latin},
	EnglishPhonics:      {glyphs: englishPhonics, label: "English letters' songs", script: Latin},
	EnglishPhonicsChant: {glyphs: englishPhonics, label: "Chant -ABC", script: Latin},
	Burmese:             {glyphs: burmese, label: "မြန်မာဗျည်းများ", script: BurmeseScript},
	EnglishNumbers:      {glyphs: englishNumbers, label: "Numbers (1-10)", script: Latin},
	BurmeseNumbers:      {glyphs: burmeseNumbers, label: "ကိန်းများ (၁-၂၀)", script: BurmeseScript},
}

// Tags lists the registered sequence tags in menu order.
func Tags() []Tag {
	return []Tag{
		EnglishUpper, EnglishLower, EnglishPhonics, EnglishPhonicsChant,
		EnglishNumbers, Burmese, BurmeseNumbers,
	}
}

// Sequence returns the ordered glyphs for tag. The returned slice must not be
// mutated by callers.
func Sequence(tag Tag) ([]string, error) {
	e, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return e.glyphs, nil
}

// Label returns the display label for tag.
func Label(tag Tag) (string, error) {
	e, ok := registry[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return e.label, nil
}

// ScriptOf returns the script family of tag, defaulting to Latin for unknown
// tags so rendering never fails on a bad input.
func ScriptOf(tag Tag) Script {
	if e, ok := registry[tag]; ok {
		return e.script
	}
	return Latin
}

// IsPhonics reports whether the tag is one of the phonics variants whose
// glyphs carry an associated spoken phrase.
func IsPhonics(tag Tag) bool {
	return tag == EnglishPhonics || tag == EnglishPhonicsChant
}

// Phrase returns the spoken phrase for a phonics token, or the empty string if
// none is registered.
func Phrase(glyph string) string { return phrases[glyph] }

// SupportsBreakdown reports whether the phonetic breakdown form applies to the
// sequence. Only plain English letter sequences qualify.
func SupportsBreakdown(tag Tag) bool {
	return tag == EnglishUpper || tag == EnglishLower
}

func splitLetters(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func buildPhonics() []string {
	upper := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	out := make([]string, 0, len(upper))
	for _, r := range upper {
		out = append(out, string(r)+strings.ToLower(string(r)))
	}
	return out
}
