/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"errors"
	"testing"
)

func TestEveryTagRegisteredAndNonEmpty(t *testing.T) {
	for _, tag := range Tags() {
		seq, err := Sequence(tag)
		if err != nil {
			t.Fatalf("Sequence(%s): %v", tag, err)
		}
		if len(seq) == 0 {
			t.Fatalf("sequence %s is empty", tag)
		}
		lbl, err := Label(tag)
		if err != nil || lbl == "" {
			t.Fatalf("Label(%s) = %q, %v", tag, lbl, err)
		}
	}
}

func TestUnknownTag(t *testing.T) {
	if _, err := Sequence(Tag("klingon")); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
	if _, err := Label(Tag("klingon")); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestSequenceContents(t *testing.T) {
	cases := []struct {
		tag   Tag
		size  int
		first string
		last  string
	}{
		{EnglishUpper, 26, "A", "Z"},
		{EnglishLower, 26, "a", "z"},
		{EnglishPhonics, 26, "Aa", "Zz"},
		{EnglishPhonicsChant, 26, "Aa", "Zz"},
		{Burmese, 33, "က", "အ"},
		{EnglishNumbers, 10, "1", "10"},
		{BurmeseNumbers, 20, "၁", "၂၀"},
	}
	for _, c := range cases {
		seq, err := Sequence(c.tag)
		if err != nil {
			t.Fatalf("Sequence(%s): %v", c.tag, err)
		}
		if len(seq) != c.size {
			t.Fatalf("%s length = %d, want %d", c.tag, len(seq), c.size)
		}
		if seq[0] != c.first || seq[len(seq)-1] != c.last {
			t.Fatalf("%s endpoints = %q..%q, want %q..%q", c.tag, seq[0], seq[len(seq)-1], c.first, c.last)
		}
	}
}

func TestScriptOf(t *testing.T) {
	if ScriptOf(Burmese) != BurmeseScript || ScriptOf(BurmeseNumbers) != BurmeseScript {
		t.Fatalf("burmese tags must map to BurmeseScript")
	}
	if ScriptOf(EnglishUpper) != Latin || ScriptOf(EnglishNumbers) != Latin {
		t.Fatalf("english tags must map to Latin")
	}
}

func TestPhonicsPhrases(t *testing.T) {
	seq, _ := Sequence(EnglishPhonics)
	for _, g := range seq {
		if Phrase(g) == "" {
			t.Fatalf("phonics token %q has no phrase", g)
		}
	}
	if Phrase("Aa") != "A as in apple" {
		t.Fatalf("Phrase(Aa) = %q", Phrase("Aa"))
	}
	if Phrase("Q") != "" {
		t.Fatalf("non-token glyph should have no phrase")
	}
}

func TestSupportsBreakdown(t *testing.T) {
	yes := []Tag{EnglishUpper, EnglishLower}
	no := []Tag{EnglishPhonics, EnglishPhonicsChant, EnglishNumbers, Burmese, BurmeseNumbers}
	for _, tag := range yes {
		if !SupportsBreakdown(tag) {
			t.Fatalf("%s should support breakdown", tag)
		}
	}
	for _, tag := range no {
		if SupportsBreakdown(tag) {
			t.Fatalf("%s should not support breakdown", tag)
		}
	}
}
