/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"runtime"
	"testing"
)

func testPlayer(command ...string) *ExecPlayer {
	return &ExecPlayer{command: command, log: slog.Default()}
}

func wavRef(t *testing.T) string {
	t.Helper()
	payload := base64.StdEncoding.EncodeToString([]byte("RIFFfakewav"))
	return "data:audio/wav;base64," + payload
}

func TestExecPlayerStagesMediaForCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	// the staged file path is handed to the command as its last argument;
	// `test -s` verifies a non-empty file exists there at playback time.
	p := testPlayer("sh", "-c", `test -s "$0"`)
	if err := p.Play(context.Background(), wavRef(t)); err != nil {
		t.Fatalf("Play: %v", err)
	}
}

func TestExecPlayerCommandFailureSurfaces(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	p := testPlayer("sh", "-c", "exit 3")
	if err := p.Play(context.Background(), wavRef(t)); err == nil {
		t.Fatalf("expected error from failing command")
	}
}

func TestExecPlayerWithoutCommand(t *testing.T) {
	p := testPlayer()
	err := p.Play(context.Background(), wavRef(t))
	if !errors.Is(err, ErrNoPlayerCommand) {
		t.Fatalf("expected ErrNoPlayerCommand, got %v", err)
	}
}

func TestExecPlayerRejectsMalformedRef(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	p := testPlayer("sh", "-c", "exit 0")
	if err := p.Play(context.Background(), "not-a-data-uri"); err == nil {
		t.Fatalf("expected decode error for malformed reference")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := []struct{ mt, want string }{
		{"audio/mpeg", ".mp3"},
		{"audio/wav", ".wav"},
		{"audio/ogg", ".ogg"},
		{"application/x-nonsense", ".audio"},
	}
	for _, c := range cases {
		if got := extensionFor(c.mt); got != c.want {
			t.Fatalf("extensionFor(%q) = %q, want %q", c.mt, got, c.want)
		}
	}
}
