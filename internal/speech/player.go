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
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"os/exec"
	"runtime"

	applog "phonemepal/internal/log"
	"phonemepal/internal/upload"
)

// ErrNoPlayerCommand reports that no audio playback command was found on the
// host.
var ErrNoPlayerCommand = errors.New("speech: no audio player command available")

// ExecPlayer plays a stored data-URI reference by writing the media to a temp
// file and handing it to a platform audio command. It blocks until playback
// ends; callers run it off the UI goroutine.
type ExecPlayer struct {
	command []string // command plus fixed args; the file path is appended
	log     *slog.Logger
}

// NewExecPlayer probes the host for a playback command. The returned player is
// usable either way; without a command every Play reports ErrNoPlayerCommand.
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{command: defaultPlayerCommand(), log: applog.WithComponent("speech")}
}

func defaultPlayerCommand() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"afplay"}
	case "windows":
		// no ubiquitous CLI player; synthesis capability covers the rest
		return nil
	default:
		if _, err := exec.LookPath("paplay"); err == nil {
			return []string{"paplay"}
		}
		if _, err := exec.LookPath("aplay"); err == nil {
			return []string{"aplay", "-q"}
		}
		if _, err := exec.LookPath("ffplay"); err == nil {
			return []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}
		}
		return nil
	}
}

// Play decodes ref into a temp file and runs the playback command on it.
func (p *ExecPlayer) Play(ctx context.Context, ref string) error {
	if len(p.command) == 0 {
		return ErrNoPlayerCommand
	}
	mt, data, err := upload.Decode(ref)
	if err != nil {
		return fmt.Errorf("decode media: %w", err)
	}
	f, err := os.CreateTemp("", "phonemepal-*"+extensionFor(mt))
	if err != nil {
		return fmt.Errorf("stage media: %w", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			p.log.Warn("staged media not removed", slog.String("path", path), slog.Any("err", err))
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("stage media: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stage media: %w", err)
	}

	args := append(append([]string(nil), p.command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", p.command[0], err)
	}
	return nil
}

// extensionFor picks a file extension for the staged media so the player can
// sniff the container; unknown types get a neutral one.
func extensionFor(mt string) string {
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	}
	if exts, err := mime.ExtensionsByType(mt); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".audio"
}
