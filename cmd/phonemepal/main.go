/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"phonemepal/internal/breakdown"
	"phonemepal/internal/catalog"
	"phonemepal/internal/config"
	"phonemepal/internal/crash"
	applog "phonemepal/internal/log"
	"phonemepal/internal/store"
	"phonemepal/internal/ui"
	"phonemepal/internal/version"
)

func usage() {
	fmt.Println("PhonemePal — letter and number learning companion")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  phonemepal version|-v|--version        Show version")
	fmt.Println("  phonemepal sequences                    List the available glyph sequences")
	fmt.Println("  phonemepal breakdown <word>             Fetch the phonetic breakdown of <word>")
	fmt.Println("  phonemepal media                        List stored custom sounds and pictures")
	fmt.Println("  phonemepal ui [<storageDir>]            Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// optional .env for local development, then structured logging from env
	_ = godotenv.Load()
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
	}
	dataDir, _ := config.DataDir(cfg)
	defer func() { crash.Recover(dataDir) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("PhonemePal — letter and number learning companion")
			fmt.Println(version.String())
			return
		case "sequences":
			for _, tag := range catalog.Tags() {
				label, err := catalog.Label(tag)
				if err != nil {
					continue
				}
				seq, err := catalog.Sequence(tag)
				if err != nil {
					continue
				}
				fmt.Printf("%-22s %s (%d glyphs)\n", tag, label, len(seq))
			}
			return
		case "breakdown":
			if len(args) < 3 {
				fmt.Println("breakdown requires <word>")
				usage()
				os.Exit(2)
			}
			word := strings.Join(args[2:], " ")
			bc := breakdown.NewClient(cfg.Breakdown.BaseURL, time.Duration(cfg.Breakdown.TimeoutMs)*time.Millisecond)
			l.Info("breakdown request", slog.String("word", word))
			res, err := bc.Request(context.Background(), word)
			if err != nil {
				l.Error("breakdown failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println(strings.Join(res.Phonemes, " "))
			fmt.Println(res.Explanation)
			return
		case "media":
			st, err := store.Open(dataDir)
			if err != nil {
				l.Error("open store failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			defer func() { _ = st.Close() }()
			infos, err := st.List(context.Background())
			if err != nil {
				l.Error("list media failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(infos) == 0 {
				fmt.Println("No custom media stored.")
				return
			}
			for _, mi := range infos {
				fmt.Printf("%-8s %-4s %8d bytes  %s\n", mi.Glyph, mi.Kind, mi.Bytes, mi.UpdatedAt.Format(time.RFC3339))
			}
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
