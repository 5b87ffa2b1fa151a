/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the
// user scope. Environment variables are treated as read-only overrides at
// runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	Accent         string `yaml:"accent"` // "american" | "british"
	Theme          string `yaml:"theme"`  // "system" | "light" | "dark" (informational for now)
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
}

type BreakdownConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type UploadConfig struct {
	// MaxBytes is the per-file ceiling enforced before any read occurs.
	MaxBytes int64 `yaml:"max_bytes"`
}

type StorageConfig struct {
	// Dir holds the persisted customization collections and the media index.
	// Empty means the per-user data directory.
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	General       GeneralConfig   `yaml:"general"`
	Breakdown     BreakdownConfig `yaml:"breakdown"`
	Upload        UploadConfig    `yaml:"upload"`
	Storage       StorageConfig   `yaml:"storage"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Accent: "american", Theme: "system", TelemetryOptIn: false},
		Breakdown:     BreakdownConfig{BaseURL: "http://localhost:8080", TimeoutMs: 15000},
		Upload:        UploadConfig{MaxBytes: 5 * 1024 * 1024},
		Storage:       StorageConfig{Dir: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvAccent           = "PP_ACCENT"
	EnvTelemetryOptIn   = "PP_TELEMETRY_OPT_IN"
	EnvBreakdownURL     = "PP_BREAKDOWN_URL"
	EnvBreakdownTimeout = "PP_BREAKDOWN_TIMEOUT_MS"
	EnvUploadMaxBytes   = "PP_UPLOAD_MAX_BYTES"
	EnvStorageDir       = "PP_STORAGE_DIR"
	EnvLogLevel         = "PP_LOG_LEVEL"
	EnvLogFormat        = "PP_LOG_FORMAT"
	EnvLogSource        = "PP_LOG_SOURCE"
	EnvLogFile          = "PP_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "PhonemePal")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "PhonemePal")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "phonemepal")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// DataDir resolves the storage directory for persisted collections, honoring
// cfg.Storage.Dir when set.
func DataDir(cfg AppConfig) (string, error) {
	if d := strings.TrimSpace(cfg.Storage.Dir); d != "" {
		return d, nil
	}
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "data"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing or unparsable file falls back to defaults.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Accent != "" {
		dst.General.Accent = strings.ToLower(strings.TrimSpace(src.General.Accent))
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if src.Breakdown.BaseURL != "" {
		dst.Breakdown.BaseURL = src.Breakdown.BaseURL
	}
	if src.Breakdown.TimeoutMs != 0 {
		dst.Breakdown.TimeoutMs = src.Breakdown.TimeoutMs
	}
	if src.Upload.MaxBytes != 0 {
		dst.Upload.MaxBytes = src.Upload.MaxBytes
	}
	if strings.TrimSpace(src.Storage.Dir) != "" {
		dst.Storage.Dir = strings.TrimSpace(src.Storage.Dir)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAccent)); v != "" {
		cfg.General.Accent = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvBreakdownURL)); v != "" {
		cfg.Breakdown.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBreakdownTimeout)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Breakdown.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvUploadMaxBytes)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Upload.MaxBytes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorageDir)); v != "" {
		cfg.Storage.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
