/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: render defaults, export
// options, history and logging. The file is YAML in the per-user config
// directory; environment variables override it at runtime.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	applog "boxsvg/internal/log"
	"boxsvg/internal/svggen"

	"gopkg.in/yaml.v3"
)

// RenderConfig holds the defaults every render starts from.
type RenderConfig struct {
	Zoom          float64 `yaml:"zoom"`
	XOffset       float64 `yaml:"x_offset"`
	YOffset       float64 `yaml:"y_offset"`
	LineWidth     float64 `yaml:"line_width"`
	Fill          string  `yaml:"fill"`
	LineColor     string  `yaml:"line_color"`
	AutoClosePoly *bool   `yaml:"autoclose_poly,omitempty"`
	FontDir       string  `yaml:"font_dir"`
}

type ExportConfig struct {
	Preset   string  `yaml:"preset"`    // web | print | cut
	PNGScale float64 `yaml:"png_scale"` // pixels per unit
	ThumbMax int     `yaml:"thumb_max"` // longest thumbnail side in pixels, 0 disables
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration.
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	Export        ExportConfig  `yaml:"export"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	d := svggen.DefaultConfig()
	on := d.AutoClosePoly
	return AppConfig{
		ConfigVersion: 1,
		Render: RenderConfig{
			Zoom:          d.Zoom,
			LineWidth:     d.LineWidth,
			Fill:          d.Fill,
			LineColor:     d.LineColor,
			AutoClosePoly: &on,
		},
		Export:  ExportConfig{Preset: "cut", PNGScale: 4, ThumbMax: 256},
		History: HistoryConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath = "BOXSVG_CONFIG"
	EnvZoom       = "BOXSVG_ZOOM"
	EnvLineColor  = "BOXSVG_LINE_COLOR"
	EnvFontDir    = "BOXSVG_FONT_DIR"
	EnvHistory    = "BOXSVG_HISTORY"
	EnvPreset     = "BOXSVG_PRESET"
	EnvLogLevel   = applog.EnvLevel
	EnvLogFormat  = applog.EnvFormat
	EnvLogSource  = applog.EnvSource
	EnvLogFile    = applog.EnvFile
)

// ConfigPath returns the per-user config file path. BOXSVG_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "boxsvg")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "boxsvg")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "boxsvg")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "boxsvg")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides. A missing file is not an error; a file that is not
// valid YAML is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read %s: %w", path, err)
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
	// render
	if src.Render.Zoom > 0 {
		dst.Render.Zoom = src.Render.Zoom
	}
	dst.Render.XOffset = src.Render.XOffset
	dst.Render.YOffset = src.Render.YOffset
	if src.Render.LineWidth != 0 {
		dst.Render.LineWidth = src.Render.LineWidth
	}
	if v := strings.TrimSpace(src.Render.Fill); v != "" {
		dst.Render.Fill = v
	}
	if v := strings.TrimSpace(src.Render.LineColor); v != "" {
		dst.Render.LineColor = v
	}
	if src.Render.AutoClosePoly != nil {
		b := *src.Render.AutoClosePoly
		dst.Render.AutoClosePoly = &b
	}
	if v := strings.TrimSpace(src.Render.FontDir); v != "" {
		dst.Render.FontDir = v
	}
	// export
	if v := strings.TrimSpace(src.Export.Preset); v != "" {
		dst.Export.Preset = strings.ToLower(v)
	}
	if src.Export.PNGScale > 0 {
		dst.Export.PNGScale = src.Export.PNGScale
	}
	if src.Export.ThumbMax != 0 {
		dst.Export.ThumbMax = src.Export.ThumbMax
	}
	// booleans: copy directly from the file so user preferences persist
	dst.History.Enabled = src.History.Enabled
	// logging
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvZoom)); v != "" {
		if z, err := strconv.ParseFloat(v, 64); err == nil && z > 0 && !math.IsInf(z, 0) {
			cfg.Render.Zoom = z
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLineColor)); v != "" {
		cfg.Render.LineColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontDir)); v != "" {
		cfg.Render.FontDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistory)); v != "" {
		cfg.History.Enabled = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvPreset)); v != "" {
		cfg.Export.Preset = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"render.zoom":       EnvZoom,
		"render.line_color": EnvLineColor,
		"render.font_dir":   EnvFontDir,
		"history.enabled":   EnvHistory,
		"export.preset":     EnvPreset,
		"logging.level":     EnvLogLevel,
		"logging.format":    EnvLogFormat,
		"logging.source":    EnvLogSource,
		"logging.file":      EnvLogFile,
	}
	env, ok := names[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// RenderConfig converts the render section into an svggen configuration.
func (c AppConfig) RenderConfig() svggen.Config {
	out := svggen.DefaultConfig()
	r := c.Render
	if r.Zoom != 0 {
		out.Zoom = r.Zoom
	}
	out.XOffset, out.YOffset = r.XOffset, r.YOffset
	if r.LineWidth != 0 {
		out.LineWidth = r.LineWidth
	}
	if r.Fill != "" {
		out.Fill = r.Fill
	}
	if r.LineColor != "" {
		out.LineColor = r.LineColor
	}
	if r.AutoClosePoly != nil {
		out.AutoClosePoly = *r.AutoClosePoly
	}
	out.FontDir = r.FontDir
	return out
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}
