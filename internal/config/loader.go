// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvChannelFile   = "DVBCHANNELS_CHANNEL_FILE"
	EnvRejectPolicy  = "DVBCHANNELS_REJECT_POLICY"
	EnvWorkers       = "DVBCHANNELS_WORKERS"
	EnvWatch         = "DVBCHANNELS_WATCH"
	EnvWatchDebounce = "DVBCHANNELS_WATCH_DEBOUNCE"
	EnvListenAddr    = "DVBCHANNELS_LISTEN"
	EnvRateLimit     = "DVBCHANNELS_RATE_LIMIT"
	EnvHDHREnabled   = "DVBCHANNELS_HDHR_ENABLED"
	EnvHDHRBaseURL   = "DVBCHANNELS_HDHR_BASE_URL"
	EnvHDHRStreamURL = "DVBCHANNELS_HDHR_STREAM_URL"
	EnvLogLevel      = "LOG_LEVEL"
)

// Loader handles configuration loading with precedence ENV > File > Defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader. An empty path skips the file stage.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load builds the effective configuration and validates it.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if l.configPath != "" {
		if err := l.loadFile(&cfg); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", l.configPath, err)
		}
	}

	l.mergeEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile decodes the YAML file strictly on top of the defaults in cfg.
func (l *Loader) loadFile(cfg *Config) error {
	path := filepath.Clean(l.configPath)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

func (l *Loader) mergeEnv(cfg *Config) {
	cfg.ChannelFile = ParseString(EnvChannelFile, cfg.ChannelFile)
	cfg.RejectPolicy = ParseString(EnvRejectPolicy, cfg.RejectPolicy)
	cfg.Workers = ParseInt(EnvWorkers, cfg.Workers)
	cfg.Watch.Enabled = ParseBool(EnvWatch, cfg.Watch.Enabled)
	cfg.Watch.Debounce = ParseDuration(EnvWatchDebounce, cfg.Watch.Debounce)
	cfg.HTTP.ListenAddr = ParseString(EnvListenAddr, cfg.HTTP.ListenAddr)
	cfg.HTTP.RateLimit = ParseInt(EnvRateLimit, cfg.HTTP.RateLimit)
	cfg.HDHR.Enabled = ParseBool(EnvHDHREnabled, cfg.HDHR.Enabled)
	cfg.HDHR.BaseURL = ParseString(EnvHDHRBaseURL, cfg.HDHR.BaseURL)
	cfg.HDHR.StreamURL = ParseString(EnvHDHRStreamURL, cfg.HDHR.StreamURL)
	cfg.Log.Level = ParseString(EnvLogLevel, cfg.Log.Level)
}
