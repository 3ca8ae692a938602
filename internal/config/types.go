// SPDX-License-Identifier: MIT

// Package config loads the dvbchannels YAML configuration with environment overrides.
package config

import "time"

// Reject policies for channel lines that fail to decode.
const (
	RejectSkip = "skip"
	RejectFail = "fail"
)

// Config is the effective configuration after defaults, file and environment.
type Config struct {
	ChannelFile  string      `yaml:"channelFile"`
	RejectPolicy string      `yaml:"rejectPolicy"`
	Workers      int         `yaml:"workers"`
	Watch        WatchConfig `yaml:"watch"`
	HTTP         HTTPConfig  `yaml:"http"`
	HDHR         HDHRConfig  `yaml:"hdhr"`
	Log          LogConfig   `yaml:"log"`
}

// WatchConfig controls reloading the channel file when it changes on disk.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// HTTPConfig configures the read-only HTTP listener.
type HTTPConfig struct {
	ListenAddr string `yaml:"listenAddr"`
	// RateLimit is the number of requests per minute and client IP; 0 disables it.
	RateLimit int `yaml:"rateLimit"`
}

// HDHRConfig configures HDHomeRun lineup emulation.
type HDHRConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DeviceID     string `yaml:"deviceId"`
	FriendlyName string `yaml:"friendlyName"`
	ModelName    string `yaml:"modelName"`
	FirmwareName string `yaml:"firmwareName"`
	BaseURL      string `yaml:"baseUrl"`
	TunerCount   int    `yaml:"tunerCount"`
	// StreamURL is a template; see hdhr.StreamURL for the placeholders.
	StreamURL string `yaml:"streamUrl"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		RejectPolicy: RejectSkip,
		Workers:      4,
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 500 * time.Millisecond,
		},
		HTTP: HTTPConfig{
			ListenAddr: ":8080",
			RateLimit:  600,
		},
		HDHR: HDHRConfig{
			DeviceID:     "DVBC1234",
			FriendlyName: "dvbchannels",
			ModelName:    "HDHR-dvbchannels",
			FirmwareName: "dvbchannels-1.0.0",
			TunerCount:   2,
		},
		Log: LogConfig{Level: "info"},
	}
}
