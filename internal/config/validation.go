// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

const maxWorkers = 64

// Validate checks the business rules of an effective configuration.
func Validate(cfg Config) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if cfg.ChannelFile == "" {
		add("channelFile is required")
	}
	switch cfg.RejectPolicy {
	case RejectSkip, RejectFail:
	default:
		add("rejectPolicy %q must be %q or %q", cfg.RejectPolicy, RejectSkip, RejectFail)
	}
	if cfg.Workers < 1 || cfg.Workers > maxWorkers {
		add("workers %d outside [1, %d]", cfg.Workers, maxWorkers)
	}
	if cfg.Watch.Debounce < 0 {
		add("watch.debounce must not be negative")
	}
	if cfg.HTTP.ListenAddr == "" {
		add("http.listenAddr is required")
	}
	if cfg.HTTP.RateLimit < 0 {
		add("http.rateLimit must not be negative")
	}
	if cfg.HDHR.Enabled && cfg.HDHR.TunerCount < 1 {
		add("hdhr.tunerCount must be at least 1")
	}
	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			add("log.level %q: %v", cfg.Log.Level, err)
		}
	}
	return errors.Join(errs...)
}
