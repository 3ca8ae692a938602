// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ManuGH/dvbchannels/internal/channellist"
)

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("validate", stderr)
	var (
		file     string
		failFast bool
	)
	fs.StringVar(&file, "file", "", "path to channel-list file")
	fs.StringVar(&file, "f", "", "path to channel-list file (shorthand)")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first invalid line")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if file == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --file is required")
		return exitUsage
	}

	configureCLILogger(stderr)

	opts := channellist.Options{Policy: channellist.RejectSkip}
	if failFast {
		opts.Policy = channellist.RejectFail
	}
	l, err := channellist.Load(context.Background(), file, opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Validation error in %s:\n  %v\n", file, err)
		return exitInvalid
	}
	if l.Rejected() > 0 {
		_, _ = fmt.Fprintf(stderr, "%s: %d invalid line(s), %d channel(s) ok\n", file, l.Rejected(), l.Len())
		return exitInvalid
	}

	_, _ = fmt.Fprintf(stdout, "✓ %s is valid (%d channels, %d transponders)\n", file, l.Len(), len(l.Transponders()))
	return exitOK
}
