// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ManuGH/dvbchannels/internal/channellist"
)

// runFmt re-encodes a channel list in canonical form. Comments and blank
// lines are kept; any invalid line aborts, so formatting never drops content.
func runFmt(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("fmt", stderr)
	var (
		file  string
		write bool
	)
	fs.StringVar(&file, "file", "", "path to channel-list file")
	fs.StringVar(&file, "f", "", "path to channel-list file (shorthand)")
	fs.BoolVar(&write, "w", false, "write result back to the file instead of stdout")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if file == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --file is required")
		return exitUsage
	}

	configureCLILogger(stderr)
	ctx := context.Background()

	l, err := channellist.Load(ctx, file, channellist.Options{Policy: channellist.RejectFail})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	if write {
		err = channellist.Save(ctx, file, l)
	} else {
		err = channellist.Encode(stdout, l)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}
	return exitOK
}
