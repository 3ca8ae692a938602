// SPDX-License-Identifier: MIT

// dvbchannels validates, formats and serves DVB channel-list files.
//
// Usage:
//
//	dvbchannels validate -f channels.dvb
//	dvbchannels fmt -f channels.dvb [-w]
//	dvbchannels serve [-config config.yaml]
//	dvbchannels -version
//
// Exit codes:
//   - 0: success
//   - 1: the channel list or configuration is invalid
//   - 2: usage error
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/ManuGH/dvbchannels/internal/version"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "fmt":
		return runFmt(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stderr)
	case "version", "-version", "--version":
		_, _ = fmt.Fprintln(stdout, version.String())
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  dvbchannels validate -f FILE [-fail-fast]")
	_, _ = fmt.Fprintln(w, "  dvbchannels fmt -f FILE [-w]")
	_, _ = fmt.Fprintln(w, "  dvbchannels serve [-config FILE]")
	_, _ = fmt.Fprintln(w, "  dvbchannels -version")
}

// newFlagSet returns a flag set that reports to stderr instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags maps flag parse failures to exit codes; ok is false when the
// command should stop.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	if fs.NArg() > 0 {
		_, _ = fmt.Fprintf(fs.Output(), "Error: unexpected arguments: %v\n", fs.Args())
		return exitUsage, false
	}
	return exitOK, true
}

// configureCLILogger sends warnings such as rejected lines to stderr in
// human readable form.
func configureCLILogger(stderr io.Writer) {
	xglog.Reconfigure(xglog.Config{
		Level:   "warn",
		Output:  stderr,
		Pretty:  true,
		Version: version.Version,
	})
}
