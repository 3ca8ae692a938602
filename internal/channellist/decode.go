// SPDX-License-Identifier: MIT

package channellist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuGH/dvbchannels/internal/dvb"
	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/ManuGH/dvbchannels/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// RejectPolicy decides what happens to a line that fails to decode.
type RejectPolicy int

const (
	// RejectSkip logs and drops the line; the rest of the file still loads.
	RejectSkip RejectPolicy = iota
	// RejectFail aborts the whole load with a *LoadError.
	RejectFail
)

// ParseRejectPolicy maps the configuration spelling to a RejectPolicy.
func ParseRejectPolicy(s string) (RejectPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return RejectSkip, nil
	case "fail":
		return RejectFail, nil
	}
	return RejectSkip, fmt.Errorf("unknown reject policy %q", s)
}

func (p RejectPolicy) String() string {
	if p == RejectFail {
		return "fail"
	}
	return "skip"
}

// Options tune Decode and Load.
type Options struct {
	Policy RejectPolicy
	// Workers bounds parallel line decoding; values below 1 mean 1.
	Workers int
}

// maxLineBytes bounds a single channel line; longer lines are rejected.
const maxLineBytes = 64 * 1024

// LoadError reports a line rejected under RejectFail, or an I/O failure.
type LoadError struct {
	Path string // empty when decoding from a reader
	Line int    // 1-based line number, 0 for I/O errors
	Err  error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("channellist: %s:%d: %v", where, e.Line, e.Err)
	}
	return fmt.Sprintf("channellist: %s: %v", where, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrLineTooLong marks a line longer than the reader accepts.
var ErrLineTooLong = errors.New("channellist: line too long")

type lineKind uint8

const (
	lineData lineKind = iota
	lineNote          // comment or blank, kept verbatim
	lineOversize
)

type pendingLine struct {
	number int
	kind   lineKind
	text   string
}

type decoded struct {
	channel dvb.Channel
	err     error
}

// Decode reads a channel list from r. Blank lines and lines starting with
// '#' carry no channel but are kept so Encode writes them back in place.
// Lines are decoded in parallel but the result keeps file order, and
// identical transponders are shared between channels.
func Decode(ctx context.Context, r io.Reader, opts Options) (*List, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	results := make([]decoded, len(lines))
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ln := range lines {
		switch ln.kind {
		case lineNote:
			continue
		case lineOversize:
			results[i].err = fmt.Errorf("%w: more than %d bytes", ErrLineTooLong, maxLineBytes)
			continue
		}
		i, ln := i, ln
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := dvb.DecodeLine(ln.text)
			results[i] = decoded{channel: c, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger := xglog.WithComponentFromContext(ctx, "channellist")
	interner := NewInterner()
	channels := make([]dvb.Channel, 0, len(results))
	var notes []note
	rejected := 0

	for i, res := range results {
		if lines[i].kind == lineNote {
			notes = append(notes, note{before: len(channels), text: lines[i].text})
			continue
		}
		if res.err != nil {
			metrics.IncLineRejected(rejectReason(res.err))
			if opts.Policy == RejectFail {
				return nil, &LoadError{Line: lines[i].number, Err: res.err}
			}
			rejected++
			ev := logger.Warn().
				Int(xglog.FieldLineNumber, lines[i].number).
				Err(res.err)
			var le *dvb.LineError
			if errors.As(res.err, &le) {
				ev = ev.Str(xglog.FieldField, le.Field).Str(xglog.FieldToken, le.Token)
			}
			ev.Msg("skipping invalid channel line")
			continue
		}
		metrics.IncLineAccepted()
		c := res.channel
		c.Transponder = interner.Intern(c.Transponder)
		channels = append(channels, c)
	}

	l := NewList(channels)
	l.notes = notes
	l.rejected = rejected
	logger.Debug().
		Int(xglog.FieldChannels, l.Len()).
		Int(xglog.FieldRejected, rejected).
		Int("transponders", interner.Len()).
		Msg("decoded channel list")
	return l, nil
}

// Load reads and decodes the channel list at path.
func Load(ctx context.Context, path string, opts Options) (*List, error) {
	// #nosec G304 -- channel list path is provided by the operator
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	l, err := Decode(ctx, f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return l, nil
}

// readLines splits r into classified lines. Line endings (LF or CRLF) are
// stripped. A line over maxLineBytes is consumed but not buffered.
func readLines(r io.Reader) ([]pendingLine, error) {
	br := bufio.NewReader(r)
	var (
		lines    []pendingLine
		cur      []byte
		oversize bool
		n        int
	)
	for {
		frag, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, fmt.Errorf("read line %d: %w", n+1, err)
		}
		if !oversize {
			if len(cur)+len(frag) > maxLineBytes {
				oversize = true
				cur = cur[:0]
			} else {
				cur = append(cur, frag...)
			}
		}
		if isPrefix {
			continue
		}

		n++
		ln := pendingLine{number: n, kind: lineData, text: strings.TrimRight(string(cur), "\r")}
		switch trimmed := strings.TrimSpace(ln.text); {
		case oversize:
			ln.kind, ln.text = lineOversize, ""
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			ln.kind = lineNote
		}
		lines = append(lines, ln)
		cur = cur[:0]
		oversize = false
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, dvb.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, dvb.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, dvb.ErrTruncatedLine):
		return "truncated"
	case errors.Is(err, ErrLineTooLong):
		return "too_long"
	}
	return "other"
}
