// SPDX-License-Identifier: MIT

package channellist

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/ManuGH/dvbchannels/internal/dvb"
	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/ManuGH/dvbchannels/internal/metrics"
	"github.com/google/renameio/v2"
)

// Encode writes every channel of l as one line, in list order. Comment and
// blank lines read by Decode are written back at their original position.
func Encode(w io.Writer, l *List) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	notes := l.notes
	writeNotes := func(upTo int) error {
		for len(notes) > 0 && notes[0].before <= upTo {
			if _, err := bw.WriteString(notes[0].text + "\n"); err != nil {
				return err
			}
			notes = notes[1:]
		}
		return nil
	}
	for i, c := range l.channels {
		if err := writeNotes(i); err != nil {
			return err
		}
		buf = dvb.AppendLine(buf[:0], c)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := writeNotes(len(l.channels)); err != nil {
		return err
	}
	return bw.Flush()
}

// Save replaces the file at path with the encoding of l. The write is
// atomic and durable: readers see either the old or the new list.
func Save(ctx context.Context, path string, l *List) (err error) {
	defer func() { metrics.IncListSave(err) }()
	logger := xglog.FromContext(ctx)

	for i, c := range l.channels {
		if verr := c.Validate(); verr != nil {
			return fmt.Errorf("channel %d (%q): %w", i, c.Name, verr)
		}
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending channel list: %w", err)
	}
	defer func() {
		if cerr := pendingFile.Cleanup(); cerr != nil {
			logger.Debug().Err(cerr).Msg("cleanup pending channel list")
		}
	}()

	if err := Encode(pendingFile, l); err != nil {
		return fmt.Errorf("write channel list: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace channel list: %w", err)
	}
	logger.Info().
		Str(xglog.FieldPath, path).
		Int(xglog.FieldChannels, l.Len()).
		Msg("saved channel list")
	return nil
}
