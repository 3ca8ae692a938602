// SPDX-License-Identifier: MIT

package dvb

import (
	"strconv"
)

// DecodeLine parses one channel-list line.
//
// Decoding is all or nothing: when any field is malformed, out of range or
// missing, no Channel is returned and the error is a *LineError describing
// the first offending token. errors.Is(err, ErrInvalidLine) holds for every
// failure.
func DecodeLine(line string) (Channel, error) {
	r := lineReader{line: line}
	c := r.readChannel()
	r.expectEnd()
	if r.err != nil {
		return Channel{}, r.err
	}
	return c, nil
}

// DecodeTransponder parses a line holding only the transponder fields.
func DecodeTransponder(line string) (Transponder, error) {
	r := lineReader{line: line}
	tp := r.readTransponder()
	r.expectEnd()
	if r.err != nil {
		return nil, r.err
	}
	return tp, nil
}

// lineReader walks a line token by token. The first failure is kept and
// every later read short-circuits to a zero value.
type lineReader struct {
	line string
	pos  int
	err  *LineError
}

func (r *lineReader) fail(kind error, field, token string, offset int) {
	if r.err == nil {
		r.err = &LineError{Kind: kind, Field: field, Token: token, Offset: offset}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func (r *lineReader) skipSpace() {
	for r.pos < len(r.line) && isSpace(r.line[r.pos]) {
		r.pos++
	}
}

// token consumes the next run of non-blank bytes.
func (r *lineReader) token() (string, int) {
	r.skipSpace()
	start := r.pos
	for r.pos < len(r.line) && !isSpace(r.line[r.pos]) {
		r.pos++
	}
	return r.line[start:r.pos], start
}

func (r *lineReader) number(field string) (v int, tok string, off int, ok bool) {
	if r.err != nil {
		return 0, "", 0, false
	}
	tok, off = r.token()
	if tok == "" {
		r.fail(ErrTruncatedLine, field, "", off)
		return 0, "", off, false
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		r.fail(ErrMalformedToken, field, tok, off)
		return 0, tok, off, false
	}
	return int(n), tok, off, true
}

func (r *lineReader) readInt(field string) int {
	v, _, _, _ := r.number(field)
	return v
}

// readBounded reads an integer that must lie within [lo, hi].
func (r *lineReader) readBounded(field string, lo, hi int) int {
	v, tok, off, ok := r.number(field)
	if !ok {
		return 0
	}
	if v < lo || v > hi {
		r.fail(ErrOutOfRange, field, tok, off)
		return 0
	}
	return v
}

// readOptional reads an identifier that is either Absent or non-negative.
func (r *lineReader) readOptional(field string) int {
	v, tok, off, ok := r.number(field)
	if !ok {
		return 0
	}
	if v < Absent {
		r.fail(ErrOutOfRange, field, tok, off)
		return 0
	}
	return v
}

func (r *lineReader) readBool(field string) bool {
	return r.readBounded(field, 0, 1) == 1
}

// readString reads a double-quoted string literal using Go escape rules.
func (r *lineReader) readString(field string) string {
	if r.err != nil {
		return ""
	}
	r.skipSpace()
	start := r.pos
	if start >= len(r.line) {
		r.fail(ErrTruncatedLine, field, "", start)
		return ""
	}
	if r.line[start] != '"' {
		tok, _ := r.token()
		r.fail(ErrMalformedToken, field, tok, start)
		return ""
	}
	for i := start + 1; i < len(r.line); i++ {
		switch r.line[i] {
		case '\\':
			i++
		case '"':
			end := i + 1
			if end < len(r.line) && !isSpace(r.line[end]) {
				r.pos = start
				tok, _ := r.token()
				r.fail(ErrMalformedToken, field, tok, start)
				return ""
			}
			s, err := strconv.Unquote(r.line[start:end])
			if err != nil {
				r.fail(ErrMalformedToken, field, r.line[start:end], start)
				return ""
			}
			r.pos = end
			return s
		}
	}
	r.pos = len(r.line)
	r.fail(ErrMalformedToken, field, r.line[start:], start)
	return ""
}

// readEnum reads an enumerated field and rejects values above its maximum.
func readEnum[E boundedEnum](r *lineReader, field string) E {
	var zero E
	return E(r.readBounded(field, 0, zero.MaxValue()))
}

func (r *lineReader) readTransponder() Transponder {
	switch readEnum[DeliverySystem](r, "deliverySystem") {
	case DeliveryCable:
		var t CableTransponder
		t.Frequency = r.readInt("frequency")
		t.SymbolRate = r.readInt("symbolRate")
		t.Modulation = readEnum[CableModulation](r, "modulation")
		t.FecRate = readEnum[FecRate](r, "fecRate")
		return t
	case DeliverySatellite:
		var t SatelliteTransponder
		t.Frequency = r.readInt("frequency")
		t.Polarization = readEnum[Polarization](r, "polarization")
		t.SymbolRate = r.readInt("symbolRate")
		t.FecRate = readEnum[FecRate](r, "fecRate")
		return t
	case DeliveryTerrestrial:
		var t TerrestrialTransponder
		t.Frequency = r.readInt("frequency")
		t.Bandwidth = readEnum[Bandwidth](r, "bandwidth")
		t.Modulation = readEnum[TerrestrialModulation](r, "modulation")
		t.FecRateHigh = readEnum[FecRate](r, "fecRateHigh")
		t.FecRateLow = readEnum[FecRate](r, "fecRateLow")
		t.TransmissionMode = readEnum[TransmissionMode](r, "transmissionMode")
		t.GuardInterval = readEnum[GuardInterval](r, "guardInterval")
		t.Hierarchy = readEnum[Hierarchy](r, "hierarchy")
		return t
	case DeliveryAtsc:
		var t AtscTransponder
		t.Frequency = r.readInt("frequency")
		t.Modulation = readEnum[AtscModulation](r, "modulation")
		return t
	}
	return nil
}

func (r *lineReader) readChannel() Channel {
	var c Channel
	c.Transponder = r.readTransponder()
	c.Name = r.readString("name")
	c.Number = r.readOptional("number")
	c.Source = r.readString("source")
	c.NetworkID = r.readOptional("networkId")
	c.TransportStreamID = r.readOptional("transportStreamId")
	c.ServiceID = r.readBounded("serviceId", 0, maxInt32)
	c.PmtPID = r.readBounded("pmtPid", 0, maxInt32)
	c.VideoPID = r.readOptional("videoPid")
	c.AudioPID = r.readOptional("audioPid")
	c.Scrambled = r.readBool("scrambled")
	return c
}

// expectEnd rejects anything but blanks after the last field.
func (r *lineReader) expectEnd() {
	if r.err != nil {
		return
	}
	if tok, off := r.token(); tok != "" {
		r.fail(ErrMalformedToken, "end of line", tok, off)
	}
}

const maxInt32 = 1<<31 - 1
