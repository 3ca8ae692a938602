// SPDX-License-Identifier: MIT

package dvb

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLine matches every DecodeLine failure regardless of cause.
	ErrInvalidLine = errors.New("dvb: invalid channel line")

	// Decode failure kinds, reachable through errors.Is on a *LineError.
	ErrMalformedToken = errors.New("malformed token")
	ErrOutOfRange     = errors.New("value out of range")
	ErrTruncatedLine  = errors.New("truncated line")

	// ErrInvalidChannel matches every Channel.Validate failure.
	ErrInvalidChannel = errors.New("dvb: invalid channel")
)

// LineError describes the first failure recorded while decoding a line.
// Later fields are never inspected once a LineError exists.
type LineError struct {
	Kind   error  // ErrMalformedToken, ErrOutOfRange or ErrTruncatedLine
	Field  string // name of the field being read
	Token  string // offending token, empty when the line ended early
	Offset int    // byte offset of the token within the line
}

func (e *LineError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: %v: %s at offset %d", ErrInvalidLine, e.Kind, e.Field, e.Offset)
	}
	return fmt.Sprintf("%v: %v: %s %q at offset %d", ErrInvalidLine, e.Kind, e.Field, e.Token, e.Offset)
}

func (e *LineError) Unwrap() []error {
	return []error{ErrInvalidLine, e.Kind}
}

// RangeError reports a field value outside its permitted range.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %s=%d outside [%d, %d]", ErrInvalidChannel, e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidChannel
}
