// SPDX-License-Identifier: MIT

package dvb

import (
	"errors"
	"fmt"
	"math"
)

// Absent marks an optional numeric Channel field as not present.
const Absent = -1

// Channel is one receivable service and the transponder carrying it.
//
// Channel is a value: callers change a field by copying the struct, never by
// mutating one that may be shared. The Transponder is shared between every
// Channel of the same multiplex.
type Channel struct {
	Name   string
	Number int // Absent when unassigned

	Source            string
	NetworkID         int // may be Absent
	TransportStreamID int // may be Absent
	ServiceID         int

	PmtPID   int
	VideoPID int // may be Absent
	AudioPID int // may be Absent

	Scrambled bool

	Transponder Transponder
}

// NewChannel returns a Channel with every optional identifier set to Absent.
// ServiceID and PmtPID start Absent too and must be set before Validate passes.
func NewChannel(name, source string, tp Transponder) Channel {
	return Channel{
		Name:              name,
		Number:            Absent,
		Source:            source,
		NetworkID:         Absent,
		TransportStreamID: Absent,
		ServiceID:         Absent,
		PmtPID:            Absent,
		VideoPID:          Absent,
		AudioPID:          Absent,
		Transponder:       tp,
	}
}

// Validate checks the per-field ranges the line format can represent.
func (c Channel) Validate() error {
	errs := []error{
		checkRange("number", c.Number, Absent),
		checkRange("networkId", c.NetworkID, Absent),
		checkRange("transportStreamId", c.TransportStreamID, Absent),
		checkRange("serviceId", c.ServiceID, 0),
		checkRange("pmtPid", c.PmtPID, 0),
		checkRange("videoPid", c.VideoPID, Absent),
		checkRange("audioPid", c.AudioPID, Absent),
	}
	if c.Transponder == nil {
		errs = append(errs, fmt.Errorf("%w: missing transponder", ErrInvalidChannel))
	} else if err := c.Transponder.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Equal reports whether c and o agree on every field, including the full
// value of the referenced transponder.
func (c Channel) Equal(o Channel) bool {
	return c == o
}

// SameMultiplex reports whether both channels are carried by an equal transponder.
func (c Channel) SameMultiplex(o Channel) bool {
	return c.Transponder != nil && c.Transponder == o.Transponder
}

// WithTransponder returns a copy of c bound to tp.
func (c Channel) WithTransponder(tp Transponder) Channel {
	c.Transponder = tp
	return c
}

// WithNumber returns a copy of c with the given channel number.
func (c Channel) WithNumber(number int) Channel {
	c.Number = number
	return c
}

func checkRange(field string, v, lo int) error {
	if v < lo || v > math.MaxInt32 {
		return &RangeError{Field: field, Value: v, Min: lo, Max: math.MaxInt32}
	}
	return nil
}

// checkInt32 bounds plain integer fields to what the line format can carry.
func checkInt32(field string, v int) error {
	return checkRange(field, v, math.MinInt32)
}
