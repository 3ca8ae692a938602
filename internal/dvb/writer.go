// SPDX-License-Identifier: MIT

package dvb

import (
	"fmt"
	"strconv"
)

// EncodeLine renders c in the form DecodeLine reads back.
//
// The caller guarantees c is valid (see Channel.Validate). A nil
// transponder is a programming error and panics.
func EncodeLine(c Channel) string {
	return string(AppendLine(nil, c))
}

// AppendLine appends the encoding of c to dst.
func AppendLine(dst []byte, c Channel) []byte {
	w := lineWriter{buf: dst, start: len(dst)}
	w.writeTransponder(c.Transponder)
	w.writeString(c.Name)
	w.writeInt(c.Number)
	w.writeString(c.Source)
	w.writeInt(c.NetworkID)
	w.writeInt(c.TransportStreamID)
	w.writeInt(c.ServiceID)
	w.writeInt(c.PmtPID)
	w.writeInt(c.VideoPID)
	w.writeInt(c.AudioPID)
	w.writeBool(c.Scrambled)
	return w.buf
}

// EncodeTransponder renders only the transponder part of a line.
func EncodeTransponder(tp Transponder) string {
	w := lineWriter{}
	w.writeTransponder(tp)
	return string(w.buf)
}

type lineWriter struct {
	buf   []byte
	start int
}

func (w *lineWriter) sep() {
	if len(w.buf) > w.start {
		w.buf = append(w.buf, ' ')
	}
}

func (w *lineWriter) writeInt(v int) {
	w.sep()
	w.buf = strconv.AppendInt(w.buf, int64(v), 10)
}

func (w *lineWriter) writeBool(v bool) {
	if v {
		w.writeInt(1)
	} else {
		w.writeInt(0)
	}
}

func (w *lineWriter) writeString(s string) {
	w.sep()
	w.buf = strconv.AppendQuote(w.buf, s)
}

func (w *lineWriter) writeTransponder(tp Transponder) {
	switch t := tp.(type) {
	case CableTransponder:
		w.writeInt(int(DeliveryCable))
		w.writeInt(t.Frequency)
		w.writeInt(t.SymbolRate)
		w.writeInt(int(t.Modulation))
		w.writeInt(int(t.FecRate))
	case SatelliteTransponder:
		w.writeInt(int(DeliverySatellite))
		w.writeInt(t.Frequency)
		w.writeInt(int(t.Polarization))
		w.writeInt(t.SymbolRate)
		w.writeInt(int(t.FecRate))
	case TerrestrialTransponder:
		w.writeInt(int(DeliveryTerrestrial))
		w.writeInt(t.Frequency)
		w.writeInt(int(t.Bandwidth))
		w.writeInt(int(t.Modulation))
		w.writeInt(int(t.FecRateHigh))
		w.writeInt(int(t.FecRateLow))
		w.writeInt(int(t.TransmissionMode))
		w.writeInt(int(t.GuardInterval))
		w.writeInt(int(t.Hierarchy))
	case AtscTransponder:
		w.writeInt(int(DeliveryAtsc))
		w.writeInt(t.Frequency)
		w.writeInt(int(t.Modulation))
	default:
		panic(fmt.Sprintf("dvb: cannot encode transponder %T", tp))
	}
}
