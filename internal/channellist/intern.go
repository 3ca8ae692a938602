// SPDX-License-Identifier: MIT

package channellist

import (
	"github.com/ManuGH/dvbchannels/internal/dvb"
	"github.com/puzpuzpuz/xsync/v3"
)

// Interner hands out one shared value per distinct transponder so that all
// channels of a multiplex reference the same payload. It is safe for
// concurrent use.
type Interner struct {
	m *xsync.MapOf[dvb.Transponder, dvb.Transponder]
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{m: xsync.NewMapOf[dvb.Transponder, dvb.Transponder]()}
}

// Intern returns the canonical value equal to tp.
func (in *Interner) Intern(tp dvb.Transponder) dvb.Transponder {
	if tp == nil {
		return nil
	}
	actual, _ := in.m.LoadOrStore(tp, tp)
	return actual
}

// Len returns the number of distinct transponders seen.
func (in *Interner) Len() int {
	return in.m.Size()
}
