// SPDX-License-Identifier: MIT

// Package channellist reads and writes channel-list files, one dvb.Channel
// per line, and keeps the active list available to readers.
package channellist

import (
	"github.com/ManuGH/dvbchannels/internal/dvb"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ServiceKey identifies a service by its DVB triplet.
type ServiceKey struct {
	NetworkID         int
	TransportStreamID int
	ServiceID         int
}

// KeyOf returns the service triplet of c.
func KeyOf(c dvb.Channel) ServiceKey {
	return ServiceKey{NetworkID: c.NetworkID, TransportStreamID: c.TransportStreamID, ServiceID: c.ServiceID}
}

// List is an immutable, ordered set of channels with lookup indexes.
// A List is safe for concurrent readers.
type List struct {
	channels     []dvb.Channel
	byNumber     map[int]int
	byService    map[ServiceKey]int
	byName       map[string][]int
	transponders []dvb.Transponder
	notes        []note
	rejected     int
}

// note is a comment or blank line that precedes channels[before].
type note struct {
	before int
	text   string
}

// NewList indexes channels in the given order. The slice is copied.
// When two channels share a number or service key, the first one wins the index.
func NewList(channels []dvb.Channel) *List {
	l := &List{
		channels:  append([]dvb.Channel(nil), channels...),
		byNumber:  make(map[int]int),
		byService: make(map[ServiceKey]int),
		byName:    make(map[string][]int),
	}
	seen := make(map[dvb.Transponder]struct{})
	for i, c := range l.channels {
		if c.Number != dvb.Absent {
			if _, dup := l.byNumber[c.Number]; !dup {
				l.byNumber[c.Number] = i
			}
		}
		key := KeyOf(c)
		if _, dup := l.byService[key]; !dup {
			l.byService[key] = i
		}
		name := foldName(c.Name)
		l.byName[name] = append(l.byName[name], i)

		if c.Transponder == nil {
			continue
		}
		if _, ok := seen[c.Transponder]; !ok {
			seen[c.Transponder] = struct{}{}
			l.transponders = append(l.transponders, c.Transponder)
		}
	}
	return l
}

// foldName normalizes a display name for case-insensitive matching.
func foldName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// Len returns the number of channels.
func (l *List) Len() int { return len(l.channels) }

// Notes returns the comment and blank lines read with the list.
func (l *List) Notes() []string {
	out := make([]string, 0, len(l.notes))
	for _, n := range l.notes {
		out = append(out, n.text)
	}
	return out
}

// Rejected returns how many input lines were skipped while decoding.
func (l *List) Rejected() int { return l.rejected }

// Channels returns a copy of the channels in file order.
func (l *List) Channels() []dvb.Channel {
	return append([]dvb.Channel(nil), l.channels...)
}

// ByNumber returns the first channel with the given number.
func (l *List) ByNumber(number int) (dvb.Channel, bool) {
	i, ok := l.byNumber[number]
	if !ok {
		return dvb.Channel{}, false
	}
	return l.channels[i], true
}

// ByService returns the first channel with the given service triplet.
func (l *List) ByService(key ServiceKey) (dvb.Channel, bool) {
	i, ok := l.byService[key]
	if !ok {
		return dvb.Channel{}, false
	}
	return l.channels[i], true
}

// FindByName returns every channel whose name matches after Unicode
// normalization and case folding.
func (l *List) FindByName(name string) []dvb.Channel {
	idx := l.byName[foldName(name)]
	out := make([]dvb.Channel, 0, len(idx))
	for _, i := range idx {
		out = append(out, l.channels[i])
	}
	return out
}

// Transponders returns the distinct transponders in first-seen order.
func (l *List) Transponders() []dvb.Transponder {
	return append([]dvb.Transponder(nil), l.transponders...)
}

// OnTransponder returns the channels carried by tp.
func (l *List) OnTransponder(tp dvb.Transponder) []dvb.Channel {
	var out []dvb.Channel
	for _, c := range l.channels {
		if c.Transponder == tp {
			out = append(out, c)
		}
	}
	return out
}

// TransponderCounts returns the number of distinct transponders per delivery system.
func (l *List) TransponderCounts() map[string]int {
	counts := make(map[string]int)
	for _, tp := range l.transponders {
		counts[tp.DeliverySystem().String()]++
	}
	return counts
}
