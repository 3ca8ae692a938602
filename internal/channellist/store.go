// SPDX-License-Identifier: MIT

package channellist

import (
	"sync/atomic"

	"github.com/ManuGH/dvbchannels/internal/metrics"
)

var emptyList = NewList(nil)

// Store holds the active List. Readers get a consistent snapshot; a reload
// swaps in a new List without blocking them.
type Store struct {
	current atomic.Pointer[List]
}

// NewStore returns a Store serving initial, or an empty list when initial is nil.
func NewStore(initial *List) *Store {
	s := &Store{}
	if initial != nil {
		s.Replace(initial)
	}
	return s
}

// Current returns the active list. It never returns nil.
func (s *Store) Current() *List {
	if l := s.current.Load(); l != nil {
		return l
	}
	return emptyList
}

// Replace makes l the active list.
func (s *Store) Replace(l *List) {
	s.current.Store(l)
	metrics.RecordList(l.Len(), l.TransponderCounts())
}
