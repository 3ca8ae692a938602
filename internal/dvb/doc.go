// SPDX-License-Identifier: MIT

// Package dvb models DVB-C, DVB-S, DVB-T and ATSC transponders, the channels
// they carry, and the single-line text form used by channel-list files.
//
// A line lists the transponder first and the channel fields after it:
//
//	0 498000000 6900000 2 3 "Demo" 1 "DVB-C" -1 -1 101 256 -1 -1 0
//
// Tokens are separated by spaces or tabs. Strings are double-quoted with Go
// escape rules, so names may contain blanks and quotes. -1 marks an absent
// identifier.
package dvb
