// SPDX-License-Identifier: MIT

package api

import (
	"github.com/ManuGH/dvbchannels/internal/channellist"
	"github.com/ManuGH/dvbchannels/internal/dvb"
)

// ChannelView is the JSON form of a channel. Absent ids are omitted.
type ChannelView struct {
	Name              string          `json:"name"`
	Number            *int            `json:"number,omitempty"`
	Source            string          `json:"source"`
	NetworkID         *int            `json:"networkId,omitempty"`
	TransportStreamID *int            `json:"transportStreamId,omitempty"`
	ServiceID         int             `json:"serviceId"`
	PmtPID            int             `json:"pmtPid"`
	VideoPID          *int            `json:"videoPid,omitempty"`
	AudioPID          *int            `json:"audioPid,omitempty"`
	Scrambled         bool            `json:"scrambled"`
	Transponder       TransponderView `json:"transponder"`
	Line              string          `json:"line"`
}

// TransponderView is the JSON form of a transponder.
type TransponderView struct {
	DeliverySystem string `json:"deliverySystem"`
	Frequency      int    `json:"frequency"`
	Description    string `json:"description"`
	Line           string `json:"line"`
	Channels       int    `json:"channels,omitempty"`
}

func optional(v int) *int {
	if v == dvb.Absent {
		return nil
	}
	return &v
}

func frequencyOf(tp dvb.Transponder) int {
	switch t := tp.(type) {
	case dvb.CableTransponder:
		return t.Frequency
	case dvb.SatelliteTransponder:
		return t.Frequency
	case dvb.TerrestrialTransponder:
		return t.Frequency
	case dvb.AtscTransponder:
		return t.Frequency
	default:
		return 0
	}
}

func newTransponderView(tp dvb.Transponder) TransponderView {
	return TransponderView{
		DeliverySystem: tp.DeliverySystem().String(),
		Frequency:      frequencyOf(tp),
		Description:    tp.String(),
		Line:           dvb.EncodeTransponder(tp),
	}
}

func newChannelView(c dvb.Channel) ChannelView {
	return ChannelView{
		Name:              c.Name,
		Number:            optional(c.Number),
		Source:            c.Source,
		NetworkID:         optional(c.NetworkID),
		TransportStreamID: optional(c.TransportStreamID),
		ServiceID:         c.ServiceID,
		PmtPID:            c.PmtPID,
		VideoPID:          optional(c.VideoPID),
		AudioPID:          optional(c.AudioPID),
		Scrambled:         c.Scrambled,
		Transponder:       newTransponderView(c.Transponder),
		Line:              dvb.EncodeLine(c),
	}
}

func channelViews(channels []dvb.Channel) []ChannelView {
	out := make([]ChannelView, 0, len(channels))
	for _, c := range channels {
		out = append(out, newChannelView(c))
	}
	return out
}

func transponderViews(l *channellist.List) []TransponderView {
	tps := l.Transponders()
	out := make([]TransponderView, 0, len(tps))
	for _, tp := range tps {
		v := newTransponderView(tp)
		v.Channels = len(l.OnTransponder(tp))
		out = append(out, v)
	}
	return out
}
