// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instruments for channel-list processing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linesDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvbchannels_lines_decoded_total",
		Help: "Channel-list lines decoded by outcome",
	}, []string{"outcome"}) // outcome=accepted|rejected

	linesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvbchannels_lines_rejected_total",
		Help: "Rejected channel-list lines by reason",
	}, []string{"reason"}) // reason=malformed|out_of_range|truncated|other

	channelsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dvbchannels_channels_loaded",
		Help: "Number of channels in the current list",
	})

	transpondersLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dvbchannels_transponders_loaded",
		Help: "Distinct transponders in the current list by delivery system",
	}, []string{"delivery_system"})

	listSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvbchannels_list_saves_total",
		Help: "Channel-list writes by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	listReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dvbchannels_list_reloads_total",
		Help: "Channel-list reloads triggered by file changes, by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

func IncLineAccepted() { linesDecoded.WithLabelValues("accepted").Inc() }

func IncLineRejected(reason string) {
	linesDecoded.WithLabelValues("rejected").Inc()
	linesRejected.WithLabelValues(reason).Inc()
}

// RecordList publishes the size of the active list. perSystem maps a
// delivery system name to its distinct transponder count.
func RecordList(channels int, perSystem map[string]int) {
	channelsLoaded.Set(float64(channels))
	transpondersLoaded.Reset()
	for system, n := range perSystem {
		transpondersLoaded.WithLabelValues(system).Set(float64(n))
	}
}

func IncListSave(err error) { listSaves.WithLabelValues(outcome(err)).Inc() }

func IncListReload(err error) { listReloads.WithLabelValues(outcome(err)).Inc() }

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
