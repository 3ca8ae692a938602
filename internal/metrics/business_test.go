// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromhttpExposure(t *testing.T) {
	IncLineAccepted()

	recorder := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "dvbchannels_lines_decoded_total")
}

func TestIncLineRejected(t *testing.T) {
	before := testutil.ToFloat64(linesRejected.WithLabelValues("truncated"))
	rejectedBefore := testutil.ToFloat64(linesDecoded.WithLabelValues("rejected"))

	IncLineRejected("truncated")

	assert.Equal(t, before+1, testutil.ToFloat64(linesRejected.WithLabelValues("truncated")))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(linesDecoded.WithLabelValues("rejected")))
}

func TestRecordList(t *testing.T) {
	RecordList(3, map[string]int{"DVB-S": 2, "DVB-C": 1})
	assert.Equal(t, float64(3), testutil.ToFloat64(channelsLoaded))
	assert.Equal(t, float64(2), testutil.ToFloat64(transpondersLoaded.WithLabelValues("DVB-S")))

	// A new list replaces the previous per-system breakdown.
	RecordList(1, map[string]int{"ATSC": 1})
	assert.Equal(t, 1, testutil.CollectAndCount(transpondersLoaded))
}

func TestSaveAndReloadOutcomes(t *testing.T) {
	ok := testutil.ToFloat64(listSaves.WithLabelValues("success"))
	failed := testutil.ToFloat64(listReloads.WithLabelValues("failure"))

	IncListSave(nil)
	IncListReload(errors.New("boom"))

	assert.Equal(t, ok+1, testutil.ToFloat64(listSaves.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(listReloads.WithLabelValues("failure")))
}

func TestRecordList_GaugeSample(t *testing.T) {
	RecordList(7, map[string]int{"DVB-T": 2})

	metric := &dto.Metric{}
	require.NoError(t, transpondersLoaded.WithLabelValues("DVB-T").Write(metric))
	assert.Equal(t, float64(2), metric.GetGauge().GetValue())
	require.Len(t, metric.GetLabel(), 1)
	assert.Equal(t, "delivery_system", metric.GetLabel()[0].GetName())
}
