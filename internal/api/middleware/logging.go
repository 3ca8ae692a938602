// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"time"

	xglog "github.com/ManuGH/dvbchannels/internal/log"
)

// AccessLog logs one line per request at debug level, and attaches the
// request-scoped logger to the context for handlers.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := xglog.WithContext(r.Context(), xglog.Base())
		r = r.WithContext(logger.WithContext(r.Context()))

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		logger.Debug().
			Str(xglog.FieldComponent, "http").
			Str("method", r.Method).
			Str(xglog.FieldPath, r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
