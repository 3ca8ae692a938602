// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := xglog.WithComponentFromContext(r.Context(), "api")
		logger.Debug().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeJSON(w, r, status, errorResponse{
		Error:     code,
		Detail:    detail,
		RequestID: xglog.RequestIDFromContext(r.Context()),
	})
}

type healthResponse struct {
	Status       string `json:"status"`
	Channels     int    `json:"channels"`
	Transponders int    `json:"transponders"`
	Rejected     int    `json:"rejected"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	l := s.store.Current()
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:       "ok",
		Channels:     l.Len(),
		Transponders: len(l.Transponders()),
		Rejected:     l.Rejected(),
	})
}

// handleChannels lists all channels, or those matching ?name= ignoring case.
func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	l := s.store.Current()
	if name := r.URL.Query().Get("name"); name != "" {
		writeJSON(w, r, http.StatusOK, channelViews(l.FindByName(name)))
		return
	}
	writeJSON(w, r, http.StatusOK, channelViews(l.Channels()))
}

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 0 {
		writeError(w, r, http.StatusBadRequest, "invalid_number", "channel number must be a non-negative integer")
		return
	}
	c, ok := s.store.Current().ByNumber(number)
	if !ok {
		writeError(w, r, http.StatusNotFound, "not_found", "no channel with number "+strconv.Itoa(number))
		return
	}
	writeJSON(w, r, http.StatusOK, newChannelView(c))
}

func (s *Server) handleTransponders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, transponderViews(s.store.Current()))
}
