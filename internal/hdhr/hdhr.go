// SPDX-License-Identifier: MIT

// Package hdhr emulates the HDHomeRun lineup endpoints so DVR frontends can
// pick up the active channel list.
package hdhr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ManuGH/dvbchannels/internal/channellist"
	"github.com/ManuGH/dvbchannels/internal/dvb"
	xglog "github.com/ManuGH/dvbchannels/internal/log"
)

// DefaultStreamURL is used when no stream template is configured.
const DefaultStreamURL = "{base}/auto/v{number}"

// Config holds HDHomeRun emulation configuration
type Config struct {
	DeviceID     string
	FriendlyName string
	ModelName    string
	FirmwareName string
	BaseURL      string
	TunerCount   int
	// StreamURL is rendered per channel by StreamURL.
	StreamURL string
}

// Server implements HDHomeRun API endpoints
type Server struct {
	config Config
	store  *channellist.Store
}

// NewServer creates a new HDHomeRun emulation server
func NewServer(config Config, store *channellist.Store) *Server {
	if config.DeviceID == "" {
		config.DeviceID = "DVBC1234"
	}
	if config.FriendlyName == "" {
		config.FriendlyName = "dvbchannels"
	}
	if config.ModelName == "" {
		config.ModelName = "HDHR-dvbchannels"
	}
	if config.FirmwareName == "" {
		config.FirmwareName = "dvbchannels-1.0.0"
	}
	if config.TunerCount == 0 {
		config.TunerCount = 2
	}
	if config.StreamURL == "" {
		config.StreamURL = DefaultStreamURL
	}

	return &Server{
		config: config,
		store:  store,
	}
}

// DiscoverResponse represents HDHomeRun discovery response
type DiscoverResponse struct {
	FriendlyName    string `json:"FriendlyName"`
	ModelNumber     string `json:"ModelNumber"`
	FirmwareName    string `json:"FirmwareName"`
	FirmwareVersion string `json:"FirmwareVersion"`
	DeviceID        string `json:"DeviceID"`
	DeviceAuth      string `json:"DeviceAuth"`
	BaseURL         string `json:"BaseURL"`
	LineupURL       string `json:"LineupURL"`
	TunerCount      int    `json:"TunerCount"`
}

// LineupStatus represents tuner status
type LineupStatus struct {
	ScanInProgress int      `json:"ScanInProgress"`
	ScanPossible   int      `json:"ScanPossible"`
	Source         string   `json:"Source"`
	SourceList     []string `json:"SourceList"`
}

// LineupEntry represents a channel in the lineup
type LineupEntry struct {
	GuideNumber string `json:"GuideNumber"`
	GuideName   string `json:"GuideName"`
	URL         string `json:"URL"`
	DRM         int    `json:"DRM,omitempty"`
}

func (s *Server) baseURL(r *http.Request) string {
	if s.config.BaseURL != "" {
		return strings.TrimRight(s.config.BaseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// HandleDiscover handles /discover.json endpoint
func (s *Server) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	logger := xglog.WithComponentFromContext(r.Context(), "hdhr")
	baseURL := s.baseURL(r)

	response := DiscoverResponse{
		FriendlyName:    s.config.FriendlyName,
		ModelNumber:     s.config.ModelName,
		FirmwareName:    s.config.FirmwareName,
		FirmwareVersion: s.config.FirmwareName,
		DeviceID:        s.config.DeviceID,
		DeviceAuth:      "dvbchannels",
		BaseURL:         baseURL,
		LineupURL:       baseURL + "/lineup.json",
		TunerCount:      s.config.TunerCount,
	}

	writeJSON(w, response)

	logger.Debug().
		Str(xglog.FieldPath, "/discover.json").
		Str("device_id", s.config.DeviceID).
		Msg("HDHomeRun discovery request")
}

// HandleLineupStatus handles /lineup_status.json endpoint
func (s *Server) HandleLineupStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, LineupStatus{
		ScanInProgress: 0,
		ScanPossible:   0,
		Source:         "Cable",
		SourceList:     []string{"Cable", "Antenna"},
	})
}

// HandleLineup handles /lineup.json endpoint. Only numbered channels are
// listed, in list order.
func (s *Server) HandleLineup(w http.ResponseWriter, r *http.Request) {
	logger := xglog.WithComponentFromContext(r.Context(), "hdhr")
	lineup := s.Lineup(s.baseURL(r))

	writeJSON(w, lineup)

	logger.Debug().
		Int(xglog.FieldChannels, len(lineup)).
		Msg("HDHomeRun lineup served")
}

// HandleLineupPost handles POST /lineup.json. Scans are not supported; the
// lineup always reflects the channel file.
func (s *Server) HandleLineupPost(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("scan") == "start" {
		logger := xglog.WithComponentFromContext(r.Context(), "hdhr")
		logger.Info().Msg("HDHomeRun scan requested, ignoring")
	}
	w.WriteHeader(http.StatusNoContent)
}

// Lineup builds the lineup for the current channel list.
func (s *Server) Lineup(baseURL string) []LineupEntry {
	channels := s.store.Current().Channels()
	lineup := make([]LineupEntry, 0, len(channels))
	for _, c := range channels {
		if c.Number == dvb.Absent {
			continue
		}
		entry := LineupEntry{
			GuideNumber: strconv.Itoa(c.Number),
			GuideName:   c.Name,
			URL:         StreamURL(s.config.StreamURL, baseURL, c),
		}
		if c.Scrambled {
			entry.DRM = 1
		}
		lineup = append(lineup, entry)
	}
	return lineup
}

// StreamURL renders tmpl for c. Recognised placeholders are {base},
// {number}, {sid}, {tsid}, {onid} and {name}; the name is path-escaped.
// Absent ids render as -1.
func StreamURL(tmpl, baseURL string, c dvb.Channel) string {
	return strings.NewReplacer(
		"{base}", baseURL,
		"{number}", strconv.Itoa(c.Number),
		"{sid}", strconv.Itoa(c.ServiceID),
		"{tsid}", strconv.Itoa(c.TransportStreamID),
		"{onid}", strconv.Itoa(c.NetworkID),
		"{name}", url.PathEscape(c.Name),
	).Replace(tmpl)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
