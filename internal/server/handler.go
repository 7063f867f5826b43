package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
)

const maxBodyBytes = 1 << 20

// OverrideSaver persists manual overrides.
type OverrideSaver interface {
	Save(trackID string, shouldBlock bool, reason string, s filter.Settings) (*models.Override, error)
}

// settingsRequest carries the settings fields a client chose to send.
type settingsRequest struct {
	Level         lexicon.Level `json:"level"`
	StrictMode    *bool         `json:"strict_mode"`
	BlockUnknown  *bool         `json:"block_unknown"`
	MinConfidence *float64      `json:"min_confidence"`
}

type checkRequest struct {
	Track    models.Track     `json:"track"`
	Settings *settingsRequest `json:"settings,omitempty"`
}

type batchRequest struct {
	Tracks   []models.Track   `json:"tracks"`
	Settings *settingsRequest `json:"settings,omitempty"`
}

type testRequest struct {
	Lyrics   string           `json:"lyrics"`
	Settings *settingsRequest `json:"settings,omitempty"`
}

type overrideRequest struct {
	TrackID  string           `json:"track_id"`
	Block    bool             `json:"block"`
	Reason   string           `json:"reason"`
	Settings *settingsRequest `json:"settings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	CacheSize int    `json:"cache_size"`
	Level     string `json:"level"`
}

// FilterHandler serves the JSON filter API backed by a [filter.Engine].
type FilterHandler struct {
	engine    *filter.Engine
	level     lexicon.Level
	overrides OverrideSaver
	logger    *log.Logger
	mux       *http.ServeMux
}

// HandlerOption configures a [FilterHandler].
type HandlerOption func(*FilterHandler)

// WithOverrideStore persists overrides posted to the API.
func WithOverrideStore(s OverrideSaver) HandlerOption {
	return func(h *FilterHandler) { h.overrides = s }
}

// WithHandlerLogger sets the handler's logger.
func WithHandlerLogger(l *log.Logger) HandlerOption {
	return func(h *FilterHandler) { h.logger = l }
}

// NewFilterHandler creates a handler whose requests without settings use the defaults of level.
func NewFilterHandler(engine *filter.Engine, level lexicon.Level, opts ...HandlerOption) *FilterHandler {
	h := &FilterHandler{engine: engine, level: level, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = shared.WithLogger(h.logger, "component", "api")

	h.mux.HandleFunc("POST /api/check", h.check)
	h.mux.HandleFunc("POST /api/batch", h.batch)
	h.mux.HandleFunc("POST /api/stats", h.stats)
	h.mux.HandleFunc("POST /api/test", h.test)
	h.mux.HandleFunc("POST /api/override", h.override)
	h.mux.HandleFunc("GET /api/cache", h.cacheStats)
	h.mux.HandleFunc("DELETE /api/cache", h.clearCache)
	h.mux.HandleFunc("GET /api/settings/{level}", h.settings)
	h.mux.HandleFunc("GET /health", h.health)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *FilterHandler) Routes() []string {
	return []string{"/api/", "/health"}
}

func (h *FilterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// resolve starts from the defaults of the requested level (the handler's level when
// none is given) and overlays the fields present in s.
func (h *FilterHandler) resolve(s *settingsRequest) (filter.Settings, error) {
	if s == nil {
		return filter.DefaultSettings(h.level), nil
	}

	level := s.Level
	if level == "" {
		level = h.level
	}
	if !level.Valid() {
		return filter.Settings{}, fmt.Errorf("%w: %q", shared.ErrUnknownLevel, level)
	}

	resolved := filter.DefaultSettings(level)
	if s.StrictMode != nil {
		resolved.StrictMode = *s.StrictMode
	}
	if s.BlockUnknown != nil {
		resolved.BlockUnknown = *s.BlockUnknown
	}
	if s.MinConfidence != nil {
		resolved.MinConfidence = *s.MinConfidence
	}
	if resolved.MinConfidence < 0 || resolved.MinConfidence > 1 {
		return resolved, fmt.Errorf("%w: min_confidence must be between 0 and 1", shared.ErrInvalidInput)
	}
	return resolved, nil
}

func (h *FilterHandler) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Track.ID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: track.id is required", shared.ErrInvalidInput))
		return
	}

	s, err := h.resolve(req.Settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.ShouldBlockTrack(r.Context(), req.Track.ID, req.Track.Name, req.Track.Artist, s))
}

func (h *FilterHandler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}

	s, err := h.resolve(req.Settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.FilterTracks(r.Context(), req.Tracks, s))
}

func (h *FilterHandler) stats(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}

	s, err := h.resolve(req.Settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.GetFilterStats(r.Context(), req.Tracks, s))
}

func (h *FilterHandler) test(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if !decode(w, r, &req) {
		return
	}

	s, err := h.resolve(req.Settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.engine.TestFilter(req.Lyrics, s)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *FilterHandler) override(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TrackID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: track_id is required", shared.ErrInvalidInput))
		return
	}

	s, err := h.resolve(req.Settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if h.overrides != nil {
		if _, err := h.overrides.Save(req.TrackID, req.Block, req.Reason, s); err != nil {
			h.logger.Error("failed to persist override", "id", req.TrackID, "error", err)
			writeError(w, http.StatusInternalServerError, errors.New("failed to persist override"))
			return
		}
	}

	h.engine.AddManualOverride(req.TrackID, req.Block, req.Reason, s)
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilterHandler) cacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.CacheStats())
}

func (h *FilterHandler) clearCache(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCache()
	h.logger.Info("cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *FilterHandler) settings(w http.ResponseWriter, r *http.Request) {
	level, err := lexicon.ParseLevel(r.PathValue("level"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, filter.DefaultSettings(level))
}

func (h *FilterHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", CacheSize: h.engine.CacheStats().Size, Level: h.level.String()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
