package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"footscout/internal/cache"
	"footscout/internal/chartpng"
	"footscout/internal/derive"
	"footscout/internal/metrics"
	"footscout/internal/model"
	"footscout/internal/radar"
	"footscout/internal/rank"
)

// Handler contains dependencies for HTTP handlers. The table is read-only;
// handlers share it without locking.
type Handler struct {
	table *derive.Table
	cache *cache.ResultCache // nil disables caching
}

// NewHandler creates a new handler over the loaded dataset.
func NewHandler(table *derive.Table, c *cache.ResultCache) *Handler {
	return &Handler{table: table, cache: c}
}

// RankingsRequest mirrors the ranking criteria of the scouting UI.
type RankingsRequest struct {
	N                int                `json:"n,omitempty"`
	Features         []string           `json:"features,omitempty"`
	Weights          map[string]float64 `json:"weights,omitempty"`
	NormalizeWeights bool               `json:"normalize_weights,omitempty"`
	Positions        []string           `json:"positions,omitempty"`
	Leagues          []string           `json:"leagues,omitempty"`
	MinAge           *int               `json:"min_age,omitempty"`
	MaxAge           *int               `json:"max_age,omitempty"`
	MinMinutes       *int               `json:"min_minutes,omitempty"`
	MaxMinutes       *int               `json:"max_minutes,omitempty"`
	MinMarketValue   *float64           `json:"min_market_value,omitempty"`
	MaxMarketValue   *float64           `json:"max_market_value,omitempty"`
}

// RankingsResponse is the ranked result. Count of zero with an empty list
// is a legal answer for an over-constrained filter.
type RankingsResponse struct {
	Count   int          `json:"count"`
	Players []rank.Entry `json:"players"`
}

// CompareRequest selects players and features for a radar comparison.
type CompareRequest struct {
	Players  []string `json:"players"`
	Features []string `json:"features,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "scout-server",
		"players": len(h.table.Players),
	})
}

// ListFeatures returns the composite features and their metric columns.
func (h *Handler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"features":   model.FeatureNames,
		"metric_map": model.FeatureMap,
	})
}

// ListLeagues returns the distinct leagues in the dataset.
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"leagues": h.table.Leagues()})
}

// SearchPlayers finds players by name substring (?q=, ?limit=).
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	limit := 25
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	type hit struct {
		Name             string `json:"name"`
		League           string `json:"league"`
		Squad            string `json:"squad"`
		Position         string `json:"position"`
		Age              int    `json:"age"`
		MarketValueLabel string `json:"market_value_label"`
	}
	hits := make([]hit, 0, limit)
	for i := range h.table.Players {
		p := &h.table.Players[i]
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		hits = append(hits, hit{
			Name:             p.Name,
			League:           p.League,
			Squad:            p.Squad,
			Position:         p.Position,
			Age:              p.Age,
			MarketValueLabel: p.MarketValueLabel(),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Name < hits[j].Name })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	respondJSON(w, http.StatusOK, map[string]any{"count": len(hits), "players": hits})
}

// Rankings ranks players by weighted score over the selected features.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RankingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveRequest("rankings", "bad_request", time.Since(start).Seconds())
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	key := cache.Key("rankings", req)
	if payload, ok := h.cache.Get(r.Context(), key); ok {
		metrics.ObserveCache("rankings", true)
		metrics.ObserveRequest("rankings", "ok", time.Since(start).Seconds())
		respondRawJSON(w, http.StatusOK, payload)
		return
	}
	metrics.ObserveCache("rankings", false)

	entries, err := rank.TopPlayers(h.table, rank.Params{
		N:                req.N,
		Features:         req.Features,
		Weights:          req.Weights,
		NormalizeWeights: req.NormalizeWeights,
		Positions:        req.Positions,
		Leagues:          req.Leagues,
		MinAge:           req.MinAge,
		MaxAge:           req.MaxAge,
		MinMinutes:       req.MinMinutes,
		MaxMinutes:       req.MaxMinutes,
		MinMV:            req.MinMarketValue,
		MaxMV:            req.MaxMarketValue,
	})
	if err != nil {
		metrics.ObserveRequest("rankings", "bad_request", time.Since(start).Seconds())
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := RankingsResponse{Count: len(entries), Players: entries}
	payload, _ := json.Marshal(resp)
	h.cache.Set(r.Context(), key, payload)
	metrics.ObserveRequest("rankings", "ok", time.Since(start).Seconds())
	respondRawJSON(w, http.StatusOK, payload)
}

// Compare returns the radar comparison data for the selected players.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveRequest("compare", "bad_request", time.Since(start).Seconds())
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	key := cache.Key("compare", req)
	if payload, ok := h.cache.Get(r.Context(), key); ok {
		metrics.ObserveCache("compare", true)
		metrics.ObserveRequest("compare", "ok", time.Since(start).Seconds())
		respondRawJSON(w, http.StatusOK, payload)
		return
	}
	metrics.ObserveCache("compare", false)

	c, err := radar.Build(h.table, req.Players, req.Features)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, radar.ErrNoPlayers) {
			status = http.StatusNotFound
		}
		metrics.ObserveRequest("compare", "bad_request", time.Since(start).Seconds())
		respondError(w, status, err.Error())
		return
	}

	payload, _ := json.Marshal(c)
	h.cache.Set(r.Context(), key, payload)
	metrics.ObserveRequest("compare", "ok", time.Since(start).Seconds())
	respondRawJSON(w, http.StatusOK, payload)
}

// CompareChartPNG renders the radar comparison as a PNG image.
func (h *Handler) CompareChartPNG(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveRequest("compare_chart", "bad_request", time.Since(start).Seconds())
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	c, err := radar.Build(h.table, req.Players, req.Features)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, radar.ErrNoPlayers) {
			status = http.StatusNotFound
		}
		metrics.ObserveRequest("compare_chart", "bad_request", time.Since(start).Seconds())
		respondError(w, status, err.Error())
		return
	}

	png, err := chartpng.Render(c, req.Width, req.Height)
	if err != nil {
		metrics.ObserveRequest("compare_chart", "error", time.Since(start).Seconds())
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.ObserveRequest("compare_chart", "ok", time.Since(start).Seconds())
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
