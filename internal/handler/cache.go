// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/ocms-paylink/internal/cache"
	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/service"
)

// CacheHandler reports and clears the course data cache.
type CacheHandler struct {
	cache  cache.Cacher
	info   cache.Info
	events *service.EventService
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(c cache.Cacher, info cache.Info, events *service.EventService) *CacheHandler {
	return &CacheHandler{cache: c, info: info, events: events}
}

// CacheStatsResponse is returned by Stats.
type CacheStatsResponse struct {
	Backend    string       `json:"backend"`
	IsFallback bool         `json:"is_fallback"`
	Stats      *cache.Stats `json:"stats,omitempty"`
}

// Stats handles GET /workbench/cache.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	resp := CacheStatsResponse{Backend: h.info.Backend, IsFallback: h.info.IsFallback}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		resp.Stats = &stats
	}
	component.WriteJSON(w, http.StatusOK, resp)
}

// Clear handles POST /workbench/cache/clear.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	if err := h.cache.Clear(r.Context()); err != nil {
		slog.Error("failed to clear cache", "backend", h.info.Backend, "error", err)
		writeJSONError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		sp.ResetStats()
	}

	rt := component.GetRuntime(r)
	slog.Info("cache cleared", "backend", h.info.Backend, "user", rt.Username)
	if h.events != nil {
		_ = h.events.LogEvent(r.Context(), model.EventLevelInfo, model.EventCategoryCache, "Course data cache cleared", rt.UserID,
			map[string]any{"backend": h.info.Backend})
	}

	component.WriteJSON(w, http.StatusOK, map[string]string{"result": "success"})
}
