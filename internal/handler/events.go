// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/service"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventsHandler lists the event log, where component diagnostics end up.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// EventResponse is one event log entry.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	UserID    *int64          `json:"user_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// List handles GET /workbench/events?limit=N.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	events, err := h.events.Recent(r.Context(), int64(limit))
	if err != nil {
		slog.Error("failed to list events", "error", err)
		writeJSONError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		item := EventResponse{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		}
		if e.UserID.Valid {
			id := e.UserID.Int64
			item.UserID = &id
		}
		if e.Metadata != "" && json.Valid([]byte(e.Metadata)) {
			item.Metadata = json.RawMessage(e.Metadata)
		}
		out = append(out, item)
	}

	component.WriteJSON(w, http.StatusOK, map[string]any{"events": out})
}

// parseLimit clamps the limit query parameter to [1, maxEventLimit].
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	switch {
	case err != nil || n <= 0:
		return defaultEventLimit
	case n > maxEventLimit:
		return maxEventLimit
	default:
		return n
	}
}
