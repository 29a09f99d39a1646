// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/store"
	"github.com/olegiv/ocms-paylink/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *sql.DB) []store.Event {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*slog.Logger)
		wantCount int
		wantLevel string
	}{
		{"error", func(l *slog.Logger) { l.Error("database connection failed") }, 1, model.EventLevelError},
		{"warn", func(l *slog.Logger) { l.Warn("verified mode missing") }, 1, model.EventLevelWarning},
		{"info", func(l *slog.Logger) { l.Info("server started") }, 0, ""},
		{"debug", func(l *slog.Logger) { l.Debug("rendering") }, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			tt.log(slog.New(NewEventLogHandler(discardHandler{}, db)))

			events := listEvents(t, db)
			if len(events) != tt.wantCount {
				t.Fatalf("len(events) = %d, want %d", len(events), tt.wantCount)
			}
			if tt.wantCount > 0 && events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("cache initialized")

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Level != model.EventLevelInfo {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelInfo)
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		message string
		attrs   []slog.Attr
		want    string
	}{
		{"enrollment lookup failed", nil, model.EventCategoryEnrollment},
		{"no verified course mode", nil, model.EventCategoryCommerce},
		{"verified mode has no SKU", nil, model.EventCategoryCommerce},
		{"user not found", nil, model.EventCategoryUser},
		{"invalid config", nil, model.EventCategoryConfig},
		{"cache unavailable", nil, model.EventCategoryCache},
		{"failed to render fragment", nil, model.EventCategoryComponent},
		{"something happened", nil, model.EventCategorySystem},
		{"user not found", []slog.Attr{slog.String("category", "custom")}, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := extractCategory(tt.message, tt.attrs); got != tt.want {
				t.Errorf("extractCategory(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).
		With("course_id", "course-v1:foo+baz+bar")
	logger.Warn("enrollment not found",
		"category", model.EventCategoryEnrollment,
		"user_id", int64(42),
		"detail", "quote \" and\nnewline",
	)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	e := events[0]

	if e.Category != model.EventCategoryEnrollment {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryEnrollment)
	}
	if !e.UserID.Valid || e.UserID.Int64 != 42 {
		t.Errorf("UserID = %+v, want 42", e.UserID)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("Metadata is not valid JSON: %v (%s)", err, e.Metadata)
	}
	if meta["course_id"] != "course-v1:foo+baz+bar" {
		t.Errorf("course_id = %q", meta["course_id"])
	}
	if meta["detail"] != "quote \" and\nnewline" {
		t.Errorf("detail = %q", meta["detail"])
	}
	if _, ok := meta["category"]; ok {
		t.Error("category should not be part of metadata")
	}
}

func TestExtractMetadata_Empty(t *testing.T) {
	if got := extractMetadata(nil); got != "{}" {
		t.Errorf("extractMetadata(nil) = %q, want {}", got)
	}
}

func TestEventLogHandler_WithGroup(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).WithGroup("paylink")
	logger.Error("failed to render template")

	if events := listEvents(t, db); len(events) != 1 {
		t.Errorf("len(events) = %d, want 1", len(events))
	}
}

func TestSlogLevelToEventLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
		{slog.LevelError + 4, model.EventLevelError},
	}
	for _, tt := range tests {
		if got := slogLevelToEventLevel(tt.level); got != tt.want {
			t.Errorf("slogLevelToEventLevel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
