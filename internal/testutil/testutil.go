// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the paylink host.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/ocms-paylink/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a test logger that only outputs errors.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with core migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "paylink-test.db")

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// CreateUser inserts an active user.
func CreateUser(t *testing.T, db *sql.DB, username string, isStaff bool) store.User {
	t.Helper()
	u, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:  username,
		Email:     username + "@example.com",
		IsStaff:   isStaff,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

// CreateCourse inserts a course overview. A nil end leaves the course open.
func CreateCourse(t *testing.T, db *sql.DB, courseID string, end *time.Time) {
	t.Helper()
	params := store.UpsertCourseOverviewParams{
		ID:          courseID,
		DisplayName: courseID,
		UpdatedAt:   time.Now(),
	}
	if end != nil {
		params.EndDate = sql.NullTime{Time: *end, Valid: true}
	}
	if err := store.New(db).UpsertCourseOverview(context.Background(), params); err != nil {
		t.Fatalf("UpsertCourseOverview(%s): %v", courseID, err)
	}
}

// CreateMode inserts a course mode.
func CreateMode(t *testing.T, db *sql.DB, courseID, slug, sku string, minPrice int64) {
	t.Helper()
	_, err := store.New(db).CreateCourseMode(context.Background(), store.CreateCourseModeParams{
		CourseID:        courseID,
		ModeSlug:        slug,
		ModeDisplayName: slug,
		MinPrice:        minPrice,
		Currency:        "usd",
		Sku:             sku,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateCourseMode(%s, %s): %v", courseID, slug, err)
	}
}

// Enroll creates an active enrollment.
func Enroll(t *testing.T, db *sql.DB, userID int64, courseID, mode string) {
	t.Helper()
	_, err := store.New(db).CreateEnrollment(context.Background(), store.CreateEnrollmentParams{
		UserID:    userID,
		CourseID:  courseID,
		Mode:      mode,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment(%d, %s): %v", userID, courseID, err)
	}
}
