// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Workbench demo data.
const (
	DemoCourseID     = "course-v1:foo+baz+bar"
	DemoVerifiedSKU  = "ASD"
	DemoStaffUser    = "testuser101"
	DemoStudentUser  = "student"
	DemoBlockType    = "payment_link"
	demoCourseLength = 90 * 24 * time.Hour
)

// SeedResult describes the seeded workbench course.
type SeedResult struct {
	CourseID  string
	BlockID   string
	StaffID   int64
	StudentID int64
}

// Seed creates the workbench demo course: an overview ending in 90 days,
// audit and verified modes, a staff user and an enrolled student, and one
// payment link block. It is a no-op when the staff user already exists.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) (*SeedResult, error) {
	if !doSeed {
		return nil, nil
	}

	queries := New(db)

	_, err := queries.GetUserByUsername(ctx, DemoStaffUser)
	if err == nil {
		slog.Info("workbench data already exists, skipping seed")
		return nil, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking for workbench user: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now().UTC()
	if err := qtx.UpsertCourseOverview(ctx, UpsertCourseOverviewParams{
		ID:          DemoCourseID,
		DisplayName: "Workbench Demo Course",
		StartDate:   sql.NullTime{Time: now.Add(-24 * time.Hour), Valid: true},
		EndDate:     sql.NullTime{Time: now.Add(demoCourseLength), Valid: true},
		UpdatedAt:   now,
	}); err != nil {
		return nil, fmt.Errorf("creating course overview: %w", err)
	}

	modes := []CreateCourseModeParams{
		{CourseID: DemoCourseID, ModeSlug: "audit", ModeDisplayName: "Audit", Currency: "usd", CreatedAt: now},
		{CourseID: DemoCourseID, ModeSlug: "verified", ModeDisplayName: "verified", MinPrice: 1, Currency: "usd", Sku: DemoVerifiedSKU, CreatedAt: now},
	}
	for _, m := range modes {
		if _, err := qtx.CreateCourseMode(ctx, m); err != nil {
			return nil, fmt.Errorf("creating course mode %s: %w", m.ModeSlug, err)
		}
	}

	staff, err := qtx.CreateUser(ctx, CreateUserParams{
		Username: DemoStaffUser, Email: "staff@example.com", IsStaff: true, IsActive: true, CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating staff user: %w", err)
	}
	student, err := qtx.CreateUser(ctx, CreateUserParams{
		Username: DemoStudentUser, Email: "student@example.com", IsActive: true, CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating student user: %w", err)
	}

	for _, userID := range []int64{staff.ID, student.ID} {
		if _, err := qtx.CreateEnrollment(ctx, CreateEnrollmentParams{
			UserID: userID, CourseID: DemoCourseID, Mode: "audit", IsActive: true, CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("enrolling user %d: %w", userID, err)
		}
	}

	blockID := strings.ReplaceAll(uuid.NewString(), "-", "")
	usageID := fmt.Sprintf("block-v1:foo+baz+bar+type@%s+block@%s", DemoBlockType, blockID)
	displayName, _ := json.Marshal("Enlace de Pago")
	if err := qtx.SetBlockField(ctx, usageID, "display_name", string(displayName)); err != nil {
		return nil, fmt.Errorf("creating workbench block: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded workbench course",
		"course", DemoCourseID,
		"block", blockID,
		"staff_id", staff.ID,
		"student_id", student.ID,
	)

	return &SeedResult{
		CourseID:  DemoCourseID,
		BlockID:   blockID,
		StaffID:   staff.ID,
		StudentID: student.ID,
	}, nil
}
