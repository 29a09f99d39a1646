// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-paylink/internal/store"
)

// GradeService reads persisted course grades.
type GradeService struct {
	queries *store.Queries
}

// NewGradeService creates a new GradeService.
func NewGradeService(db *sql.DB) *GradeService {
	return &GradeService{queries: store.New(db)}
}

// HasPassed reports whether the user passed the course. A user without a
// recorded grade has not passed.
func (s *GradeService) HasPassed(ctx context.Context, userID int64, courseID string) (bool, error) {
	g, err := s.queries.GetCourseGrade(ctx, userID, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting grade of user %d in %s: %w", userID, courseID, err)
	}
	return g.Passed, nil
}
