// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/store"
)

// EnrollmentService looks up course enrollments.
type EnrollmentService struct {
	queries *store.Queries
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(db *sql.DB) *EnrollmentService {
	return &EnrollmentService{queries: store.New(db)}
}

// GetEnrollment returns the user's enrollment in the course. A missing or
// inactive enrollment is reported as ErrEnrollmentNotFound.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, userID int64, courseID string) (*model.Enrollment, error) {
	e, err := s.queries.GetEnrollment(ctx, userID, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting enrollment of user %d in %s: %w", userID, courseID, err)
	}
	if !e.IsActive {
		return nil, ErrEnrollmentNotFound
	}

	return &model.Enrollment{
		ID:        e.ID,
		UserID:    e.UserID,
		CourseID:  e.CourseID,
		Mode:      e.Mode,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}, nil
}
