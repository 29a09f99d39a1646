// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/ocms-paylink/internal/cache"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/store"
)

// CourseOverviewService returns course metadata such as the end date.
type CourseOverviewService struct {
	queries *store.Queries
	cache   *cache.TypedCache[model.CourseOverview]
}

// NewCourseOverviewService creates a new CourseOverviewService. If c is nil
// every call goes to the database.
func NewCourseOverviewService(db *sql.DB, c cache.Cacher, ttl time.Duration) *CourseOverviewService {
	s := &CourseOverviewService{queries: store.New(db)}
	if c != nil {
		s.cache = cache.NewTypedCache[model.CourseOverview](c, "course_overview:", ttl)
	}
	return s
}

// GetOverview returns the overview of a course, or ErrCourseNotFound.
func (s *CourseOverviewService) GetOverview(ctx context.Context, courseID string) (*model.CourseOverview, error) {
	var (
		o   model.CourseOverview
		err error
	)
	if s.cache == nil {
		o, err = s.load(ctx, courseID)
	} else {
		o, err = s.cache.GetOrSet(ctx, courseID, func() (model.CourseOverview, error) {
			return s.load(ctx, courseID)
		})
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *CourseOverviewService) load(ctx context.Context, courseID string) (model.CourseOverview, error) {
	row, err := s.queries.GetCourseOverview(ctx, courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CourseOverview{}, ErrCourseNotFound
	}
	if err != nil {
		return model.CourseOverview{}, fmt.Errorf("getting course overview %s: %w", courseID, err)
	}
	return model.CourseOverview{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Start:       row.StartDate,
		End:         row.EndDate,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
