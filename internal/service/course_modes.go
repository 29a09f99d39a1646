// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/ocms-paylink/internal/cache"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/store"
)

// CourseModeService resolves the enrollment modes offered by a course.
type CourseModeService struct {
	queries *store.Queries
	cache   *cache.TypedCache[map[string]model.CourseMode]
}

// NewCourseModeService creates a new CourseModeService. If c is nil every
// call goes to the database.
func NewCourseModeService(db *sql.DB, c cache.Cacher, ttl time.Duration) *CourseModeService {
	s := &CourseModeService{queries: store.New(db)}
	if c != nil {
		s.cache = cache.NewTypedCache[map[string]model.CourseMode](c, "course_modes:", ttl)
	}
	return s
}

// ModesForCourse returns the course's modes keyed by slug. A course without
// modes yields an empty map.
func (s *CourseModeService) ModesForCourse(ctx context.Context, courseID string) (map[string]model.CourseMode, error) {
	if s.cache == nil {
		return s.load(ctx, courseID)
	}
	return s.cache.GetOrSet(ctx, courseID, func() (map[string]model.CourseMode, error) {
		return s.load(ctx, courseID)
	})
}

// Invalidate drops cached modes for a course.
func (s *CourseModeService) Invalidate(ctx context.Context, courseID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, courseID)
}

func (s *CourseModeService) load(ctx context.Context, courseID string) (map[string]model.CourseMode, error) {
	rows, err := s.queries.ListCourseModes(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("listing course modes for %s: %w", courseID, err)
	}

	modes := make(map[string]model.CourseMode, len(rows))
	for _, r := range rows {
		modes[r.ModeSlug] = model.CourseMode{
			ID:          r.ID,
			CourseID:    r.CourseID,
			Slug:        r.ModeSlug,
			DisplayName: r.ModeDisplayName,
			MinPrice:    int(r.MinPrice),
			Currency:    r.Currency,
			SKU:         r.Sku,
			CreatedAt:   r.CreatedAt,
		}
	}
	return modes, nil
}
