// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// CourseOverview is a row of the course_overviews table.
type CourseOverview struct {
	ID          string
	DisplayName string
	StartDate   sql.NullTime
	EndDate     sql.NullTime
	UpdatedAt   time.Time
}

const upsertCourseOverview = `
INSERT INTO course_overviews (id, display_name, start_date, end_date, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    display_name = excluded.display_name,
    start_date = excluded.start_date,
    end_date = excluded.end_date,
    updated_at = excluded.updated_at
`

// UpsertCourseOverviewParams holds the columns of a course overview.
type UpsertCourseOverviewParams struct {
	ID          string
	DisplayName string
	StartDate   sql.NullTime
	EndDate     sql.NullTime
	UpdatedAt   time.Time
}

// UpsertCourseOverview creates or replaces a course overview.
func (q *Queries) UpsertCourseOverview(ctx context.Context, arg UpsertCourseOverviewParams) error {
	_, err := q.db.ExecContext(ctx, upsertCourseOverview,
		arg.ID, arg.DisplayName, arg.StartDate, arg.EndDate, arg.UpdatedAt)
	return err
}

const getCourseOverview = `
SELECT id, display_name, start_date, end_date, updated_at
FROM course_overviews WHERE id = ?
`

// GetCourseOverview returns the overview of a course.
func (q *Queries) GetCourseOverview(ctx context.Context, id string) (CourseOverview, error) {
	row := q.db.QueryRowContext(ctx, getCourseOverview, id)
	var c CourseOverview
	err := row.Scan(&c.ID, &c.DisplayName, &c.StartDate, &c.EndDate, &c.UpdatedAt)
	return c, err
}

// CourseMode is a row of the course_modes table.
type CourseMode struct {
	ID              int64
	CourseID        string
	ModeSlug        string
	ModeDisplayName string
	MinPrice        int64
	Currency        string
	Sku             string
	CreatedAt       time.Time
}

const createCourseMode = `
INSERT INTO course_modes (course_id, mode_slug, mode_display_name, min_price, currency, sku, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, course_id, mode_slug, mode_display_name, min_price, currency, sku, created_at
`

// CreateCourseModeParams holds the columns of a new course mode.
type CreateCourseModeParams struct {
	CourseID        string
	ModeSlug        string
	ModeDisplayName string
	MinPrice        int64
	Currency        string
	Sku             string
	CreatedAt       time.Time
}

// CreateCourseMode inserts a course mode.
func (q *Queries) CreateCourseMode(ctx context.Context, arg CreateCourseModeParams) (CourseMode, error) {
	row := q.db.QueryRowContext(ctx, createCourseMode,
		arg.CourseID, arg.ModeSlug, arg.ModeDisplayName, arg.MinPrice, arg.Currency, arg.Sku, arg.CreatedAt)
	var m CourseMode
	err := row.Scan(&m.ID, &m.CourseID, &m.ModeSlug, &m.ModeDisplayName, &m.MinPrice, &m.Currency, &m.Sku, &m.CreatedAt)
	return m, err
}

const listCourseModes = `
SELECT id, course_id, mode_slug, mode_display_name, min_price, currency, sku, created_at
FROM course_modes WHERE course_id = ?
ORDER BY min_price, mode_slug
`

// ListCourseModes returns all modes of a course, cheapest first.
func (q *Queries) ListCourseModes(ctx context.Context, courseID string) ([]CourseMode, error) {
	rows, err := q.db.QueryContext(ctx, listCourseModes, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []CourseMode
	for rows.Next() {
		var m CourseMode
		if err := rows.Scan(&m.ID, &m.CourseID, &m.ModeSlug, &m.ModeDisplayName, &m.MinPrice, &m.Currency, &m.Sku, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteCourseMode = `DELETE FROM course_modes WHERE course_id = ? AND mode_slug = ?`

// DeleteCourseMode removes a mode from a course.
func (q *Queries) DeleteCourseMode(ctx context.Context, courseID, modeSlug string) error {
	_, err := q.db.ExecContext(ctx, deleteCourseMode, courseID, modeSlug)
	return err
}
