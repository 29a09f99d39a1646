// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CourseEnrollment is a row of the course_enrollments table.
type CourseEnrollment struct {
	ID        int64
	UserID    int64
	CourseID  string
	Mode      string
	IsActive  bool
	CreatedAt time.Time
}

const createEnrollment = `
INSERT INTO course_enrollments (user_id, course_id, mode, is_active, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, user_id, course_id, mode, is_active, created_at
`

// CreateEnrollmentParams holds the columns of a new enrollment.
type CreateEnrollmentParams struct {
	UserID    int64
	CourseID  string
	Mode      string
	IsActive  bool
	CreatedAt time.Time
}

// CreateEnrollment enrolls a user in a course.
func (q *Queries) CreateEnrollment(ctx context.Context, arg CreateEnrollmentParams) (CourseEnrollment, error) {
	row := q.db.QueryRowContext(ctx, createEnrollment,
		arg.UserID, arg.CourseID, arg.Mode, arg.IsActive, arg.CreatedAt)
	var e CourseEnrollment
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Mode, &e.IsActive, &e.CreatedAt)
	return e, err
}

const getEnrollment = `
SELECT id, user_id, course_id, mode, is_active, created_at
FROM course_enrollments WHERE user_id = ? AND course_id = ?
`

// GetEnrollment returns the enrollment of a user in a course.
func (q *Queries) GetEnrollment(ctx context.Context, userID int64, courseID string) (CourseEnrollment, error) {
	row := q.db.QueryRowContext(ctx, getEnrollment, userID, courseID)
	var e CourseEnrollment
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Mode, &e.IsActive, &e.CreatedAt)
	return e, err
}

// CourseGrade is a row of the course_grades table.
type CourseGrade struct {
	UserID      int64
	CourseID    string
	Percent     float64
	LetterGrade string
	Passed      bool
	UpdatedAt   time.Time
}

const upsertCourseGrade = `
INSERT INTO course_grades (user_id, course_id, percent, letter_grade, passed, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, course_id) DO UPDATE SET
    percent = excluded.percent,
    letter_grade = excluded.letter_grade,
    passed = excluded.passed,
    updated_at = excluded.updated_at
`

// UpsertCourseGradeParams holds the columns of a course grade.
type UpsertCourseGradeParams struct {
	UserID      int64
	CourseID    string
	Percent     float64
	LetterGrade string
	Passed      bool
	UpdatedAt   time.Time
}

// UpsertCourseGrade records a user's grade in a course.
func (q *Queries) UpsertCourseGrade(ctx context.Context, arg UpsertCourseGradeParams) error {
	_, err := q.db.ExecContext(ctx, upsertCourseGrade,
		arg.UserID, arg.CourseID, arg.Percent, arg.LetterGrade, arg.Passed, arg.UpdatedAt)
	return err
}

const getCourseGrade = `
SELECT user_id, course_id, percent, letter_grade, passed, updated_at
FROM course_grades WHERE user_id = ? AND course_id = ?
`

// GetCourseGrade returns a user's grade in a course.
func (q *Queries) GetCourseGrade(ctx context.Context, userID int64, courseID string) (CourseGrade, error) {
	row := q.db.QueryRowContext(ctx, getCourseGrade, userID, courseID)
	var g CourseGrade
	err := row.Scan(&g.UserID, &g.CourseID, &g.Percent, &g.LetterGrade, &g.Passed, &g.UpdatedAt)
	return g, err
}
