// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Course mode slugs.
const (
	ModeAudit        = "audit"
	ModeHonor        = "honor"
	ModeVerified     = "verified"
	ModeProfessional = "professional"
)

// DefaultCurrency is used when a course mode does not specify one.
const DefaultCurrency = "usd"

// CourseMode is an enrollment track offered by a course.
type CourseMode struct {
	ID          int64     `json:"id"`
	CourseID    string    `json:"course_id"`
	Slug        string    `json:"mode_slug"`
	DisplayName string    `json:"mode_display_name"`
	MinPrice    int       `json:"min_price"`
	Currency    string    `json:"currency"`
	SKU         string    `json:"sku"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasSKU reports whether the mode can be purchased through the commerce service.
func (m CourseMode) HasSKU() bool {
	return m.SKU != ""
}

// CourseOverview is the cached summary record of a course.
type CourseOverview struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"display_name"`
	Start       sql.NullTime `json:"start"`
	End         sql.NullTime `json:"end"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// EndDate returns the course end date, or nil when the course has none.
func (c *CourseOverview) EndDate() *time.Time {
	if c == nil || !c.End.Valid {
		return nil
	}
	end := c.End.Time
	return &end
}

// Enrollment links a user to a course in a given mode.
type Enrollment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Mode      string    `json:"mode"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CourseGrade is a user's computed grade in a course.
type CourseGrade struct {
	UserID      int64     `json:"user_id"`
	CourseID    string    `json:"course_id"`
	Percent     float64   `json:"percent"`
	LetterGrade string    `json:"letter_grade"`
	Passed      bool      `json:"passed"`
	UpdatedAt   time.Time `json:"updated_at"`
}
