// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the host-side collaborators handed to courseware
// components: user directory, enrollments, course modes and overviews,
// grades, ecommerce URLs, block field storage and the event log.
package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/olegiv/ocms-paylink/internal/cache"
)

// Lookup errors returned by the services.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrCourseNotFound     = errors.New("course not found")
)

// Options configures the service bundle.
type Options struct {
	EcommerceURL string
	BasketPath   string
	CacheTTL     time.Duration
}

// Services bundles every host service.
type Services struct {
	Users       *UserDirectory
	Enrollments *EnrollmentService
	CourseModes *CourseModeService
	Overviews   *CourseOverviewService
	Grades      *GradeService
	Ecommerce   *EcommerceService
	Fields      *FieldService
	Events      *EventService
}

// New wires all services over db. Course modes and overviews are cached in c;
// a nil c disables caching.
func New(db *sql.DB, c cache.Cacher, opts Options) *Services {
	return &Services{
		Users:       NewUserDirectory(db),
		Enrollments: NewEnrollmentService(db),
		CourseModes: NewCourseModeService(db, c, opts.CacheTTL),
		Overviews:   NewCourseOverviewService(db, c, opts.CacheTTL),
		Grades:      NewGradeService(db),
		Ecommerce:   NewEcommerceService(opts.EcommerceURL, opts.BasketPath),
		Fields:      NewFieldService(db),
		Events:      NewEventService(db),
	}
}
