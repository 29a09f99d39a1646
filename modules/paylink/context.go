// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package paylink

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/ocms-paylink/internal/model"
)

// RenderContext is what the payment link templates are rendered with.
// EcommercePaymentPage and VerifiedSKU are set only when IsEnabled is true.
type RenderContext struct {
	Location             string `json:"location"`
	DisplayName          string `json:"display_name"`
	IsEnabled            bool   `json:"is_enabled"`
	IsEnrolled           bool   `json:"is_enrolled"`
	IsStaff              bool   `json:"is_staff"`
	IsExpired            bool   `json:"is_expired"`
	IsPassed             bool   `json:"is_passed"`
	EcommercePaymentPage string `json:"ecommerce_payment_page,omitempty"`
	VerifiedSKU          string `json:"verified_sku,omitempty"`
}

// UserDirectory resolves users by id.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// EnrollmentLookup finds a user's active enrollment in a course.
type EnrollmentLookup interface {
	GetEnrollment(ctx context.Context, userID int64, courseID string) (*model.Enrollment, error)
}

// CourseModeLookup returns a course's modes keyed by slug.
type CourseModeLookup interface {
	ModesForCourse(ctx context.Context, courseID string) (map[string]model.CourseMode, error)
}

// PaymentPageProvider returns the ecommerce basket URL.
type PaymentPageProvider interface {
	PaymentPageURL() string
}

// GradeLookup reports whether a user passed a course.
type GradeLookup interface {
	HasPassed(ctx context.Context, userID int64, courseID string) (bool, error)
}

// OverviewLookup returns the cached course summary.
type OverviewLookup interface {
	GetOverview(ctx context.Context, courseID string) (*model.CourseOverview, error)
}

// ContextBuilder decides what a viewer sees. It never returns errors: every
// failed lookup degrades to the conservative value and logs a warning.
type ContextBuilder struct {
	Users       UserDirectory
	Enrollments EnrollmentLookup
	Modes       CourseModeLookup
	Ecommerce   PaymentPageProvider
	Grades      GradeLookup
	Overviews   OverviewLookup
	Logger      *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (b *ContextBuilder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *ContextBuilder) logger() *slog.Logger {
	l := b.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", BlockType)
}

func baseContext(usage model.UsageKey) RenderContext {
	return RenderContext{
		Location:   usage.Location(),
		IsEnrolled: true,
	}
}

// BuildContext dispatches on the viewer's role.
func (b *ContextBuilder) BuildContext(ctx context.Context, viewer model.Viewer, usage model.UsageKey) RenderContext {
	if viewer.Role == model.RoleAuthor {
		return b.AuthorContext(ctx, usage)
	}
	return b.StudentContext(ctx, viewer, usage)
}

// AuthorContext builds the authoring preview context. Enrollment is not
// consulted and the staff flag stays unset.
func (b *ContextBuilder) AuthorContext(ctx context.Context, usage model.UsageKey) RenderContext {
	rc := baseContext(usage)
	courseID := usage.Course.String()

	b.applyModes(ctx, &rc, courseID, nil)
	rc.IsExpired = b.IsCourseExpired(ctx, courseID)
	return rc
}

// StudentContext builds the learner context. Staff outside studio skip the
// enrollment lookup.
func (b *ContextBuilder) StudentContext(ctx context.Context, viewer model.Viewer, usage model.UsageKey) RenderContext {
	rc := baseContext(usage)
	courseID := usage.Course.String()

	if viewer.Role == model.RoleStaff && !viewer.InStudio {
		rc.IsStaff = true
	} else {
		rc.IsEnrolled = b.isEnrolled(ctx, viewer.UserID, courseID)
	}

	b.applyModes(ctx, &rc, courseID, viewer.UserID)
	rc.IsExpired = b.IsCourseExpired(ctx, courseID)

	if rc.IsEnrolled && !rc.IsStaff {
		rc.IsPassed = b.UserCoursePassed(ctx, viewer.UserID, courseID)
	}
	return rc
}

func (b *ContextBuilder) isEnrolled(ctx context.Context, userID *int64, courseID string) bool {
	log := b.logger().With("course", courseID)

	if userID == nil {
		log.Warn("anonymous viewer has no enrollment")
		return false
	}
	log = log.With("user_id", *userID)

	user, err := b.Users.GetUser(ctx, *userID)
	if err != nil {
		log.Warn("user lookup failed", "error", err)
		return false
	}

	if _, err := b.Enrollments.GetEnrollment(ctx, user.ID, courseID); err != nil {
		log.Warn("enrollment lookup failed", "error", err)
		return false
	}
	return true
}

// applyModes enables the link when the course sells a verified mode.
func (b *ContextBuilder) applyModes(ctx context.Context, rc *RenderContext, courseID string, userID *int64) {
	log := b.logger().With("course", courseID)
	if userID != nil {
		log = log.With("user_id", *userID)
	}

	modes, err := b.Modes.ModesForCourse(ctx, courseID)
	if err != nil {
		log.Warn("course mode lookup failed", "error", err)
		return
	}

	verified, ok := modes[model.ModeVerified]
	switch {
	case !ok:
		log.Warn("course has no verified course mode")
	case !verified.HasSKU():
		log.Warn("verified course mode has no sku")
	default:
		rc.IsEnabled = true
		rc.EcommercePaymentPage = b.Ecommerce.PaymentPageURL()
		rc.VerifiedSKU = verified.SKU
	}
}

// UserCoursePassed reports whether the user passed the course. Unknown users,
// anonymous viewers and failed lookups count as not passed.
func (b *ContextBuilder) UserCoursePassed(ctx context.Context, userID *int64, courseID string) bool {
	if userID == nil || b.Grades == nil {
		return false
	}

	user, err := b.Users.GetUser(ctx, *userID)
	if err != nil {
		return false
	}

	passed, err := b.Grades.HasPassed(ctx, user.ID, courseID)
	if err != nil {
		b.logger().Warn("grade lookup failed",
			"course", courseID, "user_id", user.ID, "error", err)
		return false
	}
	return passed
}
