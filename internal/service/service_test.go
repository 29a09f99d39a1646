// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-paylink/internal/cache"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/store"
	"github.com/olegiv/ocms-paylink/internal/testutil"
)

const testCourse = "course-v1:foo+baz+bar"

func TestUserDirectory(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	staff := testutil.CreateUser(t, db, "testuser101", true)
	users := NewUserDirectory(db)

	u, err := users.GetUser(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser101", u.Username)
	assert.True(t, u.IsStaff)

	u, err = users.GetByUsername(ctx, "testuser101")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, u.ID)

	_, err = users.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnrollmentService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	student := testutil.CreateUser(t, db, "student", false)
	other := testutil.CreateUser(t, db, "other", false)
	testutil.Enroll(t, db, student.ID, testCourse, model.ModeAudit)

	_, err := store.New(db).CreateEnrollment(ctx, store.CreateEnrollmentParams{
		UserID: other.ID, CourseID: testCourse, Mode: model.ModeAudit, IsActive: false, CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	svc := NewEnrollmentService(db)

	e, err := svc.GetEnrollment(ctx, student.ID, testCourse)
	require.NoError(t, err)
	assert.Equal(t, model.ModeAudit, e.Mode)

	_, err = svc.GetEnrollment(ctx, student.ID, "course-v1:other+course+run")
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)

	_, err = svc.GetEnrollment(ctx, other.ID, testCourse)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound, "inactive enrollment")
}

func TestCourseModeService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	testutil.CreateMode(t, db, testCourse, model.ModeAudit, "", 0)
	testutil.CreateMode(t, db, testCourse, model.ModeVerified, "ASD", 1)

	svc := NewCourseModeService(db, nil, 0)
	modes, err := svc.ModesForCourse(ctx, testCourse)
	require.NoError(t, err)
	require.Len(t, modes, 2)
	assert.Equal(t, "ASD", modes[model.ModeVerified].SKU)
	assert.True(t, modes[model.ModeVerified].HasSKU())
	assert.False(t, modes[model.ModeAudit].HasSKU())

	modes, err = svc.ModesForCourse(ctx, "course-v1:no+modes+here")
	require.NoError(t, err)
	assert.Empty(t, modes)
}

func TestCourseModeService_Cached(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()

	testutil.CreateMode(t, db, testCourse, model.ModeVerified, "ASD", 1)
	svc := NewCourseModeService(db, mc, time.Minute)

	modes, err := svc.ModesForCourse(ctx, testCourse)
	require.NoError(t, err)
	require.Contains(t, modes, model.ModeVerified)

	// Deleted rows stay visible until the entry is invalidated.
	require.NoError(t, store.New(db).DeleteCourseMode(ctx, testCourse, model.ModeVerified))
	modes, err = svc.ModesForCourse(ctx, testCourse)
	require.NoError(t, err)
	assert.Contains(t, modes, model.ModeVerified)

	require.NoError(t, svc.Invalidate(ctx, testCourse))
	modes, err = svc.ModesForCourse(ctx, testCourse)
	require.NoError(t, err)
	assert.NotContains(t, modes, model.ModeVerified)

	assert.Equal(t, int64(1), mc.Stats().Hits)
}

func TestCourseOverviewService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	end := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	testutil.CreateCourse(t, db, testCourse, &end)
	testutil.CreateCourse(t, db, "course-v1:open+ended+run", nil)

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	defer func() { _ = mc.Close() }()

	for name, svc := range map[string]*CourseOverviewService{
		"uncached": NewCourseOverviewService(db, nil, 0),
		"cached":   NewCourseOverviewService(db, mc, time.Minute),
	} {
		t.Run(name, func(t *testing.T) {
			// Twice so the cached variant also reads from cache.
			for range 2 {
				o, err := svc.GetOverview(ctx, testCourse)
				require.NoError(t, err)
				require.NotNil(t, o.EndDate())
				assert.True(t, o.EndDate().Equal(end), "EndDate() = %v, want %v", o.EndDate(), end)
			}

			o, err := svc.GetOverview(ctx, "course-v1:open+ended+run")
			require.NoError(t, err)
			assert.Nil(t, o.EndDate())

			_, err = svc.GetOverview(ctx, "course-v1:missing+course+run")
			assert.True(t, errors.Is(err, ErrCourseNotFound), "err = %v", err)
		})
	}
}

func TestGradeService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	student := testutil.CreateUser(t, db, "student", false)
	svc := NewGradeService(db)

	passed, err := svc.HasPassed(ctx, student.ID, testCourse)
	require.NoError(t, err)
	assert.False(t, passed)

	require.NoError(t, store.New(db).UpsertCourseGrade(ctx, store.UpsertCourseGradeParams{
		UserID: student.ID, CourseID: testCourse, Percent: 0.9, LetterGrade: "A", Passed: true, UpdatedAt: time.Now(),
	}))
	passed, err = svc.HasPassed(ctx, student.ID, testCourse)
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestEcommerceService_PaymentPageURL(t *testing.T) {
	tests := []struct {
		baseURL    string
		basketPath string
		want       string
	}{
		{"", "", "/basket/add/"},
		{"", "/basket/add/", "/basket/add/"},
		{"https://ecommerce.example.com", "", "https://ecommerce.example.com/basket/add/"},
		{"https://ecommerce.example.com/", "checkout/", "https://ecommerce.example.com/checkout/"},
	}

	for _, tt := range tests {
		got := NewEcommerceService(tt.baseURL, tt.basketPath).PaymentPageURL()
		if got != tt.want {
			t.Errorf("PaymentPageURL(%q, %q) = %q, want %q", tt.baseURL, tt.basketPath, got, tt.want)
		}
	}
}

func TestFieldService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	svc := NewFieldService(db)
	usageID := "block-v1:foo+baz+bar+type@payment_link+block@abc"

	name := "default"
	found, err := svc.Get(ctx, usageID, "display_name", &name)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "default", name)

	require.NoError(t, svc.Set(ctx, usageID, "display_name", "Pago verificado"))
	found, err = svc.Get(ctx, usageID, "display_name", &name)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Pago verificado", name)

	require.NoError(t, svc.Reset(ctx, usageID, "display_name"))
	found, err = svc.Get(ctx, usageID, "display_name", &name)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEventService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	svc := NewEventService(db)
	userID := int64(7)
	require.NoError(t, svc.LogComponentEvent(ctx, "display name updated", &userID, map[string]any{"block": "abc"}))
	require.NoError(t, svc.LogEvent(ctx, model.EventLevelWarning, model.EventCategoryCommerce, "no sku", nil, nil))

	events, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "no sku", events[0].Message)
	assert.False(t, events[0].UserID.Valid)
	assert.Equal(t, "{}", events[0].Metadata)

	assert.Equal(t, model.EventCategoryComponent, events[1].Category)
	assert.Equal(t, int64(7), events[1].UserID.Int64)
	assert.JSONEq(t, `{"block":"abc"}`, events[1].Metadata)
}

func TestNew(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, nil, Options{EcommerceURL: "https://shop.example.com"})
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Enrollments)
	assert.NotNil(t, s.CourseModes)
	assert.NotNil(t, s.Overviews)
	assert.NotNil(t, s.Grades)
	assert.NotNil(t, s.Fields)
	assert.NotNil(t, s.Events)
	assert.Equal(t, "https://shop.example.com/basket/add/", s.Ecommerce.PaymentPageURL())
}
