// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package component holds what the host hands a courseware component for one
// request: the runtime describing who is looking at which block, and the
// fragment type views return.
package component

import (
	"context"
	"net/http"

	"github.com/olegiv/ocms-paylink/internal/model"
)

// Runtime describes the viewer and block of the current request.
type Runtime struct {
	// UserID is nil for anonymous viewers.
	UserID   *int64
	Username string
	IsStaff  bool
	// InStudio is set when the block is previewed inside the authoring tool.
	InStudio bool
	Course   model.CourseKey
	Usage    model.UsageKey
	Language string
}

// Viewer returns the learner-side viewer for the runtime: staff for staff
// users, student otherwise.
func (rt *Runtime) Viewer() model.Viewer {
	role := model.RoleStudent
	if rt.IsStaff {
		role = model.RoleStaff
	}
	return model.Viewer{Role: role, UserID: rt.UserID, InStudio: rt.InStudio}
}

// AuthorViewer returns the viewer used for authoring previews.
func (rt *Runtime) AuthorViewer() model.Viewer {
	return model.Viewer{Role: model.RoleAuthor, UserID: rt.UserID, InStudio: true}
}

// WithBlock returns a copy of the runtime bound to another block.
func (rt *Runtime) WithBlock(course model.CourseKey, usage model.UsageKey) *Runtime {
	cp := *rt
	cp.Course = course
	cp.Usage = usage
	return &cp
}

type runtimeKey struct{}

// WithRuntime stores rt in ctx.
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// RuntimeFrom returns the runtime stored in ctx, if any.
func RuntimeFrom(ctx context.Context) (*Runtime, bool) {
	rt, ok := ctx.Value(runtimeKey{}).(*Runtime)
	return rt, ok && rt != nil
}

// GetRuntime returns the request's runtime, or an anonymous one.
func GetRuntime(r *http.Request) *Runtime {
	if rt, ok := RuntimeFrom(r.Context()); ok {
		return rt
	}
	return &Runtime{Language: "en"}
}
