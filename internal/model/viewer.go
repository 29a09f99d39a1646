// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Role identifies who is looking at a component.
type Role string

// Viewer roles.
const (
	RoleAuthor  Role = "author"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAuthor, RoleStaff, RoleStudent:
		return true
	}
	return false
}

// Viewer describes the person a component is rendered for.
type Viewer struct {
	Role Role
	// UserID is nil for anonymous viewers.
	UserID *int64
	// InStudio is set when the view is a preview inside the authoring tool.
	InStudio bool
}

// HasUser reports whether the viewer carries a user identity.
func (v Viewer) HasUser() bool {
	return v.UserID != nil
}
