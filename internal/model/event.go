// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryComponent  = "component"
	EventCategoryEnrollment = "enrollment"
	EventCategoryCommerce   = "commerce"
	EventCategoryUser       = "user"
	EventCategoryConfig     = "config"
	EventCategorySystem     = "system"
	EventCategoryCache      = "cache"
)

// Event represents a host event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string // JSON string
	CreatedAt time.Time
}
