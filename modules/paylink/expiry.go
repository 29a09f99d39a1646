// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package paylink

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// IsCourseExpired reads the course end date. A missing overview counts as
// not expired.
func (b *ContextBuilder) IsCourseExpired(ctx context.Context, courseID string) bool {
	overview, err := b.Overviews.GetOverview(ctx, courseID)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		b.logger().Log(ctx, level, "course overview lookup failed",
			"course", courseID, "error", err)
		return false
	}
	return IsExpired(overview.EndDate(), b.now())
}

// IsExpired reports whether end is set and strictly before now.
func IsExpired(end *time.Time, now time.Time) bool {
	return end != nil && end.Before(now)
}
