// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const getBlockField = `SELECT value FROM xblock_fields WHERE usage_id = ? AND field_name = ?`

// GetBlockField returns the raw JSON value of a block field.
func (q *Queries) GetBlockField(ctx context.Context, usageID, fieldName string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, getBlockField, usageID, fieldName).Scan(&value)
	return value, err
}

const setBlockField = `
INSERT INTO xblock_fields (usage_id, field_name, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (usage_id, field_name) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at
`

// SetBlockField stores the raw JSON value of a block field.
func (q *Queries) SetBlockField(ctx context.Context, usageID, fieldName, value string) error {
	_, err := q.db.ExecContext(ctx, setBlockField, usageID, fieldName, value, time.Now())
	return err
}

const deleteBlockField = `DELETE FROM xblock_fields WHERE usage_id = ? AND field_name = ?`

// DeleteBlockField resets a block field to its default.
func (q *Queries) DeleteBlockField(ctx context.Context, usageID, fieldName string) error {
	_, err := q.db.ExecContext(ctx, deleteBlockField, usageID, fieldName)
	return err
}
