// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-paylink/internal/store"
)

// FieldService persists component field values as JSON, keyed by usage id.
type FieldService struct {
	queries *store.Queries
}

// NewFieldService creates a new FieldService.
func NewFieldService(db *sql.DB) *FieldService {
	return &FieldService{queries: store.New(db)}
}

// Get decodes a stored field into dst. It returns false when the field has
// never been set, leaving dst untouched.
func (s *FieldService) Get(ctx context.Context, usageID, name string, dst any) (bool, error) {
	raw, err := s.queries.GetBlockField(ctx, usageID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading field %s of %s: %w", name, usageID, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding field %s of %s: %w", name, usageID, err)
	}
	return true, nil
}

// Set stores value for the field.
func (s *FieldService) Set(ctx context.Context, usageID, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding field %s: %w", name, err)
	}
	if err := s.queries.SetBlockField(ctx, usageID, name, string(data)); err != nil {
		return fmt.Errorf("writing field %s of %s: %w", name, usageID, err)
	}
	return nil
}

// Reset removes the stored value so the field reads as its default.
func (s *FieldService) Reset(ctx context.Context, usageID, name string) error {
	return s.queries.DeleteBlockField(ctx, usageID, name)
}
