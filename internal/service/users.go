// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/store"
)

// UserDirectory resolves platform users.
type UserDirectory struct {
	queries *store.Queries
}

// NewUserDirectory creates a new UserDirectory.
func NewUserDirectory(db *sql.DB) *UserDirectory {
	return &UserDirectory{queries: store.New(db)}
}

// GetUser returns the user with the given id, or ErrUserNotFound.
func (s *UserDirectory) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.queries.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return userFromRow(u), nil
}

// GetByUsername returns the user with the given username, or ErrUserNotFound.
func (s *UserDirectory) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.queries.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", username, err)
	}
	return userFromRow(u), nil
}

func userFromRow(u store.User) *model.User {
	return &model.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
