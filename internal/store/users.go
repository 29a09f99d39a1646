// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// User is a row of the users table.
type User struct {
	ID        int64
	Username  string
	Email     string
	IsStaff   bool
	IsActive  bool
	CreatedAt time.Time
}

const createUser = `
INSERT INTO users (username, email, is_staff, is_active, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, username, email, is_staff, is_active, created_at
`

// CreateUserParams holds the columns of a new user.
type CreateUserParams struct {
	Username  string
	Email     string
	IsStaff   bool
	IsActive  bool
	CreatedAt time.Time
}

// CreateUser inserts a user.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Username, arg.Email, arg.IsStaff, arg.IsActive, arg.CreatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsStaff, &u.IsActive, &u.CreatedAt)
	return u, err
}

const getUser = `
SELECT id, username, email, is_staff, is_active, created_at
FROM users WHERE id = ?
`

// GetUser returns the user with the given id.
func (q *Queries) GetUser(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsStaff, &u.IsActive, &u.CreatedAt)
	return u, err
}

const getUserByUsername = `
SELECT id, username, email, is_staff, is_active, created_at
FROM users WHERE username = ?
`

// GetUserByUsername returns the user with the given username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.IsStaff, &u.IsActive, &u.CreatedAt)
	return u, err
}
