// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the component host.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/i18n"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/service"
)

// UserHeader carries the workbench viewer, as a numeric id or a username.
const UserHeader = "X-User-ID"

// UserLookup resolves workbench viewers.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Runtime creates middleware that stores a component.Runtime in the request
// context. The viewer comes from the X-User-ID header or the "user" query
// parameter; studio marks every request as an authoring preview.
//
// A numeric id that matches no user is kept on the runtime so components see
// an unknown user; an unknown username yields an anonymous runtime.
func Runtime(users UserLookup, studio bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rt := &component.Runtime{
				InStudio: studio,
				Language: requestLanguage(r),
			}

			if who := viewerParam(r); who != "" {
				resolveViewer(r.Context(), users, who, rt)
			}

			next.ServeHTTP(w, r.WithContext(component.WithRuntime(r.Context(), rt)))
		})
	}
}

func viewerParam(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(UserHeader)); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get("user"))
}

func resolveViewer(ctx context.Context, users UserLookup, who string, rt *component.Runtime) {
	var (
		u   *model.User
		err error
	)
	id, parseErr := strconv.ParseInt(who, 10, 64)
	if parseErr == nil {
		rt.UserID = &id
		u, err = users.GetUser(ctx, id)
	} else {
		u, err = users.GetByUsername(ctx, who)
	}

	if err != nil {
		level := slog.LevelDebug
		if !errors.Is(err, service.ErrUserNotFound) {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "workbench user lookup failed", "user", who, "error", err)
		return
	}
	if !u.IsActive {
		rt.UserID = nil
		slog.Debug("inactive workbench user treated as anonymous", "user", who)
		return
	}

	rt.UserID = &u.ID
	rt.Username = u.Username
	rt.IsStaff = u.IsStaff
}

// requestLanguage picks the language from ?lang=, then Accept-Language.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return i18n.MatchLanguage(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}
	return i18n.DefaultLanguage
}
