// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/i18n"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/service"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeUsers struct {
	users map[int64]*model.User
	err   error
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, service.ErrUserNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, service.ErrUserNotFound
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*model.User{
		1: {ID: 1, Username: "staff", IsStaff: true, IsActive: true},
		2: {ID: 2, Username: "student", IsActive: true},
		3: {ID: 3, Username: "gone", IsActive: false},
	}}
}

// captureRuntime runs the middleware and returns the runtime the handler saw.
func captureRuntime(t *testing.T, users UserLookup, studio bool, req *http.Request) *component.Runtime {
	t.Helper()
	var got *component.Runtime
	h := Runtime(users, studio)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt, ok := component.RuntimeFrom(r.Context())
		require.True(t, ok, "runtime missing from context")
		got = rt
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	return got
}

func TestRuntime_Viewer(t *testing.T) {
	users := newFakeUsers()

	tests := []struct {
		name       string
		header     string
		query      string
		wantUserID *int64
		wantStaff  bool
		wantName   string
	}{
		{name: "anonymous"},
		{name: "staff by header id", header: "1", wantUserID: ptr(1), wantStaff: true, wantName: "staff"},
		{name: "student by query username", query: "student", wantUserID: ptr(2), wantName: "student"},
		{name: "header wins over query", header: "2", query: "staff", wantUserID: ptr(2), wantName: "student"},
		{name: "unknown id kept", header: "99", wantUserID: ptr(99)},
		{name: "unknown username anonymous", query: "nobody"},
		{name: "inactive user anonymous", header: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/x"
			if tt.query != "" {
				target += "?user=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(UserHeader, tt.header)
			}

			rt := captureRuntime(t, users, false, req)

			if tt.wantUserID == nil {
				assert.Nil(t, rt.UserID)
			} else {
				require.NotNil(t, rt.UserID)
				assert.Equal(t, *tt.wantUserID, *rt.UserID)
			}
			assert.Equal(t, tt.wantStaff, rt.IsStaff)
			assert.Equal(t, tt.wantName, rt.Username)
			assert.False(t, rt.InStudio)
		})
	}
}

func TestRuntime_LookupError(t *testing.T) {
	users := &fakeUsers{err: errors.New("database is locked")}
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(UserHeader, "1")

	rt := captureRuntime(t, users, false, req)

	require.NotNil(t, rt.UserID)
	assert.False(t, rt.IsStaff)
}

func TestRuntime_Studio(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rt := captureRuntime(t, newFakeUsers(), true, req)
	if !rt.InStudio {
		t.Error("InStudio = false, want true")
	}
}

func TestRuntime_Language(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		accept string
		want   string
	}{
		{name: "default", want: "en"},
		{name: "query", query: "es", want: "es"},
		{name: "accept header", accept: "es-ES,es;q=0.9,en;q=0.5", want: "es"},
		{name: "query wins", query: "en", accept: "es", want: "en"},
		{name: "unsupported", accept: "ja", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/x"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			rt := captureRuntime(t, newFakeUsers(), false, req)
			if rt.Language != tt.want {
				t.Errorf("Language = %q, want %q", rt.Language, tt.want)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	rec := do("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body component.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body.Result)
	assert.Equal(t, i18n.T("en", "error.rate_limited"), body.Error)

	// Another client has its own budget.
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)
}

func TestRateLimiter_TranslatedError(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	var rec *httptest.ResponseRecorder
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req = req.WithContext(component.WithRuntime(req.Context(), &component.Runtime{Language: "es"}))
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
	}

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T("es", "error.rate_limited"))
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")
	lc.get("a")

	if got := lc.len(); got != 2 {
		t.Errorf("len() = %d, want 2", got)
	}
	if lc.clearIfExceeds(2) {
		t.Error("clearIfExceeds(2) = true, want false")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("clearIfExceeds(1) = false, want true")
	}
	if got := lc.len(); got != 0 {
		t.Errorf("len() after clear = %d, want 0", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "remote without port", remote: "192.0.2.1", want: "192.0.2.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "203.0.113.9"}, remote: "10.0.0.1:1", want: "203.0.113.9"},
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, remote: "10.0.0.1:1", want: "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS bool
	}{
		{name: "production enables HSTS", isDev: false, wantHSTS: true},
		{name: "development disables HSTS", isDev: true, wantHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SecurityHeaders(DefaultSecurityHeadersConfig(tt.isDev))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS != (hsts != "") {
				t.Errorf("Strict-Transport-Security = %q, want present=%v", hsts, tt.wantHSTS)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
				t.Errorf("X-Frame-Options = %q, want SAMEORIGIN", got)
			}
			csp := rec.Header().Get("Content-Security-Policy")
			if !strings.HasPrefix(csp, "default-src 'self'") {
				t.Errorf("Content-Security-Policy = %q, want default-src first", csp)
			}
			if !strings.Contains(csp, "'unsafe-inline'") {
				t.Error("CSP should allow inline fragment scripts")
			}
		})
	}
}

func TestSecurityHeaders_ExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/health"}
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := rec.Header().Get("Content-Security-Policy"); got != "" {
		t.Errorf("Content-Security-Policy = %q, want empty for excluded path", got)
	}
}

func TestBuildCSP(t *testing.T) {
	got := buildCSP(map[string]string{
		"zz-custom":   "x",
		"script-src":  "'self'",
		"default-src": "'none'",
	})
	want := "default-src 'none'; script-src 'self'; zz-custom x"
	if got != want {
		t.Errorf("buildCSP() = %q, want %q", got, want)
	}
}

func TestBuildPermissionsPolicy(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"})
	if got != "camera=(), usb=()" {
		t.Errorf("buildPermissionsPolicy() = %q", got)
	}
}

func ptr(v int64) *int64 { return &v }
