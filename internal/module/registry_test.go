// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package module

import (
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-paylink/internal/config"
	"github.com/olegiv/ocms-paylink/internal/i18n"
	"github.com/olegiv/ocms-paylink/internal/testutil"
)

// mockModule is a mock implementation of the Module interface for testing.
type mockModule struct {
	name          string
	version       string
	dependencies  []string
	migrations    []Migration
	translations  fs.FS
	initCalled    bool
	shutdownErr   error
	learningCalls int
	studioCalls   int
}

func newMockModule(name string) *mockModule {
	return &mockModule{name: name, version: "1.0.0"}
}

func (m *mockModule) Name() string            { return m.name }
func (m *mockModule) Version() string         { return m.version }
func (m *mockModule) Description() string     { return "mock " + m.name }
func (m *mockModule) Dependencies() []string  { return m.dependencies }
func (m *mockModule) Migrations() []Migration { return m.migrations }
func (m *mockModule) Init(_ *Context) error   { m.initCalled = true; return nil }
func (m *mockModule) Shutdown() error         { return m.shutdownErr }
func (m *mockModule) TranslationsFS() fs.FS   { return m.translations }

func (m *mockModule) RegisterLearningRoutes(r chi.Router) {
	m.learningCalls++
	r.Get("/"+m.name+"/view", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(m.name))
	})
}

func (m *mockModule) RegisterStudioRoutes(r chi.Router) {
	m.studioCalls++
}

// mockPlugin enables a component type through plugin settings.
type mockPlugin struct {
	*mockModule
	blockType string
}

func (p *mockPlugin) PluginSettings() map[string]map[string]SettingsFunc {
	enable := func(s *Settings) { s.EnableComponent(p.blockType) }
	return map[string]map[string]SettingsFunc{
		config.ProjectLMS: {SettingsCommon: enable},
		config.ProjectCMS: {
			SettingsCommon:     enable,
			SettingsProduction: func(s *Settings) { s.EnableComponent(p.blockType + "_prod") },
		},
	}
}

func testContext(t *testing.T, project, env string) (*Context, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	return &Context{
		DB:     db,
		Logger: newTestLogger(),
		Config: &config.Config{Project: project, Env: env},
	}, cleanup
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry(newTestLogger())

	if err := r.Register(newMockModule("a")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(newMockModule("b")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(newMockModule("a")); err == nil {
		t.Error("Register() expected error for duplicate module")
	}

	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("Get(a) not found")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found")
	}

	list := r.List()
	if len(list) != 2 || list[0].Name() != "a" || list[1].Name() != "b" {
		t.Errorf("List() order wrong: %v", list)
	}
}

func TestInitAll(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	r := NewRegistry(newTestLogger())
	base := newMockModule("base")
	dependent := newMockModule("dependent")
	dependent.dependencies = []string{"base"}
	_ = r.Register(base)
	_ = r.Register(dependent)

	if err := r.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if !base.initCalled || !dependent.initCalled {
		t.Error("expected Init to be called on every module")
	}
	if ctx.Settings == nil || ctx.Settings.Project != config.ProjectLMS {
		t.Errorf("Settings = %+v, want lms settings", ctx.Settings)
	}
}

func TestInitAllMissingDependency(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	r := NewRegistry(newTestLogger())
	m := newMockModule("dependent")
	m.dependencies = []string{"nonexistent"}
	_ = r.Register(m)

	if err := r.InitAll(ctx); err == nil {
		t.Error("expected error for missing dependency")
	}
	if m.initCalled {
		t.Error("Init should not run when dependencies are missing")
	}
}

func TestPluginSettings(t *testing.T) {
	tests := []struct {
		name    string
		project string
		env     string
		want    []string
	}{
		{"lms", config.ProjectLMS, "development", []string{"payment_link"}},
		{"cms development", config.ProjectCMS, "development", []string{"payment_link"}},
		{"cms production", config.ProjectCMS, "production", []string{"payment_link", "payment_link_prod"}},
		{"unknown project", "other", "development", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := testContext(t, tt.project, tt.env)
			defer cleanup()

			r := NewRegistry(newTestLogger())
			_ = r.Register(&mockPlugin{mockModule: newMockModule("paylink"), blockType: "payment_link"})
			_ = r.Register(newMockModule("plain"))

			if err := r.InitAll(ctx); err != nil {
				t.Fatalf("InitAll() error = %v", err)
			}

			got := ctx.Settings.Components()
			if len(got) != len(tt.want) {
				t.Fatalf("Components() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Components()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPluginSettingsSkipInactive(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	r1 := NewRegistry(newTestLogger())
	_ = r1.Register(&mockPlugin{mockModule: newMockModule("paylink"), blockType: "payment_link"})
	if err := r1.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if err := r1.SetActive("paylink", false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	ctx.Settings = nil
	r2 := NewRegistry(newTestLogger())
	_ = r2.Register(&mockPlugin{mockModule: newMockModule("paylink"), blockType: "payment_link"})
	if err := r2.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if ctx.Settings.ComponentEnabled("payment_link") {
		t.Error("inactive plugin should not enable its component")
	}
}

func TestMigrations(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	runs := 0
	m := newMockModule("migrating")
	m.migrations = []Migration{
		{
			Version:     1,
			Description: "create table",
			Up: func(db *sql.DB) error {
				runs++
				_, err := db.Exec("CREATE TABLE mock_items (id INTEGER PRIMARY KEY)")
				return err
			},
			Down: func(db *sql.DB) error {
				_, err := db.Exec("DROP TABLE mock_items")
				return err
			},
		},
	}

	r1 := NewRegistry(newTestLogger())
	_ = r1.Register(m)
	if err := r1.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}

	// A second registry on the same database must not rerun the migration.
	r2 := NewRegistry(newTestLogger())
	_ = r2.Register(m)
	if err := r2.InitAll(ctx); err != nil {
		t.Fatalf("second InitAll() error = %v", err)
	}
	if runs != 1 {
		t.Errorf("migration ran %d times, want 1", runs)
	}

	info := r2.ListInfo()
	if len(info) != 1 || info[0].MigrationCount != 1 || info[0].MigrationsApplied != 1 {
		t.Errorf("ListInfo() = %+v", info)
	}
}

func TestMigrationFailure(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	m := newMockModule("broken")
	m.migrations = []Migration{{
		Version: 1,
		Up:      func(*sql.DB) error { return errors.New("boom") },
	}}

	r := NewRegistry(newTestLogger())
	_ = r.Register(m)
	if err := r.InitAll(ctx); err == nil {
		t.Error("InitAll() expected migration error")
	}
}

func TestActiveStatus(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	r := NewRegistry(newTestLogger())
	_ = r.Register(newMockModule("toggle"))

	if !r.IsActive("toggle") {
		t.Error("untracked module should default to active")
	}
	if err := r.SetActive("toggle", false); err == nil {
		t.Error("SetActive() before InitAll expected error")
	}

	if err := r.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if err := r.SetActive("toggle", false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if r.IsActive("toggle") {
		t.Error("expected module to be inactive")
	}
	if err := r.SetActive("nonexistent", false); err == nil {
		t.Error("SetActive(nonexistent) expected error")
	}

	// Status persists across registries.
	r2 := NewRegistry(newTestLogger())
	_ = r2.Register(newMockModule("toggle"))
	if err := r2.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if r2.IsActive("toggle") {
		t.Error("expected module to remain inactive after reload")
	}
	if info := r2.ListInfo(); info[0].Active {
		t.Error("ListInfo() should report the module inactive")
	}
}

func TestRouteAll(t *testing.T) {
	ctx, cleanup := testContext(t, config.ProjectCMS, "development")
	defer cleanup()

	r := NewRegistry(newTestLogger())
	on := newMockModule("on")
	off := newMockModule("off")
	_ = r.Register(on)
	_ = r.Register(off)
	if err := r.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	_ = r.SetActive("off", false)

	router := chi.NewRouter()
	r.RouteAll(router)
	r.StudioRouteAll(router)

	if on.learningCalls != 1 || on.studioCalls != 1 {
		t.Errorf("route registration calls = %d/%d, want 1/1", on.learningCalls, on.studioCalls)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/on/view", http.StatusOK},
		{"/off/view", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestShutdownAll(t *testing.T) {
	r := NewRegistry(newTestLogger())
	ok := newMockModule("ok")
	failing := newMockModule("failing")
	failing.shutdownErr = errors.New("close failed")
	_ = r.Register(ok)
	_ = r.Register(failing)

	err := r.ShutdownAll()
	if err == nil {
		t.Fatal("ShutdownAll() expected error")
	}
	if !errors.Is(err, failing.shutdownErr) {
		t.Errorf("ShutdownAll() error = %v, want wrapped %v", err, failing.shutdownErr)
	}
}

func TestModuleTranslations(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init() error = %v", err)
	}
	ctx, cleanup := testContext(t, config.ProjectLMS, "development")
	defer cleanup()

	m := newMockModule("translated")
	m.translations = fstest.MapFS{
		"locales/es/messages.json": {Data: []byte(`{"language":"es","messages":[{"id":"mock.greeting","translation":"Hola"}]}`)},
	}

	r := NewRegistry(newTestLogger())
	_ = r.Register(m)
	if err := r.InitAll(ctx); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}

	if got := i18n.T("es", "mock.greeting"); got != "Hola" {
		t.Errorf("T(es, mock.greeting) = %q, want %q", got, "Hola")
	}
}
