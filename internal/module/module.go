// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package module provides the component host's module system. A module
// contributes learner-facing routes, studio (authoring) routes, hooks,
// migrations and translations to the host.
package module

import (
	"database/sql"
	"io/fs"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-paylink/internal/config"
	"github.com/olegiv/ocms-paylink/internal/service"
	"github.com/olegiv/ocms-paylink/internal/store"
)

// Context provides access to host services for modules.
type Context struct {
	DB       *sql.DB
	Store    *store.Queries
	Logger   *slog.Logger
	Config   *config.Config
	Services *service.Services
	Hooks    *HookRegistry
	// Settings holds the plugin settings applied for the running project.
	Settings *Settings
}

// Module defines the interface that all modules must implement.
type Module interface {
	Name() string
	Version() string
	Description() string
	// Dependencies returns the names of modules that must be registered too.
	Dependencies() []string

	// Init initializes the module with the given context.
	Init(ctx *Context) error
	// Shutdown performs cleanup when the host is shutting down.
	Shutdown() error

	// RegisterLearningRoutes registers routes served in both projects.
	RegisterLearningRoutes(r chi.Router)
	// RegisterStudioRoutes registers authoring routes, mounted only in the
	// studio (cms) project.
	RegisterStudioRoutes(r chi.Router)

	// Migrations returns migrations for the module.
	Migrations() []Migration

	// TranslationsFS returns a filesystem laid out as locales/{lang}/messages.json,
	// or nil if the module has no translations.
	TranslationsFS() fs.FS
}

// Migration represents a database migration for a module.
type Migration struct {
	Version     int64
	Description string
	Up          func(db *sql.DB) error
	Down        func(db *sql.DB) error
}

// BaseModule provides default no-op implementations of the Module interface.
type BaseModule struct {
	name        string
	version     string
	description string
	ctx         *Context
}

// NewBaseModule creates a new BaseModule with the given metadata.
func NewBaseModule(name, version, description string) BaseModule {
	return BaseModule{
		name:        name,
		version:     version,
		description: description,
	}
}

func (m *BaseModule) Name() string           { return m.name }
func (m *BaseModule) Version() string        { return m.version }
func (m *BaseModule) Description() string    { return m.description }
func (m *BaseModule) Dependencies() []string { return nil }

// Init stores the context.
func (m *BaseModule) Init(ctx *Context) error {
	m.ctx = ctx
	return nil
}

func (m *BaseModule) Shutdown() error                      { return nil }
func (m *BaseModule) RegisterLearningRoutes(_ chi.Router) {}
func (m *BaseModule) RegisterStudioRoutes(_ chi.Router)   {}
func (m *BaseModule) Migrations() []Migration              { return nil }
func (m *BaseModule) TranslationsFS() fs.FS                { return nil }

// Context returns the module context (for use by embedded modules).
func (m *BaseModule) Context() *Context { return m.ctx }
