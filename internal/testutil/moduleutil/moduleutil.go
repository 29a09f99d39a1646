// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package moduleutil provides module-specific test helpers.
package moduleutil

import (
	"database/sql"
	"testing"

	"github.com/olegiv/ocms-paylink/internal/config"
	"github.com/olegiv/ocms-paylink/internal/module"
	"github.com/olegiv/ocms-paylink/internal/service"
	"github.com/olegiv/ocms-paylink/internal/store"
	"github.com/olegiv/ocms-paylink/internal/testutil"
)

// TestModuleContext creates a module.Context over db with uncached services
// for the given project, and returns its hook registry for assertions.
func TestModuleContext(t *testing.T, db *sql.DB, project string) (*module.Context, *module.HookRegistry) {
	t.Helper()
	logger := testutil.TestLogger()
	hooks := module.NewHookRegistry(logger)
	cfg := &config.Config{
		Project:             project,
		Env:                 "development",
		EcommerceBasketPath: service.DefaultBasketPath,
	}
	return &module.Context{
		DB:       db,
		Store:    store.New(db),
		Logger:   logger,
		Config:   cfg,
		Services: service.New(db, nil, service.Options{BasketPath: cfg.EcommerceBasketPath}),
		Hooks:    hooks,
		Settings: module.NewSettings(project),
	}, hooks
}
