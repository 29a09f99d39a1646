// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package paylink provides the payment link component: a course block that
// invites enrolled learners to upgrade to the verified track by linking to
// the ecommerce basket with the course's verified SKU.
package paylink

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/config"
	"github.com/olegiv/ocms-paylink/internal/middleware"
	"github.com/olegiv/ocms-paylink/internal/module"
)

//go:embed locales
var localesFS embed.FS

// submitBurst is the studio_submit burst allowed per client.
const submitBurst = 5

// EventLogger records component activity.
type EventLogger interface {
	LogComponentEvent(ctx context.Context, message string, userID *int64, metadata map[string]any) error
}

// Module implements the module.Module interface for the payment link component.
type Module struct {
	module.BaseModule
	ctx *module.Context

	builder *ContextBuilder
	fields  FieldStore
	events  EventLogger
	hooks   *module.HookRegistry
	limiter *middleware.RateLimiter
}

// New creates a new instance of the payment link module.
func New() *Module {
	return &Module{
		BaseModule: module.NewBaseModule(
			"paylink",
			"1.0.0",
			"Payment link to the verified track",
		),
	}
}

// PluginSettings enables the component type in both projects.
func (m *Module) PluginSettings() map[string]map[string]module.SettingsFunc {
	return map[string]map[string]module.SettingsFunc{
		config.ProjectCMS: {module.SettingsCommon: commonSettings},
		config.ProjectLMS: {module.SettingsCommon: commonSettings},
	}
}

func commonSettings(s *module.Settings) {
	s.EnableComponent(BlockType)
}

// Init wires the component to the host services.
func (m *Module) Init(ctx *module.Context) error {
	m.ctx = ctx
	svc := ctx.Services

	m.builder = &ContextBuilder{
		Users:       svc.Users,
		Enrollments: svc.Enrollments,
		Modes:       svc.CourseModes,
		Ecommerce:   svc.Ecommerce,
		Grades:      svc.Grades,
		Overviews:   svc.Overviews,
		Logger:      ctx.Logger,
	}
	m.fields = svc.Fields
	m.events = svc.Events
	m.hooks = ctx.Hooks

	if ctx.Config.SubmitRateLimit > 0 {
		m.limiter = middleware.NewRateLimiter(ctx.Config.SubmitRateLimit, submitBurst)
	}

	ctx.Logger.Info("payment link module initialized",
		"project", ctx.Settings.Project,
		"component_enabled", m.enabled(),
		"payment_page", svc.Ecommerce.PaymentPageURL(),
	)
	return nil
}

// Shutdown performs cleanup when the module is shutting down.
func (m *Module) Shutdown() error {
	if m.ctx != nil {
		m.ctx.Logger.Info("payment link module shutting down")
	}
	return nil
}

func (m *Module) enabled() bool {
	return m.ctx != nil && m.ctx.Settings != nil && m.ctx.Settings.ComponentEnabled(BlockType)
}

func (m *Module) logger() *slog.Logger {
	if m.ctx != nil && m.ctx.Logger != nil {
		return m.ctx.Logger
	}
	return slog.Default()
}

func (m *Module) block(rt *component.Runtime) *Block {
	return NewBlock(rt.Usage, m.fields)
}

// RegisterLearningRoutes mounts the learner view.
func (m *Module) RegisterLearningRoutes(r chi.Router) {
	if !m.enabled() {
		return
	}
	r.Get(blockRoute+"/student_view", m.serveView(m.StudentView))
}

// RegisterStudioRoutes mounts the authoring views and the save handler.
func (m *Module) RegisterStudioRoutes(r chi.Router) {
	if !m.enabled() {
		return
	}
	r.Get(blockRoute+"/author_view", m.serveView(m.AuthorView))
	r.Get(blockRoute+"/studio_view", m.serveView(m.StudioView))

	submit := r
	if m.limiter != nil {
		submit = r.With(m.limiter.Middleware())
	}
	submit.Post(blockRoute+"/handler/studio_submit", m.handleStudioSubmit)
}

// TranslationsFS returns the embedded filesystem containing module translations.
func (m *Module) TranslationsFS() fs.FS {
	return localesFS
}
