// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package paylink

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/i18n"
	"github.com/olegiv/ocms-paylink/internal/module"
)

//go:embed static
var staticFS embed.FS

// JSInitFunction is the init function both views register.
const JSInitFunction = "PaymentLinkXBlock"

var (
	templates = template.Must(template.New(BlockType).
			Funcs(template.FuncMap{"t": i18n.T}).
			ParseFS(staticFS, "static/html/*.html"))

	paymentLinkCSS = mustReadStatic("static/css/payment_link.css")
	paymentLinkJS  = mustReadStatic("static/js/payment_link.js")
	studioJS       = mustReadStatic("static/js/payment_link_studio.js")
)

func mustReadStatic(name string) string {
	data, err := staticFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("paylink: missing embedded asset %s: %v", name, err))
	}
	return string(data)
}

type viewData struct {
	RenderContext
	Lang      string
	MaxLength int
}

func renderTemplate(name string, data viewData) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderHookData is passed to component.before_render handlers. Handlers may
// modify Context.
type RenderHookData struct {
	View    string
	UsageID string
	UserID  *int64
	Context *RenderContext
}

// beforeRender lets other modules adjust the render context. A failing hook
// leaves the context unchanged.
func (m *Module) beforeRender(ctx context.Context, rt *component.Runtime, view string, rc RenderContext) RenderContext {
	if m.hooks == nil || !m.hooks.HasHandlers(module.HookComponentBeforeRender) {
		return rc
	}

	adjusted := rc
	data := &RenderHookData{View: view, UsageID: rt.Usage.String(), UserID: rt.UserID, Context: &adjusted}
	if err := m.hooks.CallNoResult(ctx, module.HookComponentBeforeRender, data); err != nil {
		m.logger().Warn("component render hook failed", "view", view, "error", err)
		return rc
	}
	return adjusted
}

// AuthorView renders the authoring preview.
func (m *Module) AuthorView(ctx context.Context, rt *component.Runtime) (*component.Fragment, error) {
	block := m.block(rt)
	rc := m.builder.AuthorContext(ctx, rt.Usage)
	rc.DisplayName = block.DisplayName(ctx)
	rc = m.beforeRender(ctx, rt, "author_view", rc)

	content, err := renderTemplate("author_view.html", viewData{RenderContext: rc, Lang: rt.Language})
	if err != nil {
		return nil, err
	}
	frag := component.NewFragment(content)
	frag.AddCSS(paymentLinkCSS)
	return frag, nil
}

// StudentView renders the learner view for staff and students.
func (m *Module) StudentView(ctx context.Context, rt *component.Runtime) (*component.Fragment, error) {
	block := m.block(rt)
	rc := m.builder.BuildContext(ctx, rt.Viewer(), rt.Usage)
	rc.DisplayName = block.DisplayName(ctx)
	rc = m.beforeRender(ctx, rt, "student_view", rc)

	content, err := renderTemplate("payment_link.html", viewData{RenderContext: rc, Lang: rt.Language})
	if err != nil {
		return nil, err
	}
	frag := component.NewFragment(content)
	frag.AddCSS(paymentLinkCSS)
	frag.AddJS(paymentLinkJS)
	frag.InitializeJS(JSInitFunction, map[string]any{"location": rc.Location})
	return frag, nil
}

// StudioView renders the display name editor.
func (m *Module) StudioView(ctx context.Context, rt *component.Runtime) (*component.Fragment, error) {
	block := m.block(rt)
	rc := RenderContext{
		Location:    rt.Usage.Location(),
		DisplayName: block.DisplayName(ctx),
	}

	content, err := renderTemplate("studio_view.html", viewData{
		RenderContext: rc,
		Lang:          rt.Language,
		MaxLength:     MaxDisplayNameLength,
	})
	if err != nil {
		return nil, err
	}
	frag := component.NewFragment(content)
	frag.AddCSS(paymentLinkCSS)
	frag.AddJS(studioJS)
	frag.InitializeJS(JSInitFunction, map[string]any{
		"submit_url":    HandlerURL(rt, "studio_submit"),
		"saved_message": i18n.T(rt.Language, "studio.saved"),
	})
	return frag, nil
}
