// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/module"
)

// ModulesHandler exposes the module registry.
type ModulesHandler struct {
	registry *module.Registry
	hooks    *module.HookRegistry
	settings *module.Settings
}

// NewModulesHandler creates a new ModulesHandler.
func NewModulesHandler(registry *module.Registry, hooks *module.HookRegistry, settings *module.Settings) *ModulesHandler {
	return &ModulesHandler{registry: registry, hooks: hooks, settings: settings}
}

// HookInfo describes the handlers registered for a hook.
type HookInfo struct {
	Name     string `json:"name"`
	Handlers int    `json:"handlers"`
}

// ModulesResponse is returned by List.
type ModulesResponse struct {
	Project    string        `json:"project"`
	Components []string      `json:"components"`
	Modules    []module.Info `json:"modules"`
	Hooks      []HookInfo    `json:"hooks"`
}

// List handles GET /workbench/modules.
func (h *ModulesHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	hooks := make([]HookInfo, 0, 2)
	for _, name := range []string{module.HookComponentBeforeRender, module.HookComponentAfterSubmit} {
		hooks = append(hooks, HookInfo{Name: name, Handlers: h.hooks.HandlerCount(name)})
	}

	component.WriteJSON(w, http.StatusOK, ModulesResponse{
		Project:    h.settings.Project,
		Components: h.settings.Components(),
		Modules:    h.registry.ListInfo(),
		Hooks:      hooks,
	})
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

// SetActive handles POST /workbench/modules/{name}/active.
func (h *ModulesHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	if !requireStaff(w, r) {
		return
	}

	name := chi.URLParam(r, "name")
	if _, ok := h.registry.Get(name); !ok {
		writeJSONError(w, r, http.StatusNotFound, "error.not_found")
		return
	}

	var req setActiveRequest
	if err := component.ReadJSON(w, r, &req); err != nil || req.Active == nil {
		writeJSONError(w, r, http.StatusBadRequest, "error.bad_request")
		return
	}

	if err := h.registry.SetActive(name, *req.Active); err != nil {
		slog.Error("failed to update module status", "module", name, "error", err)
		writeJSONError(w, r, http.StatusInternalServerError, "error.internal")
		return
	}

	component.WriteJSON(w, http.StatusOK, map[string]any{"result": "success", "active": *req.Active})
}
