// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package paylink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/i18n"
	"github.com/olegiv/ocms-paylink/internal/model"
	"github.com/olegiv/ocms-paylink/internal/module"
)

// ErrForbidden is returned when a non-staff viewer submits studio changes.
var ErrForbidden = errors.New("studio changes require a staff user")

// StudioSubmitRequest is the studio editor's JSON body.
type StudioSubmitRequest struct {
	DisplayName string `json:"display_name"`
}

// StudioSubmitResponse is returned after a successful save.
type StudioSubmitResponse struct {
	Result      string `json:"result"`
	DisplayName string `json:"display_name"`
}

// SubmitHookData is passed to component.after_submit handlers.
type SubmitHookData struct {
	UsageID     string
	UserID      *int64
	DisplayName string
}

// StudioSubmit saves the editable fields of the runtime's block.
func (m *Module) StudioSubmit(ctx context.Context, rt *component.Runtime, req StudioSubmitRequest) (StudioSubmitResponse, error) {
	if !rt.IsStaff {
		return StudioSubmitResponse{}, ErrForbidden
	}

	block := m.block(rt)
	saved, err := block.SetDisplayName(ctx, req.DisplayName)
	if err != nil {
		return StudioSubmitResponse{}, fmt.Errorf("saving display name: %w", err)
	}

	if m.hooks != nil {
		if err := m.hooks.CallNoResult(ctx, module.HookComponentAfterSubmit, &SubmitHookData{
			UsageID:     block.BlockID(),
			UserID:      rt.UserID,
			DisplayName: saved,
		}); err != nil {
			m.logger().Warn("component submit hook failed", "block", block.BlockID(), "error", err)
		}
	}

	if m.events != nil {
		if err := m.events.LogComponentEvent(ctx, "component display name updated", rt.UserID, map[string]any{
			"block":        block.BlockID(),
			"display_name": saved,
		}); err != nil {
			m.logger().Warn("failed to log component event", "error", err)
		}
	}

	return StudioSubmitResponse{Result: "success", DisplayName: saved}, nil
}

const blockRoute = "/courses/{courseID}/xblock/{blockID}"

// HandlerURL returns the path of a named JSON handler of the runtime's block.
func HandlerURL(rt *component.Runtime, handler string) string {
	return fmt.Sprintf("/courses/%s/xblock/%s/handler/%s",
		url.PathEscape(rt.Course.String()), url.PathEscape(rt.Usage.BlockID), handler)
}

// blockRuntime binds the request runtime to the block addressed by the URL.
func blockRuntime(r *http.Request) (*component.Runtime, error) {
	course, err := model.ParseCourseKey(chi.URLParam(r, "courseID"))
	if err != nil {
		return nil, err
	}
	usage, err := model.ParseUsageKey(model.NewUsageKey(course, BlockType, chi.URLParam(r, "blockID")).String())
	if err != nil {
		return nil, err
	}
	return component.GetRuntime(r).WithBlock(course, usage), nil
}

type viewFunc func(ctx context.Context, rt *component.Runtime) (*component.Fragment, error)

func (m *Module) serveView(view viewFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt, err := blockRuntime(r)
		if err != nil {
			lang := component.GetRuntime(r).Language
			http.Error(w, i18n.T(lang, "error.not_found"), http.StatusNotFound)
			return
		}

		frag, err := view(r.Context(), rt)
		if err != nil {
			m.logger().Error("failed to render component view", "path", r.URL.Path, "error", err)
			http.Error(w, i18n.T(rt.Language, "error.internal"), http.StatusInternalServerError)
			return
		}

		component.WritePage(w, r, m.block(rt).DisplayName(r.Context()), frag)
	}
}

func (m *Module) handleStudioSubmit(w http.ResponseWriter, r *http.Request) {
	rt, err := blockRuntime(r)
	if err != nil {
		component.WriteError(w, http.StatusNotFound, i18n.T(component.GetRuntime(r).Language, "error.not_found"))
		return
	}

	if !rt.IsStaff {
		component.WriteError(w, http.StatusForbidden, i18n.T(rt.Language, "error.forbidden"))
		return
	}

	var req StudioSubmitRequest
	if err := component.ReadJSON(w, r, &req); err != nil {
		component.WriteError(w, http.StatusBadRequest, i18n.T(rt.Language, "error.bad_request"))
		return
	}

	resp, err := m.StudioSubmit(r.Context(), rt, req)
	switch {
	case errors.Is(err, ErrForbidden):
		component.WriteError(w, http.StatusForbidden, i18n.T(rt.Language, "error.forbidden"))
	case err != nil:
		m.logger().Error("studio submit failed", "path", r.URL.Path, "error", err)
		component.WriteError(w, http.StatusInternalServerError, i18n.T(rt.Language, "error.internal"))
	default:
		component.WriteJSON(w, http.StatusOK, resp)
	}
}
