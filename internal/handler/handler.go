// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the workbench's own HTTP handlers: health checks
// and staff-only diagnostics for modules, cache and the event log.
package handler

import (
	"net/http"

	"github.com/olegiv/ocms-paylink/internal/component"
	"github.com/olegiv/ocms-paylink/internal/i18n"
)

// requireStaff writes 403 and returns false unless the viewer is staff.
func requireStaff(w http.ResponseWriter, r *http.Request) bool {
	if component.GetRuntime(r).IsStaff {
		return true
	}
	writeJSONError(w, r, http.StatusForbidden, "error.forbidden")
	return false
}

func writeJSONError(w http.ResponseWriter, r *http.Request, statusCode int, key string) {
	component.WriteError(w, statusCode, i18n.T(component.GetRuntime(r).Language, key))
}
