// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package component

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/olegiv/ocms-paylink/internal/i18n"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<header class="workbench-header"><strong>{{.Heading}}</strong> <small>{{.ViewingAs}}</small></header>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageData struct {
	Lang      string
	Title     string
	Heading   string
	ViewingAs string
	Body      template.HTML
}

// WritePage renders the fragment inside a standalone workbench page.
func WritePage(w http.ResponseWriter, r *http.Request, title string, frag *Fragment) {
	rt := GetRuntime(r)

	body, err := frag.HTML()
	if err != nil {
		slog.Error("failed to render fragment", "error", err, "path", r.URL.Path)
		http.Error(w, i18n.T(rt.Language, "error.internal"), http.StatusInternalServerError)
		return
	}

	who := rt.Username
	if who == "" {
		who = i18n.T(rt.Language, "workbench.anonymous")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, pageData{
		Lang:      rt.Language,
		Title:     title,
		Heading:   i18n.T(rt.Language, "workbench.title"),
		ViewingAs: i18n.T(rt.Language, "workbench.viewing_as", who),
		Body:      body,
	}); err != nil {
		slog.Error("failed to write page", "error", err, "path", r.URL.Path)
	}
}
