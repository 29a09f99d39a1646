// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package component

import (
	"bytes"
	"html/template"
)

// Fragment is the output of a component view: markup plus the CSS and JS it
// needs and the JS function that initializes it on the page.
type Fragment struct {
	Content template.HTML
	CSS     []template.CSS
	JS      []template.JS
	InitFn  string
	// InitArgs is passed as JSON to InitFn.
	InitArgs map[string]any
}

// NewFragment creates a fragment with the given content.
func NewFragment(content template.HTML) *Fragment {
	return &Fragment{Content: content}
}

// AddCSS appends a stylesheet.
func (f *Fragment) AddCSS(css string) {
	f.CSS = append(f.CSS, template.CSS(css))
}

// AddJS appends a script.
func (f *Fragment) AddJS(js string) {
	f.JS = append(f.JS, template.JS(js))
}

// InitializeJS names the JS function called with the fragment's root element.
func (f *Fragment) InitializeJS(fn string, args map[string]any) {
	f.InitFn = fn
	f.InitArgs = args
}

var fragmentTmpl = template.Must(template.New("fragment").Parse(
	`{{range .CSS}}<style>{{.}}</style>
{{end}}<div class="xblock"{{with .InitFn}} data-init="{{.}}"{{end}}>
{{.Content}}
</div>
{{range .JS}}<script>{{.}}</script>
{{end}}{{with .InitFn}}<script>
(function () {
  var el = document.currentScript.previousElementSibling;
  while (el && !el.classList.contains("xblock")) { el = el.previousElementSibling; }
  if (el && typeof window[{{.}}] === "function") { new window[{{.}}](el, {{$.InitArgs}}); }
})();
</script>
{{end}}`))

// HTML renders the fragment with its resources inline.
func (f *Fragment) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragmentTmpl.Execute(&buf, f); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
