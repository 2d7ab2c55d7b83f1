// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// markupEscaper escapes only what RmlUi treats as markup, so key names such as
// Ctrl+o and apostrophes pass through literally.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}

var rmlTemplate = template.Must(template.New("keybinds.rml").Funcs(template.FuncMap{
	"esc": escapeMarkup,
}).Parse(`<link type="text/rcss" href="{{esc .Stylesheet}}"/>
<div id="tbc-keybinds">
	<h1>{{esc .Doc.Title}}</h1>
{{- if .Doc.Intro}}
	<p class="intro">{{esc .Doc.Intro}}</p>
{{- end}}
{{- range .Doc.Sections}}
	<div class="mode" id="{{esc .Anchor}}">
		<h2>{{esc .Mode}}</h2>
{{- range .Rows}}
		<div class="action">
			<div class="action-label">{{esc .Label}}</div>
			<div class="action-id">{{esc .ID}}</div>
			<div class="description">{{range $i, $l := .Description}}{{if $i}}<br/>{{end}}{{esc $l}}{{end}}</div>
			<div class="keybinds">
{{- range .Keybinds}}
				<div class="keybind"><span class="key">{{esc .Key}}</span>{{if .Params}} <span class="params">{{esc .Params}}</span>{{end}}</div>
{{- else}}
				<div class="keybind none">{{esc $.None}}</div>
{{- end}}
			</div>
			<div class="parameters">{{range $i, $l := .Parameters}}{{if $i}}<br/>{{end}}{{esc $l}}{{end}}</div>
		</div>
{{- end}}
	</div>
{{- end}}
</div>
`))

// RML renders doc as an RmlUi markup fragment linked to stylesheet.
func RML(doc Document, stylesheet string) (string, error) {
	var buf bytes.Buffer
	err := rmlTemplate.Execute(&buf, struct {
		Doc        Document
		Stylesheet string
		None       string
	}{
		Doc:        doc,
		Stylesheet: stylesheet,
		None:       notAvailable,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render markup: %w", err)
	}
	return buf.String(), nil
}
