// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

// Package render turns a catalog into documentation. Shape does all data
// shaping; Markdown and RML only format the shaped Document.
package render

import (
	"strings"

	"github.com/turbobarcam/tbctools/pkg/catalog"
)

// Meta carries the document-level text.
type Meta struct {
	Title string
	Intro string
}

// Document is the format-independent documentation.
type Document struct {
	Title    string
	Intro    string
	Sections []Section
}

// Section is one mode group.
type Section struct {
	Mode   string
	Anchor string
	Rows   []Row
}

// Row is one action.
type Row struct {
	ID          string
	Label       string
	Description []string
	Parameters  []string
	Keybinds    []Bind
}

// Bind is a key combination and the parameters it passes.
type Bind struct {
	Key    string
	Params string
}

// Text returns the key followed by its parameters, if any.
func (b Bind) Text() string {
	if b.Params == "" {
		return b.Key
	}
	return b.Key + " " + b.Params
}

// Shape builds the Document for cat.
func Shape(cat *catalog.Catalog, meta Meta) Document {
	doc := Document{
		Title: meta.Title,
		Intro: meta.Intro,
	}

	for _, group := range cat.Groups() {
		section := Section{
			Mode:   group.Mode,
			Anchor: anchor(group.Mode),
			Rows:   make([]Row, 0, len(group.Actions)),
		}
		for _, a := range group.Actions {
			row := Row{
				ID:          a.ID,
				Label:       a.Label,
				Description: lines(a.Description),
				Parameters:  lines(a.Parameters),
			}
			for _, kb := range a.Keybinds {
				row.Keybinds = append(row.Keybinds, Bind{Key: kb.Key, Params: kb.Params})
			}
			section.Rows = append(section.Rows, row)
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc
}

func lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func anchor(mode string) string {
	return strings.ToLower(strings.Join(strings.Fields(mode), "-"))
}
