// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

// Package catalog cross-references the extracted sources into one record per
// action and groups the records by mode.
package catalog

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/turbobarcam/tbctools/pkg/core/models"
	"github.com/turbobarcam/tbctools/pkg/extract"
)

// Placeholders used when a source has no value for an action.
const (
	NoDescription = "No description available."
	NoParameters  = "N/A"
)

// Inputs are the extracted sources.
type Inputs struct {
	Actions  extract.ActionSet
	I18n     extract.I18n
	Keybinds extract.KeybindMap

	// ActionsSource and I18nSource name the sources in diagnostics.
	ActionsSource string
	I18nSource    string
}

// Action is the combined documentation record of one action.
type Action struct {
	ID          string
	Label       string
	Description string
	Parameters  string
	Keybinds    []extract.Keybind
	Mode        string
}

// Group is a mode and its actions in rendering order.
type Group struct {
	Mode    string
	Actions []Action
}

// Catalog holds every documented action.
type Catalog struct {
	actions map[string]Action
	order   []string
}

// Build cross-references the sources. Cross-reference gaps are reported as
// diagnostics and filled with placeholders.
func Build(in Inputs, cat *Categorizer) (*Catalog, models.Diagnostics) {
	actionsSource := in.ActionsSource
	if actionsSource == "" {
		actionsSource = "actions"
	}
	i18nSource := in.I18nSource
	if i18nSource == "" {
		i18nSource = "i18n"
	}

	ids := union(in.Actions, in.I18n)
	registered := in.Actions.Sorted()
	localized := in.I18n.Keys()

	var diags models.Diagnostics
	c := &Catalog{
		actions: make(map[string]Action, len(ids)),
		order:   cat.Order(),
	}

	for _, id := range ids {
		entry, hasI18n := in.I18n[id]

		switch {
		case in.Actions.Has(id):
		case cat.Exempt(id):
			d := models.Info(models.CodeExemptI18n, i18nSource,
				"i18n entry for '%s' is documented without a registered action", id)
			d.Action = id
			diags = append(diags, d)
		default:
			d := models.Warning(models.CodeI18nWithoutAction, i18nSource,
				"i18n entry for '%s' exists, but action not found in %s", id, actionsSource)
			d.Action = id
			d.Hint = suggest(id, registered)
			diags = append(diags, d)
		}
		if !hasI18n {
			d := models.Warning(models.CodeActionWithoutI18n, actionsSource,
				"action '%s' is missing an i18n entry", id)
			d.Action = id
			d.Hint = suggest(id, localized)
			diags = append(diags, d)
		}

		mode, matched := cat.Resolve(id)
		if !matched {
			d := models.Warning(models.CodeUncategorizedAction, "modes",
				"action '%s' could not be categorized, using %q", id, mode)
			d.Action = id
			diags = append(diags, d)
		}

		c.actions[id] = Action{
			ID:          id,
			Label:       labelOf(id, entry),
			Description: descriptionOf(entry),
			Parameters:  parametersOf(entry),
			Keybinds:    append([]extract.Keybind(nil), in.Keybinds[id]...),
			Mode:        mode,
		}
	}

	for _, id := range sortedKeys(in.Keybinds) {
		if _, ok := c.actions[id]; ok {
			continue
		}
		for _, kb := range in.Keybinds[id] {
			d := models.Warning(models.CodeKeybindUnknownAction, "keybinds",
				"key '%s' is bound to '%s', which is neither registered nor localized", kb.Key, id)
			d.Line = kb.Line
			d.Action = id
			d.Hint = suggest(id, ids)
			diags = append(diags, d)
		}
	}

	return c, diags
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	return len(c.actions)
}

// Get returns the record of id.
func (c *Catalog) Get(id string) (Action, bool) {
	a, ok := c.actions[id]
	return a, ok
}

// Groups returns the non-empty mode groups in configured order. Actions are
// sorted by label, then by identifier.
func (c *Catalog) Groups() []Group {
	byMode := make(map[string][]Action)
	for _, a := range c.actions {
		byMode[a.Mode] = append(byMode[a.Mode], a)
	}

	groups := make([]Group, 0, len(byMode))
	for _, mode := range c.order {
		actions := byMode[mode]
		if len(actions) == 0 {
			continue
		}
		sort.Slice(actions, func(i, j int) bool {
			if actions[i].Label != actions[j].Label {
				return actions[i].Label < actions[j].Label
			}
			return actions[i].ID < actions[j].ID
		})
		groups = append(groups, Group{Mode: mode, Actions: actions})
	}
	return groups
}

func union(actions extract.ActionSet, i18n extract.I18n) []string {
	ids := lo.Union(lo.Keys(actions), lo.Keys(i18n))
	sort.Strings(ids)
	return ids
}

func sortedKeys(m extract.KeybindMap) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

func labelOf(id string, e extract.I18nEntry) string {
	if e.Label == "" {
		return id
	}
	return e.Label
}

func descriptionOf(e extract.I18nEntry) string {
	if e.Description == "" {
		return NoDescription
	}
	return e.Description
}

func parametersOf(e extract.I18nEntry) string {
	if e.Parameters == nil {
		return NoParameters
	}
	p := strings.TrimSpace(*e.Parameters)
	if p == "" || strings.EqualFold(p, "none") {
		return NoParameters
	}
	return *e.Parameters
}
