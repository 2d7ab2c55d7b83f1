// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package extract

import (
	"regexp"
	"strings"

	"github.com/turbobarcam/tbctools/pkg/core/models"
)

// bindPattern captures the key and the command of a bind directive. Keys may
// contain word characters and . + - / * \ [ ] < >, e.g. "Ctrl+sc_\" or "numpad*".
var bindPattern = regexp.MustCompile(`(?i)^\s*bind\s+([\w.+\-/*\\\[\]<>]+)\s+(.*)`)

// Keybind is one key combination bound to an action.
type Keybind struct {
	Key    string `json:"key"`
	Params string `json:"params,omitempty"`
	Line   int    `json:"line"`
}

// KeybindMap maps action identifiers to their binds in file order.
type KeybindMap map[string][]Keybind

// KeybindOptions tunes the uikeys scanner.
type KeybindOptions struct {
	// Source names the scanned file in diagnostics.
	Source string
	// ActionPrefix selects the commands that are documented.
	ActionPrefix string
	// KeyStrip is removed from every key representation.
	KeyStrip string
	// ChainMarker introduces a multi-command bind.
	ChainMarker string
	// ChainSeparator splits the commands of a chain.
	ChainSeparator string
	// ForceMarker is dropped from the front of a command.
	ForceMarker string
	// IgnoredDirectives are line prefixes that are silently skipped.
	IgnoredDirectives []string
}

// DefaultKeybindOptions returns the options matching the Spring uikeys format.
func DefaultKeybindOptions() KeybindOptions {
	return KeybindOptions{
		Source:            "uikeys",
		ActionPrefix:      DefaultActionPrefix,
		KeyStrip:          "sc_",
		ChainMarker:       "chain",
		ChainSeparator:    "|",
		ForceMarker:       "force",
		IgnoredDirectives: []string{"unbindkeyset", "unbind", "unbindaction", "removebind"},
	}
}

func (o KeybindOptions) withDefaults() KeybindOptions {
	def := DefaultKeybindOptions()
	if o.Source == "" {
		o.Source = def.Source
	}
	if o.ActionPrefix == "" {
		o.ActionPrefix = def.ActionPrefix
	}
	if o.ChainMarker == "" {
		o.ChainMarker = def.ChainMarker
	}
	if o.ChainSeparator == "" {
		o.ChainSeparator = def.ChainSeparator
	}
	if o.ForceMarker == "" {
		o.ForceMarker = def.ForceMarker
	}
	if o.IgnoredDirectives == nil {
		o.IgnoredDirectives = def.IgnoredDirectives
	}
	return o
}

// Keybinds scans a uikeys file. Lines that are neither binds nor ignorable
// directives are reported as diagnostics and skipped.
func Keybinds(src string, opts KeybindOptions) (KeybindMap, []models.Diagnostic) {
	opts = opts.withDefaults()

	binds := make(KeybindMap)
	var diags []models.Diagnostic

	for i, raw := range strings.Split(src, "\n") {
		lineNumber := i + 1
		raw = strings.TrimSuffix(raw, "\r")
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		m := bindPattern.FindStringSubmatch(line)
		if m == nil {
			if !opts.ignorable(line) {
				d := models.Warning(models.CodeUnparseableBind, opts.Source,
					"could not parse keybind line: %s", raw)
				d.Line = lineNumber
				diags = append(diags, d)
			}
			continue
		}

		key := m[1]
		if opts.KeyStrip != "" {
			key = strings.ReplaceAll(key, opts.KeyStrip, "")
		}

		for _, cmd := range opts.commands(strings.TrimSpace(m[2])) {
			id, params := splitCommand(cmd)
			binds[id] = append(binds[id], Keybind{Key: key, Params: params, Line: lineNumber})
		}
	}

	return binds, diags
}

// commands returns the documented commands contained in a bind's command text.
func (o KeybindOptions) commands(command string) []string {
	if !hasWordPrefix(command, o.ChainMarker, o.ChainSeparator) {
		if strings.HasPrefix(command, o.ActionPrefix) {
			return []string{command}
		}
		return nil
	}

	var out []string
	body := strings.TrimSpace(command[len(o.ChainMarker):])
	for _, part := range strings.Split(body, o.ChainSeparator) {
		part = strings.TrimSpace(part)
		if hasWordPrefix(part, o.ForceMarker, "") {
			part = strings.TrimSpace(part[len(o.ForceMarker):])
		}
		if strings.HasPrefix(part, o.ActionPrefix) {
			out = append(out, part)
		}
	}
	return out
}

func (o KeybindOptions) ignorable(line string) bool {
	lower := strings.ToLower(line)
	for _, directive := range o.IgnoredDirectives {
		if strings.HasPrefix(lower, strings.ToLower(directive)) {
			return true
		}
	}
	return false
}

// hasWordPrefix reports whether s starts with word, case-insensitively, as a
// whole word.
func hasWordPrefix(s, word, sep string) bool {
	if len(s) < len(word) || !strings.EqualFold(s[:len(word)], word) {
		return false
	}
	rest := s[len(word):]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t':
		return true
	}
	return sep != "" && strings.HasPrefix(rest, sep)
}

// splitCommand splits "action rest of line" into the action and its parameters.
func splitCommand(cmd string) (string, string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return "", ""
	}
	id := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), id))
	return id, rest
}
