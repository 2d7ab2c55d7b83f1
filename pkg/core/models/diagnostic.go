// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package models

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies a diagnostic. None of them abort a run.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic codes emitted by the extraction and aggregation stages.
const (
	CodeUnparseableBind      = "UNPARSEABLE_BIND"
	CodeI18nWithoutAction    = "I18N_WITHOUT_ACTION"
	CodeActionWithoutI18n    = "ACTION_WITHOUT_I18N"
	CodeUncategorizedAction  = "UNCATEGORIZED_ACTION"
	CodeKeybindUnknownAction = "KEYBIND_UNKNOWN_ACTION"
	CodeExemptI18n           = "EXEMPT_I18N"
)

// Diagnostic is a non-fatal observation made while building the documentation.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Source   string   `json:"source"`
	Line     int      `json:"line,omitempty"`
	Action   string   `json:"action,omitempty"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint,omitempty"`
}

// Warning builds a warning diagnostic.
func Warning(code, source, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Source:   source,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Info builds an informational diagnostic.
func Info(code, source, format string, args ...any) Diagnostic {
	d := Warning(code, source, format, args...)
	d.Severity = SeverityInfo
	return d
}

// String renders the diagnostic on a single line.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Source)
	if d.Line > 0 {
		sb.WriteString(fmt.Sprintf(":%d", d.Line))
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(d.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// Diagnostics is an ordered collection of diagnostics.
type Diagnostics []Diagnostic

// Count returns the number of diagnostics with the given severity.
func (ds Diagnostics) Count(sev Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// ByCode returns the diagnostics carrying the given code, in order.
func (ds Diagnostics) ByCode(code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Sorted returns a copy ordered by source, then line, then action.
func (ds Diagnostics) Sorted() Diagnostics {
	out := make(Diagnostics, len(ds))
	copy(out, ds)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Action < out[j].Action
	})
	return out
}
