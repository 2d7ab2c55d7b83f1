// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/turbobarcam/tbctools/internal/config"
	"github.com/turbobarcam/tbctools/pkg/core/models"
	"github.com/turbobarcam/tbctools/pkg/services"
)

func newTestReporter(detailed bool) (*ErrorReporter, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewErrorReporter(detailed, true)
	r.Out = &buf
	return r, &buf
}

func TestNewErrorReporter(t *testing.T) {
	tests := []struct {
		name     string
		detailed bool
		noColor  bool
		expected ErrorDisplayMode
	}{
		{name: "simple mode", expected: ErrorDisplaySimple},
		{name: "detailed mode", detailed: true, expected: ErrorDisplayDetailed},
		{name: "no color mode", noColor: true, expected: ErrorDisplaySimple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewErrorReporter(tt.detailed, tt.noColor)
			assert.Equal(t, tt.expected, r.Mode)
			assert.Equal(t, tt.noColor, r.NoColor)
			assert.NotNil(t, r.Out)
		})
	}
}

func TestReport(t *testing.T) {
	gitErr := services.WrapGitError("commit", git.ErrEmptyCommit, services.GitErrorContext{RepoPath: "/addon"})

	tests := []struct {
		name     string
		detailed bool
		err      error
		contains []string
		absent   []string
	}{
		{
			name:     "git error",
			err:      gitErr,
			contains: []string{"Error: There are no staged changes to commit", "Repository: /addon", "Quick fixes:", "Info:"},
		},
		{
			name:     "git error detailed",
			detailed: true,
			err:      gitErr,
			contains: []string{"Git commit Operation Failed", "Code: NOTHING_TO_COMMIT", "Troubleshooting Steps:"},
			absent:   []string{"Quick fixes:"},
		},
		{
			name:     "release error wrapping git error",
			err:      &services.ReleaseError{Step: services.StepCommit, Err: gitErr},
			contains: []string{"release stopped at the commit step", "There are no staged changes to commit"},
		},
		{
			name:     "release error wrapping plain error",
			err:      &services.ReleaseError{Step: services.StepArchive, Err: errors.New("disk full")},
			contains: []string{"release stopped at the archive step", "Error: disk full"},
		},
		{
			name: "validation errors",
			err: fmt.Errorf("load: %w", config.ValidationErrors{
				{Field: "log_level", Value: "loud", Message: "unknown log level"},
				{Field: "paths.actions", Message: "required field is missing"},
			}),
			contains: []string{"invalid configuration", "log_level: unknown log level (loud)", "paths.actions: required field is missing"},
		},
		{
			name:     "generic error",
			err:      errors.New("boom"),
			contains: []string{"Error: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestReporter(tt.detailed)
			r.Report(tt.err)

			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestReportNil(t *testing.T) {
	r, buf := newTestReporter(false)
	r.Report(nil)
	assert.Empty(t, buf.String())
}

func TestDiagnostics(t *testing.T) {
	r, buf := newTestReporter(false)

	unparseable := models.Warning(models.CodeUnparseableBind, "uikeys.txt", "cannot parse %q", "garbage")
	unparseable.Line = 6
	missing := models.Warning(models.CodeI18nWithoutAction, "i18n.json", "not registered")
	missing.Action = "turbobarcam_orbit_rset"
	missing.Hint = `did you mean "turbobarcam_orbit_reset"?`

	exempt := models.Info(models.CodeExemptI18n, "i18n.json", "documented without action")

	r.Diagnostics(models.Diagnostics{unparseable, missing, exempt})

	assert.Equal(t,
		"warning[UNPARSEABLE_BIND] uikeys.txt:6: cannot parse \"garbage\"\n"+
			"warning[I18N_WITHOUT_ACTION] i18n.json: not registered (did you mean \"turbobarcam_orbit_reset\"?)\n"+
			"info[EXEMPT_I18N] i18n.json: documented without action\n"+
			"2 warning(s), 1 info\n",
		buf.String())
}

func TestDiff(t *testing.T) {
	r, buf := newTestReporter(false)
	diff := "--- a.md\n+++ a.md (generated)\n@@ -1 +1 @@\n-old\n+new\n"

	r.Diff(diff)
	assert.Equal(t, diff, buf.String())
}
