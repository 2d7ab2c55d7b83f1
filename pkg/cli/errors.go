// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/turbobarcam/tbctools/internal/config"
	"github.com/turbobarcam/tbctools/pkg/core/models"
	"github.com/turbobarcam/tbctools/pkg/services"
)

// ErrorDisplayMode controls how errors are displayed
type ErrorDisplayMode int

const (
	// ErrorDisplaySimple shows the message and the top suggestions
	ErrorDisplaySimple ErrorDisplayMode = iota
	// ErrorDisplayDetailed shows full troubleshooting information
	ErrorDisplayDetailed
)

const maxQuickFixes = 3

// ErrorReporter prints errors, diagnostics and diffs for CLI commands
type ErrorReporter struct {
	Mode    ErrorDisplayMode
	NoColor bool
	Out     io.Writer
}

// NewErrorReporter creates a reporter writing to stderr
func NewErrorReporter(detailed bool, noColor bool) *ErrorReporter {
	mode := ErrorDisplaySimple
	if detailed {
		mode = ErrorDisplayDetailed
	}

	return &ErrorReporter{
		Mode:    mode,
		NoColor: noColor,
		Out:     os.Stderr,
	}
}

// Report formats and displays err
func (r *ErrorReporter) Report(err error) {
	if err == nil {
		return
	}

	var relErr *services.ReleaseError
	if errors.As(err, &relErr) {
		red := r.colorFunc(color.FgRed)
		fmt.Fprintf(r.Out, "%s release stopped at the %s step\n", red("Error:"), relErr.Step)
		err = relErr.Err
	}

	var gitErr *services.GitError
	if errors.As(err, &gitErr) {
		r.reportGitError(gitErr)
		return
	}

	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		r.reportValidationErrors(verrs)
		return
	}

	r.reportGenericError(err)
}

func (r *ErrorReporter) reportGitError(gitErr *services.GitError) {
	if r.Mode == ErrorDisplayDetailed {
		fmt.Fprintf(r.Out, "%s\n", gitErr.GetDetailedMessage())
		return
	}

	red := r.colorFunc(color.FgRed)
	yellow := r.colorFunc(color.FgYellow)
	cyan := r.colorFunc(color.FgCyan)

	fmt.Fprintf(r.Out, "%s %s\n", red("Error:"), gitErr.UserMessage)

	if gitErr.RepoPath != "" {
		fmt.Fprintf(r.Out, "Repository: %s\n", gitErr.RepoPath)
	}

	if len(gitErr.Suggestions) > 0 {
		fmt.Fprintf(r.Out, "\n%s\n", yellow("Quick fixes:"))
		n := min(len(gitErr.Suggestions), maxQuickFixes)
		for _, s := range gitErr.Suggestions[:n] {
			fmt.Fprintf(r.Out, "  • %s\n", s)
		}
	}

	if gitErr.IsRecoverable {
		fmt.Fprintf(r.Out, "\n%s Files written before the failure were kept.\n", cyan("Info:"))
	}
}

func (r *ErrorReporter) reportValidationErrors(verrs config.ValidationErrors) {
	red := r.colorFunc(color.FgRed)

	fmt.Fprintf(r.Out, "%s invalid configuration\n", red("Error:"))
	for _, v := range verrs {
		if v.Value != "" {
			fmt.Fprintf(r.Out, "  • %s: %s (%s)\n", v.Field, v.Message, v.Value)
		} else {
			fmt.Fprintf(r.Out, "  • %s: %s\n", v.Field, v.Message)
		}
	}
}

func (r *ErrorReporter) reportGenericError(err error) {
	red := r.colorFunc(color.FgRed)
	fmt.Fprintf(r.Out, "%s %v\n", red("Error:"), err)
}

// Diagnostics prints one line per diagnostic followed by a summary
func (r *ErrorReporter) Diagnostics(diags models.Diagnostics) {
	if len(diags) == 0 {
		return
	}

	yellow := r.colorFunc(color.FgYellow)
	blue := r.colorFunc(color.FgBlue)
	cyan := r.colorFunc(color.FgCyan)

	for _, d := range diags {
		label := yellow("warning")
		if d.Severity == models.SeverityInfo {
			label = blue("info")
		}

		location := d.Source
		if d.Line > 0 {
			location = fmt.Sprintf("%s:%d", d.Source, d.Line)
		}

		fmt.Fprintf(r.Out, "%s[%s] %s: %s", label, d.Code, location, d.Message)
		if d.Hint != "" {
			fmt.Fprintf(r.Out, " %s", cyan("("+d.Hint+")"))
		}
		fmt.Fprintln(r.Out)
	}

	fmt.Fprintf(r.Out, "%d warning(s), %d info\n",
		diags.Count(models.SeverityWarning), diags.Count(models.SeverityInfo))
}

// Diff prints a unified diff with added and removed lines coloured
func (r *ErrorReporter) Diff(diff string) {
	red := r.colorFunc(color.FgRed)
	green := r.colorFunc(color.FgGreen)
	cyan := r.colorFunc(color.FgCyan)

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			fmt.Fprintln(r.Out, text)
		case strings.HasPrefix(text, "@@"):
			fmt.Fprintln(r.Out, cyan(text))
		case strings.HasPrefix(text, "+"):
			fmt.Fprintln(r.Out, green(text))
		case strings.HasPrefix(text, "-"):
			fmt.Fprintln(r.Out, red(text))
		default:
			fmt.Fprintln(r.Out, text)
		}
	}
}

// colorFunc returns a color function or identity function if colors are disabled
func (r *ErrorReporter) colorFunc(attr color.Attribute) func(...interface{}) string {
	if r.NoColor {
		return func(a ...interface{}) string {
			return fmt.Sprint(a...)
		}
	}
	return color.New(attr).SprintFunc()
}
