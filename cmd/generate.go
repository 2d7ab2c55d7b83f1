// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/turbobarcam/tbctools/internal/slogs"
	"github.com/turbobarcam/tbctools/pkg/services"
)

func generateCmd(a *app) *cobra.Command {
	var (
		check  bool
		format string
	)

	command := cobra.Command{
		Use:   "generate",
		Short: "Generate the keybind documentation",
		Long: `Generate the keybind documentation from actions.lua, i18n.json and the uikeys file.

Writes the Markdown reference and the in-game RML fragment. With --check nothing
is written; stale outputs are printed as a unified diff and the command fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := services.ParseFormat(format)
			if err != nil {
				return flagError{err: err}
			}

			service := services.NewDocGenService(services.DocGenConfigFrom(a.config), a.logger)
			report, err := service.Generate(cmd.Context(), services.GenerateOptions{
				Format: f,
				Check:  check,
			}).Value()
			if err != nil {
				return err
			}

			a.reporter(a.errOut).Diagnostics(report.Diagnostics)
			a.logger.Info("documentation generated",
				slogs.Actions, report.Actions,
				slogs.Groups, report.Groups,
				slogs.Diagnostics, len(report.Diagnostics))

			if check {
				return printCheck(a, report)
			}

			const fmat = "%-10s %s\n"
			for _, o := range report.Outputs {
				status := "unchanged"
				if o.Changed {
					status = "wrote"
				}
				fmt.Fprintf(a.out, fmat, status, o.Path)
			}
			fmt.Fprintf(a.out, "%d actions in %d groups\n", report.Actions, report.Groups)

			return nil
		},
	}

	command.Flags().BoolVar(&check, "check", false, "Fail with a diff instead of writing when outputs are out of date")
	command.Flags().StringVarP(&format, "format", "f", string(services.FormatAll), "Output format (markdown, rml, all)")

	return &command
}

func printCheck(a *app, report services.GenerateReport) error {
	stale := report.Stale()
	if len(stale) == 0 {
		fmt.Fprintln(a.out, "Documentation is up to date")
		return nil
	}

	r := a.reporter(a.out)
	for _, o := range stale {
		r.Diff(o.Diff)
	}
	return fmt.Errorf("%w: %d file(s) need regeneration, run '%s generate'", services.ErrStaleOutput, len(stale), appName)
}
