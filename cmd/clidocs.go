// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/turbobarcam/tbctools/internal/slogs"
)

func cliDocsCmd(a *app) *cobra.Command {
	var (
		dir string
		man bool
	)

	command := cobra.Command{
		Use:         "gen-cli-docs",
		Short:       "Generate the tbctools command reference",
		Long:        "Generate Markdown (or man page) reference documentation for every tbctools command.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}

			root := cmd.Root()
			var err error
			if man {
				err = doc.GenManTree(root, &doc.GenManHeader{
					Title:   "TBCTOOLS",
					Section: "1",
					Source:  appName + " " + version,
				}, dir)
			} else {
				err = doc.GenMarkdownTree(root, dir)
			}
			if err != nil {
				return fmt.Errorf("failed to generate CLI docs: %w", err)
			}

			a.logger.Info("generated CLI docs", slogs.Path, dir)
			fmt.Fprintf(a.out, "CLI reference written to %s\n", dir)
			return nil
		},
	}

	command.Flags().StringVarP(&dir, "dir", "d", "docs/cli", "Output directory")
	command.Flags().BoolVar(&man, "man", false, "Generate man pages instead of Markdown")

	return &command
}
