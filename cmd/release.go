// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/turbobarcam/tbctools/pkg/services"
)

func releaseCmd(a *app) *cobra.Command {
	var opts services.ReleaseOptions

	command := cobra.Command{
		Use:   "release",
		Short: "Package and commit the next patch release",
		Long: `Package and commit the next patch release.

Finds the highest <prefix>_vX.Y.Z.zip archive, bumps the patch number, regenerates
the documentation, zips the add-on source tree and commits the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.config

			gitService := services.NewGitService(services.GitServiceConfig{
				UseSystemGit: cfg.Release.UseSystemGit,
				AuthorName:   cfg.Release.AuthorName,
				AuthorEmail:  cfg.Release.AuthorEmail,
			})
			docgen := services.NewDocGenService(services.DocGenConfigFrom(cfg), a.logger)
			service := services.NewReleaseService(services.ReleaseConfigFrom(cfg), docgen, gitService, a.logger)

			report, err := service.Run(cmd.Context(), opts).Value()
			if err != nil {
				return err
			}

			printRelease(a, report, cfg.Release.ArchivePrefix)
			return nil
		},
	}

	command.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Only compute and print the next version")
	command.Flags().BoolVar(&opts.NoCommit, "no-commit", false, "Write the archive but skip the git commit")

	return &command
}

func printRelease(a *app, report services.ReleaseReport, prefix string) {
	const fmat = "%-17s %s\n"

	if !report.Found {
		fmt.Fprintf(a.out, "No existing %s_v*.zip archive found; nothing to release.\n", prefix)
		return
	}

	if report.Generate != nil {
		a.reporter(a.errOut).Diagnostics(report.Generate.Diagnostics)
	}

	fmt.Fprintf(a.out, fmat, "Current version:", report.Plan.Current)
	fmt.Fprintf(a.out, fmat, "Next version:", report.Plan.Next)
	fmt.Fprintf(a.out, fmat, "Archive:", report.Plan.ArchivePath)

	if report.DryRun {
		fmt.Fprintf(a.out, fmat, "Commit message:", report.Plan.CommitMessage)
		fmt.Fprintln(a.out, "Dry run: nothing was written.")
		return
	}

	if report.Archive != nil {
		fmt.Fprintf(a.out, fmat, "Contents:", fmt.Sprintf("%d files, %s", report.Archive.Files, formatBytes(report.Archive.Bytes)))
	}
	if report.Commit != "" {
		fmt.Fprintf(a.out, fmat, "Commit:", report.Commit)
	}
	fmt.Fprintf(a.out, "Released %s in %s.\n", report.Plan.Next, report.Duration.Round(time.Millisecond))
}

// formatBytes formats a byte count for humans
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
