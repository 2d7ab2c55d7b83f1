// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd(a *app) *cobra.Command {
	var short bool

	command := cobra.Command{
		Use:         "version",
		Short:       "Print version/build info",
		Long:        "Print version/build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		Run: func(*cobra.Command, []string) {
			printVersion(a.out, short)
		},
	}

	command.Flags().BoolVarP(&short, "short", "s", false, "Prints tbctools version info in short format")

	return &command
}

func printVersion(w io.Writer, short bool) {
	const fmat = "%-20s %s\n"

	if short {
		fmt.Fprintf(w, "%s %s\n", appName, version)
		return
	}

	fmt.Fprintf(w, fmat, "Version:", version)
	fmt.Fprintf(w, fmat, "Commit:", commit)
	fmt.Fprintf(w, fmat, "Date:", date)
	fmt.Fprintf(w, fmat, "Go:", runtime.Version())
}
