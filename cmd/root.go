// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"github.com/turbobarcam/tbctools/internal/config"
	"github.com/turbobarcam/tbctools/internal/slogs"
	"github.com/turbobarcam/tbctools/pkg/cli"
)

const (
	appName      = config.AppName
	shortAppDesc = "Keybind documentation and release tooling for TurboBarCam."
	longAppDesc  = "tbctools generates the TurboBarCam keybind reference from the add-on sources and packages versioned releases."

	// Commands carrying this annotation run without loading the configuration
	annotationNoConfig = "tbctools/no-config"
)

var version, commit, date = "dev", "dev", "N/A"

type flagError struct{ err error }

func (e flagError) Error() string { return e.err.Error() }

// app carries the state shared by every subcommand of one invocation
type app struct {
	flags  *config.Flags
	config *config.Config
	logger *slog.Logger
	runID  string

	out    io.Writer
	errOut io.Writer
	logOut io.Writer
}

func newApp() *app {
	return &app{
		flags:  config.NewFlags(),
		logger: slog.Default(),
		out:    colorable.NewColorableStdout(),
		errOut: colorable.NewColorableStderr(),
		logOut: colorable.NewColorableStderr(),
	}
}

// Execute root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		if errors.As(err, &flagError{}) {
			fmt.Fprintf(a.errOut, "Error: %v\nRun '%s --help' for usage.\n", err, appName)
		} else {
			a.logger.Error("Command execution failed", slogs.Error, err)
			a.reporter(a.errOut).Report(err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             shortAppDesc,
		Long:              longAppDesc,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return flagError{err: err}
	})
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	initFlags(root, a.flags)

	root.AddCommand(generateCmd(a), releaseCmd(a), versionCmd(a), cliDocsCmd(a))

	return root
}

func initFlags(root *cobra.Command, flags *config.Flags) {
	root.PersistentFlags().StringVarP(
		flags.ConfigFile,
		"config", "c",
		"",
		"Specify the config file (default is ./tbctools.yaml or ~/.config/tbctools/tbctools.yaml)",
	)
	root.PersistentFlags().StringVarP(
		flags.Root,
		"root", "r",
		"",
		"Specify the add-on project root (default is the current directory)",
	)
	root.PersistentFlags().StringVarP(
		flags.LogLevel,
		"logLevel", "l",
		config.DefaultLogLevel,
		"Specify a log level (error, warn, info, debug)",
	)
	root.PersistentFlags().BoolVar(
		flags.NoColor,
		"no-color",
		false,
		"Disable coloured output",
	)
}

// setup wires logging and loads the configuration before a subcommand runs
func (a *app) setup(cmd *cobra.Command) error {
	if *a.flags.NoColor {
		color.NoColor = true
	}

	a.runID = uuid.NewString()
	a.setLogger(*a.flags.LogLevel)

	if cmd.Annotations[annotationNoConfig] == "true" {
		return nil
	}

	cfg, err := config.LoadConfig(a.configFile())
	if err != nil {
		return err
	}

	if *a.flags.Root != "" {
		cfg.Root = *a.flags.Root
	}
	if cmd.Flags().Changed("logLevel") {
		cfg.LogLevel = *a.flags.LogLevel
	}
	a.setLogger(cfg.LogLevel)

	a.config = cfg
	a.logger.Debug("configuration loaded",
		slogs.Path, cfg.Root,
		slogs.Source, a.configFile())

	return nil
}

// configFile prefers an explicit --config, then a tbctools.yaml in --root
func (a *app) configFile() string {
	if *a.flags.ConfigFile != "" || *a.flags.Root == "" {
		return *a.flags.ConfigFile
	}

	candidate := filepath.Join(*a.flags.Root, config.ConfigName+".yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

func (a *app) setLogger(level string) {
	handler := tint.NewHandler(a.logOut, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.Kitchen,
		NoColor:    *a.flags.NoColor,
	})
	a.logger = slog.New(handler).With(slogs.RunID, a.runID)
	slog.SetDefault(a.logger)
}

func (a *app) reporter(w io.Writer) *cli.ErrorReporter {
	detailed := a.config != nil && a.config.LogLevel == "debug" || *a.flags.LogLevel == "debug"

	r := cli.NewErrorReporter(detailed, *a.flags.NoColor)
	r.Out = w
	return r
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
