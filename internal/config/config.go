// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

// Package config provides configuration management for tbctools
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppName         = "tbctools"
	DefaultLogLevel = "info"
	ConfigName      = "tbctools"
	EnvPrefix       = "TBC"
)

// Flags represents CLI flags
type Flags struct {
	LogLevel   *string
	ConfigFile *string
	Root       *string
	NoColor    *bool
}

// NewFlags creates a new Flags instance
func NewFlags() *Flags {
	logLevel := DefaultLogLevel

	return &Flags{
		LogLevel:   &logLevel,
		ConfigFile: new(string),
		Root:       new(string),
		NoColor:    new(bool),
	}
}

// Config represents the complete application configuration
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// Project root every relative path is resolved against
	Root string `mapstructure:"root"`

	Paths    PathsConfig    `mapstructure:"paths"`
	Docs     DocsConfig     `mapstructure:"docs"`
	Keybinds KeybindsConfig `mapstructure:"keybinds"`
	Release  ReleaseConfig  `mapstructure:"release"`
}

// PathsConfig locates the generator inputs and outputs
type PathsConfig struct {
	Actions  string `mapstructure:"actions"`
	I18n     string `mapstructure:"i18n"`
	Keybinds string `mapstructure:"keybinds"`
	Markdown string `mapstructure:"markdown"`
	Markup   string `mapstructure:"markup"`
	// Optional YAML mode table; empty means the built-in table
	Modes string `mapstructure:"modes"`
}

// DocsConfig controls the generated documents
type DocsConfig struct {
	Title        string `mapstructure:"title"`
	Intro        string `mapstructure:"intro"`
	ActionPrefix string `mapstructure:"action_prefix"`
	Stylesheet   string `mapstructure:"stylesheet"`
}

// KeybindsConfig tunes the uikeys scanner
type KeybindsConfig struct {
	KeyStrip          string   `mapstructure:"key_strip"`
	ChainMarker       string   `mapstructure:"chain_marker"`
	ChainSeparator    string   `mapstructure:"chain_separator"`
	ForceMarker       string   `mapstructure:"force_marker"`
	IgnoredDirectives []string `mapstructure:"ignored_directives"`
}

// ReleaseConfig controls archive naming and the release commit
type ReleaseConfig struct {
	ArchiveDir    string `mapstructure:"archive_dir"`
	ArchivePrefix string `mapstructure:"archive_prefix"`
	SourceDir     string `mapstructure:"source_dir"`
	CommitMessage string `mapstructure:"commit_message"`
	UseSystemGit  bool   `mapstructure:"use_system_git"`
	AuthorName    string `mapstructure:"author_name"`
	AuthorEmail   string `mapstructure:"author_email"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Root:     ".",
		Paths: PathsConfig{
			Actions:  "LuaUI/TurboBarCam/actions.lua",
			I18n:     "LuaUI/TurboBarCam/i18n.json",
			Keybinds: "LuaUI/TurboBarCam/turbobarcam.uikeys.txt",
			Markdown: "README_KEYBINDS.md",
			Markup:   "LuaUI/TurboBarCam/rml/keybinds.rml",
		},
		Docs: DocsConfig{
			Title:        "TurboBarCam Keybinds",
			Intro:        "This document outlines the available actions for TurboBarCam, their descriptions, parameters, and configured keybinds.",
			ActionPrefix: "turbobarcam_",
			Stylesheet:   "keybinds.rcss",
		},
		Keybinds: KeybindsConfig{
			KeyStrip:          "sc_",
			ChainMarker:       "chain",
			ChainSeparator:    "|",
			ForceMarker:       "force",
			IgnoredDirectives: []string{"unbindkeyset", "unbind", "unbindaction", "removebind"},
		},
		Release: ReleaseConfig{
			ArchiveDir:    ".",
			ArchivePrefix: "turbobarcam",
			SourceDir:     "LuaUI",
			CommitMessage: "Dist %s",
		},
	}
}

// LoadConfig loads configuration from the given file (or the default search
// path when empty) and TBC_* environment variables using viper
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so environment overrides apply even
// without a config file
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("root", d.Root)

	v.SetDefault("paths.actions", d.Paths.Actions)
	v.SetDefault("paths.i18n", d.Paths.I18n)
	v.SetDefault("paths.keybinds", d.Paths.Keybinds)
	v.SetDefault("paths.markdown", d.Paths.Markdown)
	v.SetDefault("paths.markup", d.Paths.Markup)
	v.SetDefault("paths.modes", d.Paths.Modes)

	v.SetDefault("docs.title", d.Docs.Title)
	v.SetDefault("docs.intro", d.Docs.Intro)
	v.SetDefault("docs.action_prefix", d.Docs.ActionPrefix)
	v.SetDefault("docs.stylesheet", d.Docs.Stylesheet)

	v.SetDefault("keybinds.key_strip", d.Keybinds.KeyStrip)
	v.SetDefault("keybinds.chain_marker", d.Keybinds.ChainMarker)
	v.SetDefault("keybinds.chain_separator", d.Keybinds.ChainSeparator)
	v.SetDefault("keybinds.force_marker", d.Keybinds.ForceMarker)
	v.SetDefault("keybinds.ignored_directives", d.Keybinds.IgnoredDirectives)

	v.SetDefault("release.archive_dir", d.Release.ArchiveDir)
	v.SetDefault("release.archive_prefix", d.Release.ArchivePrefix)
	v.SetDefault("release.source_dir", d.Release.SourceDir)
	v.SetDefault("release.commit_message", d.Release.CommitMessage)
	v.SetDefault("release.use_system_git", d.Release.UseSystemGit)
	v.SetDefault("release.author_name", d.Release.AuthorName)
	v.SetDefault("release.author_email", d.Release.AuthorEmail)
}

// Resolve returns path joined to the project root unless it is absolute
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}
