// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
	"github.com/turbobarcam/tbctools/internal/config"
	"github.com/turbobarcam/tbctools/internal/slogs"
	"github.com/turbobarcam/tbctools/pkg/catalog"
	"github.com/turbobarcam/tbctools/pkg/core/models"
	"github.com/turbobarcam/tbctools/pkg/extract"
	"github.com/turbobarcam/tbctools/pkg/render"
)

var (
	// ErrInputMissing is returned when a generator input file does not exist
	ErrInputMissing = errors.New("input file missing")
	// ErrStaleOutput reports a check run whose outputs differ from the files on disk
	ErrStaleOutput = errors.New("generated output is stale")
)

// Format selects the generated documents
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatRML      Format = "rml"
	FormatAll      Format = "all"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatMarkdown, FormatRML, FormatAll:
		return f, nil
	case "":
		return FormatAll, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected markdown, rml or all)", s)
	}
}

func (f Format) includes(o Format) bool {
	return f == FormatAll || f == o
}

// DocGenConfig holds resolved paths and document settings
type DocGenConfig struct {
	ActionsPath  string
	I18nPath     string
	KeybindsPath string
	ModesPath    string

	MarkdownPath string
	MarkupPath   string

	Title        string
	Intro        string
	ActionPrefix string
	Stylesheet   string

	Keybinds extract.KeybindOptions
}

// DocGenConfigFrom resolves the generator settings of cfg against its root
func DocGenConfigFrom(cfg *config.Config) DocGenConfig {
	return DocGenConfig{
		ActionsPath:  cfg.Resolve(cfg.Paths.Actions),
		I18nPath:     cfg.Resolve(cfg.Paths.I18n),
		KeybindsPath: cfg.Resolve(cfg.Paths.Keybinds),
		ModesPath:    cfg.Resolve(cfg.Paths.Modes),
		MarkdownPath: cfg.Resolve(cfg.Paths.Markdown),
		MarkupPath:   cfg.Resolve(cfg.Paths.Markup),
		Title:        cfg.Docs.Title,
		Intro:        cfg.Docs.Intro,
		ActionPrefix: cfg.Docs.ActionPrefix,
		Stylesheet:   cfg.Docs.Stylesheet,
		Keybinds: extract.KeybindOptions{
			Source:            cfg.Paths.Keybinds,
			ActionPrefix:      cfg.Docs.ActionPrefix,
			KeyStrip:          cfg.Keybinds.KeyStrip,
			ChainMarker:       cfg.Keybinds.ChainMarker,
			ChainSeparator:    cfg.Keybinds.ChainSeparator,
			ForceMarker:       cfg.Keybinds.ForceMarker,
			IgnoredDirectives: cfg.Keybinds.IgnoredDirectives,
		},
	}
}

// GenerateOptions controls a single generator run
type GenerateOptions struct {
	Format Format
	// Check compares instead of writing
	Check bool
}

// Output describes one generated document
type Output struct {
	Format  Format
	Path    string
	Content string
	// Changed reports that the file on disk differs from Content
	Changed bool
	// Diff is a unified diff from the file on disk, set on check runs
	Diff string
}

// GenerateReport summarises a generator run
type GenerateReport struct {
	Actions     int
	Groups      int
	Outputs     []Output
	Diagnostics models.Diagnostics
}

// Stale returns the outputs whose file on disk is out of date
func (r GenerateReport) Stale() []Output {
	return lo.Filter(r.Outputs, func(o Output, _ int) bool {
		return o.Changed
	})
}

// DocGenService turns the add-on sources into keybind documentation
type DocGenService struct {
	config DocGenConfig
	logger *slog.Logger
}

// NewDocGenService creates a new documentation generator
func NewDocGenService(cfg DocGenConfig, logger *slog.Logger) *DocGenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocGenService{
		config: cfg,
		logger: logger,
	}
}

// Generate reads the inputs, builds the catalog and writes or checks the outputs.
// A check run writes nothing; stale outputs carry a diff in the report.
func (s *DocGenService) Generate(ctx context.Context, opts GenerateOptions) models.Result[GenerateReport] {
	if opts.Format == "" {
		opts.Format = FormatAll
	}

	if err := ctx.Err(); err != nil {
		return models.Err[GenerateReport](err)
	}

	cat, diags, err := s.build()
	if err != nil {
		return models.Err[GenerateReport](err)
	}

	doc := render.Shape(cat, render.Meta{Title: s.config.Title, Intro: s.config.Intro})

	report := GenerateReport{
		Actions:     cat.Len(),
		Groups:      len(doc.Sections),
		Diagnostics: diags,
	}

	if opts.Format.includes(FormatMarkdown) {
		report.Outputs = append(report.Outputs, Output{
			Format:  FormatMarkdown,
			Path:    s.config.MarkdownPath,
			Content: render.Markdown(doc),
		})
	}
	if opts.Format.includes(FormatRML) {
		rml, err := render.RML(doc, s.config.Stylesheet)
		if err != nil {
			return models.Err[GenerateReport](fmt.Errorf("failed to render markup: %w", err))
		}
		report.Outputs = append(report.Outputs, Output{
			Format:  FormatRML,
			Path:    s.config.MarkupPath,
			Content: rml,
		})
	}

	for i := range report.Outputs {
		out := &report.Outputs[i]
		if out.Path == "" {
			continue
		}

		current, err := os.ReadFile(out.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return models.Err[GenerateReport](fmt.Errorf("failed to read %s: %w", out.Path, err))
		}
		out.Changed = !bytes.Equal(current, []byte(out.Content))

		if opts.Check {
			if out.Changed {
				out.Diff = unifiedDiff(out.Path, string(current), out.Content)
			}
			continue
		}

		if !out.Changed {
			s.logger.Debug("output unchanged", slogs.Output, out.Path)
			continue
		}
		if err := writeOutput(out.Path, out.Content); err != nil {
			return models.Err[GenerateReport](err)
		}
		s.logger.Info("wrote output",
			slogs.Format, string(out.Format),
			slogs.Output, out.Path,
			slogs.Bytes, len(out.Content))
	}

	return models.Ok(report)
}

func (s *DocGenService) build() (*catalog.Catalog, models.Diagnostics, error) {
	prefix := s.config.ActionPrefix
	if prefix == "" {
		prefix = extract.DefaultActionPrefix
	}

	actionsSrc, err := readInput(s.config.ActionsPath)
	if err != nil {
		return nil, nil, err
	}
	i18nSrc, err := readInput(s.config.I18nPath)
	if err != nil {
		return nil, nil, err
	}
	keybindSrc, err := readInput(s.config.KeybindsPath)
	if err != nil {
		return nil, nil, err
	}

	actions := extract.Actions(string(actionsSrc), prefix)
	s.logger.Debug("extracted actions", slogs.Path, s.config.ActionsPath, slogs.Count, len(actions))

	i18n, err := extract.LoadI18n(i18nSrc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", s.config.I18nPath, err)
	}
	s.logger.Debug("loaded i18n", slogs.Path, s.config.I18nPath, slogs.Count, len(i18n))

	kbOpts := s.config.Keybinds
	kbOpts.ActionPrefix = prefix
	if kbOpts.Source == "" {
		kbOpts.Source = s.config.KeybindsPath
	}
	keybinds, kbDiags := extract.Keybinds(string(keybindSrc), kbOpts)
	s.logger.Debug("extracted keybinds", slogs.Path, s.config.KeybindsPath, slogs.Count, len(keybinds))

	modes := catalog.DefaultModeConfig()
	if s.config.ModesPath != "" {
		modes, err = catalog.LoadModeConfig(s.config.ModesPath)
		if err != nil {
			return nil, nil, err
		}
	}
	categorizer, err := catalog.NewCategorizer(modes)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid mode table: %w", err)
	}

	cat, buildDiags := catalog.Build(catalog.Inputs{
		Actions:       actions,
		I18n:          i18n,
		Keybinds:      keybinds,
		ActionsSource: s.config.ActionsPath,
		I18nSource:    s.config.I18nPath,
	}, categorizer)

	diags := append(models.Diagnostics(kbDiags), buildDiags...)
	for _, d := range diags.Sorted() {
		s.logger.Debug(d.Message,
			slogs.Code, d.Code,
			slogs.Source, d.Source,
			slogs.Line, d.Line,
			slogs.Action, d.Action)
	}

	return cat, diags.Sorted(), nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func unifiedDiff(path, current, generated string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(generated),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("--- %s\n+++ %s (generated)\n(diff unavailable: %v)\n", path, path, err)
	}
	return diff
}
