// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/turbobarcam/tbctools/internal/config"
	"github.com/turbobarcam/tbctools/internal/slogs"
	"github.com/turbobarcam/tbctools/pkg/core/models"
	"github.com/turbobarcam/tbctools/pkg/release"
)

// ReleaseStep names a stage of the release routine
type ReleaseStep string

const (
	StepScan     ReleaseStep = "scan"
	StepValidate ReleaseStep = "validate"
	StepGenerate ReleaseStep = "generate"
	StepArchive  ReleaseStep = "archive"
	StepCommit   ReleaseStep = "commit"
)

// ReleaseError reports the step at which a release stopped.
// Side effects of earlier steps are left in place.
type ReleaseError struct {
	Step ReleaseStep
	Err  error
}

func (e *ReleaseError) Error() string {
	return fmt.Sprintf("release failed at %s step: %v", e.Step, e.Err)
}

func (e *ReleaseError) Unwrap() error {
	return e.Err
}

func stepError(step ReleaseStep, err error) *ReleaseError {
	return &ReleaseError{Step: step, Err: err}
}

// ReleaseConfig holds resolved release settings
type ReleaseConfig struct {
	RepoPath      string
	ArchiveDir    string
	ArchivePrefix string
	SourceDir     string
	CommitMessage string
}

// ReleaseConfigFrom resolves the release settings of cfg against its root
func ReleaseConfigFrom(cfg *config.Config) ReleaseConfig {
	return ReleaseConfig{
		RepoPath:      cfg.Root,
		ArchiveDir:    cfg.Resolve(cfg.Release.ArchiveDir),
		ArchivePrefix: cfg.Release.ArchivePrefix,
		SourceDir:     cfg.Resolve(cfg.Release.SourceDir),
		CommitMessage: cfg.Release.CommitMessage,
	}
}

// ReleaseOptions controls how far the release routine goes
type ReleaseOptions struct {
	// DryRun stops after computing the next version
	DryRun bool
	// NoCommit stops after writing the archive
	NoCommit bool
}

// ReleasePlan is the computed release
type ReleasePlan struct {
	Current       release.Version
	Next          release.Version
	ArchivePath   string
	CommitMessage string
}

// ReleaseReport describes what a release run did
type ReleaseReport struct {
	// Found is false when no prior archive exists; nothing else is set then
	Found     bool
	Plan      ReleasePlan
	DryRun    bool
	Generate  *GenerateReport
	Archive   *release.ArchiveStats
	Commit    string
	StartedAt time.Time
	Duration  time.Duration
}

// ReleaseService bumps the patch version, regenerates docs, packages the add-on and commits it
type ReleaseService struct {
	config ReleaseConfig
	docgen *DocGenService
	git    *GitService
	logger *slog.Logger
}

// NewReleaseService creates a new release service
func NewReleaseService(cfg ReleaseConfig, docgen *DocGenService, gitService *GitService, logger *slog.Logger) *ReleaseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReleaseService{
		config: cfg,
		docgen: docgen,
		git:    gitService,
		logger: logger,
	}
}

// Plan scans the archive directory and computes the next release.
// The boolean is false when no prior archive exists.
func (s *ReleaseService) Plan() (ReleasePlan, bool, error) {
	current, found, err := release.LatestInDir(s.config.ArchiveDir, s.config.ArchivePrefix)
	if err != nil || !found {
		return ReleasePlan{}, false, err
	}

	next := current.NextPatch()
	return ReleasePlan{
		Current:       current,
		Next:          next,
		ArchivePath:   filepath.Join(s.config.ArchiveDir, release.ArchiveName(s.config.ArchivePrefix, next)),
		CommitMessage: fmt.Sprintf(s.config.CommitMessage, next.String()),
	}, true, nil
}

// Run executes the release routine. Steps run in order and a failing step
// returns a *ReleaseError without undoing earlier steps.
func (s *ReleaseService) Run(ctx context.Context, opts ReleaseOptions) models.Result[ReleaseReport] {
	report := ReleaseReport{
		DryRun:    opts.DryRun,
		StartedAt: time.Now(),
	}

	plan, found, err := s.Plan()
	if err != nil {
		return models.Err[ReleaseReport](stepError(StepScan, err))
	}
	if !found {
		s.logger.Info("no existing release archive found, nothing to release",
			slogs.Path, s.config.ArchiveDir)
		return models.Ok(s.finish(report))
	}

	report.Found = true
	report.Plan = plan
	s.logger.Info("computed next release",
		slogs.Version, plan.Next.String(),
		slogs.Current, plan.Current.String(),
		slogs.Archive, plan.ArchivePath)

	if opts.DryRun {
		return models.Ok(s.finish(report))
	}

	if !opts.NoCommit {
		if err := s.validateRepository(); err != nil {
			return models.Err[ReleaseReport](stepError(StepValidate, err))
		}
	}

	if err := ctx.Err(); err != nil {
		return models.Err[ReleaseReport](stepError(StepGenerate, err))
	}
	genResult := s.docgen.Generate(ctx, GenerateOptions{Format: FormatAll})
	if genResult.IsErr() {
		return models.Err[ReleaseReport](stepError(StepGenerate, genResult.Error()))
	}
	gen := genResult.Unwrap()
	report.Generate = &gen

	stats, err := release.WriteArchive(s.config.SourceDir, plan.ArchivePath)
	if err != nil {
		return models.Err[ReleaseReport](stepError(StepArchive, err))
	}
	report.Archive = &stats
	s.logger.Info("wrote release archive",
		slogs.Archive, stats.Path,
		slogs.Files, stats.Files,
		slogs.Bytes, stats.Bytes)

	if opts.NoCommit {
		return models.Ok(s.finish(report))
	}

	addResult := s.git.Add(ctx, GitAddOptions{
		RepoPath: s.config.RepoPath,
		Paths:    []string{plan.ArchivePath},
		Force:    true,
		All:      true,
	})
	if addResult.IsErr() {
		return models.Err[ReleaseReport](stepError(StepCommit, addResult.Error()))
	}

	commitResult := s.git.Commit(ctx, s.config.RepoPath, plan.CommitMessage)
	if commitResult.IsErr() {
		return models.Err[ReleaseReport](stepError(StepCommit, commitResult.Error()))
	}
	report.Commit = commitResult.Unwrap()
	s.logger.Info("committed release",
		slogs.Commit, report.Commit,
		slogs.Version, plan.Next.String())

	return models.Ok(s.finish(report))
}

func (s *ReleaseService) finish(report ReleaseReport) ReleaseReport {
	report.Duration = time.Since(report.StartedAt)
	return report
}

func (s *ReleaseService) validateRepository() error {
	errCtx := GitErrorContext{RepoPath: s.config.RepoPath, Backend: s.git.backend()}

	result := s.git.Validate(s.config.RepoPath)
	validation, err := result.Value()
	if err != nil {
		return WrapGitError("open", err, errCtx)
	}
	if !validation.IsGitRepo {
		return WrapGitError("open", fmt.Errorf("%w: %s", git.ErrRepositoryNotExists, s.config.RepoPath), errCtx)
	}
	if !validation.IsValid {
		return WrapGitError("open", errors.New(strings.Join(validation.Errors, "; ")), errCtx)
	}

	s.logger.Debug("validated repository",
		slogs.Path, validation.Root,
		slogs.Branch, validation.CurrentBranch,
		slogs.Dirty, validation.IsDirty)
	return nil
}
