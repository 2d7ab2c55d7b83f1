// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/turbobarcam/tbctools/pkg/core/models"
)

const (
	backendGoGit  = "go-git"
	backendSystem = "system git"
)

// GitServiceConfig holds configuration for Git operations
type GitServiceConfig struct {
	// Use the git executable instead of go-git
	UseSystemGit bool
	// Commit author; empty falls back to the repository's git config
	AuthorName  string
	AuthorEmail string
}

// GitAddOptions holds options for staging files
type GitAddOptions struct {
	RepoPath string
	// Paths to stage, absolute or relative to RepoPath
	Paths []string
	// Stage Paths even when an ignore rule matches them
	Force bool
	// Stage every change in the worktree, honouring ignore rules
	All bool
}

// GitValidationResult holds validation results
type GitValidationResult struct {
	IsValid       bool
	IsGitRepo     bool
	Root          string
	CurrentBranch string
	IsDirty       bool
	LastCommit    string
	Errors        []string
}

// GitService stages and commits release artifacts using go-git or the git executable
type GitService struct {
	config GitServiceConfig
}

// NewGitService creates a new Git service with the given configuration
func NewGitService(cfg GitServiceConfig) *GitService {
	return &GitService{
		config: cfg,
	}
}

func (gs *GitService) backend() string {
	if gs.config.UseSystemGit {
		return backendSystem
	}
	return backendGoGit
}

// Validate reports whether repoPath lies inside a usable Git worktree
func (gs *GitService) Validate(repoPath string) models.Result[GitValidationResult] {
	result := GitValidationResult{
		IsValid: true,
		Errors:  []string{},
	}

	if _, err := os.Stat(repoPath); os.IsNotExist(err) {
		result.IsValid = false
		result.Errors = append(result.Errors, "path does not exist")
		return models.Ok(result)
	}

	repo, err := openRepository(repoPath)
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("not a git repository: %v", err))
		return models.Ok(result)
	}

	result.IsGitRepo = true

	head, err := repo.Head()
	if err == nil {
		if head.Name().IsBranch() {
			result.CurrentBranch = head.Name().Short()
		}
		result.LastCommit = head.Hash().String()
	}

	wt, err := repo.Worktree()
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("repository has no worktree: %v", err))
		return models.Ok(result)
	}
	result.Root = wt.Filesystem.Root()

	if status, err := wt.Status(); err == nil {
		result.IsDirty = !status.IsClean()
	}

	return models.Ok(result)
}

// Add stages the requested paths and, when opts.All is set, every other change
func (gs *GitService) Add(ctx context.Context, opts GitAddOptions) models.Result[[]string] {
	errCtx := GitErrorContext{RepoPath: opts.RepoPath, Paths: opts.Paths, Backend: gs.backend()}

	if err := ctx.Err(); err != nil {
		return models.Err[[]string](WrapGitError("add", err, errCtx))
	}

	if gs.config.UseSystemGit {
		return gs.addWithSystemGit(ctx, opts, errCtx)
	}

	repo, err := openRepository(opts.RepoPath)
	if err != nil {
		return models.Err[[]string](WrapGitError("add", err, errCtx))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return models.Err[[]string](WrapGitError("add", err, errCtx))
	}

	staged := make([]string, 0, len(opts.Paths))
	for _, p := range opts.Paths {
		rel, err := worktreePath(wt.Filesystem.Root(), opts.RepoPath, p)
		if err != nil {
			return models.Err[[]string](WrapGitError("add", err, errCtx))
		}

		// Worktree.Add stages a named path regardless of ignore rules
		if opts.Force {
			_, err = wt.Add(rel)
		} else {
			err = wt.AddWithOptions(&git.AddOptions{Path: rel})
		}
		if err != nil {
			return models.Err[[]string](WrapGitError("add", err, errCtx))
		}
		staged = append(staged, rel)
	}

	if opts.All {
		patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
		if err != nil {
			return models.Err[[]string](WrapGitError("add", fmt.Errorf("failed to read ignore rules: %w", err), errCtx))
		}
		wt.Excludes = append(wt.Excludes, patterns...)

		if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
			return models.Err[[]string](WrapGitError("add", err, errCtx))
		}
		staged = append(staged, ".")
	}

	return models.Ok(staged)
}

func (gs *GitService) addWithSystemGit(ctx context.Context, opts GitAddOptions, errCtx GitErrorContext) models.Result[[]string] {
	staged := make([]string, 0, len(opts.Paths)+1)

	if len(opts.Paths) > 0 {
		args := []string{"add"}
		if opts.Force {
			args = append(args, "-f")
		}
		args = append(args, "--")
		args = append(args, opts.Paths...)

		if _, err := runGit(ctx, opts.RepoPath, args...); err != nil {
			return models.Err[[]string](WrapGitError("add", err, errCtx))
		}
		staged = append(staged, opts.Paths...)
	}

	if opts.All {
		if _, err := runGit(ctx, opts.RepoPath, "add", "."); err != nil {
			return models.Err[[]string](WrapGitError("add", err, errCtx))
		}
		staged = append(staged, ".")
	}

	return models.Ok(staged)
}

// Commit records the staged changes and returns the new commit hash
func (gs *GitService) Commit(ctx context.Context, repoPath, message string) models.Result[string] {
	errCtx := GitErrorContext{RepoPath: repoPath, Backend: gs.backend()}

	if err := ctx.Err(); err != nil {
		return models.Err[string](WrapGitError("commit", err, errCtx))
	}

	if gs.config.UseSystemGit {
		return gs.commitWithSystemGit(ctx, repoPath, message, errCtx)
	}

	repo, err := openRepository(repoPath)
	if err != nil {
		return models.Err[string](WrapGitError("commit", err, errCtx))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return models.Err[string](WrapGitError("commit", err, errCtx))
	}

	opts := &git.CommitOptions{}
	if gs.config.AuthorName != "" && gs.config.AuthorEmail != "" {
		opts.Author = &object.Signature{
			Name:  gs.config.AuthorName,
			Email: gs.config.AuthorEmail,
			When:  time.Now(),
		}
	}

	hash, err := wt.Commit(message, opts)
	if err != nil {
		return models.Err[string](WrapGitError("commit", err, errCtx))
	}

	return models.Ok(hash.String())
}

func (gs *GitService) commitWithSystemGit(ctx context.Context, repoPath, message string, errCtx GitErrorContext) models.Result[string] {
	var args []string
	if gs.config.AuthorName != "" && gs.config.AuthorEmail != "" {
		args = append(args,
			"-c", "user.name="+gs.config.AuthorName,
			"-c", "user.email="+gs.config.AuthorEmail,
		)
	}
	args = append(args, "commit", "-m", message)

	if _, err := runGit(ctx, repoPath, args...); err != nil {
		return models.Err[string](WrapGitError("commit", err, errCtx))
	}

	hash, err := runGit(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return models.Err[string](WrapGitError("commit", err, errCtx))
	}

	return models.Ok(hash)
}

func openRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

// worktreePath converts p into a slash-separated path relative to the worktree root
func worktreePath(root, repoPath, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(repoPath, p)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	// Compare symlink-free paths when both sides exist
	if resolvedRoot, err := filepath.EvalSymlinks(absRoot); err == nil {
		if resolvedDir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
			absRoot = resolvedRoot
			abs = filepath.Join(resolvedDir, filepath.Base(abs))
		}
	}

	rel, err := filepath.Rel(absRoot, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the repository at %s", p, root)
	}

	return filepath.ToSlash(rel), nil
}

// runGit executes git in dir and returns its trimmed output
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("git %s failed: %w\nOutput: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}
