// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package services

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
)

// GitError represents a detailed Git operation error with troubleshooting guidance
type GitError struct {
	// Core error information
	Operation   string // The Git operation that failed (add, commit, open)
	OriginalErr error  // The original underlying error
	ErrorCode   string // Categorized error code for programmatic handling
	UserMessage string // Human-readable error message
	TechDetails string // Technical details for debugging

	// Context information
	RepoPath string   // Repository the operation ran in
	Paths    []string // Paths involved in the operation
	Backend  string   // go-git or system git

	// Troubleshooting guidance
	Suggestions []string // Actionable troubleshooting steps

	// Recovery information
	IsRecoverable bool // Whether retrying the release after fixing the cause is safe
}

// Error implements the error interface
func (ge *GitError) Error() string {
	return fmt.Sprintf("git %s failed: %s", ge.Operation, ge.UserMessage)
}

// Unwrap returns the original error
func (ge *GitError) Unwrap() error {
	return ge.OriginalErr
}

// GetDetailedMessage returns a comprehensive error message with troubleshooting
func (ge *GitError) GetDetailedMessage() string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("Git %s Operation Failed\n", ge.Operation))
	msg.WriteString(strings.Repeat("=", 50) + "\n\n")

	msg.WriteString(fmt.Sprintf("Error: %s\n", ge.UserMessage))
	if ge.ErrorCode != "" {
		msg.WriteString(fmt.Sprintf("Code: %s\n", ge.ErrorCode))
	}
	msg.WriteString("\n")

	msg.WriteString("Context:\n")
	if ge.RepoPath != "" {
		msg.WriteString(fmt.Sprintf("  Repository: %s\n", ge.RepoPath))
	}
	for _, p := range ge.Paths {
		msg.WriteString(fmt.Sprintf("  Path: %s\n", p))
	}
	if ge.Backend != "" {
		msg.WriteString(fmt.Sprintf("  Backend: %s\n", ge.Backend))
	}
	msg.WriteString("\n")

	if ge.TechDetails != "" {
		msg.WriteString("Technical Details:\n")
		msg.WriteString(fmt.Sprintf("  %s\n\n", ge.TechDetails))
	}

	if len(ge.Suggestions) > 0 {
		msg.WriteString("Troubleshooting Steps:\n")
		for i, suggestion := range ge.Suggestions {
			msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion))
		}
		msg.WriteString("\n")
	}

	if ge.IsRecoverable {
		msg.WriteString("Recovery: fix the cause and commit the written archive by hand, or delete it and re-run the release.\n")
	} else {
		msg.WriteString("Recovery: This error requires manual intervention.\n")
	}

	return msg.String()
}

// GitErrorContext provides context for error analysis
type GitErrorContext struct {
	RepoPath string
	Paths    []string
	Backend  string
}

// WrapGitError analyzes a Git error and wraps it with troubleshooting information
func WrapGitError(operation string, err error, context GitErrorContext) *GitError {
	if err == nil {
		return nil
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr
	}

	gitError := &GitError{
		Operation:   operation,
		OriginalErr: err,
		RepoPath:    context.RepoPath,
		Paths:       context.Paths,
		Backend:     context.Backend,
		TechDetails: err.Error(),
	}

	analyzeError(gitError)

	return gitError
}

// analyzeError examines the error and provides specific troubleshooting guidance.
// More specific checks come first.
func analyzeError(gitError *GitError) {
	err := gitError.OriginalErr
	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, git.ErrRepositoryNotExists) || strings.Contains(errStr, "not a git repository"):
		gitError.ErrorCode = "REPO_NOT_FOUND"
		gitError.UserMessage = "The project root is not a Git repository"
		gitError.Suggestions = []string{
			"Run the release from the add-on repository root or pass --root",
			"Initialise the repository with: git init",
			"Use --no-commit to build the archive without committing",
		}

	case errors.Is(err, git.ErrEmptyCommit) || strings.Contains(errStr, "nothing to commit"):
		gitError.ErrorCode = "NOTHING_TO_COMMIT"
		gitError.UserMessage = "There are no staged changes to commit"
		gitError.Suggestions = []string{
			"Check that the archive was written inside the repository",
			"Check whether a .gitignore rule excludes the generated files",
		}
		gitError.IsRecoverable = true

	case strings.Contains(errStr, "author field is required") ||
		strings.Contains(errStr, "please tell me who you are") ||
		strings.Contains(errStr, "empty ident"):
		gitError.ErrorCode = "AUTHOR_MISSING"
		gitError.UserMessage = "No commit author is configured"
		gitError.Suggestions = []string{
			"Set release.author_name and release.author_email in tbctools.yaml",
			"Or configure git: git config --global user.name 'Name' && git config --global user.email you@example.com",
		}
		gitError.IsRecoverable = true

	case strings.Contains(errStr, "index.lock"):
		gitError.ErrorCode = "INDEX_LOCKED"
		gitError.UserMessage = "Another git process holds the index lock"
		gitError.Suggestions = []string{
			"Wait for the other git process to finish",
			"Remove a stale .git/index.lock if no git process is running",
		}
		gitError.IsRecoverable = true

	case errors.Is(err, os.ErrPermission) || strings.Contains(errStr, "permission denied"):
		gitError.ErrorCode = "PERMISSION_DENIED"
		gitError.UserMessage = "Permission denied while updating the repository"
		gitError.Suggestions = []string{
			"Check the ownership of the .git directory",
			"Check that the archive and documentation files are writable",
		}
		gitError.IsRecoverable = true

	case errors.Is(err, exec.ErrNotFound):
		gitError.ErrorCode = "GIT_NOT_FOUND"
		gitError.UserMessage = "The git executable was not found"
		gitError.Suggestions = []string{
			"Install git and make sure it is on PATH",
			"Or set release.use_system_git to false to use the built-in implementation",
		}

	default:
		gitError.ErrorCode = "GIT_ERROR"
		gitError.UserMessage = "An unexpected Git error occurred"
		gitError.Suggestions = []string{
			"Run git status in the project root to inspect the repository",
			"Re-run with --logLevel debug for more details",
		}
		gitError.IsRecoverable = true
	}
}
