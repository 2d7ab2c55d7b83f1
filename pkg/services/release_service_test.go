// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbobarcam/tbctools/internal/config"
	"github.com/turbobarcam/tbctools/internal/testutil"
	"github.com/turbobarcam/tbctools/pkg/release"
)

func newTestRelease(t *testing.T, cfg *config.Config) *ReleaseService {
	gitService := NewGitService(GitServiceConfig{
		UseSystemGit: cfg.Release.UseSystemGit,
		AuthorName:   "Release Bot",
		AuthorEmail:  "release@example.com",
	})
	return NewReleaseService(ReleaseConfigFrom(cfg), newTestDocGen(t, cfg), gitService, testutil.TestLogger(t))
}

func withArchives(t *testing.T, cfg *config.Config, versions ...string) {
	t.Helper()
	files := make(map[string]string, len(versions))
	for _, v := range versions {
		files["turbobarcam_v"+v+".zip"] = "old release"
	}
	testutil.WriteTree(t, cfg.Resolve(cfg.Release.ArchiveDir), files)
}

func zipEntries(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestReleaseService_Run(t *testing.T) {
	dir, repo := testutil.InitRepo(t)
	cfg := writeAddon(t, dir)
	testutil.WriteTree(t, dir, map[string]string{".gitignore": "*.zip\n"})
	withArchives(t, cfg, "1.8.0", "1.9.2", "1.9.10")

	result := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{})
	require.True(t, result.IsOk(), "release failed: %v", result.Error())
	report := result.Unwrap()

	assert.True(t, report.Found)
	assert.Equal(t, release.Version{Major: 1, Minor: 9, Patch: 10}, report.Plan.Current)
	assert.Equal(t, release.Version{Major: 1, Minor: 9, Patch: 11}, report.Plan.Next)
	assert.Equal(t, filepath.Join(dir, "turbobarcam_v1.9.11.zip"), report.Plan.ArchivePath)
	assert.Equal(t, "Dist 1.9.11", report.Plan.CommitMessage)

	require.NotNil(t, report.Generate)
	assert.Equal(t, 3, report.Generate.Actions)

	require.NotNil(t, report.Archive)
	assert.Equal(t, report.Plan.ArchivePath, report.Archive.Path)
	entries := zipEntries(t, report.Plan.ArchivePath)
	assert.Contains(t, entries, "LuaUI/TurboBarCam/actions.lua")
	assert.Contains(t, entries, "LuaUI/TurboBarCam/rml/keybinds.rml")

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, report.Commit, head.Hash().String())
	assert.Equal(t, "Dist 1.9.11", testutil.HeadMessage(t, repo))

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	tree, err := commit.Tree()
	require.NoError(t, err)
	for _, name := range []string{
		"turbobarcam_v1.9.11.zip",
		"README_KEYBINDS.md",
		"LuaUI/TurboBarCam/rml/keybinds.rml",
		"LuaUI/TurboBarCam/actions.lua",
	} {
		_, err := tree.File(name)
		assert.NoError(t, err, "expected %s in release commit", name)
	}
	_, err = tree.File("turbobarcam_v1.9.10.zip")
	assert.Error(t, err, "older ignored archives stay out of the commit")
}

func TestReleaseService_DryRun(t *testing.T) {
	dir, repo := testutil.InitRepo(t)
	cfg := writeAddon(t, dir)
	withArchives(t, cfg, "2.0")

	report := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{DryRun: true}).Unwrap()

	assert.True(t, report.Found)
	assert.True(t, report.DryRun)
	assert.Equal(t, "2.0.1", report.Plan.Next.String())
	assert.Nil(t, report.Generate)
	assert.Nil(t, report.Archive)
	assert.NoFileExists(t, report.Plan.ArchivePath)
	assert.NoFileExists(t, cfg.Resolve(cfg.Paths.Markdown))

	_, err := repo.Head()
	assert.Error(t, err, "dry run must not commit")
}

func TestReleaseService_NoCommit(t *testing.T) {
	// Not a git repository: --no-commit skips the repository check
	dir := t.TempDir()
	cfg := writeAddon(t, dir)
	withArchives(t, cfg, "0.3.7")

	result := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{NoCommit: true})
	require.True(t, result.IsOk(), "release failed: %v", result.Error())
	report := result.Unwrap()

	assert.Equal(t, "0.3.8", report.Plan.Next.String())
	assert.FileExists(t, report.Plan.ArchivePath)
	assert.FileExists(t, cfg.Resolve(cfg.Paths.Markdown))
	assert.Empty(t, report.Commit)
}

func TestReleaseService_NoPriorArchive(t *testing.T) {
	dir, _ := testutil.InitRepo(t)
	cfg := writeAddon(t, dir)

	report := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{}).Unwrap()

	assert.False(t, report.Found)
	assert.Nil(t, report.Archive)
	assert.NoFileExists(t, cfg.Resolve(cfg.Paths.Markdown))
}

func TestReleaseService_Failures(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		cfg := writeAddon(t, t.TempDir())
		withArchives(t, cfg, "1.0.0")

		result := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{})
		require.True(t, result.IsErr())

		var relErr *ReleaseError
		require.True(t, errors.As(result.Error(), &relErr))
		assert.Equal(t, StepValidate, relErr.Step)

		var gitErr *GitError
		require.True(t, errors.As(result.Error(), &gitErr))
		assert.Equal(t, "REPO_NOT_FOUND", gitErr.ErrorCode)

		assert.NoFileExists(t, filepath.Join(cfg.Root, "turbobarcam_v1.0.1.zip"))
	})

	t.Run("missing input", func(t *testing.T) {
		dir, _ := testutil.InitRepo(t)
		cfg := writeAddon(t, dir)
		withArchives(t, cfg, "1.0.0")
		require.NoError(t, os.Remove(cfg.Resolve(cfg.Paths.Actions)))

		result := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{})

		var relErr *ReleaseError
		require.True(t, errors.As(result.Error(), &relErr))
		assert.Equal(t, StepGenerate, relErr.Step)
		assert.ErrorIs(t, result.Error(), ErrInputMissing)
		assert.NoFileExists(t, filepath.Join(dir, "turbobarcam_v1.0.1.zip"))
	})

	t.Run("missing source directory", func(t *testing.T) {
		dir, _ := testutil.InitRepo(t)
		cfg := writeAddon(t, dir)
		cfg.Release.SourceDir = "Missing"
		withArchives(t, cfg, "1.0.0")

		result := newTestRelease(t, cfg).Run(context.Background(), ReleaseOptions{})

		var relErr *ReleaseError
		require.True(t, errors.As(result.Error(), &relErr))
		assert.Equal(t, StepArchive, relErr.Step)
		// Generated docs from the completed step stay in place
		assert.FileExists(t, cfg.Resolve(cfg.Paths.Markdown))
	})
}

func TestReleaseError(t *testing.T) {
	err := &ReleaseError{Step: StepArchive, Err: os.ErrNotExist}

	assert.Equal(t, "release failed at archive step: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
