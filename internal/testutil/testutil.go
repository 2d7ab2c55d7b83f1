// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

// Package testutil provides fixtures shared by the tbctools tests
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/require"
)

// Add-on source paths relative to the project root
const (
	ActionsPath  = "LuaUI/TurboBarCam/actions.lua"
	I18nPath     = "LuaUI/TurboBarCam/i18n.json"
	KeybindsPath = "LuaUI/TurboBarCam/turbobarcam.uikeys.txt"
)

// AddonActions registers three actions; turbobarcam_mystery has no i18n
// entry and matches no mode rule.
const AddonActions = `local Actions = {}
Actions.registerAction("turbobarcam_toggle", 'tp', function() end)
Actions.registerAction("turbobarcam_orbit_reset", 'p', function() end)
Actions.registerAction("turbobarcam_mystery", 'p', function() end)
`

// AddonI18n uses a comment and trailing commas.
const AddonI18n = `{
  // labels shown in the keybind docs
  "turbobarcam_toggle": {
    "label": "Toggle TurboBarCam",
    "description": "Turns the camera on or off.",
    "parameters": null
  },
  "turbobarcam_orbit_reset": {
    "label": "Reset Orbit",
    "description": "Resets orbit.",
    "parameters": "speed=<n>",
  },
}
`

// AddonKeybinds contains a chain bind and one unparseable line (line 6).
const AddonKeybinds = `unbindkeyset Any+o
// TurboBarCam
bind Ctrl+sc_o turbobarcam_orbit_reset speed=1
bind sc_t turbobarcam_toggle
bind sc_[ chain force turbobarcam_orbit_reset | turbobarcam_toggle
garbage line
`

// WriteTree writes files below root, creating directories as needed
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// WriteAddon writes the add-on sources below root
func WriteAddon(t *testing.T, root string) {
	t.Helper()
	WriteTree(t, root, map[string]string{
		ActionsPath:  AddonActions,
		I18nPath:     AddonI18n,
		KeybindsPath: AddonKeybinds,
	})
}

// InitRepo creates an empty git repository in a temporary directory
func InitRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

// HeadMessage returns the message of the commit HEAD points at
func HeadMessage(t *testing.T, repo *git.Repository) string {
	t.Helper()
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	return commit.Message
}

// TestLogger creates a logger that writes through t.Log
func TestLogger(t *testing.T) *slog.Logger {
	return slog.New(tint.NewHandler(testWriter{t}, &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: true,
	}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
