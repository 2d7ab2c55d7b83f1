// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package release

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestWriteArchive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"LuaUI/TurboBarCam/actions.lua": "-- actions",
		"LuaUI/TurboBarCam/i18n.json":   "{}",
		"LuaUI/Widgets/turbobarcam.lua": "-- widget",
		"README.md":                     "outside the tree",
	})

	dest := filepath.Join(root, "turbobarcam_v1.0.1.zip")
	stats, err := WriteArchive(filepath.Join(root, "LuaUI"), dest)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, int64(len("-- actions")+len("{}")+len("-- widget")), stats.Bytes)

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
		assert.Equal(t, zip.Deflate, f.Method)
	}
	assert.Equal(t, []string{
		"LuaUI/TurboBarCam/actions.lua",
		"LuaUI/TurboBarCam/i18n.json",
		"LuaUI/Widgets/turbobarcam.lua",
	}, names)

	rc, err := r.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "-- actions", string(content))
}

func TestWriteArchiveSkipsItself(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"LuaUI/a.lua": "a"})

	stats, err := WriteArchive(filepath.Join(root, "LuaUI"), filepath.Join(root, "LuaUI", "out.zip"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
}

func TestWriteArchiveMissingSource(t *testing.T) {
	root := t.TempDir()
	_, err := WriteArchive(filepath.Join(root, "LuaUI"), filepath.Join(root, "out.zip"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, "out.zip"))
}
