// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package release

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// ArchiveStats describes a written archive.
type ArchiveStats struct {
	Path  string
	Files int
	Bytes int64
}

// WriteArchive zips every regular file below srcDir into dest. Entry names
// are relative to the parent of srcDir, so the archive unpacks into a
// directory named after srcDir. Files are added in lexical order.
func WriteArchive(srcDir, dest string) (ArchiveStats, error) {
	stats := ArchiveStats{Path: dest}

	info, err := os.Stat(srcDir)
	if err != nil {
		return stats, fmt.Errorf("failed to stat source tree: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("source %s is not a directory", srcDir)
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return stats, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return stats, fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	base := filepath.Dir(filepath.Clean(srcDir))

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && abs == absDest {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		n, err := addFile(zw, path, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
		stats.Files++
		stats.Bytes += n
		return nil
	})

	closeErr := zw.Close()
	if err := out.Close(); closeErr == nil {
		closeErr = err
	}
	if walkErr != nil {
		return stats, walkErr
	}
	if closeErr != nil {
		return stats, fmt.Errorf("failed to finish archive: %w", closeErr)
	}
	return stats, nil
}

func addFile(zw *zip.Writer, path, name string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(w, f)
}
