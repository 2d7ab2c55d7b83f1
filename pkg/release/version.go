// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

// Package release finds the latest distributed add-on archive and builds the
// next one.
package release

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Version is a MAJOR.MINOR.PATCH triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String formats the version as MAJOR.MINOR.PATCH.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// NextPatch returns v with the patch component incremented.
func (v Version) NextPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// ArchiveName returns "<prefix>_v<version>.zip".
func ArchiveName(prefix string, v Version) string {
	return fmt.Sprintf("%s_v%s.zip", prefix, v)
}

func archivePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `_v(\d+)\.(\d+)(?:\.(\d+))?\.zip$`)
}

// ParseArchiveName extracts the version of an archive named
// "<prefix>_vMAJOR.MINOR[.PATCH].zip". A missing patch component is 0.
func ParseArchiveName(prefix, name string) (Version, bool) {
	m := archivePattern(prefix).FindStringSubmatch(name)
	if m == nil {
		return Version{}, false
	}

	var v Version
	var err error
	if v.Major, err = strconv.Atoi(m[1]); err != nil {
		return Version{}, false
	}
	if v.Minor, err = strconv.Atoi(m[2]); err != nil {
		return Version{}, false
	}
	if m[3] != "" {
		if v.Patch, err = strconv.Atoi(m[3]); err != nil {
			return Version{}, false
		}
	}
	return v, true
}

// Latest returns the highest archive version among names.
func Latest(prefix string, names []string) (Version, bool) {
	var latest Version
	found := false
	for _, name := range names {
		v, ok := ParseArchiveName(prefix, name)
		if !ok {
			continue
		}
		if !found || latest.Less(v) {
			latest = v
			found = true
		}
	}
	return latest, found
}

// LatestInDir scans dir for archives. Directories are skipped.
func LatestInDir(dir, prefix string) (Version, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Version{}, false, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}

	v, ok := Latest(prefix, names)
	return v, ok, nil
}
