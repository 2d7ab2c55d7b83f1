// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package extract

import (
	"fmt"
	"regexp"
	"sort"
)

// ActionSet is a set of action identifiers.
type ActionSet map[string]struct{}

// NewActionSet builds a set from the given identifiers.
func NewActionSet(ids ...string) ActionSet {
	set := make(ActionSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s ActionSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the identifiers in ascending order.
func (s ActionSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// registrationPattern matches Actions.registerAction("<prefix>name", ...) with
// either quote style.
func registrationPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`Actions\.registerAction\s*\(\s*["'](%s[a-zA-Z0-9_]+)["']`,
		regexp.QuoteMeta(prefix),
	))
}

// Actions returns the identifiers registered in the Lua source. An empty
// prefix falls back to DefaultActionPrefix.
func Actions(src, prefix string) ActionSet {
	if prefix == "" {
		prefix = DefaultActionPrefix
	}

	actions := make(ActionSet)
	for _, m := range registrationPattern(prefix).FindAllStringSubmatch(src, -1) {
		actions[m[1]] = struct{}{}
	}
	return actions
}
