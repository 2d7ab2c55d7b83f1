// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package catalog

import (
	"fmt"

	"github.com/sahilm/fuzzy"
)

// suggest returns a "did you mean" hint for id among candidates, or "" when
// nothing is close enough.
func suggest(id string, candidates []string) string {
	if id == "" || len(candidates) == 0 {
		return ""
	}

	// Subsequence match: candidates containing every character of id first,
	// then candidates whose characters all appear in id.
	best, bestScore := "", 0
	for _, m := range fuzzy.Find(id, candidates) {
		if m.Str != id && (best == "" || m.Score > bestScore) {
			best, bestScore = m.Str, m.Score
		}
	}
	if best == "" {
		for _, candidate := range candidates {
			if candidate == id {
				continue
			}
			if matches := fuzzy.Find(candidate, []string{id}); len(matches) > 0 {
				if best == "" || matches[0].Score > bestScore {
					best, bestScore = candidate, matches[0].Score
				}
			}
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", best)
}
