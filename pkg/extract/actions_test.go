// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActions(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		prefix   string
		expected []string
	}{
		{
			name: "double and single quotes",
			src: `
Actions.registerAction("turbobarcam_toggle", 'tp', function() end)
Actions.registerAction( 'turbobarcam_orbit_reset' , 'tp', function() end)
`,
			expected: []string{"turbobarcam_orbit_reset", "turbobarcam_toggle"},
		},
		{
			name: "duplicates collapse",
			src: `
Actions.registerAction("turbobarcam_debug", 'tp', f)
Actions.registerAction("turbobarcam_debug", 'tp', g)
`,
			expected: []string{"turbobarcam_debug"},
		},
		{
			name: "other prefixes and call shapes are ignored",
			src: `
Actions.registerAction("othermod_toggle", 'tp', f)
Actions.register("turbobarcam_nope", 'tp', f)
local name = "turbobarcam_not_registered"
`,
			expected: []string{},
		},
		{
			name: "multiline call",
			src: "Actions.registerAction(\n    \"turbobarcam_anchor_set\",\n    'tp',\n    f)",
			expected: []string{"turbobarcam_anchor_set"},
		},
		{
			name:     "custom prefix",
			src:      `Actions.registerAction("cam_x", 'tp', f) Actions.registerAction("turbobarcam_y", 'tp', f)`,
			prefix:   "cam_",
			expected: []string{"cam_x"},
		},
		{
			name:     "empty source",
			src:      "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Actions(tt.src, tt.prefix)
			assert.Equal(t, tt.expected, got.Sorted())
		})
	}
}

func TestActionSet(t *testing.T) {
	set := NewActionSet("b", "a", "b")
	assert.Len(t, set, 2)
	assert.True(t, set.Has("a"))
	assert.False(t, set.Has("c"))
	assert.Equal(t, []string{"a", "b"}, set.Sorted())
}
