// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbobarcam/tbctools/pkg/core/models"
	"github.com/turbobarcam/tbctools/pkg/extract"
)

func strPtr(s string) *string { return &s }

func testInputs() Inputs {
	return Inputs{
		Actions: extract.NewActionSet(
			"turbobarcam_toggle",
			"turbobarcam_orbit_reset",
			"turbobarcam_orbit_toggle",
			"turbobarcam_brand_new",
		),
		I18n: extract.I18n{
			"turbobarcam_toggle": {
				Label:       "Toggle TurboBarCam",
				Description: "Turns the camera on\nor off.",
				Parameters:  strPtr("None"),
			},
			"turbobarcam_orbit_reset": {
				Label:       "Reset Orbit",
				Description: "Resets orbit parameters.",
				Parameters:  strPtr("speed=<n>"),
			},
			"turbobarcam_orbit_toggle": {
				Label:       "Orbit",
				Description: "Toggles orbit.",
			},
			"turbobarcam_unit_follow_set_fixed_look_point": {
				Label: "Set Fixed Look Point",
			},
			"turbobarcam_dollycam_orphan": {
				Label: "Orphan",
			},
		},
		Keybinds: extract.KeybindMap{
			"turbobarcam_orbit_reset": {
				{Key: "Ctrl+o", Params: "speed=1", Line: 3},
				{Key: "[", Line: 9},
			},
			"turbobarcam_orbit_rset": {
				{Key: "x", Line: 12},
			},
		},
		ActionsSource: "actions.lua",
		I18nSource:    "i18n.json",
	}
}

func buildTestCatalog(t *testing.T) (*Catalog, models.Diagnostics) {
	t.Helper()
	cat, err := NewCategorizer(DefaultModeConfig())
	require.NoError(t, err)
	return Build(testInputs(), cat)
}

func TestBuildRecords(t *testing.T) {
	c, _ := buildTestCatalog(t)
	assert.Equal(t, 6, c.Len())

	toggle, ok := c.Get("turbobarcam_toggle")
	require.True(t, ok)
	assert.Equal(t, "Toggle TurboBarCam", toggle.Label)
	assert.Equal(t, NoParameters, toggle.Parameters)
	assert.Equal(t, "General Controls", toggle.Mode)
	assert.Empty(t, toggle.Keybinds)

	reset, ok := c.Get("turbobarcam_orbit_reset")
	require.True(t, ok)
	assert.Equal(t, "speed=<n>", reset.Parameters)
	assert.Equal(t, "Orbit Mode", reset.Mode)
	require.Len(t, reset.Keybinds, 2)
	assert.Equal(t, "Ctrl+o", reset.Keybinds[0].Key)
	assert.Equal(t, "[", reset.Keybinds[1].Key)

	fresh, ok := c.Get("turbobarcam_brand_new")
	require.True(t, ok)
	assert.Equal(t, "turbobarcam_brand_new", fresh.Label)
	assert.Equal(t, NoDescription, fresh.Description)
	assert.Equal(t, "Other Actions", fresh.Mode)

	orphan, ok := c.Get("turbobarcam_dollycam_orphan")
	require.True(t, ok, "i18n-only actions are still documented")
	assert.Equal(t, "DollyCam Mode", orphan.Mode)

	_, ok = c.Get("turbobarcam_orbit_rset")
	assert.False(t, ok, "keybind-only identifiers are not documented")
}

func TestBuildDiagnostics(t *testing.T) {
	_, diags := buildTestCatalog(t)

	orphans := diags.ByCode(models.CodeI18nWithoutAction)
	require.Len(t, orphans, 1, "exempt identifiers must not be reported")
	assert.Equal(t, "turbobarcam_dollycam_orphan", orphans[0].Action)
	assert.Equal(t, "i18n.json", orphans[0].Source)
	assert.Equal(t, models.SeverityWarning, orphans[0].Severity)

	missing := diags.ByCode(models.CodeActionWithoutI18n)
	require.Len(t, missing, 1)
	assert.Equal(t, "turbobarcam_brand_new", missing[0].Action)

	uncategorized := diags.ByCode(models.CodeUncategorizedAction)
	require.Len(t, uncategorized, 1)
	assert.Equal(t, "turbobarcam_brand_new", uncategorized[0].Action)

	unknown := diags.ByCode(models.CodeKeybindUnknownAction)
	require.Len(t, unknown, 1)
	assert.Equal(t, 12, unknown[0].Line)
	assert.Equal(t, `did you mean "turbobarcam_orbit_reset"?`, unknown[0].Hint)

	exempt := diags.ByCode(models.CodeExemptI18n)
	require.Len(t, exempt, 1)
	assert.Equal(t, "turbobarcam_unit_follow_set_fixed_look_point", exempt[0].Action)
	assert.Equal(t, models.SeverityInfo, exempt[0].Severity)

	assert.Equal(t, 4, diags.Count(models.SeverityWarning))
	assert.Equal(t, 1, diags.Count(models.SeverityInfo))
}

func TestGroups(t *testing.T) {
	c, _ := buildTestCatalog(t)
	groups := c.Groups()

	var modes []string
	for _, g := range groups {
		modes = append(modes, g.Mode)
	}
	assert.Equal(t, []string{
		"General Controls",
		"DollyCam Mode",
		"Unit Follow Mode",
		"Orbit Mode",
		"Other Actions",
	}, modes)

	orbit := groups[3]
	require.Len(t, orbit.Actions, 2)
	assert.Equal(t, "Orbit", orbit.Actions[0].Label)
	assert.Equal(t, "Reset Orbit", orbit.Actions[1].Label)
}

func TestGroupsTieBreakByID(t *testing.T) {
	cfg := ModeConfig{Order: []string{"All"}, Fallback: "All"}
	cat, err := NewCategorizer(cfg)
	require.NoError(t, err)

	c, _ := Build(Inputs{
		Actions: extract.NewActionSet("b", "a"),
		I18n: extract.I18n{
			"a": {Label: "Same"},
			"b": {Label: "Same"},
		},
	}, cat)

	groups := c.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "a", groups[0].Actions[0].ID)
	assert.Equal(t, "b", groups[0].Actions[1].ID)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"turbobarcam_orbit_reset", "turbobarcam_toggle"}

	assert.Equal(t, `did you mean "turbobarcam_orbit_reset"?`, suggest("turbobarcam_orbit_rset", candidates))
	assert.Equal(t, `did you mean "turbobarcam_toggle"?`, suggest("turbobarcam_toggle_x", candidates))
	assert.Empty(t, suggest("zzz", candidates))
	assert.Empty(t, suggest("turbobarcam_toggle", []string{"turbobarcam_toggle"}))
}
