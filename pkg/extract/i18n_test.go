// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadI18n(t *testing.T) {
	data := []byte(`{
  // camera toggle
  "turbobarcam_toggle": {
    "label": "Toggle",
    "description": "Enables or disables the camera.",
    "parameters": null,
  },
  "turbobarcam_set_fov": {
    "label": "Set FOV",
    "description": "Sets the field of view.",
    "parameters": "fov=<number>"
  },
}`)

	doc, err := LoadI18n(data)
	require.NoError(t, err)
	require.Len(t, doc, 2)

	assert.Equal(t, []string{"turbobarcam_set_fov", "turbobarcam_toggle"}, doc.Keys())
	assert.Equal(t, "Toggle", doc["turbobarcam_toggle"].Label)
	assert.Nil(t, doc["turbobarcam_toggle"].Parameters)
	require.NotNil(t, doc["turbobarcam_set_fov"].Parameters)
	assert.Equal(t, "fov=<number>", *doc["turbobarcam_set_fov"].Parameters)
}

func TestLoadI18nMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "truncated", data: `{"turbobarcam_toggle": {"label": "x"`},
		{name: "array root", data: `[1, 2]`},
		{name: "null root", data: `null`},
		{name: "entry is not an object", data: `{"turbobarcam_toggle": "Toggle"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadI18n([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedI18n)
		})
	}
}
