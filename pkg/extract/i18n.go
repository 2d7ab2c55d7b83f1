// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
)

// ErrMalformedI18n is returned when the i18n document cannot be decoded.
var ErrMalformedI18n = errors.New("malformed i18n document")

// I18nEntry holds the localized strings of one action.
type I18nEntry struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Parameters  *string `json:"parameters"`
}

// I18n maps action identifiers to their localized strings.
type I18n map[string]I18nEntry

// LoadI18n decodes the i18n document. Comments and trailing commas are
// accepted.
func LoadI18n(data []byte) (I18n, error) {
	var doc I18n
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedI18n, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedI18n)
	}
	return doc, nil
}

// Keys returns the identifiers in ascending order.
func (d I18n) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
