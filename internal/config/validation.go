// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation error for '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// Sorted returns a copy ordered by field, then code
func (e ValidationErrors) Sorted() ValidationErrors {
	out := make(ValidationErrors, len(e))
	copy(out, e)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Code < out[j].Code
	})
	return out
}

var allowedLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	var errs ValidationErrors

	required := map[string]string{
		"root":                   c.Root,
		"paths.actions":          c.Paths.Actions,
		"paths.i18n":             c.Paths.I18n,
		"paths.keybinds":         c.Paths.Keybinds,
		"docs.action_prefix":     c.Docs.ActionPrefix,
		"release.archive_prefix": c.Release.ArchivePrefix,
		"release.source_dir":     c.Release.SourceDir,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "required field is missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	if c.Paths.Markdown == "" && c.Paths.Markup == "" {
		errs = append(errs, ValidationError{
			Field:   "paths.markdown",
			Message: "at least one of paths.markdown and paths.markup is required",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}

	if !contains(allowedLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: fmt.Sprintf("value must be one of: %s", strings.Join(allowedLogLevels, ", ")),
			Code:    "INVALID_VALUE",
		})
	}

	if strings.Count(c.Release.CommitMessage, "%s") != 1 {
		errs = append(errs, ValidationError{
			Field:   "release.commit_message",
			Value:   c.Release.CommitMessage,
			Message: "must contain exactly one %s placeholder for the version",
			Code:    "INVALID_FORMAT",
		})
	}

	if strings.ContainsAny(c.Release.ArchivePrefix, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "release.archive_prefix",
			Value:   c.Release.ArchivePrefix,
			Message: "must be a plain file name prefix",
			Code:    "INVALID_FORMAT",
		})
	}

	if len(errs) > 0 {
		return errs.Sorted()
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
