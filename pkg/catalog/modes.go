// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/turbobarcam/tbctools/internal/config"
)

//go:embed modes.yaml
var defaultModes []byte

// PrefixRule assigns a mode to every identifier starting with Prefix.
type PrefixRule struct {
	Prefix string `yaml:"prefix"`
	Mode   string `yaml:"mode"`
}

// ModeConfig describes how actions are grouped in the documentation.
type ModeConfig struct {
	Order    []string          `yaml:"order"`
	Fallback string            `yaml:"fallback"`
	Exact    map[string]string `yaml:"exact"`
	Prefixes []PrefixRule      `yaml:"prefixes"`
	Exempt   []string          `yaml:"exempt"`
}

// DefaultModeConfig returns the built-in TurboBarCam mode table.
func DefaultModeConfig() ModeConfig {
	cfg, err := ParseModeConfig(defaultModes)
	if err != nil {
		panic(fmt.Sprintf("embedded mode table: %v", err))
	}
	return cfg
}

// LoadModeConfig reads and validates a mode table from a YAML file.
func LoadModeConfig(path string) (ModeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModeConfig{}, fmt.Errorf("failed to read mode table: %w", err)
	}
	cfg, err := ParseModeConfig(data)
	if err != nil {
		return ModeConfig{}, fmt.Errorf("mode table %s: %w", path, err)
	}
	return cfg, nil
}

// ParseModeConfig decodes and validates a YAML mode table. Unknown keys are
// rejected.
func ParseModeConfig(data []byte) (ModeConfig, error) {
	var cfg ModeConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return ModeConfig{}, fmt.Errorf("failed to decode mode table: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ModeConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every referenced mode is part of Order.
func (c ModeConfig) Validate() error {
	var errs config.ValidationErrors

	known := make(map[string]bool, len(c.Order))
	if len(c.Order) == 0 {
		errs = append(errs, config.ValidationError{
			Field:   "order",
			Message: "at least one mode is required",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	}
	for _, mode := range c.Order {
		if strings.TrimSpace(mode) == "" {
			errs = append(errs, config.ValidationError{
				Field:   "order",
				Message: "mode names cannot be empty",
				Code:    "EMPTY_VALUE",
			})
			continue
		}
		if known[mode] {
			errs = append(errs, config.ValidationError{
				Field:   "order",
				Value:   mode,
				Message: fmt.Sprintf("mode %q is listed twice", mode),
				Code:    "DUPLICATE_VALUE",
			})
		}
		known[mode] = true
	}

	if c.Fallback == "" {
		errs = append(errs, config.ValidationError{
			Field:   "fallback",
			Message: "required field is missing",
			Code:    "REQUIRED_FIELD_MISSING",
		})
	} else if !known[c.Fallback] {
		errs = append(errs, unknownMode("fallback", c.Fallback))
	}

	for id, mode := range c.Exact {
		if !known[mode] {
			errs = append(errs, unknownMode("exact."+id, mode))
		}
	}

	for i, rule := range c.Prefixes {
		field := fmt.Sprintf("prefixes[%d]", i)
		if rule.Prefix == "" {
			errs = append(errs, config.ValidationError{
				Field:   field + ".prefix",
				Message: "prefix cannot be empty",
				Code:    "EMPTY_VALUE",
			})
		}
		if !known[rule.Mode] {
			errs = append(errs, unknownMode(field+".mode", rule.Mode))
		}
	}

	if len(errs) > 0 {
		return errs.Sorted()
	}
	return nil
}

func unknownMode(field, mode string) config.ValidationError {
	return config.ValidationError{
		Field:   field,
		Value:   mode,
		Message: fmt.Sprintf("mode %q is not listed in order", mode),
		Code:    "UNKNOWN_MODE",
	}
}

// clone returns a deep copy so later mutation of c cannot leak into users.
func (c ModeConfig) clone() ModeConfig {
	out := ModeConfig{
		Order:    append([]string(nil), c.Order...),
		Fallback: c.Fallback,
		Exact:    make(map[string]string, len(c.Exact)),
		Prefixes: append([]PrefixRule(nil), c.Prefixes...),
		Exempt:   append([]string(nil), c.Exempt...),
	}
	for k, v := range c.Exact {
		out.Exact[k] = v
	}
	return out
}
