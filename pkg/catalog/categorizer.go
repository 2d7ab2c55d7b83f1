// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of TurboBarCam

package catalog

import "strings"

// Categorizer resolves the mode group of an action identifier.
type Categorizer struct {
	cfg    ModeConfig
	exempt map[string]bool
	rank   map[string]int
}

// NewCategorizer validates cfg and returns a categorizer holding its own copy.
func NewCategorizer(cfg ModeConfig) (*Categorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Categorizer{
		cfg:    cfg.clone(),
		exempt: make(map[string]bool, len(cfg.Exempt)),
		rank:   make(map[string]int, len(cfg.Order)),
	}
	for _, id := range cfg.Exempt {
		c.exempt[id] = true
	}
	for i, mode := range cfg.Order {
		c.rank[mode] = i
	}
	return c, nil
}

// Resolve returns the mode of id. matched is false when the fallback was used.
func (c *Categorizer) Resolve(id string) (mode string, matched bool) {
	if mode, ok := c.cfg.Exact[id]; ok {
		return mode, true
	}
	for _, rule := range c.cfg.Prefixes {
		if strings.HasPrefix(id, rule.Prefix) {
			return rule.Mode, true
		}
	}
	return c.cfg.Fallback, false
}

// Exempt reports whether id may be localized without being registered.
func (c *Categorizer) Exempt(id string) bool {
	return c.exempt[id]
}

// Order returns the modes in rendering order.
func (c *Categorizer) Order() []string {
	return append([]string(nil), c.cfg.Order...)
}
