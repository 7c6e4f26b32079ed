package tabnav

import (
	"fmt"
	"strings"
)

// TabDefinition describes one tab: a named, independently-stacked
// navigation lane. Identity and equality are by canonical id; Label and
// Icon are optional display metadata the core never interprets.
type TabDefinition[D comparable] struct {
	// ID uniquely identifies the tab within its Config.
	ID string

	// Root is the destination every entry stack of this tab is seeded
	// with. A tab's stack never drops below this entry.
	Root D

	// Label is optional display metadata.
	Label string

	// Icon is optional display metadata.
	Icon string
}

// Violation describes one configuration rule that failed.
type Violation struct {
	// Field names the offending config field ("tabs", "initialTab", ...).
	Field string

	// Message is a human-readable description.
	Message string

	// Code identifies the rule ("C001".."C004").
	Code string
}

// Violation codes.
const (
	// CodeEmptyTabs: the tab set is empty.
	CodeEmptyTabs = "C001"

	// CodeBadTabID: a tab has a blank or duplicate id.
	CodeBadTabID = "C002"

	// CodeUnknownInitial: initialTab is not in the tab set.
	CodeUnknownInitial = "C003"

	// CodeUnknownPrimary: primaryTab is not in the tab set.
	CodeUnknownPrimary = "C004"
)

// ConfigError aggregates every violation found while validating a
// Config. Validation never stops at the first violation and never
// silently repairs.
type ConfigError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "invalid tab configuration (%d violation(s)):", len(e.Violations))
	for _, v := range e.Violations {
		fmt.Fprintf(&buf, "\n  [%s] %s: %s", v.Code, v.Field, v.Message)
	}
	return buf.String()
}

// Config is a validated, immutable description of a tab set.
//
// A Config is only obtainable through NewConfig; the zero value is not
// usable. Every State constructed from a Config may assume all
// invariants hold: tabs non-empty, ids canonical and unique, initial
// and primary tabs present.
type Config[D comparable] struct {
	tabs      []TabDefinition[D]
	byID      map[string]TabDefinition[D]
	initialID string
	primaryID string
}

// NewConfig validates and builds a tab set description.
//
// initialTabID selects the tab shown first; primaryTabID names the tab
// treated as "home" for tier-2 back resolution. Both are matched by
// canonical id.
//
// Validation collects ALL violations, not just the first:
//   - the tab set must not be empty
//   - every tab id must be non-blank and unique (after canonicalization)
//   - initialTabID must name a tab in the set
//   - primaryTabID must name a tab in the set
//
// On failure the returned error is a *ConfigError and the returned
// Config is unusable.
func NewConfig[D comparable](tabs []TabDefinition[D], initialTabID, primaryTabID string) (Config[D], error) {
	var violations []Violation

	if len(tabs) == 0 {
		violations = append(violations, Violation{
			Field:   "tabs",
			Message: "allTabs must not be empty",
			Code:    CodeEmptyTabs,
		})
	}

	canonical := make([]TabDefinition[D], 0, len(tabs))
	byID := make(map[string]TabDefinition[D], len(tabs))
	for i, tab := range tabs {
		id := CanonicalID(tab.ID)
		if id == "" {
			violations = append(violations, Violation{
				Field:   "tabs",
				Message: fmt.Sprintf("tab at index %d has a blank id", i),
				Code:    CodeBadTabID,
			})
			continue
		}
		if _, dup := byID[id]; dup {
			violations = append(violations, Violation{
				Field:   "tabs",
				Message: fmt.Sprintf("duplicate tab id %q", id),
				Code:    CodeBadTabID,
			})
			continue
		}
		tab.ID = id
		byID[id] = tab
		canonical = append(canonical, tab)
	}

	initialID := CanonicalID(initialTabID)
	if _, ok := byID[initialID]; !ok {
		violations = append(violations, Violation{
			Field:   "initialTab",
			Message: fmt.Sprintf("initial tab %q is not in the tab set", initialTabID),
			Code:    CodeUnknownInitial,
		})
	}

	primaryID := CanonicalID(primaryTabID)
	if _, ok := byID[primaryID]; !ok {
		violations = append(violations, Violation{
			Field:   "primaryTab",
			Message: fmt.Sprintf("primary tab %q is not in the tab set", primaryTabID),
			Code:    CodeUnknownPrimary,
		})
	}

	if len(violations) > 0 {
		return Config[D]{}, &ConfigError{Violations: violations}
	}

	return Config[D]{
		tabs:      canonical,
		byID:      byID,
		initialID: initialID,
		primaryID: primaryID,
	}, nil
}

// Tabs returns the tab definitions in declaration order.
func (c Config[D]) Tabs() []TabDefinition[D] {
	out := make([]TabDefinition[D], len(c.tabs))
	copy(out, c.tabs)
	return out
}

// TabByID returns the tab with the given (canonicalized) id.
func (c Config[D]) TabByID(id string) (TabDefinition[D], bool) {
	tab, ok := c.byID[CanonicalID(id)]
	return tab, ok
}

// InitialTab returns the tab selected when a State is constructed.
func (c Config[D]) InitialTab() TabDefinition[D] {
	return c.byID[c.initialID]
}

// PrimaryTab returns the tab treated as "home" for back resolution.
func (c Config[D]) PrimaryTab() TabDefinition[D] {
	return c.byID[c.primaryID]
}

// Len returns the number of tabs.
func (c Config[D]) Len() int { return len(c.tabs) }

// valid reports whether the Config came from NewConfig.
func (c Config[D]) valid() bool { return len(c.byID) > 0 }
