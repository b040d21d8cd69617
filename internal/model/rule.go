// Package model contains domain types for the stabwatch application.
// These types are independent of any storage or presentation concern.
package model

import (
	"errors"
	"fmt"
)

// Rule defines one date-warning rule applied to the tables of a folder.
// EndColumn is optional; when empty, the evaluation timestamp ("now") is
// used as the end of each row's interval.
type Rule struct {
	StartColumn   string `json:"start_column"`
	EndColumn     string `json:"end_column"`
	WarningDays   int    `json:"warning_days"`
	StabilityDays int    `json:"stability_days"`
}

// Validate checks the rule for the constraints the evaluator depends on.
func (r Rule) Validate() error {
	if r.StartColumn == "" {
		return errors.New("start column is required")
	}
	if r.WarningDays <= 0 {
		return fmt.Errorf("warning days must be positive, got %d", r.WarningDays)
	}
	if r.StabilityDays <= 0 {
		return fmt.Errorf("stability days must be positive, got %d", r.StabilityDays)
	}
	return nil
}

// EndColumnDisplay returns the end column name, or a placeholder when the
// rule falls back to the current date.
func (r Rule) EndColumnDisplay() string {
	if r.EndColumn == "" {
		return "(current date)"
	}
	return r.EndColumn
}

// FolderEntry binds a named filesystem folder to a warning rule.
// Entries are addressed by position in the configuration store; duplicate
// names are permitted.
type FolderEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Rule Rule   `json:"rule"`
}

// Validate checks the entry and its rule.
func (e FolderEntry) Validate() error {
	if e.Path == "" {
		return errors.New("folder path is required")
	}
	if err := e.Rule.Validate(); err != nil {
		return fmt.Errorf("rule for %q: %w", e.Name, err)
	}
	return nil
}
