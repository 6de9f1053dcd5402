// Package registry loads and validates the curated project registry.
package registry

import (
	"fmt"
	"strings"
)

// Project is one validated registry record.
type Project struct {
	DayIndex int      `json:"dayIndex" yaml:"dayIndex"`
	Name     string   `json:"name" yaml:"name"`
	Status   string   `json:"status" yaml:"status"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// HasTag reports whether the project carries tag, ignoring case.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ParseError is returned when the registry cannot be decoded or its root is
// not a list of records.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing registry: %v", e.Err)
	}
	return fmt.Sprintf("parsing registry %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError names the first record that breaks the registry schema.
type ValidationError struct {
	// Index is the zero-based position of the record in the registry.
	Index int
	// Record is a short identification of the record (day and/or name).
	Record string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("invalid project at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid project at index %d (%s): %s", e.Index, e.Record, e.Reason)
}
