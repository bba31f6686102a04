package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidPricingMethod = errors.New("invalid pricing method")
	ErrCrossShapePayload    = errors.New("payload carries fields of more than one pricing method")
	ErrMissingPricing       = errors.New("pricing is required")
)

// ValidationError collects field-level messages keyed by a dotted field path
// such as "locationPrices.1.price".
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a message for field. The first message per field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
}

// Merge copies fields from other, prefixing each with prefix when non-empty.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for field, msg := range other.Fields {
		if prefix != "" {
			field = prefix + "." + field
		}
		e.Add(field, msg)
	}
}

// Empty reports whether no messages were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns e when it holds messages, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Summary renders every message on one line, sorted by field, for a notification banner.
func (e *ValidationError) Summary() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary()
}
