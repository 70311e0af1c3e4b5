// Package normalize provides type-safe string-to-enum normalization for
// configuration values.
package normalize

import (
	"fmt"
	"sort"
	"strings"
)

// Enum maps raw configuration strings onto a typed enum value with a default
// for unrecognized input. Keys are matched case-insensitively after trimming.
type Enum[T comparable] struct {
	values       map[string]T
	defaultValue T
	validKeys    []string // cached for error messages
}

// NewEnum creates an Enum normalizer from a map of valid string->value pairs.
func NewEnum[T comparable](values map[string]T, defaultValue T) *Enum[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Enum[T]{
		values:       normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts a raw string to the enum value, returning the default
// for unrecognized input.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.defaultValue
}

// NormalizeStrict converts a raw string to the enum value, returning an error
// for unrecognized input. Useful during config validation.
func (e *Enum[T]) NormalizeStrict(raw string) (T, error) {
	if v, ok := e.values[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q, valid options: %v", raw, e.validKeys)
}

// ValidKeys returns all valid normalized keys.
func (e *Enum[T]) ValidKeys() []string {
	out := make([]string, len(e.validKeys))
	copy(out, e.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
