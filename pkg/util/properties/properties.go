// Package properties provides read-only key/value configuration sources.
//
// Keys are dotted names such as "ot.otel.exporter.jaeger.address". A source
// reports whether a key is present, so an empty value and an absent key can be
// told apart.
package properties

//go:generate mockgen -self_package github.com/kakao/otbridge/pkg/util/properties -package properties -destination properties_mock.go . Properties

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const assignmentSeparator = "="

// Properties looks up configuration values by key.
type Properties interface {
	// Lookup returns the value of the key and whether the key is present.
	Lookup(key string) (value string, ok bool)
}

// Map is a Properties backed by a map.
type Map map[string]string

var _ Properties = Map(nil)

func (m Map) Lookup(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// Keys returns the keys of the map in ascending order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Chain looks up the sources in order and returns the first hit.
type Chain []Properties

var _ Properties = Chain(nil)

func (c Chain) Lookup(key string) (string, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if value, ok := p.Lookup(key); ok {
			return value, true
		}
	}
	return "", false
}

// Default returns the source used when none is given, that is, the
// environment variables of the process.
func Default() Properties {
	return Environ()
}

// ParseAssignments parses a list of "key=value" pairs. The value may be empty
// and may contain the separator, but the key must not be empty. Later
// assignments override earlier ones.
func ParseAssignments(assignments []string) (Map, error) {
	m := make(Map, len(assignments))
	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, assignmentSeparator)
		if !ok {
			return nil, errors.Errorf("properties: invalid assignment %q: missing %q", assignment, assignmentSeparator)
		}
		key = strings.TrimSpace(key)
		if len(key) == 0 {
			return nil, errors.Errorf("properties: invalid assignment %q: empty key", assignment)
		}
		m[key] = value
	}
	return m, nil
}
