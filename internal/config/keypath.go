package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// listKeys are the keys whose values are comma-separated on the command line.
var listKeys = map[string]bool{
	"rating_edges": true,
	"palette":      true,
}

// GetValue retrieves a value from a Config by key. Config keys are flat, so a
// key path has exactly one segment.
func GetValue(cfg *Config, key string) (any, error) {
	if err := ValidateKeyPath(key); err != nil {
		return nil, err
	}
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	val, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("key %q not set", key)
	}
	return val, nil
}

// SetValue sets a value in a raw YAML map, coercing it to the key's type.
func SetValue(data map[string]any, key, rawValue string) error {
	if err := ValidateKeyPath(key); err != nil {
		return err
	}
	if listKeys[key] {
		parts := strings.Split(rawValue, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, coerceValue(p))
			}
		}
		data[key] = list
		return nil
	}
	data[key] = coerceValue(rawValue)
	return nil
}

// FlattenMap recursively flattens a nested map to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range FlattenMap(sub, key) {
				result[sk] = sv
			}
		} else {
			result[key] = v
		}
	}
	return result
}

// ValidateKeyPath checks that key names a Config field. It uses yaml struct
// tags to build the valid key set.
func ValidateKeyPath(key string) error {
	if key == "" {
		return fmt.Errorf("empty key path")
	}
	first, rest, nested := strings.Cut(key, ".")
	keys := yamlKeys(reflect.TypeOf(Config{}))
	if !keys[first] {
		return fmt.Errorf("unknown key %q; valid keys: %s", first, sortedKeys(keys))
	}
	if nested {
		return fmt.Errorf("key %q has no sub-keys (got %q)", first, rest)
	}
	return nil
}

// ToMap converts a Config to a map of its set fields.
func ToMap(cfg *Config) (map[string]any, error) {
	return configToMap(cfg)
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// coerceValue parses a string into bool, int, float64, or keeps it as string.
func coerceValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// yamlKeys extracts yaml tag names from a struct type.
func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}

// sortedKeys returns a comma-separated sorted list of map keys.
func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
