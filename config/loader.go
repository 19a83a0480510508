package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnsupportedConfigFormatError reports a config file whose extension is
// neither JSON nor YAML.
type UnsupportedConfigFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedConfigFormatError) Error() string {
	return fmt.Sprintf("unsupported config format %q for %s (expected .json, .yaml, or .yml)", e.Ext, e.Path)
}

// LoadFile reads a JSON or YAML config file into a generic key/value
// mapping. The format is chosen by file extension.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	values := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, &UnsupportedConfigFormatError{Path: path, Ext: ext}
	}
	return values, nil
}

// Apply sets every entry of the mapping on the config through the attribute
// registry. Keys are attribute names; unknown keys are rejected by name.
// String values go through the attribute's parse function exactly as a CLI
// value would; structured values (lists, mappings, booleans) are coerced to
// the field's shape first.
func Apply(cfg *Config, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		attr, ok := registry.Lookup(key)
		if !ok {
			return fmt.Errorf("unknown configuration key %q", key)
		}
		if err := applyValue(cfg, attr, values[key]); err != nil {
			return err
		}
	}
	return nil
}

func applyValue(cfg *Config, attr *attribute, value any) error {
	switch v := value.(type) {
	case string:
		return attr.Set(cfg, v)
	case bool:
		return attr.Set(cfg, fmt.Sprintf("%t", v))
	case int, int64, float64:
		return attr.Set(cfg, fmt.Sprint(v))
	case []any:
		entries := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("key %q: list entries must be strings, got %T", attr.Name, e)
			}
			entries = append(entries, s)
		}
		// Joining routes the list through the same comma-split parse the
		// CLI uses, so path lists still come out absolute.
		return attr.Set(cfg, strings.Join(entries, ","))
	case map[string]any:
		categories := make(map[string][]string, len(v))
		for name, members := range v {
			list, ok := members.([]any)
			if !ok {
				return fmt.Errorf("key %q: %q must map to a list", attr.Name, name)
			}
			for _, m := range list {
				s, ok := m.(string)
				if !ok {
					return fmt.Errorf("key %q: %q entries must be strings, got %T", attr.Name, name, m)
				}
				categories[name] = append(categories[name], s)
			}
		}
		if err := attr.Setter(cfg, categories); err != nil {
			return fmt.Errorf("key %q: %w", attr.Name, err)
		}
		return nil
	default:
		return fmt.Errorf("key %q: unsupported value type %T", attr.Name, value)
	}
}
