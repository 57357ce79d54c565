package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ApplyDefaultsFile overrides seeded defaults from a YAML file of the
// shape namespace -> key -> value. Overrides go through the validated
// write path, so the file cannot put the table into a state a client
// write could not. This is seed configuration only; written values are
// still not persisted across restarts.
func ApplyDefaultsFile(svc *Service, path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading defaults file: %w", err)
	}

	var doc map[string]map[string]interface{}
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return fmt.Errorf("error while parsing defaults file: %w", err)
	}

	for namespace, keys := range doc {
		for key, raw := range keys {
			value, err := valueFromConfig(namespace, key, raw)
			if err != nil {
				return fmt.Errorf("defaults file entry %s/%s: %w", namespace, key, err)
			}
			if err := svc.Write(namespace, key, value); err != nil {
				return fmt.Errorf("defaults file entry %s/%s: %w", namespace, key, err)
			}
		}
	}

	return nil
}

// valueFromConfig coerces a decoded YAML scalar onto the kind the schema
// requires for the pair. Pairs outside the schema pass through as raw.
func valueFromConfig(namespace, key string, raw interface{}) (Value, error) {
	kind, known := schemaKind(namespace, key)
	if !known {
		return Raw(raw), nil
	}

	switch kind {
	case KindUint32:
		n, ok := asInt64(raw)
		if !ok || n < 0 || n > int64(^uint32(0)) {
			return Value{}, fmt.Errorf("expected a uint32, got %T", raw)
		}
		return Uint32(uint32(n)), nil
	case KindInt32:
		n, ok := asInt64(raw)
		if !ok || n < -1<<31 || n > 1<<31-1 {
			return Value{}, fmt.Errorf("expected an int32, got %T", raw)
		}
		return Int32(int32(n)), nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("expected a boolean, got %T", raw)
		}
		return Bool(b), nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected a string, got %T", raw)
		}
		return String(s), nil
	case KindColor:
		channels, ok := raw.([]interface{})
		if !ok || len(channels) != 3 {
			return Value{}, fmt.Errorf("expected a list of 3 channel values, got %T", raw)
		}
		var c [3]float64
		for i, ch := range channels {
			f, ok := asFloat64(ch)
			if !ok {
				return Value{}, fmt.Errorf("channel %d is not a number", i)
			}
			c[i] = f
		}
		return ColorOf(Color{R: c[0], G: c[1], B: c[2]}), nil
	}

	return Raw(raw), nil
}

func asInt64(raw interface{}) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

func asFloat64(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
