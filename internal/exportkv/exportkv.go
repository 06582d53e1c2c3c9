// Package exportkv projects typed records onto a flat key-value map for
// tabular export. The projection is pure: it reads the record's JSON shape
// and performs no extraction of its own.
package exportkv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Flatten converts any record into a flat string map. Nested objects
// contribute dotted keys (identity.ticker); lists are embedded as compact
// JSON so no information is lost in the flattening.
func Flatten(record any) (map[string]string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("flatten record: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("flatten record: %w", err)
	}

	out := map[string]string{}
	if err := walk("", tree, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Keys returns the flattened keys in stable sorted order, for writing
// header rows.
func Keys(flat map[string]string) []string {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func walk(prefix string, v any, out map[string]string) error {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := walk(key, child, out); err != nil {
				return err
			}
		}
	case []any:
		embedded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("flatten list %s: %w", prefix, err)
		}
		out[prefix] = string(embedded)
	case json.Number:
		out[prefix] = val.String()
	case string:
		out[prefix] = val
	case bool:
		out[prefix] = strconv.FormatBool(val)
	case nil:
		out[prefix] = ""
	default:
		return fmt.Errorf("flatten %s: unsupported value %T", prefix, v)
	}
	return nil
}
