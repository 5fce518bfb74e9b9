package record

import (
	"fmt"
	"reflect"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/metacat-io/metacat/pkg/model"
)

// SupportReport flags the parts of a configuration the structured model
// does not round-trip, typically unmapped or misspelled elements.
type SupportReport struct {
	Identifier string
	Divergent  []string
}

// roundTripDivergence re-serializes the parsed record and compares it,
// field for field, against the original input. Returned paths locate
// every divergence. Known derived values (empty elements dropped by
// serialization) are not counted as divergences.
func roundTripDivergence(raw []byte, rec model.Record) []string {
	reserialized, err := jsoniter.Marshal(rec)
	if err != nil {
		return []string{fmt.Sprintf("(reserialize: %v)", err)}
	}

	var original, echoed interface{}
	if err := jsoniter.Unmarshal(raw, &original); err != nil {
		return []string{fmt.Sprintf("(input: %v)", err)}
	}
	if err := jsoniter.Unmarshal(reserialized, &echoed); err != nil {
		return []string{fmt.Sprintf("(echo: %v)", err)}
	}

	var divergent []string
	diffValues("", pruneEmpty(original), pruneEmpty(echoed), &divergent)
	sort.Strings(divergent)
	return divergent
}

// pruneEmpty normalizes a decoded JSON document by dropping null values
// and empty containers, mirroring omitempty on the typed model
func pruneEmpty(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			pruned := pruneEmpty(item)
			if isEmptyValue(pruned) {
				continue
			}
			out[k] = pruned
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(value))
		for _, item := range value {
			out = append(out, pruneEmpty(item))
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return v
	}
}

func isEmptyValue(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case bool:
		return !value
	default:
		return false
	}
}

func diffValues(path string, a, b interface{}, divergent *[]string) {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok {
			*divergent = append(*divergent, path)
			return
		}
		for k, item := range av {
			diffValues(joinPath(path, k), item, bv[k], divergent)
		}
		for k := range bv {
			if _, seen := av[k]; !seen {
				diffValues(joinPath(path, k), nil, bv[k], divergent)
			}
		}
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			*divergent = append(*divergent, path)
			return
		}
		for i := range av {
			diffValues(fmt.Sprintf("%s[%d]", path, i), av[i], bv[i], divergent)
		}
	default:
		if !reflect.DeepEqual(a, b) {
			*divergent = append(*divergent, path)
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
