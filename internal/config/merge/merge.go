// Package merge provides deep merging of option tables.
//
// Option tables are plain map[string]any values as produced by the config
// loaders and the Lua bridge. Merging is right-biased: override values win
// on key conflicts, and nested maps are merged recursively. Results never
// share mutable structure with either input.
package merge

// Options deep-merges overrides into base and returns the result.
// Either argument may be nil and is treated as empty. The returned map is
// always freshly allocated; mutating it later cannot corrupt base or
// overrides. Merging is not commutative: Options(a, b) != Options(b, a)
// whenever a and b conflict.
func Options(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))

	for key, val := range base {
		out[key] = cloneValue(val)
	}

	for key, srcVal := range overrides {
		dstVal, exists := out[key]
		if !exists {
			out[key] = cloneValue(srcVal)
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			out[key] = Options(dstMap, srcMap)
		} else {
			out[key] = cloneValue(srcVal)
		}
	}

	return out
}

// Clone returns a deep copy of opts. A nil input yields an empty map.
func Clone(opts map[string]any) map[string]any {
	return Options(opts, nil)
}

// cloneValue creates a deep copy of a value.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return Options(v, nil)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
