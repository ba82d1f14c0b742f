package catalog

// Document is a decoded translation catalog for exactly one locale.
// Its shape is owned by the phrase engine; the loader and stores treat
// it as an opaque JSON object.
type Document map[string]any

// Clone returns a deep copy of the document. Nested objects and arrays
// are copied recursively so the returned document shares no mutable
// state with the original.
//
// The loader stores clones: the phrase engine may retain or mutate the
// document it is fed, and cached entries must stay stable so switching
// back to a previously loaded locale reproduces identical output.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneMap(d)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// Scalars decoded from JSON/YAML (string, float64, bool, nil)
		// are immutable and safe to share.
		return v
	}
}
