// Package normalizer turns extraction results into the caller-stable
// record shape where every declared key holds a value or the sentinel.
package normalizer

import (
	"strings"

	"fjacquet/docfields/internal/models"
)

// Normalize returns a copy of m with nil values and blank strings replaced
// by models.Sentinel. Nested maps are normalized recursively and nil string
// lists become empty lists.
func Normalize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return models.Sentinel
	case string:
		if strings.TrimSpace(val) == "" {
			return models.Sentinel
		}
		return val
	case map[string]any:
		return Normalize(val)
	case models.ExtractedRecord:
		return models.ExtractedRecord(Normalize(val))
	case []string:
		if val == nil {
			return []string{}
		}
		return val
	default:
		return val
	}
}

// FromRecord converts a typed record into its normalized map form.
func FromRecord(r models.Record) models.ExtractedRecord {
	return models.ExtractedRecord(Normalize(r.Fields()))
}
