package library

import (
	"github.com/akari-dl/hondana/internal/metadata"
	"github.com/akari-dl/hondana/internal/models"
)

// ApplyMetadata overlays a metadata record onto a scanned entry. This
// is the single merge implementation used by both the cached listing
// and fresh detail scans.
//
// The asymmetry is deliberate and load-bearing: title is overridden
// only when the record carries one, while readCount, isPinned,
// lastReadAt and collectionIds are always taken from the record with
// their defaults. Clients rely on title-only partial overrides.
func ApplyMetadata(m *models.Manga, rec metadata.Record) {
	if title, ok := rec["title"].(string); ok {
		m.Title = title
	}
	m.ReadCount = asInt(rec["readCount"])
	m.IsPinned = asBool(rec["isPinned"])
	m.LastReadAt = asFloat(rec["lastReadAt"])
	m.CollectionIDs = asStringSlice(rec["collectionIds"])
}

// JSON round-trips turn numbers into float64 and arrays into []any;
// records written in-process may still hold the native Go types.

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asStringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		out := make([]string, len(vals))
		copy(out, vals)
		return out
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
