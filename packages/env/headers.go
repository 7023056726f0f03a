package env

import (
	"github.com/V1Zak/postman-helper-sub000/packages/collection"
)

// ResolveHeaders normalizes a header set into a name/value map with
// variables substituted into each value. Entries without a key are dropped;
// later duplicates overwrite earlier ones in declared order.
func ResolveHeaders(headers collection.HeaderSet, vars map[string]string) map[string]string {
	resolved := make(map[string]string, len(headers))
	for _, h := range headers {
		if h.Key == "" {
			continue
		}
		resolved[h.Key] = Substitute(h.Value, vars)
	}
	return resolved
}
