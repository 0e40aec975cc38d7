package cache

import (
	"sort"
	"strings"
)

// Key build a deterministic cache key: <prefix>:<part>:<part>...
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// QueryKey build a key for a parameterized query. Parameter names are
// sorted and empty values skipped so equivalent filter sets produce
// the same key regardless of input order.
func QueryKey(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, val := range params {
		if val == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	b := strings.Builder{}
	b.WriteString(prefix)
	for _, name := range names {
		b.WriteString(":")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(params[name])
	}
	return b.String()
}
