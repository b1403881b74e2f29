package alias

import (
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

// Map maps keys to the status reported by one source.
// The first status recorded for a key wins.
type Map map[string]status.Status

// Add records st for k unless k is empty or already recorded.
func (m Map) Add(k string, st status.Status) bool {
	if k == "" {
		return false
	}
	if _, ok := m[k]; ok {
		return false
	}
	m[k] = st
	return true
}

// AddAll calls [Map.Add] for each key and returns the number of keys recorded.
func (m Map) AddAll(keys []string, st status.Status) int {
	var n int
	for _, k := range keys {
		if m.Add(k, st) {
			n++
		}
	}
	return n
}

// Lookup returns the status of the first key present in m.
func (m Map) Lookup(keys []string) (st status.Status, key string, ok bool) {
	for _, k := range keys {
		if st, ok = m[k]; ok {
			return st, k, true
		}
	}
	return status.Missing, "", false
}
