// Package ranking derives rank snapshots from a scored list and detects
// changes in the leading positions.
package ranking

import (
	"slices"
	"strings"
)

// Entry is one ranked participant as supplied by the ranking provider.
type Entry struct {
	ID    string  `csv:"id"`
	Name  string  `csv:"name"`
	Score float64 `csv:"score"`
}

// Snapshot is the ordered tuple of leading participant IDs, highest score first.
type Snapshot []string

// TopSnapshot returns the IDs of the first n entries of an already-sorted list.
// Entries past n are never read.
func TopSnapshot(list []Entry, n int) Snapshot {
	if n > len(list) {
		n = len(list)
	}
	if n <= 0 {
		return Snapshot{}
	}
	s := make(Snapshot, n)
	for i := 0; i < n; i++ {
		s[i] = list[i].ID
	}
	return s
}

// Equal reports ordered identity equality. A length difference is a difference.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s, other)
}

// String renders the snapshot as a comma-separated ID list for logging.
func (s Snapshot) String() string {
	return strings.Join(s, ",")
}

// Rank returns a copy of list sorted by non-increasing score. Equal scores keep
// their relative order from list.
func Rank(list []Entry) []Entry {
	ranked := slices.Clone(list)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return ranked
}
