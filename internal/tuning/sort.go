package tuning

import (
	"fmt"
	"sort"
)

// SortKey selects the column a result table is ordered by. Only the four
// identifying columns are sortable; the numeric tuning columns are not.
type SortKey int

const (
	SortByVariant SortKey = iota
	SortByMethod
	SortByMode
	SortByCriterion
)

func (k SortKey) String() string {
	switch k {
	case SortByMethod:
		return "method"
	case SortByMode:
		return "mode"
	case SortByCriterion:
		return "criterion"
	}
	return "variant"
}

// ParseSortKey maps a CLI flag value onto a sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "variant":
		return SortByVariant, nil
	case "method":
		return SortByMethod, nil
	case "mode":
		return SortByMode, nil
	case "criterion":
		return SortByCriterion, nil
	}
	return 0, fmt.Errorf("tuning: unknown sort key %q (variant, method, mode, criterion)", s)
}

func less(key SortKey, a, b ResultRecord) bool {
	switch key {
	case SortByMethod:
		return a.Method.String() < b.Method.String()
	case SortByMode:
		return a.Mode.String() < b.Mode.String()
	case SortByCriterion:
		return a.Criterion.sortValue() < b.Criterion.sortValue()
	}
	return a.Variant < b.Variant
}

// Sort returns a copy of rs ordered by a single key. The sort is stable,
// and descending order is the exact reverse of ascending order, so sorting
// twice on the same key round-trips (the toggle law the table UI relies
// on). Ties keep their prior relative order.
func Sort(rs ResultSet, key SortKey, ascending bool) ResultSet {
	out := rs.Clone()
	sort.SliceStable(out, func(i, j int) bool { return less(key, out[i], out[j]) })
	if !ascending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// SortDefault returns a copy in the table's initial order: Variant, then
// Method, then Mode, then Criterion (numeric), each ascending.
func SortDefault(rs ResultSet) ResultSet {
	out := rs.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Variant != b.Variant {
			return a.Variant < b.Variant
		}
		if a.Method != b.Method {
			return a.Method.String() < b.Method.String()
		}
		if a.Mode != b.Mode {
			return a.Mode.String() < b.Mode.String()
		}
		return a.Criterion.sortValue() < b.Criterion.sortValue()
	})
	return out
}

// Sorter tracks the interactive sort state of a result table: invoking the
// active key again flips direction, invoking a new key resets to ascending.
type Sorter struct {
	key       SortKey
	ascending bool
	active    bool
}

// Click registers a sort request on a column and returns the order to
// apply now.
func (s *Sorter) Click(key SortKey) (SortKey, bool) {
	if s.active && s.key == key {
		s.ascending = !s.ascending
	} else {
		s.key = key
		s.ascending = true
		s.active = true
	}
	return s.key, s.ascending
}

// Key reports the active sort column; ok is false before any Click.
func (s *Sorter) Key() (SortKey, bool) {
	return s.key, s.active
}

// Ascending reports the active direction.
func (s *Sorter) Ascending() bool {
	return s.ascending
}

// Apply sorts rs by the active state; before any Click it returns the
// default multi-key order.
func (s *Sorter) Apply(rs ResultSet) ResultSet {
	if !s.active {
		return SortDefault(rs)
	}
	return Sort(rs, s.key, s.ascending)
}
