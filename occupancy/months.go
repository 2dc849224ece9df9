package occupancy

import "time"

// MonthSet is a set of month indexes, 0 for January through 11 for December.
type MonthSet [12]bool

// AllMonths returns a set with every month selected.
func AllMonths() MonthSet {
	var s MonthSet
	for i := range s {
		s[i] = true
	}
	return s
}

// MonthsOf builds a set from indexes, ignoring anything outside 0-11.
func MonthsOf(indexes ...int) MonthSet {
	var s MonthSet
	for _, i := range indexes {
		if i >= 0 && i < len(s) {
			s[i] = true
		}
	}
	return s
}

// MonthIndex converts a time.Month to its 0-based index.
func MonthIndex(m time.Month) int {
	return int(m) - 1
}

// Has reports whether month index i is selected.
func (s MonthSet) Has(i int) bool {
	return i >= 0 && i < len(s) && s[i]
}

// Without returns a copy of s with index i removed.
func (s MonthSet) Without(i int) MonthSet {
	if i >= 0 && i < len(s) {
		s[i] = false
	}
	return s
}

// Indexes lists the selected month indexes in ascending order.
func (s MonthSet) Indexes() []int {
	var out []int
	for i, ok := range s {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// All reports whether every month is selected.
func (s MonthSet) All() bool {
	return s == AllMonths()
}
