package catalog

import (
	"sort"
	"strings"
)

// sortResources establishes the catalog's total order: title, then date,
// then edition, version, and volume as successive tie-breakers. A missing
// optional value sorts before any present one.
func sortResources(resources []Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		return compareResources(&resources[i], &resources[j]) < 0
	})
}

func compareResources(a, b *Resource) int {
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	if c := compareDates(a.Date, b.Date); c != 0 {
		return c
	}
	if c := compareIntOptions(a.Edition, b.Edition); c != 0 {
		return c
	}
	if c := compareStringOptions(a.Version, b.Version); c != 0 {
		return c
	}
	return compareIntOptions(a.Volume, b.Volume)
}

func compareDates(a, b Date) int {
	if c := compareIntOptions(a.Year, b.Year); c != 0 {
		return c
	}
	if c := compareIntOptions(a.Month, b.Month); c != 0 {
		return c
	}
	return compareIntOptions(a.Day, b.Day)
}

func compareIntOptions(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareStringOptions(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}
