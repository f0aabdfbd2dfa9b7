package domain

import (
	"fmt"
	"strings"
)

// SortKind selects the product attribute a sort applies to
type SortKind int

const (
	SortByPrice SortKind = iota + 1
	SortByRating
)

func (k SortKind) String() string {
	switch k {
	case SortByPrice:
		return "price"
	case SortByRating:
		return "rating"
	default:
		return "unknown"
	}
}

// SortDirection is the ordering of a sort criterion. The zero value means the
// criterion is not set.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// ParseSortKind parses "price" or "rating".
func ParseSortKind(s string) (SortKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price":
		return SortByPrice, nil
	case "rating":
		return SortByRating, nil
	default:
		return 0, fmt.Errorf("unknown sort kind: %q", s)
	}
}

// ParseSortDirection parses asc/desc (long forms accepted) and none.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	case "none", "":
		return SortNone, nil
	default:
		return SortNone, fmt.Errorf("unknown sort direction: %q", s)
	}
}

// ParseSortOption parses the combined form used by the sort menu, e.g. "price-desc".
// The direction is required; "price-none" clears the price sort.
func ParseSortOption(s string) (SortKind, SortDirection, error) {
	kind, dir, ok := strings.Cut(s, "-")
	if !ok || strings.TrimSpace(dir) == "" {
		return 0, SortNone, fmt.Errorf("invalid sort option: %q", s)
	}
	k, err := ParseSortKind(kind)
	if err != nil {
		return 0, SortNone, err
	}
	d, err := ParseSortDirection(dir)
	if err != nil {
		return 0, SortNone, err
	}
	return k, d, nil
}
