package pages

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ResolvePageRange parses a page range expression into a sorted slice of
// unique 1-based page numbers within [1, totalPages].
//
// The expression is a comma-separated list of segments, each a single page
// ("4") or an inclusive range ("9-12"). Whitespace anywhere in the
// expression is ignored. A blank expression selects all pages. Segments
// with start greater than end are rejected; page numbers outside the
// document bounds are silently dropped.
func ResolvePageRange(expr string, totalPages int) ([]int, error) {
	pages := []int{}

	if strings.TrimSpace(expr) == "" {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages, nil
	}

	sanitized := stripSpace(expr)
	seen := make(map[int]bool)

	for _, segment := range strings.Split(sanitized, ",") {
		start, end, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}

		for i := start; i <= end; i++ {
			if i >= 1 && i <= totalPages {
				seen[i] = true
			}
		}
	}

	for page := range seen {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	return pages, nil
}

// parseSegment parses a "N" or "N-M" segment into its inclusive bounds.
func parseSegment(segment string) (int, int, error) {
	parts := strings.Split(segment, "-")

	switch len(parts) {
	case 1:
		page, ok := parseNumber(parts[0])
		if !ok {
			return 0, 0, segmentError(segment)
		}
		return page, page, nil
	case 2:
		start, ok := parseNumber(parts[0])
		if !ok {
			return 0, 0, segmentError(segment)
		}
		end, ok := parseNumber(parts[1])
		if !ok {
			return 0, 0, segmentError(segment)
		}
		if start > end {
			return 0, 0, fmt.Errorf(
				"%w: %q: start page must not be greater than end page",
				ErrInvalidPageRange, segment,
			)
		}
		return start, end, nil
	default:
		return 0, 0, segmentError(segment)
	}
}

// parseNumber accepts digit-only decimal numbers; strconv.Atoi alone would
// also admit signs.
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func segmentError(segment string) error {
	return fmt.Errorf(
		"%w: invalid segment %q, expected format like 2,4,9-12",
		ErrInvalidPageRange, segment,
	)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
