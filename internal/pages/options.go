package pages

import (
	"fmt"
	"strings"
)

// FilterOptions selects which pages a Filter operation keeps. At least one
// of a page range or blank-page removal must be present; when both are set,
// the range applies first and blank removal second.
type FilterOptions struct {
	pageRange    string
	removeBlanks bool
}

// NewFilterOptions validates the option group at construction.
func NewFilterOptions(pageRange string, removeBlankPages bool) (FilterOptions, error) {
	if strings.TrimSpace(pageRange) == "" && !removeBlankPages {
		return FilterOptions{}, fmt.Errorf(
			"%w: either a page range or blank page removal is required",
			ErrInvalidParameter,
		)
	}

	return FilterOptions{
		pageRange:    pageRange,
		removeBlanks: removeBlankPages,
	}, nil
}

// PageRange returns the page range expression, possibly blank.
func (o FilterOptions) PageRange() string { return o.pageRange }

// RemoveBlankPages reports whether blank pages are filtered out.
func (o FilterOptions) RemoveBlankPages() bool { return o.removeBlanks }

// RotationAngle is a rotation restricted to the quarter-turn values the
// typed rotate entry point accepts. The raw entry point bypasses this type.
type RotationAngle int

// Supported rotation angles in degrees.
const (
	Rotate90  RotationAngle = 90
	Rotate180 RotationAngle = 180
	Rotate270 RotationAngle = 270
)

// ParseRotationAngle validates a degree value against the supported set.
func ParseRotationAngle(degrees int) (RotationAngle, error) {
	switch RotationAngle(degrees) {
	case Rotate90, Rotate180, Rotate270:
		return RotationAngle(degrees), nil
	default:
		return 0, fmt.Errorf(
			"%w: rotation angle must be 90, 180 or 270, got %d",
			ErrInvalidParameter, degrees,
		)
	}
}
