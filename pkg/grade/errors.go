package grade

import "errors"

var (
	// ErrCourseClosed is returned when a withdrawn or replaced course is mutated.
	ErrCourseClosed = errors.New("course is withdrawn or replaced")

	// ErrUnknownCategory is returned when a grade targets a category that was never added.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidPossible is returned for scores with zero or negative possible points.
	ErrInvalidPossible = errors.New("possible points must be greater than zero")

	// ErrEmptyName is returned when a name is required but blank.
	ErrEmptyName = errors.New("name is required")

	// ErrBadWeights is reported when weighted category weights do not sum to 1.
	ErrBadWeights = errors.New("category weights do not sum to 1")

	// ErrNoGradedWork is reported when there is nothing to compute a grade from.
	ErrNoGradedWork = errors.New("no graded work")

	// ErrNoScaleMatch is reported when a percentage falls outside every scale band.
	ErrNoScaleMatch = errors.New("percentage matches no scale band")

	// ErrNoGPACourses is returned when no course contributes units to a GPA.
	ErrNoGPACourses = errors.New("no courses included in GPA")
)
