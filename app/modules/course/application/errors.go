package courseservice

import (
	"fmt"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

var (
	ErrCourseNotFound   = fmt.Errorf("course %w", results.ErrNotFound)
	ErrDuplicateCourse  = fmt.Errorf("course name already taken: %w", results.ErrConflict)
	ErrCourseInUse      = fmt.Errorf("course has rounds scheduled: %w", results.ErrConflict)
	ErrUnsupportedHoles = fmt.Errorf("%w: a course has 1 to 18 holes, or 27", results.ErrInvalid)
	ErrHoleLayout       = fmt.Errorf("%w: holes must be numbered 1..num_holes exactly once", results.ErrInvalid)
)
