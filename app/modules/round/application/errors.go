package roundservice

import (
	"fmt"

	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

var (
	ErrRoundNotFound        = fmt.Errorf("round %w", results.ErrNotFound)
	ErrCourseNotFound       = fmt.Errorf("%w: course does not exist", results.ErrInvalid)
	ErrDuplicateRoundNumber = fmt.Errorf("round number already used: %w", results.ErrConflict)
	ErrRoundComplete        = fmt.Errorf("round is already complete: %w", results.ErrConflict)
	ErrInvalidRoundDate     = fmt.Errorf("%w: unrecognised round date", results.ErrInvalid)
	ErrUnreadableScorecard  = fmt.Errorf("%w: scorecard could not be read", results.ErrInvalid)
	ErrNothingImported      = fmt.Errorf("%w: scorecard matched no players or holes", results.ErrInvalid)
)
