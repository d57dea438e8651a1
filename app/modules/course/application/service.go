package courseservice

import (
	"context"
	"errors"
	"strings"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultPar is used for holes the request leaves out.
const DefaultPar = 4

// CourseService implements Service.
type CourseService struct {
	repo      coursedb.Repository
	usage     RoundUsage
	telemetry operation.Telemetry
	db        *bun.DB
}

var _ Service = (*CourseService)(nil)

// NewCourseService creates a new CourseService.
func NewCourseService(repo coursedb.Repository, usage RoundUsage, obs observability.Observability, db *bun.DB) *CourseService {
	return &CourseService{
		repo:      repo,
		usage:     usage,
		telemetry: operation.NewTelemetry("course", obs),
		db:        db,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, req CreateCourseRequest) (CourseResult, error) {
	return operation.Run(ctx, s.telemetry, "CreateCourse", nil, func(ctx context.Context) (CourseResult, error) {
		course, err := buildCourse(req)
		if err != nil {
			return results.FailureResult[*coursedb.Course, error](err), nil
		}

		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (CourseResult, error) {
			existing, err := s.repo.ListCourses(ctx, db)
			if err != nil {
				return CourseResult{}, err
			}
			for _, c := range existing {
				if strings.EqualFold(c.Name, course.Name) {
					return results.FailureResult[*coursedb.Course, error](ErrDuplicateCourse), nil
				}
			}

			if err := s.repo.CreateCourse(ctx, db, course); err != nil {
				return CourseResult{}, err
			}
			return results.SuccessResult[*coursedb.Course, error](course), nil
		})
	})
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (CourseResult, error) {
	return operation.Run(ctx, s.telemetry, "GetCourse", attrs(id), func(ctx context.Context) (CourseResult, error) {
		course, err := s.repo.GetCourse(ctx, nil, id)
		if errors.Is(err, coursedb.ErrNotFound) {
			return results.FailureResult[*coursedb.Course, error](ErrCourseNotFound), nil
		}
		if err != nil {
			return CourseResult{}, err
		}
		return results.SuccessResult[*coursedb.Course, error](course), nil
	})
}

func (s *CourseService) ListCourses(ctx context.Context) (results.OperationResult[[]coursedb.Course, error], error) {
	return operation.Run(ctx, s.telemetry, "ListCourses", nil, func(ctx context.Context) (results.OperationResult[[]coursedb.Course, error], error) {
		courses, err := s.repo.ListCourses(ctx, nil)
		if err != nil {
			return results.OperationResult[[]coursedb.Course, error]{}, err
		}
		if courses == nil {
			courses = []coursedb.Course{}
		}
		return results.SuccessResult[[]coursedb.Course, error](courses), nil
	})
}

func (s *CourseService) DeleteCourse(ctx context.Context, id string) (results.OperationResult[bool, error], error) {
	return operation.Run(ctx, s.telemetry, "DeleteCourse", attrs(id), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if s.usage != nil {
				n, err := s.usage.CountRoundsForCourse(ctx, db, id)
				if err != nil {
					return results.OperationResult[bool, error]{}, err
				}
				if n > 0 {
					return results.FailureResult[bool, error](ErrCourseInUse), nil
				}
			}

			err := s.repo.DeleteCourse(ctx, db, id)
			if errors.Is(err, coursedb.ErrNoRowsAffected) {
				return results.FailureResult[bool, error](ErrCourseNotFound), nil
			}
			if err != nil {
				return results.OperationResult[bool, error]{}, err
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
}

// buildCourse validates req and expands it into a course with one hole per
// number. Omitted holes default to DefaultPar.
func buildCourse(req CreateCourseRequest) (*coursedb.Course, error) {
	if err := httpapi.Validate(req); err != nil {
		return nil, err
	}
	if !ValidHoleCount(req.NumHoles) {
		return nil, ErrUnsupportedHoles
	}

	pars := make(map[int]int, req.NumHoles)
	for _, h := range req.Holes {
		if h.HoleNumber > req.NumHoles {
			return nil, ErrHoleLayout
		}
		if _, dup := pars[h.HoleNumber]; dup {
			return nil, ErrHoleLayout
		}
		pars[h.HoleNumber] = h.Par
	}
	if len(req.Holes) > 0 && len(pars) != req.NumHoles {
		return nil, ErrHoleLayout
	}

	course := &coursedb.Course{
		Name:     strings.TrimSpace(req.Name),
		NumHoles: req.NumHoles,
		Holes:    make([]*coursedb.Hole, 0, req.NumHoles),
	}
	for n := 1; n <= req.NumHoles; n++ {
		par, ok := pars[n]
		if !ok {
			par = DefaultPar
		}
		course.Holes = append(course.Holes, &coursedb.Hole{HoleNumber: n, Par: par})
	}
	return course, nil
}

// ValidHoleCount reports whether n is a playable layout size.
func ValidHoleCount(n int) bool {
	return (n >= 1 && n <= 18) || n == 27
}

func attrs(courseID string) []attribute.KeyValue {
	return []attribute.KeyValue{operation.Attr(observability.FieldCourseID, courseID)}
}
