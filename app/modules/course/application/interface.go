package courseservice

import (
	"context"

	coursedb "github.com/Black-And-White-Club/trip-scorer/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
)

// CourseResult is the outcome of a single-course operation.
type CourseResult = results.OperationResult[*coursedb.Course, error]

// Service manages courses and their hole layouts.
type Service interface {
	CreateCourse(ctx context.Context, req CreateCourseRequest) (CourseResult, error)
	GetCourse(ctx context.Context, id string) (CourseResult, error)
	ListCourses(ctx context.Context) (results.OperationResult[[]coursedb.Course, error], error)
	DeleteCourse(ctx context.Context, id string) (results.OperationResult[bool, error], error)
}

// RoundUsage reports how many rounds are scheduled on a course.
type RoundUsage interface {
	CountRoundsForCourse(ctx context.Context, db bun.IDB, courseID string) (int, error)
}

// CreateCourseRequest describes a new course. Holes may be omitted, in which
// case every hole is a par 4.
type CreateCourseRequest struct {
	Name     string        `json:"name" validate:"required,max=120"`
	NumHoles int           `json:"num_holes" validate:"required,min=1,max=27"`
	Holes    []HoleRequest `json:"holes" validate:"omitempty,dive"`
}

// HoleRequest sets one hole's par.
type HoleRequest struct {
	HoleNumber int `json:"hole_number" validate:"min=1,max=27"`
	Par        int `json:"par" validate:"oneof=3 4 5"`
}
