package coursedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository persists courses and their holes. A nil bun.IDB uses the
// repository's own connection.
type Repository interface {
	// CreateCourse inserts the course and every hole in course.Holes.
	CreateCourse(ctx context.Context, db bun.IDB, course *Course) error
	// GetCourse loads a course with its holes ordered by number.
	GetCourse(ctx context.Context, db bun.IDB, id string) (*Course, error)
	ListCourses(ctx context.Context, db bun.IDB) ([]Course, error)
	DeleteCourse(ctx context.Context, db bun.IDB, id string) error
	// ListHoles returns a course's holes ordered by number.
	ListHoles(ctx context.Context, db bun.IDB, courseID string) ([]Hole, error)
}
