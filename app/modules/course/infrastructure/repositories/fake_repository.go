package coursedb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a programmable Repository for tests.
type FakeRepository struct {
	CreateCourseFn func(ctx context.Context, db bun.IDB, course *Course) error
	GetCourseFn    func(ctx context.Context, db bun.IDB, id string) (*Course, error)
	ListCoursesFn  func(ctx context.Context, db bun.IDB) ([]Course, error)
	DeleteCourseFn func(ctx context.Context, db bun.IDB, id string) error
	ListHolesFn    func(ctx context.Context, db bun.IDB, courseID string) ([]Hole, error)

	trace []string
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) record(step string) { f.trace = append(f.trace, step) }

// Trace returns the method calls made so far, in order.
func (f *FakeRepository) Trace() []string { return f.trace }

func (f *FakeRepository) CreateCourse(ctx context.Context, db bun.IDB, course *Course) error {
	f.record("CreateCourse")
	if f.CreateCourseFn != nil {
		return f.CreateCourseFn(ctx, db, course)
	}
	return nil
}

func (f *FakeRepository) GetCourse(ctx context.Context, db bun.IDB, id string) (*Course, error) {
	f.record("GetCourse")
	if f.GetCourseFn != nil {
		return f.GetCourseFn(ctx, db, id)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListCourses(ctx context.Context, db bun.IDB) ([]Course, error) {
	f.record("ListCourses")
	if f.ListCoursesFn != nil {
		return f.ListCoursesFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) DeleteCourse(ctx context.Context, db bun.IDB, id string) error {
	f.record("DeleteCourse")
	if f.DeleteCourseFn != nil {
		return f.DeleteCourseFn(ctx, db, id)
	}
	return nil
}

func (f *FakeRepository) ListHoles(ctx context.Context, db bun.IDB, courseID string) ([]Hole, error) {
	f.record("ListHoles")
	if f.ListHolesFn != nil {
		return f.ListHolesFn(ctx, db, courseID)
	}
	return nil, nil
}
