package coursedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// Impl implements Repository on bun.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new course repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) CreateCourse(ctx context.Context, db bun.IDB, course *Course) error {
	if db == nil {
		db = r.db
	}
	if _, err := db.NewInsert().Model(course).Exec(ctx); err != nil {
		return fmt.Errorf("coursedb.CreateCourse: %w", err)
	}
	if len(course.Holes) == 0 {
		return nil
	}

	for _, h := range course.Holes {
		h.CourseID = course.ID
	}
	if _, err := db.NewInsert().Model(&course.Holes).Exec(ctx); err != nil {
		return fmt.Errorf("coursedb.CreateCourse: insert holes: %w", err)
	}
	return nil
}

func (r *Impl) GetCourse(ctx context.Context, db bun.IDB, id string) (*Course, error) {
	if db == nil {
		db = r.db
	}
	course := new(Course)
	err := db.NewSelect().
		Model(course).
		Relation("Holes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("h.hole_number ASC")
		}).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("coursedb.GetCourse: %w", err)
	}
	return course, nil
}

func (r *Impl) ListCourses(ctx context.Context, db bun.IDB) ([]Course, error) {
	if db == nil {
		db = r.db
	}
	var courses []Course
	if err := db.NewSelect().Model(&courses).Order("c.name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("coursedb.ListCourses: %w", err)
	}
	return courses, nil
}

func (r *Impl) DeleteCourse(ctx context.Context, db bun.IDB, id string) error {
	if db == nil {
		db = r.db
	}
	if _, err := db.NewDelete().Model((*Hole)(nil)).Where("course_id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("coursedb.DeleteCourse: delete holes: %w", err)
	}
	res, err := db.NewDelete().Model((*Course)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("coursedb.DeleteCourse: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("coursedb.DeleteCourse: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) ListHoles(ctx context.Context, db bun.IDB, courseID string) ([]Hole, error) {
	if db == nil {
		db = r.db
	}
	var holes []Hole
	err := db.NewSelect().
		Model(&holes).
		Where("h.course_id = ?", courseID).
		Order("h.hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("coursedb.ListHoles: %w", err)
	}
	return holes, nil
}
