package coursedb

import (
	"context"
	"time"

	scoredomain "github.com/Black-And-White-Club/trip-scorer/app/modules/score/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Course is a layout played during the trip.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`
	ID            string    `bun:"id,pk" json:"id"`
	Name          string    `bun:"name,notnull,unique" json:"name"`
	NumHoles      int       `bun:"num_holes,notnull" json:"num_holes"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	Holes         []*Hole   `bun:"rel:has-many,join:id=course_id" json:"holes,omitempty"`
}

// Hole is one hole of a course. A course has exactly one hole per number.
type Hole struct {
	bun.BaseModel `bun:"table:holes,alias:h"`
	ID            string `bun:"id,pk" json:"id"`
	CourseID      string `bun:"course_id,notnull,unique:course_hole_number" json:"course_id"`
	HoleNumber    int    `bun:"hole_number,notnull,unique:course_hole_number" json:"hole_number"`
	Par           int    `bun:"par,notnull" json:"par"`
	IsPar3        bool   `bun:"is_par3,notnull" json:"is_par3"`
	IsPar5        bool   `bun:"is_par5,notnull" json:"is_par5"`
}

var (
	_ bun.BeforeAppendModelHook = (*Course)(nil)
	_ bun.BeforeAppendModelHook = (*Hole)(nil)
)

func (c *Course) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
	}
	return nil
}

// BeforeAppendModel assigns an id and keeps the par flags in step with Par.
func (h *Hole) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.IsPar3 = h.Par == 3
	h.IsPar5 = h.Par == 5
	return nil
}

// ToDomain converts the hole to the stats input.
func (h Hole) ToDomain() scoredomain.Hole {
	return scoredomain.Hole{ID: scoredomain.HoleID(h.ID), HoleNumber: h.HoleNumber, Par: h.Par}
}
