package models

import "time"

// Prerequisite is a directed edge to a course that should be studied
// before this one. RequiredAverageLevel is accepted as any positive
// integer; the authoring surface currently always sends 1 and no
// gating logic consumes the value yet.
type Prerequisite struct {
	CourseID             string `json:"course_id" db:"course_id"`
	RequiredAverageLevel int    `json:"required_average_level" db:"required_average_level"`
}

// Course is a curriculum linking sources, notes and quizzes.
//
// ParentCourseIDs and Prerequisites each form their own directed
// graph over courses; both must stay acyclic and are validated on
// every mutation. The three content id lists have set semantics.
// AddAllFromSources / AddAllFromNotes opt the course into pulling in
// notes and quizzes that back-reference its listed content.
type Course struct {
	ID                string         `json:"id" db:"id"`
	Name              string         `json:"name" db:"name"`
	Description       string         `json:"description" db:"description"`
	ParentCourseIDs   []string       `json:"parent_course_ids" db:"parent_course_ids"`
	Prerequisites     []Prerequisite `json:"prerequisites" db:"prerequisites"`
	SourceIDs         []string       `json:"source_ids" db:"source_ids"`
	NoteIDs           []string       `json:"note_ids" db:"note_ids"`
	QuizIDs           []string       `json:"quiz_ids" db:"quiz_ids"`
	AddAllFromSources bool           `json:"add_all_from_sources" db:"add_all_from_sources"`
	AddAllFromNotes   bool           `json:"add_all_from_notes" db:"add_all_from_notes"`
	CreatedBy         string         `json:"created_by" db:"created_by"`
	Permissions       Grant          `json:"permissions"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time     `json:"deleted_at,omitempty" db:"deleted_at"`
}

func (c *Course) ResourceID() string { return c.ID }
func (c *Course) OwnerID() string    { return c.CreatedBy }
func (c *Course) AccessGrant() Grant { return c.Permissions }

// PrerequisiteCourseIDs returns the target course IDs of the
// prerequisite edges, in declaration order.
func (c *Course) PrerequisiteCourseIDs() []string {
	ids := make([]string, len(c.Prerequisites))
	for i, p := range c.Prerequisites {
		ids[i] = p.CourseID
	}
	return ids
}
