package models

import "time"

// Quiz is a prompt that tests recall of a note or source.
// Type must name an entry in the quiz-type registry. NoteID and
// SourceID are weak back-references used by index lookups during
// course aggregation.
type Quiz struct {
	ID          string     `json:"id" db:"id"`
	Type        string     `json:"type" db:"type"`
	Prompt      string     `json:"prompt" db:"prompt"`
	Choices     []string   `json:"choices" db:"choices"`
	Answers     []string   `json:"answers" db:"answers"`
	Tags        []string   `json:"tags" db:"tags"`
	NoteID      *string    `json:"note_id,omitempty" db:"note_id"`
	SourceID    *string    `json:"source_id,omitempty" db:"source_id"`
	CreatedBy   string     `json:"created_by" db:"created_by"`
	Permissions Grant      `json:"permissions"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func (q *Quiz) ResourceID() string { return q.ID }
func (q *Quiz) OwnerID() string    { return q.CreatedBy }
func (q *Quiz) AccessGrant() Grant { return q.Permissions }
