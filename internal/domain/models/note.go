package models

import "time"

// Note is a piece of distilled knowledge authored by a user.
// SourceID is a weak back-reference to the source the note was
// derived from; it is a relation only, not ownership, and may point
// at a source the note's readers cannot see.
type Note struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Text        string     `json:"text" db:"text"`
	Tags        []string   `json:"tags" db:"tags"`
	SourceID    *string    `json:"source_id,omitempty" db:"source_id"`
	CreatedBy   string     `json:"created_by" db:"created_by"`
	Permissions Grant      `json:"permissions"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func (n *Note) ResourceID() string { return n.ID }
func (n *Note) OwnerID() string    { return n.CreatedBy }
func (n *Note) AccessGrant() Grant { return n.Permissions }
