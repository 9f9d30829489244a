package models

import "time"

// Source is a citation of external study material (book, article,
// video). Notes and quizzes may back-reference the source they were
// derived from.
type Source struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Medium       string     `json:"medium" db:"medium"`
	URL          *string    `json:"url,omitempty" db:"url"`
	Contributors []string   `json:"contributors" db:"contributors"`
	PublishDate  *time.Time `json:"publish_date,omitempty" db:"publish_date"`
	LastAccessed *time.Time `json:"last_accessed,omitempty" db:"last_accessed"`
	Tags         []string   `json:"tags" db:"tags"`
	CreatedBy    string     `json:"created_by" db:"created_by"`
	Permissions  Grant      `json:"permissions"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func (s *Source) ResourceID() string { return s.ID }
func (s *Source) OwnerID() string    { return s.CreatedBy }
func (s *Source) AccessGrant() Grant { return s.Permissions }
