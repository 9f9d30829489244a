package models

// Resource is implemented by every shareable content type (Source,
// Note, Quiz, Course). The access package evaluates permissions
// against this interface only.
type Resource interface {
	// ResourceID returns the resource's unique identifier.
	ResourceID() string

	// OwnerID returns the ID of the creating user, who always holds
	// full read and write access.
	OwnerID() string

	// AccessGrant returns the resource's permission record.
	AccessGrant() Grant
}
