package config

const (
	// MaxTitleLength is the maximum length for source, note and group
	// names/titles. Limited to 255 to fit in PostgreSQL VARCHAR(255)
	// and provide reasonable UX (titles should be short and
	// descriptive).
	MaxTitleLength = 255

	// MaxCourseNameLength is the maximum length for course names.
	// Same as titles for consistency.
	MaxCourseNameLength = 255

	// MaxDescriptionLength is the maximum length for free-form
	// description fields.
	MaxDescriptionLength = 2000

	// MaxNoteTextLength is the maximum length for note bodies. Notes
	// are distilled knowledge, not full documents; anything larger
	// belongs in a source.
	MaxNoteTextLength = 50000

	// MaxPromptLength is the maximum length for quiz prompts.
	MaxPromptLength = 5000

	// MaxTagLength is the maximum length for a single tag.
	MaxTagLength = 100

	// MaxURLLength is the maximum length for source URLs.
	MaxURLLength = 2048
)
