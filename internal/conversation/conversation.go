package conversation

import "time"

// Conversation represents one stored chat transcript with metadata.
// Conversations are created exactly once and never mutated in place; there
// is no update or delete operation.
type Conversation struct {
	// ID is a ULID that uniquely identifies this conversation
	ID string

	// Title is the human label, derived from content if not supplied
	Title string

	// Content is the raw transcript body
	Content string

	// Date is the logical conversation timestamp, distinct from file mtime
	Date time.Time

	// Topics is the tag set computed at add time and frozen thereafter
	Topics []string

	// FilePath is the content file's path relative to the storage root
	FilePath string
}

// Entry is the metadata-only projection of a Conversation persisted in the
// index. Every Entry's FilePath should reference an existing content file;
// readers tolerate violations (missing file) without failing.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Topics   []string  `json:"topics"`
	FilePath string    `json:"file_path"`
}

// IndexEntry projects a Conversation into its index representation.
func (c *Conversation) IndexEntry() Entry {
	return Entry{
		ID:       c.ID,
		Title:    c.Title,
		Date:     c.Date,
		Topics:   c.Topics,
		FilePath: c.FilePath,
	}
}
