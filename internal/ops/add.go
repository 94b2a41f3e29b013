package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/recap/internal/conversation"
	"github.com/hpungsan/recap/internal/errors"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Content string // required
	Title   string // optional; derived from content if empty
	Date    string // optional ISO-8601; defaults per date policy
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Topics   []string  `json:"topics"`
	FilePath string    `json:"file_path"`
}

// Add validates input, extracts topics, writes the content file, and appends
// the index entry. The conversation is immutable from this point on.
func Add(deps *Deps, input AddInput) (*AddOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.NewValidation("content is required")
	}
	if len(input.Content) > deps.Config.MaxContentBytes {
		return nil, errors.NewContentTooLarge(deps.Config.MaxContentBytes, len(input.Content))
	}
	content := conversation.StripControl(input.Content)

	if conversation.ContainsTraversal(input.Title) {
		deps.Log.Warn("path traversal attempt in title", "title", input.Title)
		return nil, errors.NewSecurityViolation()
	}

	title := conversation.SanitizeTitle(input.Title, deps.Config.MaxTitleChars)
	if title == "" {
		title = conversation.SanitizeTitle(conversation.DeriveTitle(content), deps.Config.MaxTitleChars)
	}

	date, err := resolveDate(deps, input.Date)
	if err != nil {
		return nil, err
	}

	topicSet := deps.Extractor.Extract(content, title)

	slug := conversation.Slugify(title)
	if slug == "" {
		slug = "conversation"
	}

	fileRel, err := deps.Store.CreateContent(content, slug, date)
	if err != nil {
		return nil, err
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	conv := &conversation.Conversation{
		ID:       id,
		Title:    title,
		Content:  content,
		Date:     date,
		Topics:   topicSet,
		FilePath: fileRel,
	}

	if err := deps.Index.Append(conv.IndexEntry()); err != nil {
		return nil, err
	}

	return &AddOutput{
		ID:       conv.ID,
		Title:    conv.Title,
		Date:     conv.Date,
		Topics:   conv.Topics,
		FilePath: conv.FilePath,
	}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// resolveDate applies the configured date policy: strict mode rejects an
// unparseable date, lenient mode (the default) logs and falls back to now.
func resolveDate(deps *Deps, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Now(), nil
	}
	date, err := conversation.ParseDate(raw)
	if err != nil {
		if deps.Config.StrictDates {
			return time.Time{}, errors.NewValidation(err.Error())
		}
		deps.Log.Warn("unparseable date, falling back to now", "date", raw)
		return time.Now(), nil
	}
	return date, nil
}
