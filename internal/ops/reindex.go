package ops

import (
	"path"
	"time"

	"github.com/hpungsan/recap/internal/conversation"
)

// ReindexOutput contains the result of the Reindex operation.
type ReindexOutput struct {
	Indexed int `json:"indexed"`
}

// Reindex rebuilds both index files by walking the content tree. The index
// is derived data, so this is the recovery path after corruption or manual
// file surgery. IDs are regenerated (content files do not embed them) and
// topics are re-extracted with the current rule table; titles derive from
// each file's first line and dates from the filename's date prefix.
func Reindex(deps *Deps) (*ReindexOutput, error) {
	var entries []conversation.Entry

	err := deps.Store.WalkConversations(func(rel string) error {
		content, err := deps.Store.ReadContent(rel)
		if err != nil {
			deps.Log.Warn("skipping unreadable file during reindex", "path", rel, "error", err.Error())
			return nil
		}

		title := conversation.SanitizeTitle(conversation.DeriveTitle(content), deps.Config.MaxTitleChars)
		date := dateFromFilename(rel)

		id, err := generateULID()
		if err != nil {
			return err
		}

		entries = append(entries, conversation.Entry{
			ID:       id,
			Title:    title,
			Date:     date,
			Topics:   deps.Extractor.Extract(content, title),
			FilePath: rel,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := deps.Index.Rebuild(entries); err != nil {
		return nil, err
	}
	return &ReindexOutput{Indexed: len(entries)}, nil
}

// dateFromFilename recovers the conversation date from the
// "YYYY-MM-DD-<slug>.md" filename convention. Files that don't follow it
// get the zero time, which simply sorts them first.
func dateFromFilename(rel string) time.Time {
	name := path.Base(rel)
	if len(name) >= 10 {
		if parsed, err := conversation.ParseDate(name[:10]); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
