package ops

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hpungsan/recap/internal/config"
	"github.com/hpungsan/recap/internal/conversation"
)

// newTestDeps wires the engine over a throwaway storage root.
func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps, err := NewDeps(cfg, logger)
	if err != nil {
		t.Fatalf("NewDeps failed: %v", err)
	}
	return deps
}

// seedConversation writes a content file and appends an index entry with
// fully controlled metadata, bypassing Add's topic extraction so scoring
// tests see exactly the topics they set.
func seedConversation(t *testing.T, deps *Deps, id, title, content string, date time.Time, topics []string) conversation.Entry {
	t.Helper()
	slug := conversation.Slugify(title)
	if slug == "" {
		slug = "conversation"
	}
	rel, err := deps.Store.CreateContent(content, slug, date)
	if err != nil {
		t.Fatalf("CreateContent failed: %v", err)
	}
	entry := conversation.Entry{
		ID:       id,
		Title:    title,
		Date:     date,
		Topics:   topics,
		FilePath: rel,
	}
	if err := deps.Index.Append(entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	return entry
}
