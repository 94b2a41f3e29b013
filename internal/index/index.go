// Package index maintains the two derived JSON structures: the conversation
// index (metadata only) and the topic frequency table. Both are rebuildable
// from the content files, which remain the source of truth; a corrupt index
// is therefore recovered by treating it as empty, never by failing a read.
package index

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hpungsan/recap/internal/conversation"
	"github.com/hpungsan/recap/internal/errors"
)

const (
	// IndexFile and TopicsFile are the on-disk names under the storage root.
	IndexFile  = "index.json"
	TopicsFile = "topics.json"
)

// Index is the persisted conversation index.
type Index struct {
	Conversations []conversation.Entry `json:"conversations"`
	LastUpdated   time.Time            `json:"last_updated"`
}

// TopicTable maps topic → number of conversations tagged with it.
// Counts are binary per conversation and never decremented (there is no
// delete path).
type TopicTable map[string]int

// Manager owns the index files. It holds no in-memory cache: every
// operation re-reads from disk so the files stay the single source of truth
// across calls.
type Manager struct {
	root string
	log  *slog.Logger
}

// NewManager creates a Manager over the given storage root.
func NewManager(root string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{root: root, log: logger}
}

// Load reads both index files. A missing file yields an empty structure
// (first run). A malformed file logs a warning and yields an empty
// structure: the index is derived data, and losing it must never imply
// losing conversation content.
func (m *Manager) Load() (*Index, TopicTable, error) {
	idx := &Index{Conversations: []conversation.Entry{}}
	table := TopicTable{}

	if err := m.readJSON(IndexFile, idx); err != nil {
		if errors.Is(err, errors.ErrIndexCorruption) {
			m.log.Warn("index file corrupt, treating as empty", "file", IndexFile, "error", err.Error())
			*idx = Index{Conversations: []conversation.Entry{}}
		} else {
			return nil, nil, err
		}
	}
	if idx.Conversations == nil {
		idx.Conversations = []conversation.Entry{}
	}

	if err := m.readJSON(TopicsFile, &table); err != nil {
		if errors.Is(err, errors.ErrIndexCorruption) {
			m.log.Warn("topic table corrupt, treating as empty", "file", TopicsFile, "error", err.Error())
			table = TopicTable{}
		} else {
			return nil, nil, err
		}
	}
	if table == nil {
		table = TopicTable{}
	}

	return idx, table, nil
}

// Append adds one entry and bumps the topic table for each distinct topic,
// then rewrites both files in full. Last-writer-wins; the design assumes a
// single process writing at a time.
func (m *Manager) Append(entry conversation.Entry) error {
	idx, table, err := m.Load()
	if err != nil {
		return err
	}

	idx.Conversations = append(idx.Conversations, entry)
	idx.LastUpdated = time.Now().UTC()

	// Set semantics: a topic repeated within one conversation counts once.
	seen := make(map[string]bool, len(entry.Topics))
	for _, t := range entry.Topics {
		if seen[t] {
			continue
		}
		seen[t] = true
		table[t]++
	}

	return m.write(idx, table)
}

// Rebuild replaces both files from scratch with the given entries,
// recomputing the topic table. Used by the reindex operation after the
// content tree has been re-scanned.
func (m *Manager) Rebuild(entries []conversation.Entry) error {
	idx := &Index{
		Conversations: entries,
		LastUpdated:   time.Now().UTC(),
	}
	if idx.Conversations == nil {
		idx.Conversations = []conversation.Entry{}
	}

	table := TopicTable{}
	for _, e := range entries {
		seen := make(map[string]bool, len(e.Topics))
		for _, t := range e.Topics {
			if seen[t] {
				continue
			}
			seen[t] = true
			table[t]++
		}
	}

	return m.write(idx, table)
}

func (m *Manager) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(m.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewStorage("read "+name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewIndexCorruption(name, err)
	}
	return nil
}

func (m *Manager) write(idx *Index, table TopicTable) error {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return errors.NewStorage("create storage root", err)
	}
	if err := m.writeJSON(IndexFile, idx); err != nil {
		return err
	}
	return m.writeJSON(TopicsFile, table)
}

func (m *Manager) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := os.WriteFile(filepath.Join(m.root, name), append(data, '\n'), 0o644); err != nil {
		return errors.NewStorage("write "+name, err)
	}
	return nil
}
