// Package store owns the on-disk layout for conversation content and weekly
// summary documents. Content lives one file per conversation under
// conversations/<year>/<month>/; summaries under summaries/weekly/. The
// derived index files are owned by the index package, not here.
package store

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hpungsan/recap/internal/errors"
)

const (
	conversationsDir = "conversations"
	summariesDir     = "summaries/weekly"
)

// Store persists conversation content files under a single root directory.
// The root is injected so tests can isolate themselves with t.TempDir().
type Store struct {
	root string
	log  *slog.Logger
}

// New creates a Store rooted at root.
func New(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: root, log: logger}
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// CreateContent writes content to a new file bucketed by the date's year and
// month, named "<YYYY-MM-DD>-<slug>.md". On filename collision a numeric
// disambiguator is appended (-2, -3, ...). Returns the path relative to the
// storage root. Exactly one file is created per call.
func (s *Store) CreateContent(content, slug string, date time.Time) (string, error) {
	bucket := filepath.Join(conversationsDir, date.Format("2006"), date.Format("01"))
	if err := os.MkdirAll(filepath.Join(s.root, bucket), 0o755); err != nil {
		return "", errors.NewStorage("create conversation directory", err)
	}

	base := date.Format("2006-01-02") + "-" + slug
	name := base + ".md"
	for n := 2; ; n++ {
		abs := filepath.Join(s.root, bucket, name)
		// O_EXCL guarantees the disambiguated name is actually free.
		f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				name = fmt.Sprintf("%s-%d.md", base, n)
				continue
			}
			return "", errors.NewStorage("create conversation file", err)
		}
		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return "", errors.NewStorage("write conversation file", err)
		}
		if err := f.Close(); err != nil {
			return "", errors.NewStorage("close conversation file", err)
		}
		return filepath.ToSlash(filepath.Join(bucket, name)), nil
	}
}

// ReadContent reads a conversation file by its root-relative path. A path
// that would escape the root is rejected; a missing file maps to NOT_FOUND
// so callers on the search path can skip the entry instead of failing.
func (s *Store) ReadContent(rel string) (string, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(rel)
		}
		return "", errors.NewStorage("read conversation file", err)
	}
	return string(data), nil
}

// WriteWeeklySummary persists a rendered summary document for the week
// starting at weekStart, overwriting any previous document for that week.
// Returns the root-relative path.
func (s *Store) WriteWeeklySummary(weekStart time.Time, doc string) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.root, summariesDir), 0o755); err != nil {
		return "", errors.NewStorage("create summaries directory", err)
	}
	name := "week-" + weekStart.Format("2006-01-02") + ".md"
	rel := filepath.ToSlash(filepath.Join(summariesDir, name))
	if err := os.WriteFile(filepath.Join(s.root, summariesDir, name), []byte(doc), 0o644); err != nil {
		return "", errors.NewStorage("write weekly summary", err)
	}
	return rel, nil
}

// ReadWeeklySummary reads a previously generated summary document by week
// start date.
func (s *Store) ReadWeeklySummary(weekStart time.Time) (string, error) {
	name := "week-" + weekStart.Format("2006-01-02") + ".md"
	data, err := os.ReadFile(filepath.Join(s.root, summariesDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFound(name)
		}
		return "", errors.NewStorage("read weekly summary", err)
	}
	return string(data), nil
}

// ListWeeklySummaries returns the root-relative paths of all generated
// weekly summaries, newest week first.
func (s *Store) ListWeeklySummaries() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, summariesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorage("list weekly summaries", err)
	}
	var rels []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "week-") || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		rels = append(rels, filepath.ToSlash(filepath.Join(summariesDir, e.Name())))
	}
	// week-YYYY-MM-DD names sort chronologically; reverse for newest first.
	for i, j := 0, len(rels)-1; i < j; i, j = i+1, j-1 {
		rels[i], rels[j] = rels[j], rels[i]
	}
	return rels, nil
}

// WalkConversations visits every conversation content file under the root,
// passing its root-relative path. Used by index rebuild.
func (s *Store) WalkConversations(fn func(rel string) error) error {
	base := filepath.Join(s.root, conversationsDir)
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel))
	})
	if err != nil {
		return errors.NewStorage("walk conversations", err)
	}
	return nil
}

// resolve joins rel onto the root, rejecting anything that would escape it.
func (s *Store) resolve(rel string) (string, error) {
	rel = filepath.FromSlash(rel)
	if rel == "" || filepath.IsAbs(rel) || !filepath.IsLocal(rel) {
		s.log.Warn("rejected unsafe content path", "path", rel)
		return "", errors.NewSecurityViolation()
	}
	return filepath.Join(s.root, rel), nil
}
