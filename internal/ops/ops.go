// Package ops implements the three operations exposed by the transport
// layers: Add, Search, and WeeklySummary (plus Reindex for recovery).
// Each operation runs to completion synchronously and re-reads the index
// files from disk, so nothing cached in memory can go stale between calls.
package ops

import (
	"log/slog"
	"path/filepath"

	"github.com/hpungsan/recap/internal/config"
	"github.com/hpungsan/recap/internal/index"
	"github.com/hpungsan/recap/internal/store"
	"github.com/hpungsan/recap/internal/topics"
)

// RulesFile is the optional topic/category rules override in the storage root.
const RulesFile = "topics.yaml"

// Deps carries the collaborators each operation needs. It replaces any
// process-wide defaults: every component receives the storage root through
// this struct, which is what lets tests isolate themselves per TempDir.
type Deps struct {
	Store     *store.Store
	Index     *index.Manager
	Extractor *topics.Extractor
	Config    *config.Config
	Log       *slog.Logger
}

// NewDeps wires up the engine for the given configuration. Topic rules come
// from topics.yaml in the storage root when present, otherwise the built-in
// defaults.
func NewDeps(cfg *config.Config, logger *slog.Logger) (*Deps, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rules, err := topics.LoadRules(filepath.Join(cfg.StorageRoot, RulesFile))
	if err != nil {
		return nil, err
	}
	return &Deps{
		Store:     store.New(cfg.StorageRoot, logger),
		Index:     index.NewManager(cfg.StorageRoot, logger),
		Extractor: topics.NewExtractor(rules, cfg.MaxTopics),
		Config:    cfg,
		Log:       logger,
	}, nil
}
