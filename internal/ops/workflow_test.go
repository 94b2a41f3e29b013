package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/recap/internal/index"
)

// TestCaptureSearchSummarizeWorkflow drives the full lifecycle: store a
// week of conversations, find them again, roll them up into a summary,
// then lose the index and recover.
func TestCaptureSearchSummarizeWorkflow(t *testing.T) {
	deps := newTestDeps(t)
	now := time.Date(2026, 8, 26, 15, 0, 0, 0, time.Local)

	added, err := Add(deps, AddInput{
		Content: "Debugged the Python importer and fixed the retry bug.",
		Title:   "importer bugfix",
		Date:    "2026-08-24",
	})
	require.NoError(t, err)
	require.Contains(t, added.Topics, "python")

	_, err = Add(deps, AddInput{
		Content: "We decided to move deploys onto Docker.",
		Title:   "deploy decision",
		Date:    "2026-08-25",
	})
	require.NoError(t, err)

	_, err = Add(deps, AddInput{
		Content: "Learned how B-trees split during a course session.",
		Title:   "btree study",
		Date:    "2026-08-26",
	})
	require.NoError(t, err)

	// Search finds the stored conversation and ranks the topic match first.
	results, err := Search(deps, SearchInput{Query: "python"})
	require.NoError(t, err)
	require.Len(t, results.Items, 1)
	require.Equal(t, added.ID, results.Items[0].ID)
	require.GreaterOrEqual(t, results.Items[0].Score, deps.Config.Weights.Topic)

	// The weekly summary covers all three and persists.
	summary, err := WeeklySummary(deps, SummaryInput{Now: now})
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
	require.Contains(t, summary.Document, "importer bugfix")
	require.Contains(t, summary.Document, "deploy decision")
	require.Contains(t, summary.Document, "btree study")

	// Regeneration is byte-identical.
	again, err := WeeklySummary(deps, SummaryInput{Now: now})
	require.NoError(t, err)
	require.Equal(t, summary.Document, again.Document)

	// The index file dies; reads degrade to empty instead of failing.
	indexPath := filepath.Join(deps.Config.StorageRoot, index.IndexFile)
	require.NoError(t, os.WriteFile(indexPath, []byte("}{corrupt"), 0o644))

	results, err = Search(deps, SearchInput{Query: "python"})
	require.NoError(t, err)
	require.Empty(t, results.Items)

	// Reindex restores everything from the content files.
	rebuilt, err := Reindex(deps)
	require.NoError(t, err)
	require.Equal(t, 3, rebuilt.Indexed)

	results, err = Search(deps, SearchInput{Query: "python"})
	require.NoError(t, err)
	require.Len(t, results.Items, 1)

	summary, err = WeeklySummary(deps, SummaryInput{Now: now})
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
}
