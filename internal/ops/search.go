package ops

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hpungsan/recap/internal/config"
	"github.com/hpungsan/recap/internal/conversation"
)

// ScoredResult is one ranked search hit with its metadata and a preview
// window around the first matched term.
type ScoredResult struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Topics  []string  `json:"topics"`
	Score   int       `json:"score"`
	Preview string    `json:"preview"`
}

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string
	Limit int // non-positive → config default, clamped to config max
}

// SearchOutput contains the ranked results. Total counts every entry that
// scored above zero, before limit truncation.
type SearchOutput struct {
	Items []ScoredResult `json:"items"`
	Total int            `json:"total"`
}

// Search scores every indexed conversation against the query and returns
// the top results. Scoring is additive per the configured weight table:
// each content occurrence of a term, each title occurrence, and each exact
// topic match contribute independently. Entries scoring zero are excluded.
//
// Ties break by date descending (most recent first), then ID descending,
// so orderings are reproducible.
//
// Every hit costs a full content read; O(n) reads per search is the
// accepted trade-off for a single-user file-backed store.
func Search(deps *Deps, input SearchInput) (*SearchOutput, error) {
	terms := strings.Fields(strings.ToLower(input.Query))
	if len(terms) == 0 {
		// Empty or whitespace-only query is not an error.
		return &SearchOutput{Items: []ScoredResult{}}, nil
	}

	idx, _, err := deps.Index.Load()
	if err != nil {
		return nil, err
	}

	weights := deps.Config.Weights
	scored := make([]ScoredResult, 0, len(idx.Conversations))

	for _, entry := range idx.Conversations {
		content, err := deps.Store.ReadContent(entry.FilePath)
		if err != nil {
			// A missing or unreadable content file never fails the whole
			// search; the entry is skipped and the condition logged.
			deps.Log.Warn("skipping unreadable conversation", "id", entry.ID, "error", err.Error())
			continue
		}

		score, firstMatch := scoreEntry(entry, content, terms, weights)
		if score == 0 {
			continue
		}

		scored = append(scored, ScoredResult{
			ID:      entry.ID,
			Title:   entry.Title,
			Date:    entry.Date,
			Topics:  entry.Topics,
			Score:   score,
			Preview: previewWindow(content, firstMatch, deps.Config.PreviewChars),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if !scored[i].Date.Equal(scored[j].Date) {
			return scored[i].Date.After(scored[j].Date)
		}
		return scored[i].ID > scored[j].ID
	})

	total := len(scored)
	limit := input.Limit
	if limit <= 0 {
		limit = deps.Config.DefaultSearchLimit
	}
	if limit > deps.Config.MaxSearchLimit {
		limit = deps.Config.MaxSearchLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return &SearchOutput{Items: scored, Total: total}, nil
}

// scoreEntry computes the additive relevance score for one entry and
// returns the byte offset of the earliest content match (-1 if the score
// came only from title or topics).
func scoreEntry(entry conversation.Entry, content string, terms []string, weights config.ScoreWeights) (int, int) {
	contentLower := strings.ToLower(content)
	titleLower := strings.ToLower(entry.Title)

	topicSet := make(map[string]bool, len(entry.Topics))
	for _, t := range entry.Topics {
		topicSet[t] = true
	}

	score := 0
	firstMatch := -1
	for _, term := range terms {
		score += strings.Count(contentLower, term) * weights.Content
		score += strings.Count(titleLower, term) * weights.Title
		if topicSet[term] {
			score += weights.Topic
		}
		if pos := strings.Index(contentLower, term); pos >= 0 && (firstMatch < 0 || pos < firstMatch) {
			firstMatch = pos
		}
	}
	return score, firstMatch
}

// previewWindow returns up to maxChars of content centered on the match
// position, ellipsized where truncated and snapped to rune boundaries.
// A negative position (title/topic-only match) yields the head of content.
func previewWindow(content string, pos, maxChars int) string {
	if maxChars <= 0 {
		maxChars = 500
	}
	if len(content) <= maxChars {
		return content
	}

	start := 0
	if pos > 0 {
		start = pos - maxChars/2
		if start < 0 {
			start = 0
		}
	}
	end := start + maxChars
	if end > len(content) {
		end = len(content)
		start = end - maxChars
	}

	// Snap to rune boundaries.
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	window := content[start:end]
	if start > 0 {
		window = "…" + window
	}
	if end < len(content) {
		window += "…"
	}
	return window
}
