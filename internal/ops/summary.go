package ops

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hpungsan/recap/internal/conversation"
	"github.com/hpungsan/recap/internal/errors"
)

// uncategorizedBucket holds conversations no category heuristic matched.
const uncategorizedBucket = "uncategorized"

// SummaryInput contains parameters for the WeeklySummary operation.
type SummaryInput struct {
	// WeekOffset counts whole weeks back from the current week:
	// 0 = this week, 1 = last week.
	WeekOffset int

	// Now overrides the anchor time; zero means time.Now(). Injectable so
	// week arithmetic is testable.
	Now time.Time
}

// TopicCount is one row of the summary's topic ranking.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// CategoryBucket lists the conversations matching one category heuristic.
// A conversation may appear in several buckets when it matches several
// heuristics.
type CategoryBucket struct {
	Name  string               `json:"name"`
	Items []conversation.Entry `json:"items"`
}

// SummaryOutput contains the generated summary and where it was persisted.
type SummaryOutput struct {
	Path       string           `json:"path"`
	WeekStart  time.Time        `json:"week_start"`
	WeekEnd    time.Time        `json:"week_end"`
	Total      int              `json:"total"`
	Topics     []TopicCount     `json:"topics"`
	Categories []CategoryBucket `json:"categories"`
	Document   string           `json:"-"`
}

// WeeklySummary filters indexed conversations into the target week,
// aggregates topic frequencies for that window, buckets conversations by
// category heuristics, renders the markdown document, and persists it under
// a path keyed by the week's Monday. Regenerating an unchanged week
// produces a byte-identical document: the rendering carries no generation
// timestamp.
func WeeklySummary(deps *Deps, input SummaryInput) (*SummaryOutput, error) {
	if input.WeekOffset < 0 {
		return nil, errors.NewValidation("week_offset must not be negative")
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	start, end := WeekBounds(now, input.WeekOffset)

	idx, _, err := deps.Index.Load()
	if err != nil {
		return nil, err
	}

	var matched []conversation.Entry
	for _, entry := range idx.Conversations {
		if inWeek(entry.Date, start, end) {
			matched = append(matched, entry)
		}
	}
	// Deterministic listing order: date ascending, then ID.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].ID < matched[j].ID
	})

	topicRanking := rollupTopics(matched)
	buckets := categorize(deps, matched)

	doc := renderSummary(start, end, matched, topicRanking, buckets)

	path, err := deps.Store.WriteWeeklySummary(start, doc)
	if err != nil {
		return nil, err
	}

	return &SummaryOutput{
		Path:       path,
		WeekStart:  start,
		WeekEnd:    end,
		Total:      len(matched),
		Topics:     topicRanking,
		Categories: buckets,
		Document:   doc,
	}, nil
}

// rollupTopics aggregates topic frequencies across the matched set, binary
// per conversation, ranked by count descending then topic ascending.
func rollupTopics(entries []conversation.Entry) []TopicCount {
	counts := map[string]int{}
	for _, e := range entries {
		seen := make(map[string]bool, len(e.Topics))
		for _, t := range e.Topics {
			if seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}

	ranking := make([]TopicCount, 0, len(counts))
	for t, c := range counts {
		ranking = append(ranking, TopicCount{Topic: t, Count: c})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Topic < ranking[j].Topic
	})
	return ranking
}

// categorize buckets each conversation using the category heuristics over
// its content. Multi-membership is allowed; conversations matching nothing
// land in the uncategorized bucket. Content that cannot be read is logged
// and treated as uncategorized rather than failing the summary.
func categorize(deps *Deps, entries []conversation.Entry) []CategoryBucket {
	names := append(deps.Extractor.CategoryNames(), uncategorizedBucket)
	byName := make(map[string]*CategoryBucket, len(names))
	buckets := make([]CategoryBucket, len(names))
	for i, name := range names {
		buckets[i] = CategoryBucket{Name: name, Items: []conversation.Entry{}}
	}
	for i := range buckets {
		byName[buckets[i].Name] = &buckets[i]
	}

	for _, entry := range entries {
		content, err := deps.Store.ReadContent(entry.FilePath)
		if err != nil {
			deps.Log.Warn("categorizing without content", "id", entry.ID, "error", err.Error())
		}

		matched := deps.Extractor.Categorize(content)
		if len(matched) == 0 {
			matched = []string{uncategorizedBucket}
		}
		for _, name := range matched {
			if b, ok := byName[name]; ok {
				b.Items = append(b.Items, entry)
			}
		}
	}
	return buckets
}

// renderSummary renders the weekly summary markdown document.
func renderSummary(start, end time.Time, entries []conversation.Entry, topicRanking []TopicCount, buckets []CategoryBucket) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Summary: %s to %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	if len(entries) == 0 {
		b.WriteString("No conversations were recorded this week.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**Conversations:** %d\n\n", len(entries))

	if len(topicRanking) > 0 {
		b.WriteString("## Topics\n\n")
		for _, tc := range topicRanking {
			fmt.Fprintf(&b, "- %s (%d)\n", tc.Topic, tc.Count)
		}
		b.WriteString("\n")
	}

	for _, bucket := range buckets {
		if len(bucket.Items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%d)\n\n", titleCase(bucket.Name), len(bucket.Items))
		for _, entry := range bucket.Items {
			fmt.Fprintf(&b, "- %s: %s\n", entry.Date.Format("2006-01-02"), entry.Title)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// titleCase uppercases the first letter of a bucket name for headings.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
