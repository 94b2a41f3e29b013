// Package topics derives topic tags from conversation text using a fixed
// vocabulary plus structural heuristics. Extraction is deterministic for
// identical input and holds no state between calls.
package topics

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor matches text against a compiled rule table.
type Extractor struct {
	rules    *Rules
	vocab    []compiledTerm
	maxCount int
}

// NewExtractor compiles the given rules. maxCount caps the number of topics
// returned per conversation; non-positive means 8.
func NewExtractor(rules *Rules, maxCount int) *Extractor {
	if rules == nil {
		rules = DefaultRules()
	}
	if maxCount <= 0 {
		maxCount = 8
	}
	return &Extractor{
		rules:    rules,
		vocab:    compileVocabulary(rules.Vocabulary),
		maxCount: maxCount,
	}
}

// quotedPhraseRe captures short double-quoted phrases as candidate topics.
var quotedPhraseRe = regexp.MustCompile(`"([^"\n]{2,60})"`)

// capitalizedRunRe captures runs of two or more capitalized words
// (e.g. "Server Actions", "Raft Consensus Protocol").
var capitalizedRunRe = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9]*(?: [A-Z][a-zA-Z0-9]*)+\b`)

// Extract returns the topic set for a conversation: vocabulary terms found
// in title or content, then quoted phrases, then capitalized multi-word
// runs. Topics are lowercased, deduplicated, and capped at the configured
// maximum. Vocabulary matches take priority when the cap truncates.
func (e *Extractor) Extract(content, title string) []string {
	text := title + "\n" + content

	seen := make(map[string]bool)
	topics := make([]string, 0, e.maxCount)

	add := func(topic string) bool {
		topic = normalizeTopic(topic)
		if topic == "" || seen[topic] {
			return len(topics) < e.maxCount
		}
		seen[topic] = true
		topics = append(topics, topic)
		return len(topics) < e.maxCount
	}

	for _, ct := range e.vocab {
		if ct.re.MatchString(text) {
			if !add(ct.term) {
				return topics
			}
		}
	}

	for _, m := range quotedPhraseRe.FindAllStringSubmatch(text, -1) {
		if phraseWordCount(m[1]) > 4 {
			continue
		}
		if !add(m[1]) {
			return topics
		}
	}

	for _, m := range capitalizedRunRe.FindAllString(text, -1) {
		if phraseWordCount(m) > 4 {
			continue
		}
		if !add(m) {
			return topics
		}
	}

	return topics
}

// Categorize returns the names of all category rules whose keywords appear
// in the content. Multi-membership is intentional: a conversation that both
// fixes a bug and records a decision belongs in both buckets. An empty
// result means uncategorized.
func (e *Extractor) Categorize(content string) []string {
	lower := strings.ToLower(content)
	var matched []string
	for _, rule := range e.rules.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = append(matched, rule.Name)
				break
			}
		}
	}
	return matched
}

// CategoryNames returns the configured bucket names in rule order.
func (e *Extractor) CategoryNames() []string {
	names := make([]string, len(e.rules.Categories))
	for i, rule := range e.rules.Categories {
		names[i] = rule.Name
	}
	return names
}

// normalizeTopic lowercases, trims, collapses whitespace, and rejects
// candidates that are too short or not word-like.
func normalizeTopic(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) < 2 {
		return ""
	}
	// Require at least one letter so numbers and punctuation don't become topics.
	for _, r := range s {
		if unicode.IsLetter(r) {
			return s
		}
	}
	return ""
}

func phraseWordCount(s string) int {
	return len(strings.Fields(s))
}
