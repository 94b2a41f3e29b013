package topics

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is the swappable table driving topic extraction and summary
// categorization. The defaults below can be overridden by a topics.yaml
// file in the storage root.
type Rules struct {
	// Vocabulary is the fixed list of known technical terms matched
	// case-insensitively on word boundaries.
	Vocabulary []string `yaml:"vocabulary"`

	// Categories are the keyword heuristics used to bucket conversations
	// in weekly summaries. A conversation may match more than one.
	Categories []CategoryRule `yaml:"categories"`
}

// CategoryRule buckets a conversation when any keyword matches its content.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DefaultRules returns the built-in vocabulary and category heuristics.
func DefaultRules() *Rules {
	return &Rules{
		Vocabulary: []string{
			"python", "javascript", "typescript", "golang", "rust", "java",
			"react", "node", "django", "flask",
			"docker", "kubernetes", "terraform", "aws", "gcp", "azure",
			"linux", "bash", "git", "github", "ci/cd",
			"database", "sql", "postgres", "sqlite", "redis", "mongodb",
			"api", "http", "grpc", "graphql", "rest", "json", "yaml",
			"authentication", "oauth", "jwt", "encryption", "security",
			"testing", "debugging", "refactoring", "performance", "caching",
			"deployment", "monitoring", "logging",
			"machine learning", "neural network", "llm", "embedding",
		},
		Categories: []CategoryRule{
			{
				Name: "coding",
				Keywords: []string{
					"code", "function", "bug", "error", "compile",
					"implement", "refactor", "debug", "test", "script",
				},
			},
			{
				Name: "decisions",
				Keywords: []string{
					"decided", "chose", "decision", "agreed", "opted",
					"settled on", "going with",
				},
			},
			{
				Name: "learning",
				Keywords: []string{
					"learn", "learned", "tutorial", "course", "study",
					"how does", "explain",
				},
			},
		},
	}
}

// LoadRules reads a rules file in YAML format. A missing file returns the
// defaults; a malformed file is an error (a half-loaded vocabulary would
// silently change extraction results).
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return nil, err
	}

	rules := &Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Partial files inherit the missing half from defaults.
	defaults := DefaultRules()
	if len(rules.Vocabulary) == 0 {
		rules.Vocabulary = defaults.Vocabulary
	}
	if len(rules.Categories) == 0 {
		rules.Categories = defaults.Categories
	}
	return rules, nil
}

// compiledTerm pairs a vocabulary term with its boundary-aware matcher.
type compiledTerm struct {
	term string
	re   *regexp.Regexp
}

// compileVocabulary builds case-insensitive word-boundary matchers for each
// vocabulary term. Terms that fail to compile (unlikely: terms are quoted)
// are skipped.
func compileVocabulary(terms []string) []compiledTerm {
	compiled := make([]compiledTerm, 0, len(terms))
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
		if err != nil {
			continue
		}
		compiled = append(compiled, compiledTerm{term: t, re: re})
	}
	return compiled
}
