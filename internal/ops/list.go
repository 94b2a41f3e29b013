package ops

import (
	"sort"

	"github.com/hpungsan/recap/internal/conversation"
	"github.com/hpungsan/recap/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListOutput contains index entries ordered by date descending.
type ListOutput struct {
	Items      []conversation.Entry `json:"items"`
	Pagination Pagination           `json:"pagination"`
}

// List returns indexed conversations newest first. It reads only index
// metadata; content files are untouched.
func List(deps *Deps, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	idx, _, err := deps.Index.Load()
	if err != nil {
		return nil, err
	}

	items := make([]conversation.Entry, len(idx.Conversations))
	copy(items, idx.Conversations)
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})

	total := len(items)
	if offset >= total {
		items = []conversation.Entry{}
	} else {
		items = items[offset:]
		if len(items) > limit {
			items = items[:limit]
		}
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

// Fetch returns one conversation's metadata and content by ID.
type FetchOutput struct {
	conversation.Entry
	Content string `json:"content"`
}

// Fetch looks up an indexed conversation by ID and loads its content.
func Fetch(deps *Deps, id string) (*FetchOutput, error) {
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	idx, _, err := deps.Index.Load()
	if err != nil {
		return nil, err
	}

	for _, entry := range idx.Conversations {
		if entry.ID != id {
			continue
		}
		content, err := deps.Store.ReadContent(entry.FilePath)
		if err != nil {
			return nil, err
		}
		return &FetchOutput{Entry: entry, Content: content}, nil
	}
	return nil, errors.NewNotFound(id)
}
