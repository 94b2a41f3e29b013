package web

import (
	"net/http"
	"strconv"

	"github.com/hpungsan/recap/internal/conversation"
	"github.com/hpungsan/recap/internal/errors"
	"github.com/hpungsan/recap/internal/ops"
)

// Handlers contains HTTP route handlers for the web viewer. All routes are
// read-only: conversations are add-only and additions go through the MCP or
// CLI surfaces.
type Handlers struct {
	deps     *ops.Deps
	renderer *Renderer
}

// HandleList handles GET /conversations, newest conversations first.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	}

	result, err := ops.List(h.deps, input)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Conversations",
			Version: h.renderer.version,
			Nav:     "conversations",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleDetail handles GET /conversations/{id}, one rendered conversation.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, errors.NewValidation("conversation ID is required"))
		return
	}

	conv, err := ops.Fetch(h.deps, id)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   conv.Title,
			Version: h.renderer.version,
			Nav:     "conversations",
		},
		Conversation: conv,
		RenderedHTML: renderMarkdown(conv.Content),
	})
}

// HandleSearch handles GET /search, keyword search with ranked results.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:    query,
		HasQuery: query != "",
	}

	result, err := ops.Search(h.deps, ops.SearchInput{
		Query: query,
		Limit: parseIntParam(r, "limit", 0),
	})
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	data.Items = result.Items
	data.Total = result.Total
	h.renderer.renderPage(w, "search", data)
}

// HandleSummaries handles GET /summaries, the list of generated weekly
// summaries, with ?week=YYYY-MM-DD selecting one to render.
func (h *Handlers) HandleSummaries(w http.ResponseWriter, r *http.Request) {
	rels, err := h.deps.Store.ListWeeklySummaries()
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	weeks := make([]string, 0, len(rels))
	for _, rel := range rels {
		// summaries/weekly/week-YYYY-MM-DD.md → YYYY-MM-DD
		name := rel[len(rel)-len("YYYY-MM-DD.md"):]
		weeks = append(weeks, name[:len("YYYY-MM-DD")])
	}

	data := SummariesPageData{
		PageData: PageData{
			Title:   "Weekly Summaries",
			Version: h.renderer.version,
			Nav:     "summaries",
		},
		Weeks: weeks,
	}

	if selected := r.URL.Query().Get("week"); selected != "" {
		weekStart, err := conversation.ParseDate(selected)
		if err != nil {
			h.renderer.renderError(w, errors.NewValidation("week must be YYYY-MM-DD"))
			return
		}
		doc, err := h.deps.Store.ReadWeeklySummary(weekStart)
		if err != nil {
			h.renderer.renderError(w, err)
			return
		}
		data.Selected = selected
		data.RenderedHTML = renderMarkdown(doc)
	}

	h.renderer.renderPage(w, "summaries", data)
}

// parseIntParam parses an integer query parameter with a fallback default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
