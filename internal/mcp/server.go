// Package mcp exposes the engine's three operations over the Model Context
// Protocol on stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/recap/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"add_conversation": {
		def:     addToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdd },
	},
	"search_conversations": {
		def:     searchToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"generate_weekly_summary": {
		def:     summaryToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWeeklySummary },
	},
}

func addToolDef() mcp.Tool {
	return mcp.NewTool("add_conversation",
		mcp.WithDescription("Store a chat transcript. Topics are extracted automatically and the conversation becomes searchable immediately."),
		mcp.WithTitleAnnotation("Add Conversation"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Raw transcript text (markdown or plain text, max 1 MiB)"),
		),
		mcp.WithString("title",
			mcp.Description("Human label; derived from the first content line if omitted"),
		),
		mcp.WithString("date",
			mcp.Description("Conversation timestamp, ISO-8601 (RFC3339, YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DD); defaults to now"),
		),
	)
}

func searchToolDef() mcp.Tool {
	return mcp.NewTool("search_conversations",
		mcp.WithDescription("Keyword search over stored conversations. Results are ranked by relevance: topic matches weigh more than title matches, which weigh more than content matches."),
		mcp.WithTitleAnnotation("Search Conversations"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Whitespace-separated search terms"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 100)"),
		),
	)
}

func summaryToolDef() mcp.Tool {
	return mcp.NewTool("generate_weekly_summary",
		mcp.WithDescription("Generate and persist a markdown activity summary for one calendar week (Monday through Sunday). Regenerating the same week overwrites the previous document."),
		mcp.WithTitleAnnotation("Generate Weekly Summary"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithNumber("week_offset",
			mcp.Description("Whole weeks back from the current week (default: 0 = this week)"),
		),
	)
}

// NewServer creates a new MCP server with the Recap tools registered.
func NewServer(deps *ops.Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"recap",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(deps)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run starts the MCP server using stdio transport.
func Run(deps *ops.Deps, version string) error {
	return server.ServeStdio(NewServer(deps, version))
}
