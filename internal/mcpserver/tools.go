// Package mcpserver exposes the note store over the Model Context
// Protocol so editors and agents can capture and retrieve notes through
// a stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/k61b/logswise-cli/internal/ingest"
	"github.com/k61b/logswise-cli/internal/supabase"
)

// NoteSaver persists a note with an optional embedding.
type NoteSaver interface {
	AddNote(ctx context.Context, content string, embedding []float32) error
}

// NoteSearcher runs a semantic search for a free-text query.
type NoteSearcher interface {
	SearchNotes(ctx context.Context, query string) ([]string, error)
}

// RecentLister returns the newest notes, newest first.
type RecentLister interface {
	RecentNotes(ctx context.Context, limit int) ([]supabase.Note, error)
}

// AddNoteTool handles the add_note MCP tool.
type AddNoteTool struct {
	saver NoteSaver
}

func NewAddNoteTool(saver NoteSaver) *AddNoteTool {
	return &AddNoteTool{saver: saver}
}

func (t *AddNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("add_note",
		mcp.WithDescription("Save a note to the user's personal note store. "+
			"Use this to capture observations, decisions, and progress worth remembering."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The note text to save"),
		),
	)
}

func (t *AddNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := req.GetString("content", "")
	if err := ingest.ValidateNote(content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.saver.AddNote(ctx, content, nil); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saving note failed: %v", err)), nil
	}
	return mcp.NewToolResultText("Note saved."), nil
}

// SearchNotesTool handles the search_notes MCP tool.
type SearchNotesTool struct {
	searcher NoteSearcher
}

func NewSearchNotesTool(searcher NoteSearcher) *SearchNotesTool {
	return &SearchNotesTool{searcher: searcher}
}

func (t *SearchNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_notes",
		mcp.WithDescription("Search the user's notes by meaning, not keywords. "+
			"Returns the most similar stored notes for a natural-language query."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language search query"),
		),
	)
}

func (t *SearchNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	notes, err := t.searcher.SearchNotes(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("No relevant notes found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant notes:\n\n", len(notes))
	for i, n := range notes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, n)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// RecentNotesTool handles the recent_notes MCP tool.
type RecentNotesTool struct {
	lister RecentLister
}

func NewRecentNotesTool(lister RecentLister) *RecentNotesTool {
	return &RecentNotesTool{lister: lister}
}

func (t *RecentNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("recent_notes",
		mcp.WithDescription("List the user's most recent notes, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Max notes to return (default: 10)"),
		),
	)
}

func (t *RecentNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 10)
	if limit < 1 {
		limit = 10
	}

	notes, err := t.lister.RecentNotes(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing notes failed: %v", err)), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d notes:\n\n", len(notes))
	for i, n := range notes {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, n.Content, n.CreatedAt)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// intArg extracts an integer argument, falling back when the key is
// missing or not a number (JSON numbers decode as float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}
