package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// New assembles the MCP server with the note tools registered.
func New(saver NoteSaver, searcher NoteSearcher, lister RecentLister) *server.MCPServer {
	s := server.NewMCPServer(
		"logswise",
		Version,
		server.WithToolCapabilities(true),
	)

	addNote := NewAddNoteTool(saver)
	s.AddTool(addNote.Definition(), addNote.Handle)

	search := NewSearchNotesTool(searcher)
	s.AddTool(search.Definition(), search.Handle)

	recent := NewRecentNotesTool(lister)
	s.AddTool(recent.Definition(), recent.Handle)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client hangs
// up. Diagnostics must go to stderr so the transport stays clean.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
