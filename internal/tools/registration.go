package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registration pairs an MCP tool definition with its handler function.
type Registration struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

// RegisterAll adds every Registration to the MCP server and returns the
// registered tool names in order.
func RegisterAll(s *server.MCPServer, registrations ...[]Registration) []string {
	var names []string
	for _, group := range registrations {
		for _, r := range group {
			s.AddTool(r.Tool, r.Handler)
			names = append(names, r.Tool.Name)
		}
	}
	return names
}

// Find returns the registration named name, or false if none matches.
func Find(registrations []Registration, name string) (Registration, bool) {
	for _, r := range registrations {
		if r.Tool.Name == name {
			return r, true
		}
	}
	return Registration{}, false
}
