package tools_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamesprial/myfunds-ui/internal/tools"
)

func newRegistration(name string) tools.Registration {
	return tools.Registration{
		Tool: mcp.NewTool(name, mcp.WithDescription(name)),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(name), nil
		},
	}
}

func Test_RegisterAll_ReturnsNamesInOrder(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(false))

	names := tools.RegisterAll(s,
		[]tools.Registration{newRegistration("alerts_add"), newRegistration("alerts_list")},
		nil,
		[]tools.Registration{newRegistration("api_call")},
	)

	want := []string{"alerts_add", "alerts_list", "api_call"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func Test_Find_Cases(t *testing.T) {
	regs := []tools.Registration{newRegistration("a"), newRegistration("b")}

	if r, ok := tools.Find(regs, "b"); !ok || r.Tool.Name != "b" {
		t.Errorf(`Find("b") = %q, %v; want "b", true`, r.Tool.Name, ok)
	}
	if _, ok := tools.Find(regs, "missing"); ok {
		t.Error(`Find("missing") ok = true, want false`)
	}
}
