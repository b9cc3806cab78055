package widgets

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamesprial/myfunds-ui/internal/config"
	"github.com/jamesprial/myfunds-ui/internal/safety"
	"github.com/jamesprial/myfunds-ui/internal/tools"
)

// WidgetTools returns the ui_options and panel_toggle registrations.
func WidgetTools(cfg config.UIConfig, panels *PanelSet, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolUIOptions(cfg, panels, audit),
		toolPanelToggle(panels, audit),
	}
}

func toolUIOptions(cfg config.UIConfig, panels *PanelSet, audit *safety.AuditLogger) tools.Registration {
	const toolName = "ui_options"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Return the widget settings the page initialises with: date-range picker locale, icon size, file-input flag and panel states."),
		mcp.WithString("language",
			mcp.Description("Optional language tag or Accept-Language value; defaults to the configured language."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		lang := req.GetString("language", "")

		out := map[string]any{
			"options": OptionsFromConfig(cfg, lang),
			"panels":  panels.List(),
		}

		tools.LogAudit(audit, toolName, map[string]any{"language": lang}, "ok", start)
		return tools.JSONResult(out), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolPanelToggle(panels *PanelSet, audit *safety.AuditLogger) tools.Registration {
	const toolName = "panel_toggle"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Toggle a display panel: flips the toggler's active state and shows or hides the panel."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Panel id as configured under ui.panels."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		id := req.GetString("id", "")
		params := map[string]any{"id": id}

		p, err := panels.Toggle(id)
		if err != nil {
			tools.LogAudit(audit, toolName, params, "error: "+err.Error(), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolName, params, "ok", start)
		return tools.JSONResult(p), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
