package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamesprial/myfunds-ui/internal/safety"
	"github.com/jamesprial/myfunds-ui/internal/tools"
)

// Manager is the subset of Center the MCP tools drive.
type Manager interface {
	Add(message, category string)
	Dismiss(id string) bool
	DismissAll() int
	Visible() []Notification
}

// Compile-time interface check.
var _ Manager = (*Center)(nil)

// AlertTools returns the tool registrations for the notification center:
// alerts_add, alerts_list and alerts_dismiss.
func AlertTools(mgr Manager, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolAlertsAdd(mgr, audit),
		toolAlertsList(mgr, audit),
		toolAlertsDismiss(mgr, audit),
	}
}

// categoryMarker returns a short prefix marker for a notification category.
func categoryMarker(category string) string {
	switch strings.ToLower(category) {
	case CategoryDanger:
		return "[DANGER]"
	case CategoryWarning:
		return "[WARNING]"
	case CategorySuccess:
		return "[OK]"
	default:
		return "[INFO]"
	}
}

// formatNotification renders a single notification as a human-readable string.
func formatNotification(n Notification) string {
	return fmt.Sprintf("%s %s\n  Category: %s\n  ID: %s\n  Created: %s",
		categoryMarker(n.Category),
		n.Message,
		n.Category,
		n.ID,
		n.CreatedAt.Format(time.RFC3339),
	)
}

// toolAlertsAdd constructs the alerts_add Registration.
func toolAlertsAdd(mgr Manager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "alerts_add"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Show a dismissible notification on the page. It is closed automatically according to the configured dismiss policy."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Notification text. May contain markup; it is rendered as-is."),
		),
		mcp.WithString("category",
			mcp.Description("Style category: info (default), success, warning or danger"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		message := req.GetString("message", "")
		category := req.GetString("category", CategoryInfo)

		params := map[string]any{
			"message":  message,
			"category": category,
		}

		mgr.Add(message, category)

		tools.LogAudit(audit, toolName, params, "ok", start)
		return mcp.NewToolResultText(fmt.Sprintf("notification added (%s)", category)), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// toolAlertsList constructs the alerts_list Registration.
func toolAlertsList(mgr Manager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "alerts_list"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("List the notifications currently visible on the page, oldest first."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		visible := mgr.Visible()
		if len(visible) == 0 {
			tools.LogAudit(audit, toolName, nil, "ok: empty", start)
			return mcp.NewToolResultText("No notifications visible."), nil
		}

		var sb strings.Builder
		ids := make([]string, 0, len(visible))
		for i, n := range visible {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(formatNotification(n))
			ids = append(ids, n.ID)
		}

		tools.LogAuditDetail(audit, toolName, nil, "ok", start, safety.Detail{AlertIDs: ids})
		return mcp.NewToolResultText(sb.String()), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

// toolAlertsDismiss constructs the alerts_dismiss Registration.
func toolAlertsDismiss(mgr Manager, audit *safety.AuditLogger) tools.Registration {
	const toolName = "alerts_dismiss"

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Close a visible notification by id, or every visible notification when no id is given."),
		mcp.WithString("id",
			mcp.Description("Notification ID. Omit to dismiss all."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		id := req.GetString("id", "")
		params := map[string]any{"id": id}

		if id == "" {
			n := mgr.DismissAll()
			tools.LogAuditDetail(audit, toolName, params, "ok", start, safety.Detail{Dismissed: n})
			return mcp.NewToolResultText(fmt.Sprintf("dismissed %d notification(s)", n)), nil
		}

		detail := safety.Detail{AlertIDs: []string{id}}
		if !mgr.Dismiss(id) {
			msg := fmt.Sprintf("notification %q is not visible", id)
			tools.LogAuditDetail(audit, toolName, params, "error: "+msg, start, detail)
			return tools.ErrorResult(msg), nil
		}

		detail.Dismissed = 1
		tools.LogAuditDetail(audit, toolName, params, "ok", start, detail)
		return mcp.NewToolResultText(fmt.Sprintf("notification %q dismissed", id)), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
