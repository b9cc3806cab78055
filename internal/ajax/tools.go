package ajax

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamesprial/myfunds-ui/internal/safety"
	"github.com/jamesprial/myfunds-ui/internal/tools"
)

const toolNameAPICall = "api_call"

// APITools returns the tool registrations for the /ajax/ client. filter
// limits which operations may be called; a nil filter allows all. notifier
// may be nil, in which case the notify argument has no effect.
func APITools(caller Caller, filter *safety.Filter, notifier Notifier, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolAPICall(caller, filter, notifier, audit),
	}
}

// toolAPICall constructs the api_call Registration.
func toolAPICall(caller Caller, filter *safety.Filter, notifier Notifier, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameAPICall,
		mcp.WithDescription("Call an application /ajax/ operation with a JSON object body and return the decoded response along with whether it reported success."),
		mcp.WithString("operation",
			mcp.Required(),
			mcp.Description("Operation name, e.g. getBalanceInfo. Letters, digits and underscores only."),
		),
		mcp.WithString("params",
			mcp.Description("Optional JSON object string sent as the request body. Defaults to {}."),
		),
		mcp.WithBoolean("notify",
			mcp.Description("When true, failures are also shown as page notifications."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		op := req.GetString("operation", "")
		paramsStr := req.GetString("params", "")
		notify := req.GetBool("notify", false)

		auditParams := map[string]any{
			"operation": op,
			"params":    paramsStr,
			"notify":    notify,
		}

		detail := safety.Detail{Operation: op}

		if !filter.IsAllowed(op) {
			errMsg := fmt.Sprintf("operation %q is not allowed", op)
			tools.LogAuditDetail(audit, toolNameAPICall, auditParams, "error: "+errMsg, start, detail)
			return tools.ErrorResult(errMsg), nil
		}

		body, err := tools.ParseObject(paramsStr)
		if err != nil {
			errMsg := fmt.Sprintf("parse params JSON: %v", err)
			tools.LogAuditDetail(audit, toolNameAPICall, auditParams, "error: "+errMsg, start, detail)
			return tools.ErrorResult(errMsg), nil
		}

		resp, err := caller.Call(ctx, op, body)
		var outcome Outcome
		if err == nil {
			outcome = Interpret(resp)
		}
		if notify {
			ReportOutcome(notifier, outcome, err)
		}

		if err != nil {
			var te *TransportError
			if errors.As(err, &te) {
				detail.Transport = string(te.Kind)
			}
			tools.LogAuditDetail(audit, toolNameAPICall, auditParams, "error: "+err.Error(), start, detail)
			if te != nil {
				return tools.ErrorResult(fmt.Sprintf("%v (transport: %s)", te, te.Kind)), nil
			}
			return tools.ErrorResult(err.Error()), nil
		}

		result := map[string]any{
			"operation": op,
			"ok":        IsSuccessResult(resp),
			"response":  resp.Fields,
		}
		if f, ok := outcome.(ApplicationFailure); ok && f.Message != "" {
			result["message"] = f.Message
		}

		status := "ok"
		if !IsSuccessResult(resp) {
			status = "ok: application failure"
		}
		tools.LogAuditDetail(audit, toolNameAPICall, auditParams, status, start, detail)
		return tools.JSONResult(result), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
