// Package tools provides shared helper utilities for MCP tool handlers.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jamesprial/myfunds-ui/internal/safety"
)

// JSONResult marshals v to indented JSON and returns an mcp.CallToolResult.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error marshaling result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ErrorResult returns an mcp.CallToolResult flagged IsError that describes an
// error condition.
func ErrorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("error: %s", msg))
}

// LogAudit logs a tool invocation to the audit logger, silently ignoring a nil logger.
func LogAudit(audit *safety.AuditLogger, toolName string, params map[string]any, result string, start time.Time) {
	LogAuditDetail(audit, toolName, params, result, start, safety.Detail{})
}

// LogAuditDetail is LogAudit with the operation or notifications the call
// acted on.
func LogAuditDetail(audit *safety.AuditLogger, toolName string, params map[string]any, result string, start time.Time, d safety.Detail) {
	if audit == nil {
		return
	}
	_ = audit.Log(safety.AuditEntry{
		Timestamp: start,
		Tool:      toolName,
		Params:    params,
		Result:    result,
		Duration:  time.Since(start),
		Detail:    d,
	})
}

// ParseObject decodes a JSON object argument. Blank input yields an empty,
// non-nil map; arrays, scalars and null are rejected.
func ParseObject(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("parse JSON object: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("parse JSON object: null is not an object")
	}
	return obj, nil
}
