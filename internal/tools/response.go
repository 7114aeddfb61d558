package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResponse creates a standardized error response for tool calls
func ErrorResponse(format string, args ...interface{}) *mcp.CallToolResult {
	message := fmt.Sprintf(format, args...)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// JSONResponse creates a success response holding payload as indented JSON
func JSONResponse(payload any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return ErrorResponse("Tool execution failed: failed to encode result: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

// EnvelopeResponse converts a dispatch envelope into an MCP tool result
func EnvelopeResponse(env Envelope) *mcp.CallToolResult {
	if !env.OK {
		if env.Error == nil {
			return ErrorResponse("Tool execution failed")
		}
		return ErrorResponse("%s", env.Error.Message)
	}
	return JSONResponse(env.Result)
}
