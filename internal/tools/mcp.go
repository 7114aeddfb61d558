package tools

import (
	"context"
	"encoding/json"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server identity reported to MCP clients
const (
	ServerName    = "lodestar-apollo3-server"
	ServerVersion = "1.0.0"
)

// NewServer creates an MCP server exposing every catalog operation of d
func NewServer(d *Dispatcher) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)
	Register(server, d)
	return server
}

// Register adds one MCP tool per catalog operation. Arguments are checked by
// the dispatcher, not the SDK, so validation failures use the envelope format.
func Register(server *mcp.Server, d *Dispatcher) {
	for _, op := range d.ListOperations() {
		name := op.Name
		server.AddTool(&mcp.Tool{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleToolCall(ctx, d, name, req.Params.Arguments), nil
		})
	}
	log.Printf("Registered %d tools", len(d.ListOperations()))
}

func handleToolCall(ctx context.Context, d *Dispatcher, name string, raw json.RawMessage) *mcp.CallToolResult {
	args := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return ErrorResponse("Invalid arguments for %s: arguments must be a JSON object", name)
		}
	}
	return EnvelopeResponse(d.Invoke(ctx, name, args))
}
