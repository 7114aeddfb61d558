package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dslh/lodestar-mcp/internal/gateway"
	"github.com/dslh/lodestar-mcp/internal/schema"
	"github.com/dslh/lodestar-mcp/internal/upstream"
)

// Tool names exposed to callers
const (
	ToolLogin              = "lodestar_login"
	ToolClosingCosts       = "lodestar_closing_cost_calculations"
	ToolPropertyTax        = "lodestar_property_tax"
	ToolEndorsements       = "lodestar_get_endorsements"
	ToolAppraisalModifiers = "lodestar_get_appraisal_modifiers"
	ToolSubAgents          = "lodestar_get_sub_agents"
	ToolCounties           = "lodestar_get_counties"
	ToolTownships          = "lodestar_get_townships"
	ToolQuestions          = "lodestar_get_questions"
	ToolGeocode            = "lodestar_geocode"
	ToolSessionStatus      = "lodestar_get_session_status"
)

// Gateway is the session-gated API the dispatcher routes to
type Gateway interface {
	Authenticate(ctx context.Context, username, password string) (upstream.Response, error)
	CalculateClosingCosts(ctx context.Context, params gateway.Params) (upstream.Response, error)
	GetPropertyTax(ctx context.Context, params gateway.Params) (upstream.Response, error)
	GetEndorsements(ctx context.Context, params gateway.Params) (upstream.Response, error)
	GetAppraisalModifiers(ctx context.Context, params gateway.Params) (upstream.Response, error)
	GetSubAgents(ctx context.Context, params gateway.Params) (upstream.Response, error)
	GetCounties(ctx context.Context, state string) (upstream.Response, error)
	GetTownships(ctx context.Context, params gateway.Params) (upstream.Response, error)
	GetQuestions(ctx context.Context, params gateway.Params) (upstream.Response, error)
	Geocode(ctx context.Context, params gateway.Params) (upstream.Response, error)
	SessionStatus() gateway.Status
}

// Operation is one catalog entry: a callable name with its input contract
type Operation struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

type handlerFunc func(ctx context.Context, gw Gateway, args map[string]any) (any, error)

type entry struct {
	Operation
	handle handlerFunc
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// forward adapts a gateway method that takes Params as-is
func forward(method func(Gateway, context.Context, gateway.Params) (upstream.Response, error)) handlerFunc {
	return func(ctx context.Context, gw Gateway, args map[string]any) (any, error) {
		return method(gw, ctx, gateway.Params(args))
	}
}

// catalog returns the operations in the order they are listed to callers
func catalog() []entry {
	return []entry{
		{
			Operation: Operation{
				Name:        ToolLogin,
				Description: "Login to LodeStar API system with username and password",
				InputSchema: schema.Login(),
			},
			handle: func(ctx context.Context, gw Gateway, args map[string]any) (any, error) {
				return gw.Authenticate(ctx, stringArg(args, "username"), stringArg(args, "password"))
			},
		},
		{
			Operation: Operation{
				Name:        ToolClosingCosts,
				Description: "Calculate title agent fees, title premiums, recording fees, and transfer taxes",
				InputSchema: schema.ClosingCosts(),
			},
			handle: forward(Gateway.CalculateClosingCosts),
		},
		{
			Operation: Operation{
				Name:        ToolPropertyTax,
				Description: "Get property tax information (estimate)",
				InputSchema: schema.PropertyTax(),
			},
			handle: forward(Gateway.GetPropertyTax),
		},
		{
			Operation: Operation{
				Name:        ToolEndorsements,
				Description: "Get available endorsements for a location and transaction purpose",
				InputSchema: schema.Endorsements(),
			},
			handle: forward(Gateway.GetEndorsements),
		},
		{
			Operation: Operation{
				Name:        ToolAppraisalModifiers,
				Description: "Get available appraisal modifiers (required for appraisal fee calculations)",
				InputSchema: schema.AppraisalModifiers(),
			},
			handle: forward(Gateway.GetAppraisalModifiers),
		},
		{
			Operation: Operation{
				Name:        ToolSubAgents,
				Description: "Get available sub agents (title companies) for a location",
				InputSchema: schema.SubAgents(),
			},
			handle: forward(Gateway.GetSubAgents),
		},
		{
			Operation: Operation{
				Name:        ToolCounties,
				Description: "Get all available counties for a state",
				InputSchema: schema.Counties(),
			},
			handle: func(ctx context.Context, gw Gateway, args map[string]any) (any, error) {
				return gw.GetCounties(ctx, stringArg(args, "state"))
			},
		},
		{
			Operation: Operation{
				Name:        ToolTownships,
				Description: "Get all available townships for a county",
				InputSchema: schema.Townships(),
			},
			handle: forward(Gateway.GetTownships),
		},
		{
			Operation: Operation{
				Name:        ToolQuestions,
				Description: "Get county-specific questions for a transaction",
				InputSchema: schema.Questions(),
			},
			handle: forward(Gateway.GetQuestions),
		},
		{
			Operation: Operation{
				Name:        ToolGeocode,
				Description: "Check if address is in a township and has additional fees",
				InputSchema: schema.Geocode(),
			},
			handle: forward(Gateway.Geocode),
		},
		{
			Operation: Operation{
				Name:        ToolSessionStatus,
				Description: "Check if currently authenticated and get session info",
				InputSchema: schema.Empty(),
			},
			handle: func(ctx context.Context, gw Gateway, args map[string]any) (any, error) {
				return gw.SessionStatus(), nil
			},
		},
	}
}
