package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/dslh/lodestar-mcp/internal/upstream"
)

// Upstream is the transport the gateway forwards to
type Upstream interface {
	Get(ctx context.Context, path string, params map[string]any) (upstream.Response, error)
	PostJSON(ctx context.Context, path string, payload map[string]any) (upstream.Response, error)
	PostForm(ctx context.Context, path string, form url.Values) (upstream.Response, error)
}

// Params are caller-supplied request fields, forwarded as-is apart from the
// injected session_id
type Params map[string]any

// Credentials are the fallback login used when a caller supplies none
type Credentials struct {
	Username string
	Password string
}

// Gateway owns the upstream session and gates every domain call on it
type Gateway struct {
	client   Upstream
	defaults Credentials
	session  Session
}

// New creates a gateway with an empty session
func New(client Upstream, defaults Credentials) *Gateway {
	return &Gateway{
		client:   client,
		defaults: defaults,
	}
}

// SessionStatus reports the local session state
func (g *Gateway) SessionStatus() Status {
	return g.session.Status()
}

// Authenticate logs in with the given credentials, falling back to the
// configured defaults for any that are empty. A response with status 1 and a
// session_id replaces the stored token. The response is returned whether or
// not it reports success; only transport failures are errors.
func (g *Gateway) Authenticate(ctx context.Context, username, password string) (upstream.Response, error) {
	if username == "" {
		username = g.defaults.Username
	}
	if password == "" {
		password = g.defaults.Password
	}
	if username == "" || password == "" {
		var missing []string
		if username == "" {
			missing = append(missing, "username")
		}
		if password == "" {
			missing = append(missing, "password")
		}
		return nil, &ValidationError{
			Message: "Username and password are required for login",
			Fields:  missing,
		}
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := g.client.PostForm(ctx, LoginPath, form)
	if err != nil {
		log.Printf("Login failed for user %s: %v", username, err)
		return nil, &OperationError{Op: "Login", Err: err}
	}

	status, _ := resp.Status()
	if token := resp.SessionID(); status == 1 && token != "" {
		g.session.set(token)
		log.Printf("Authenticated as %s", username)
	} else {
		log.Printf("Login rejected for user %s: %s", username, resp.FailureMessage())
	}

	return resp, nil
}

// CalculateClosingCosts computes title fees, premiums, recording fees and transfer taxes
func (g *Gateway) CalculateClosingCosts(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, ClosingCostsEndpoint, params)
}

// GetPropertyTax estimates property tax for a transaction
func (g *Gateway) GetPropertyTax(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, PropertyTaxEndpoint, params)
}

// GetEndorsements lists endorsements for a location and transaction purpose
func (g *Gateway) GetEndorsements(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, EndorsementsEndpoint, params)
}

// GetAppraisalModifiers lists appraisal modifiers. Only state, county, purpose
// and loan_info are forwarded; loan_info is flattened into loan_info[key] pairs.
func (g *Gateway) GetAppraisalModifiers(ctx context.Context, params Params) (upstream.Response, error) {
	selected := Params{}
	for _, key := range []string{"state", "county", "purpose", "loan_info"} {
		if v, ok := params[key]; ok {
			selected[key] = v
		}
	}
	return g.call(ctx, AppraisalModifiersEndpoint, selected)
}

// GetSubAgents lists sub agents (title companies) for a location
func (g *Gateway) GetSubAgents(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, SubAgentsEndpoint, params)
}

// GetCounties lists the counties of a state
func (g *Gateway) GetCounties(ctx context.Context, state string) (upstream.Response, error) {
	params := Params{}
	if state != "" {
		params["state"] = state
	}
	return g.call(ctx, CountiesEndpoint, params)
}

// GetTownships lists the townships of a county
func (g *Gateway) GetTownships(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, TownshipsEndpoint, params)
}

// GetQuestions fetches county-specific questions for a transaction
func (g *Gateway) GetQuestions(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, QuestionsEndpoint, params)
}

// Geocode checks whether an address lies in a township with additional fees
func (g *Gateway) Geocode(ctx context.Context, params Params) (upstream.Response, error) {
	return g.call(ctx, GeocodeEndpoint, params)
}

func (g *Gateway) call(ctx context.Context, ep Endpoint, params Params) (upstream.Response, error) {
	token := g.session.get()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	if missing := missingFields(params, ep.Required); len(missing) > 0 {
		return nil, &OperationError{Op: ep.Op, Err: &ValidationError{
			Message: fmt.Sprintf("missing required field(s): %s", strings.Join(missing, ", ")),
			Fields:  missing,
		}}
	}

	payload := make(map[string]any, len(params)+1)
	for k, v := range params {
		payload[k] = v
	}
	payload["session_id"] = token

	var (
		resp upstream.Response
		err  error
	)
	switch ep.Method {
	case http.MethodGet:
		resp, err = g.client.Get(ctx, ep.Path, payload)
	case http.MethodPost:
		resp, err = g.client.PostJSON(ctx, ep.Path, payload)
	default:
		err = fmt.Errorf("unsupported method %s", ep.Method)
	}
	if err != nil {
		return nil, &OperationError{Op: ep.Op, Err: err}
	}
	return resp, nil
}

// missingFields returns the required keys that are absent, null or empty strings
func missingFields(params Params, required []string) []string {
	var missing []string
	for _, key := range required {
		v, ok := params[key]
		if !ok || v == nil {
			missing = append(missing, key)
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
