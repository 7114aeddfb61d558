package gateway

import "net/http"

// Endpoint describes one upstream call: where it goes and which fields it needs
type Endpoint struct {
	// Op names the operation in failure messages ("<Op> failed: ...")
	Op       string
	Method   string
	Path     string
	Required []string
}

// LoginPath receives the URL-encoded credential form
const LoginPath = "/Login/login.php"

var (
	ClosingCostsEndpoint = Endpoint{
		Op:       "Closing cost calculation",
		Method:   http.MethodPost,
		Path:     "/closing_cost_calculations.php",
		Required: []string{"state", "county", "city", "address", "purchase_price"},
	}
	PropertyTaxEndpoint = Endpoint{
		Op:       "Property tax request",
		Method:   http.MethodGet,
		Path:     "/property_tax.php",
		Required: []string{"state", "county", "city", "address", "close_date", "file_name", "purchase_price"},
	}
	EndorsementsEndpoint = Endpoint{
		Op:       "Get endorsements",
		Method:   http.MethodGet,
		Path:     "/endorsements.php",
		Required: []string{"state", "county", "purpose"},
	}
	AppraisalModifiersEndpoint = Endpoint{
		Op:       "Get appraisal modifiers",
		Method:   http.MethodGet,
		Path:     "/appraisal_modifiers.php",
		Required: []string{"state", "county", "purpose"},
	}
	SubAgentsEndpoint = Endpoint{
		Op:       "Get sub agents",
		Method:   http.MethodGet,
		Path:     "/sub_agents.php",
		Required: []string{"state", "county"},
	}
	CountiesEndpoint = Endpoint{
		Op:       "Get counties",
		Method:   http.MethodGet,
		Path:     "/counties.php",
		Required: []string{"state"},
	}
	TownshipsEndpoint = Endpoint{
		Op:       "Get townships",
		Method:   http.MethodGet,
		Path:     "/townships.php",
		Required: []string{"state", "county"},
	}
	QuestionsEndpoint = Endpoint{
		Op:       "Get questions",
		Method:   http.MethodPost,
		Path:     "/questions.php",
		Required: []string{"state", "county", "city", "address", "purchase_price"},
	}
	GeocodeEndpoint = Endpoint{
		Op:       "Geocode",
		Method:   http.MethodGet,
		Path:     "/geocode.php",
		Required: []string{"state", "county", "city", "address"},
	}
)
