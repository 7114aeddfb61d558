package schema

import "github.com/google/jsonschema-go/jsonschema"

// Purpose codes accepted by the closing cost calculation
var PurposeCodes = []any{"00", "04", "11"}

func ptr(f float64) *float64 {
	return &f
}

// Object builds an object schema with the given properties and required keys
func Object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// String builds a described string schema
func String(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

// Number builds a described number schema
func Number(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number", Description: description}
}

// Boolean builds a described boolean schema
func Boolean(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: description}
}

// Integer builds an integer schema
func Integer(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: description}
}

// Range builds an integer schema bounded to [min, max]
func Range(min, max float64) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Minimum: ptr(min), Maximum: ptr(max)}
}

// Enum builds a string schema constrained to values
func Enum(description string, values ...any) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description, Enum: values}
}

func location() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"state":  String("2 letter state abbreviation (e.g., \"NJ\")"),
		"county": String("County name without \"County\" word (e.g., \"Hudson\")"),
	}
}

func address() map[string]*jsonschema.Schema {
	props := location()
	props["city"] = String("City name (e.g., \"Hoboken\")")
	props["address"] = String("Property address (e.g., \"110 Jefferson St. Apt 2\")")
	return props
}

// LoanInfo describes the loan characteristics object
func LoanInfo() *jsonschema.Schema {
	s := Object(map[string]*jsonschema.Schema{
		"prop_type":                    Range(1, 7),
		"amort_type":                   Range(1, 2),
		"loan_type":                    Range(1, 4),
		"prop_purpose":                 Range(1, 3),
		"prop_usage":                   Range(1, 3),
		"number_of_families":           Integer(""),
		"is_first_time_home_buyer":     Range(0, 1),
		"is_federal_credit_union":      Range(0, 1),
		"is_same_lender_as_previous":   Range(0, 1),
		"is_same_borrwers_as_previous": Range(0, 1),
	})
	s.Description = "Loan information object"
	return s
}

// Login is the contract for authentication; both fields may come from config
func Login() *jsonschema.Schema {
	return Object(map[string]*jsonschema.Schema{
		"username": String("Username for authentication (optional if set in config)"),
		"password": String("Password for authentication (optional if set in config)"),
	})
}

// ClosingCosts is the contract for the closing cost calculation
func ClosingCosts() *jsonschema.Schema {
	props := address()
	props["purchase_price"] = Number("Purchase price (e.g., 230000)")
	props["close_date"] = String("Closing date (YYYY-MM-DD format)")
	props["file_name"] = String("File name for the transaction")
	props["purpose"] = Enum("Transaction purpose: 00=Refinance, 04=Refinance Reissue, 11=Purchase", PurposeCodes...)
	props["loan_amount"] = Number("Loan amount")
	props["sub_agent_id"] = Integer("Sub agent ID from sub_agents endpoint")
	props["endorsements"] = &jsonschema.Schema{
		Type:        "array",
		Description: "Array of endorsement objects",
		Items: Object(map[string]*jsonschema.Schema{
			"endo_id":     {Type: "number"},
			"endo_amount": {Type: "number"},
		}, "endo_id"),
	}
	props["appraisal_modifiers"] = &jsonschema.Schema{
		Type:        "array",
		Description: "Array of appraisal modifier objects",
		Items: Object(map[string]*jsonschema.Schema{
			"id": {Type: "number"},
		}, "id"),
	}
	props["loan_info"] = LoanInfo()
	for name, desc := range map[string]string{
		"include_pdf":                 "Include base64 encoded PDF in response",
		"include_hud":                 "Include base64 encoded HUD in response",
		"include_cfpb":                "Include base64 encoded CFPB in response",
		"include_breakdown":           "Include fee breakdown in response",
		"include_documents":           "Include document list in response",
		"include_questions":           "Include questions list in response",
		"include_line_1101_breakdown": "Include line 1101 breakdown in response",
		"include_line_1201_breakdown": "Include line 1201 breakdown in response",
		"include_line_1203_breakdown": "Include line 1203 breakdown in response",
	} {
		props[name] = Boolean(desc)
	}
	return Object(props, "state", "county", "city", "address", "purchase_price")
}

// PropertyTax is the contract for the property tax estimate
func PropertyTax() *jsonschema.Schema {
	props := address()
	props["close_date"] = String("Closing date (YYYY-MM-DD)")
	props["file_name"] = String("File name")
	props["purchase_price"] = Number("Purchase price for tax calculation")
	return Object(props, "state", "county", "city", "address", "close_date", "file_name", "purchase_price")
}

// Endorsements is the contract for listing endorsements
func Endorsements() *jsonschema.Schema {
	props := location()
	props["purpose"] = String("Transaction purpose (e.g., \"11\")")
	return Object(props, "state", "county", "purpose")
}

// AppraisalModifiers is the contract for listing appraisal modifiers
func AppraisalModifiers() *jsonschema.Schema {
	props := location()
	props["purpose"] = String("Transaction purpose")
	loan := Object(map[string]*jsonschema.Schema{
		"prop_type":  Range(1, 7),
		"amort_type": Range(1, 2),
		"loan_type":  Range(1, 6),
	})
	loan.Description = "Optional loan information for filtering modifiers"
	props["loan_info"] = loan
	return Object(props, "state", "county", "purpose")
}

// SubAgents is the contract for listing sub agents
func SubAgents() *jsonschema.Schema {
	return Object(location(), "state", "county")
}

// Counties is the contract for listing the counties of a state
func Counties() *jsonschema.Schema {
	return Object(map[string]*jsonschema.Schema{
		"state": String("2 letter state abbreviation"),
	}, "state")
}

// Townships is the contract for listing the townships of a county
func Townships() *jsonschema.Schema {
	return Object(location(), "state", "county")
}

// Questions is the contract for county-specific transaction questions
func Questions() *jsonschema.Schema {
	props := address()
	props["purchase_price"] = Number("Purchase price")
	props["close_date"] = String("Closing date (YYYY-MM-DD)")
	props["file_name"] = String("File name")
	props["purpose"] = String("Transaction purpose")
	props["loan_amount"] = Number("Loan amount")
	props["sub_agent_id"] = Integer("Sub agent ID")
	props["loan_info"] = &jsonschema.Schema{Type: "object", Description: "Loan information object"}
	return Object(props, "state", "county", "city", "address", "purchase_price")
}

// Geocode is the contract for the township/address check
func Geocode() *jsonschema.Schema {
	return Object(address(), "state", "county", "city", "address")
}

// Empty is the contract for operations that take no input
func Empty() *jsonschema.Schema {
	return Object(nil)
}
