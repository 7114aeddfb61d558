package tools

// Kind classifies a dispatch failure
type Kind string

const (
	KindValidation       Kind = "ValidationError"
	KindAuthentication   Kind = "AuthenticationError"
	KindUpstream         Kind = "UpstreamError"
	KindUnknownOperation Kind = "UnknownOperation"
	KindExecution        Kind = "ExecutionError"
)

// Failure is the error half of an Envelope. For an ExecutionError, Detail is
// the wrapped failure's own message (e.g. "Get counties failed: ...") and
// Cause names its kind when it is a typed gateway or upstream failure.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   Kind   `json:"cause,omitempty"`
}

// Envelope is the uniform response wrapper for every dispatched call.
// Used by both the MCP and HTTP front-ends.
type Envelope struct {
	OK     bool     `json:"ok"`
	Result any      `json:"result,omitempty"`
	Error  *Failure `json:"error,omitempty"`
}

// Success wraps a payload
func Success(payload any) Envelope {
	return Envelope{OK: true, Result: payload}
}

// Fail wraps a failure
func Fail(kind Kind, message string) Envelope {
	return Envelope{Error: &Failure{Kind: kind, Message: message}}
}
