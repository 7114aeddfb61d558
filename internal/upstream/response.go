package upstream

import (
	"encoding/json"
	"fmt"
)

// Response is an upstream JSON body. It is passed through opaquely; only the
// fields the gateway inspects have accessors.
type Response json.RawMessage

// MarshalJSON emits the body verbatim
func (r Response) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data
func (r *Response) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

type envelopeFields struct {
	Status    json.RawMessage `json:"status"`
	SessionID any             `json:"session_id"`
	Message   any             `json:"message"`
	Error     any             `json:"error"`
}

func (r Response) fields() (envelopeFields, bool) {
	var f envelopeFields
	if len(r) == 0 || r[0] != '{' {
		return f, false
	}
	if err := json.Unmarshal(r, &f); err != nil {
		return f, false
	}
	return f, true
}

// Status returns the numeric application status flag, if present
func (r Response) Status() (int, bool) {
	f, ok := r.fields()
	if !ok || len(f.Status) == 0 {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(f.Status, &n); err != nil {
		var s string
		if err := json.Unmarshal(f.Status, &s); err != nil {
			return 0, false
		}
		n = json.Number(s)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// SessionID returns the session token carried by a login response
func (r Response) SessionID() string {
	f, _ := r.fields()
	return text(f.SessionID)
}

// Failed reports whether the body declares an application-level failure
func (r Response) Failed() bool {
	status, ok := r.Status()
	return ok && status == 0
}

// FailureMessage extracts the upstream's explanation of a failure
func (r Response) FailureMessage() string {
	f, _ := r.fields()
	switch {
	case text(f.Message) != "":
		return text(f.Message)
	case text(f.Error) != "":
		return text(f.Error)
	default:
		return "API request failed"
	}
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
