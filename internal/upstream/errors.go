package upstream

// Error is a normalized upstream failure: a non-2xx response, a transport
// error or timeout, or a failure status embedded in the response body.
// StatusCode is zero when no response was received.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport error, if any
func (e *Error) Unwrap() error {
	return e.Err
}
