package gateway

// ErrNotAuthenticated is returned by every domain operation issued without a session token
var ErrNotAuthenticated = &AuthenticationError{Message: "Not authenticated. Please login first."}

// ValidationError reports missing or malformed caller input detected before any network call
type ValidationError struct {
	Message string
	Fields  []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// AuthenticationError reports a domain operation attempted without a session
type AuthenticationError struct {
	Message string
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return e.Message
}

// OperationError prefixes a failure with the operation that produced it.
// The cause stays reachable through errors.As.
type OperationError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

// Unwrap returns the underlying failure
func (e *OperationError) Unwrap() error {
	return e.Err
}
