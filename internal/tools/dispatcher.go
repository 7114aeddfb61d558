package tools

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dslh/lodestar-mcp/internal/gateway"
	"github.com/dslh/lodestar-mcp/internal/upstream"
	"github.com/dslh/lodestar-mcp/internal/validation"
)

// Dispatcher validates calls against the operation catalog and routes them
// to the gateway. Every outcome, including panics, comes back as an Envelope.
type Dispatcher struct {
	gw         Gateway
	entries    []entry
	index      map[string]int
	validators map[string]*validation.Validator
}

// NewDispatcher builds a dispatcher over gw with the full operation catalog
func NewDispatcher(gw Gateway) (*Dispatcher, error) {
	d := &Dispatcher{
		gw:         gw,
		entries:    catalog(),
		index:      make(map[string]int),
		validators: make(map[string]*validation.Validator),
	}

	for i, e := range d.entries {
		if _, dup := d.index[e.Name]; dup {
			return nil, fmt.Errorf("duplicate operation %s", e.Name)
		}
		v, err := validation.NewValidator(e.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("invalid input schema for %s: %w", e.Name, err)
		}
		d.index[e.Name] = i
		d.validators[e.Name] = v
	}

	return d, nil
}

// ListOperations returns the catalog in listing order
func (d *Dispatcher) ListOperations() []Operation {
	ops := make([]Operation, len(d.entries))
	for i, e := range d.entries {
		ops[i] = e.Operation
	}
	return ops
}

// SessionStatus reports the gateway's local session state
func (d *Dispatcher) SessionStatus() gateway.Status {
	return d.gw.SessionStatus()
}

// Invoke runs the named operation with args
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) Envelope {
	i, ok := d.index[name]
	if !ok {
		return Fail(KindUnknownOperation, fmt.Sprintf("Unknown tool: %s", name))
	}
	e := d.entries[i]

	if args == nil {
		args = map[string]any{}
	}
	if err := d.validators[name].Validate(args); err != nil {
		return Fail(KindValidation, fmt.Sprintf("Invalid arguments for %s: %s", name, validation.FormatValidationError(err)))
	}

	result, err := d.run(ctx, e, args)
	if err != nil {
		log.Printf("Tool %s failed: %v", name, err)
		return Envelope{Error: &Failure{
			Kind:    KindExecution,
			Message: fmt.Sprintf("Tool execution failed: %v", err),
			Detail:  err.Error(),
			Cause:   causeOf(err),
		}}
	}
	return Success(result)
}

func (d *Dispatcher) run(ctx context.Context, e entry, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", e.Name, r)
		}
	}()
	return e.handle(ctx, d.gw, args)
}

// causeOf classifies a gateway failure for callers that map kinds to statuses
func causeOf(err error) Kind {
	var (
		valErr  *gateway.ValidationError
		authErr *gateway.AuthenticationError
		upErr   *upstream.Error
	)
	switch {
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &authErr):
		return KindAuthentication
	case errors.As(err, &upErr):
		return KindUpstream
	default:
		return ""
	}
}
