// Package submission is the boundary a valid contact request crosses on its
// way out. No transport is wired: the default Noop checks the payload against
// the embedded OpenAPI contract and drops it.
package submission

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Submitter hands a validated payload to its destination.
type Submitter interface {
	Submit(ctx context.Context, payload model.Fields) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, payload model.Fields) error

// Submit calls f(ctx, payload).
func (f SubmitterFunc) Submit(ctx context.Context, payload model.Fields) error {
	return f(ctx, payload)
}

// Payload converts fields into the JSON document described by the contract.
func Payload(fields model.Fields) map[string]any {
	return map[string]any{
		"name":     fields.Name,
		"email":    fields.Email,
		"interest": fields.Interest,
		"message":  fields.Message,
	}
}

// Noop verifies payloads against the contract and performs no transmission.
type Noop struct {
	contract *Contract
	logger   *zap.Logger
}

// NoopOption configures a Noop submitter.
type NoopOption func(*Noop)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) NoopOption {
	return func(n *Noop) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithContract replaces the embedded contract.
func WithContract(contract *Contract) NoopOption {
	return func(n *Noop) {
		if contract != nil {
			n.contract = contract
		}
	}
}

// NewNoop loads the embedded contract unless one is supplied.
func NewNoop(ctx context.Context, options ...NoopOption) (*Noop, error) {
	n := &Noop{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	if n.contract == nil {
		contract, err := LoadContract(ctx, defaultContract)
		if err != nil {
			return nil, err
		}
		n.contract = contract
	}
	return n, nil
}

// Submit checks payload and discards it.
func (n *Noop) Submit(ctx context.Context, payload model.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.contract.Check(Payload(payload)); err != nil {
		n.logger.Warn("submission rejected by contract", zap.Error(err))
		return fmt.Errorf("submission: %s %s: %w", SendMethod, SendPath, err)
	}
	n.logger.Info("contact request accepted",
		zap.String("interest", payload.Interest),
		zap.Int("message_len", len([]rune(payload.Message))),
	)
	return nil
}
