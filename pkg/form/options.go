package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/submission"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter sets the destination for valid submissions. Without one,
// valid submissions are accepted and dropped.
func WithSubmitter(s submission.Submitter) Option {
	return func(c *Controller) {
		if s != nil {
			c.submitter = s
		}
	}
}

// WithValidator overrides the field validator.
func WithValidator(v *validation.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSubmittedHandler registers fn to run after a successful submission.
func WithSubmittedHandler(fn func(model.Fields)) Option {
	return func(c *Controller) {
		c.OnSubmitted(fn)
	}
}

// WithRejectedHandler registers fn to run after a rejected submission.
func WithRejectedHandler(fn func(validation.Verdict)) Option {
	return func(c *Controller) {
		c.OnRejected(fn)
	}
}
