package form

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/submission"
	"github.com/goliatone/go-contactform/pkg/toast"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Toast texts shown after a submit attempt.
const (
	MessageSubmitted  = "Solicitação enviada com sucesso! Entrarei em contato em breve."
	MessageInvalid    = "Por favor, corrija os erros no formulário."
	MessageSendFailed = "Não foi possível enviar sua solicitação. Tente novamente."
)

// DraftStore persists the in-progress values.
type DraftStore interface {
	Save(fields model.Fields) error
	Load() (model.Draft, bool)
	Clear() error
}

// Notifier shows toasts.
type Notifier interface {
	Show(message string, severity model.Severity) toast.Toast
}

// Controller reacts to host events and keeps Form, drafts and toasts in step.
type Controller struct {
	form      *Form
	drafts    DraftStore
	toasts    Notifier
	validator *validation.Validator
	submitter submission.Submitter
	logger    *zap.Logger

	submitted []func(model.Fields)
	rejected  []func(validation.Verdict)
}

// NewController wires a controller around form.
func NewController(form *Form, drafts DraftStore, toasts Notifier, options ...Option) (*Controller, error) {
	if form == nil {
		return nil, errors.New("form: controller requires a form")
	}
	if drafts == nil {
		return nil, errors.New("form: controller requires a draft store")
	}
	if toasts == nil {
		return nil, errors.New("form: controller requires a notifier")
	}
	c := &Controller{
		form:      form,
		drafts:    drafts,
		toasts:    toasts,
		validator: validation.New(),
		submitter: discard{},
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Form returns the controlled form.
func (c *Controller) Form() *Form {
	return c.form
}

// OnSubmitted registers fn to receive the payload of every accepted
// submission.
func (c *Controller) OnSubmitted(fn func(model.Fields)) {
	if fn != nil {
		c.submitted = append(c.submitted, fn)
	}
}

// OnRejected registers fn to receive the verdict of every rejected
// submission.
func (c *Controller) OnRejected(fn func(validation.Verdict)) {
	if fn != nil {
		c.rejected = append(c.rejected, fn)
	}
}

// Load populates the form from a stored draft. It reports whether a draft was
// restored.
func (c *Controller) Load() bool {
	draft, ok := c.drafts.Load()
	if !ok {
		return false
	}
	c.form.setValues(draft.Fields())
	c.logger.Debug("draft restored", zap.Int64("timestamp", draft.Timestamp))
	return true
}

// Edit records a new value for name, persists the form and clears the field's
// error display. The value is not re-validated.
func (c *Controller) Edit(name model.FieldName, value string) error {
	if _, err := model.ParseFieldName(string(name)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.form.setValue(name, value)
	if err := c.drafts.Save(c.form.Values()); err != nil {
		c.logger.Warn("draft not persisted", zap.String("field", string(name)), zap.Error(err))
	}
	c.form.markSuccess(name)
	return nil
}

// Submit validates the form. A valid form is handed to the submitter, then
// reset together with the stored draft. An invalid form keeps its values and
// draft and has its failing fields marked.
//
// The returned error is non-nil only when the submitter fails; validation
// failures are reported through the verdict.
func (c *Controller) Submit(ctx context.Context) (validation.Verdict, error) {
	values := c.form.Values()
	verdict := c.validator.Validate(values)

	for _, name := range model.FieldNames {
		res := verdict.Result(name)
		if res.Valid {
			c.form.markSuccess(name)
		} else {
			c.form.markError(name, res.Message)
		}
	}

	if !verdict.Valid {
		c.logger.Debug("submission rejected", zap.Any("fields", verdict.Invalid()))
		c.toasts.Show(MessageInvalid, model.SeverityError)
		for _, fn := range c.rejected {
			fn(verdict)
		}
		return verdict, nil
	}

	payload := validation.Normalize(values)
	if err := c.submitter.Submit(ctx, payload); err != nil {
		c.logger.Error("submission failed", zap.Error(err))
		c.toasts.Show(MessageSendFailed, model.SeverityError)
		return verdict, fmt.Errorf("form: submit: %w", err)
	}

	c.form.Reset()
	if err := c.drafts.Clear(); err != nil {
		c.logger.Warn("draft not cleared", zap.Error(err))
	}
	c.toasts.Show(MessageSubmitted, model.SeveritySuccess)
	for _, fn := range c.submitted {
		fn(payload)
	}
	return verdict, nil
}

type discard struct{}

func (discard) Submit(context.Context, model.Fields) error { return nil }
