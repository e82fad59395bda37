// Package tui hosts the contact form in a terminal. A Session prompts for
// each field through a PromptDriver, routes every answer to the form
// controller on the event loop and prints the status line and toasts between
// prompts.
package tui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/toast"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Prompt texts.
const (
	PromptName     = "Nome completo"
	PromptEmail    = "E-mail"
	PromptInterest = "Área de interesse"
	PromptMessage  = "Mensagem"
	PromptSubmit   = "Enviar solicitação?"
)

// Runner executes fn on the goroutine that owns the form.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Result summarizes a finished session.
type Result struct {
	Submitted bool
	Attempts  int
	Payload   model.Fields
	Restored  bool
}

// Session drives one interactive fill of the contact form.
type Session struct {
	runner     Runner
	controller *form.Controller
	driver     PromptDriver
	renderer   *toast.Renderer
	theme      Theme
	logger     *zap.Logger
	outbox     *outbox

	lastStatus string
	payload    *model.Fields
}

// NewSession builds a session. Toasts shown by notifier are printed between
// prompts; notifier may be nil when the host renders toasts elsewhere.
func NewSession(runner Runner, controller *form.Controller, notifier *toast.Notifier, options ...Option) (*Session, error) {
	if runner == nil {
		return nil, fmt.Errorf("tui: runner is required")
	}
	if controller == nil {
		return nil, ErrNoController
	}
	renderer, err := toast.NewRenderer()
	if err != nil {
		return nil, err
	}
	s := &Session{
		runner:     runner,
		controller: controller,
		renderer:   renderer,
		theme:      DefaultTheme(),
		logger:     zap.NewNop(),
		outbox:     &outbox{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}

	if notifier != nil {
		notifier.Subscribe(s.onToast)
	}
	controller.OnSubmitted(func(payload model.Fields) {
		p := payload
		s.payload = &p
	})
	return s, nil
}

// Run loads any stored draft, then prompts until the form is submitted or the
// user declines. After a rejected submit only the invalid fields are asked
// again. Aborting returns ErrAborted and leaves the draft stored.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if ctx == nil {
		return Result{}, fmt.Errorf("tui: context is required")
	}
	var result Result

	if err := s.runner.Do(ctx, func() {
		result.Restored = s.controller.Load()
	}); err != nil {
		return result, err
	}
	if err := s.flush(ctx); err != nil {
		return result, err
	}

	pending := model.FieldNames
	for {
		for _, name := range pending {
			if err := s.promptField(ctx, name); err != nil {
				return result, err
			}
		}

		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: PromptSubmit, Default: true})
		if err != nil {
			return result, err
		}
		if !ok {
			s.logger.Debug("submission declined, draft kept")
			return result, s.flush(ctx)
		}

		result.Attempts++
		var (
			verdict   validation.Verdict
			submitErr error
		)
		s.payload = nil
		if err := s.runner.Do(ctx, func() {
			verdict, submitErr = s.controller.Submit(ctx)
		}); err != nil {
			return result, err
		}
		if err := s.flush(ctx); err != nil {
			return result, err
		}

		switch {
		case submitErr != nil:
			s.logger.Warn("submission failed", zap.Error(submitErr))
			pending = nil
		case verdict.Valid:
			result.Submitted = true
			if s.payload != nil {
				result.Payload = *s.payload
			}
			return result, nil
		default:
			pending = verdict.Invalid()
		}
	}
}

func (s *Session) promptField(ctx context.Context, name model.FieldName) error {
	var (
		current string
		status  form.FieldStatus
	)
	if err := s.runner.Do(ctx, func() {
		current = s.controller.Form().Value(name)
		status = s.controller.Form().Status(name)
	}); err != nil {
		return err
	}
	if status.Visible() {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+status.Message); err != nil {
			return err
		}
	}

	answer, err := s.ask(ctx, name, current)
	if err != nil {
		return err
	}

	var editErr error
	if err := s.runner.Do(ctx, func() {
		editErr = s.controller.Edit(name, answer)
	}); err != nil {
		return err
	}
	if editErr != nil {
		return editErr
	}
	return s.flush(ctx)
}

func (s *Session) ask(ctx context.Context, name model.FieldName, current string) (string, error) {
	switch name {
	case model.NameField:
		return s.driver.Input(ctx, InputConfig{Message: PromptName, Default: current})
	case model.EmailField:
		return s.driver.Input(ctx, InputConfig{Message: PromptEmail, Default: current})
	case model.MessageField:
		return s.driver.TextArea(ctx, TextAreaConfig{Message: PromptMessage, Default: current})
	case model.InterestField:
		options := make([]string, len(model.Interests))
		defaultIndex := 0
		for i, tag := range model.Interests {
			options[i] = model.InterestLabels[tag]
			if string(tag) == current {
				defaultIndex = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      PromptInterest,
			Options:      options,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(model.Interests) {
			return current, nil
		}
		return string(model.Interests[idx]), nil
	default:
		return "", fmt.Errorf("%w: %q", form.ErrUnknownField, name)
	}
}

// flush prints queued toasts and the status line when it changed.
func (s *Session) flush(ctx context.Context) error {
	var status string
	if err := s.runner.Do(ctx, func() {
		status = s.controller.Form().StatusLine()
	}); err != nil {
		return err
	}
	if status != s.lastStatus {
		s.lastStatus = status
		if status != "" {
			s.outbox.push(s.theme.StatusPrefix + status)
		}
	}
	for _, line := range s.outbox.drain() {
		if err := s.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) onToast(evt toast.Event) {
	if evt.Kind != toast.EventShown {
		return
	}
	line, err := s.renderer.Render(evt.Toast)
	if err != nil {
		s.logger.Warn("toast render failed", zap.Error(err))
		line = evt.Toast.Message
	}
	s.outbox.push(line)
}
