// Package contactform wires the contact form components into a ready-to-run
// application: an event loop, the draft store over a slot backend, the toast
// notifier, the validator-backed controller and the no-op submission boundary.
package contactform

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/eventloop"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/storage"
	"github.com/goliatone/go-contactform/pkg/submission"
	"github.com/goliatone/go-contactform/pkg/toast"
)

// App bundles the wired components. Everything except Loop must be touched
// from the loop goroutine only; use Loop.Do from elsewhere.
type App struct {
	Loop       *eventloop.Loop
	Form       *form.Form
	Drafts     *draft.Store
	Toasts     *toast.Notifier
	Renderer   *toast.Renderer
	Controller *form.Controller
	Submitter  submission.Submitter
	Logger     *zap.Logger
}

// Option customises New.
type Option func(*settings)

type settings struct {
	logger       *zap.Logger
	loop         *eventloop.Loop
	submitter    submission.Submitter
	draftOpts    []draft.Option
	toastOpts    []toast.Option
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	template     string
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLoop reuses an existing event loop.
func WithLoop(loop *eventloop.Loop) Option {
	return func(s *settings) {
		if loop != nil {
			s.loop = loop
		}
	}
}

// WithSubmitter replaces the contract-checking no-op submitter.
func WithSubmitter(submitter submission.Submitter) Option {
	return func(s *settings) {
		if submitter != nil {
			s.submitter = submitter
		}
	}
}

// WithDraftOptions forwards options to the draft store.
func WithDraftOptions(opts ...draft.Option) Option {
	return func(s *settings) {
		s.draftOpts = append(s.draftOpts, opts...)
	}
}

// WithToastOptions forwards options to the toast notifier.
func WithToastOptions(opts ...toast.Option) Option {
	return func(s *settings) {
		s.toastOpts = append(s.toastOpts, opts...)
	}
}

// WithThemeSelector resolves toast icons through a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *settings) {
		s.selector = selector
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithToastTemplate overrides the pongo2 template used to print toasts.
func WithToastTemplate(source string) Option {
	return func(s *settings) {
		s.template = source
	}
}

// New wires an App over slots. The loop is created but not started; call
// Loop.Run on a dedicated goroutine.
func New(ctx context.Context, slots storage.Store, options ...Option) (*App, error) {
	if slots == nil {
		return nil, fmt.Errorf("contactform: slot storage is required")
	}
	s := &settings{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	loop := s.loop
	if loop == nil {
		loop = eventloop.New(eventloop.WithLogger(s.logger.Named("loop")))
	}

	app := &App{
		Loop:   loop,
		Form:   form.NewForm(),
		Logger: s.logger,
	}

	drafts, err := draft.New(slots, append([]draft.Option{
		draft.WithClock(loop),
		draft.WithStatusSink(app.Form),
		draft.WithLogger(s.logger.Named("draft")),
	}, s.draftOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("contactform: draft store: %w", err)
	}
	app.Drafts = drafts

	app.Toasts = toast.New(append([]toast.Option{
		toast.WithClock(loop),
		toast.WithLogger(s.logger.Named("toast")),
	}, s.toastOpts...)...)

	icons, err := toast.ResolveIcons(s.selector, s.themeName, s.themeVariant)
	if err != nil {
		s.logger.Warn("theme selection failed, using default icons", zap.Error(err))
	}
	renderer, err := toast.NewRenderer(toast.WithIcons(icons), toast.WithTemplate(s.template))
	if err != nil {
		return nil, fmt.Errorf("contactform: toast renderer: %w", err)
	}
	app.Renderer = renderer

	app.Submitter = s.submitter
	if app.Submitter == nil {
		noop, err := submission.NewNoop(ctx, submission.WithLogger(s.logger.Named("submission")))
		if err != nil {
			return nil, fmt.Errorf("contactform: submission: %w", err)
		}
		app.Submitter = noop
	}

	controller, err := form.NewController(app.Form, app.Drafts, app.Toasts,
		form.WithSubmitter(app.Submitter),
		form.WithLogger(s.logger.Named("form")),
	)
	if err != nil {
		return nil, fmt.Errorf("contactform: controller: %w", err)
	}
	app.Controller = controller
	return app, nil
}

// Session returns a terminal session driving the app's controller.
func (a *App) Session(options ...tui.Option) (*tui.Session, error) {
	return tui.NewSession(a.Loop, a.Controller, a.Toasts, append([]tui.Option{
		tui.WithToastRenderer(a.Renderer),
		tui.WithLogger(a.Logger.Named("tui")),
	}, options...)...)
}

// Sweeper schedules expired-draft sweeps on the app's loop.
func (a *App) Sweeper(schedule string) (*draft.Sweeper, error) {
	return draft.NewSweeper(a.Drafts, a.Loop, schedule, a.Logger.Named("sweeper"))
}
