package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/toast"
)

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	StatusPrefix string
	ErrorPrefix  string
}

// DefaultTheme prefixes status lines and field errors with plain glyphs.
func DefaultTheme() Theme {
	return Theme{
		StatusPrefix: "… ",
		ErrorPrefix:  "  ↳ ",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithToastRenderer formats toasts before they are printed.
func WithToastRenderer(renderer *toast.Renderer) Option {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
