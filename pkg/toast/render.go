package toast

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultTemplate renders "<icon> <message>".
const DefaultTemplate = `{{ icon|safe }} {{ message|safe }}`

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips markup from message and returns plain text.
func Sanitize(message string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	cleaned := textPolicy.Sanitize(message)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// Renderer formats toasts for a text host.
type Renderer struct {
	tpl   *pongo2.Template
	icons Icons
}

// RenderOption configures a Renderer.
type RenderOption func(*renderConfig)

type renderConfig struct {
	source string
	icons  Icons
}

// WithTemplate replaces the pongo2 template source. The template receives
// icon, message, severity, leaving and id.
func WithTemplate(source string) RenderOption {
	return func(cfg *renderConfig) {
		if strings.TrimSpace(source) != "" {
			cfg.source = source
		}
	}
}

// WithIcons overrides the severity glyphs.
func WithIcons(icons Icons) RenderOption {
	return func(cfg *renderConfig) {
		if len(icons) > 0 {
			cfg.icons = icons
		}
	}
}

// NewRenderer compiles the toast template.
func NewRenderer(options ...RenderOption) (*Renderer, error) {
	cfg := &renderConfig{
		source: DefaultTemplate,
		icons:  DefaultIcons(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	tpl, err := pongo2.FromString(cfg.source)
	if err != nil {
		return nil, fmt.Errorf("toast: compile template: %w", err)
	}
	return &Renderer{tpl: tpl, icons: cfg.icons}, nil
}

// Render returns the text for t.
func (r *Renderer) Render(t Toast) (string, error) {
	out, err := r.tpl.Execute(pongo2.Context{
		"id":       t.ID,
		"icon":     r.icons.For(t.Severity),
		"message":  Sanitize(t.Message),
		"severity": string(t.Severity),
		"leaving":  t.Leaving,
	})
	if err != nil {
		return "", fmt.Errorf("toast: render %s: %w", t.ID, err)
	}
	return out, nil
}
