package toast

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Theme tokens read for toast icons.
const (
	TokenIconSuccess = "toast.icon.success"
	TokenIconError   = "toast.icon.error"
)

// DefaultThemeName names the manifest built from configured tokens.
const DefaultThemeName = "contactform"

// ErrUnknownTheme is returned by ManifestSelector for a foreign theme name.
var ErrUnknownTheme = errors.New("toast: unknown theme")

// Icons maps severities to the glyph rendered before the message.
type Icons map[model.Severity]string

// DefaultIcons returns the built-in glyphs.
func DefaultIcons() Icons {
	return Icons{
		model.SeveritySuccess: "✔",
		model.SeverityError:   "✖",
	}
}

// For returns the icon for severity, falling back to the defaults.
func (i Icons) For(severity model.Severity) string {
	if icon := strings.TrimSpace(i[severity]); icon != "" {
		return icon
	}
	return DefaultIcons()[severity]
}

// IconsFromSelection reads icon tokens from a resolved theme, letting the
// selected variant override the base manifest.
func IconsFromSelection(selection *theme.Selection) Icons {
	icons := DefaultIcons()
	if selection == nil || selection.Manifest == nil {
		return icons
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	if icon := strings.TrimSpace(tokens[TokenIconSuccess]); icon != "" {
		icons[model.SeveritySuccess] = icon
	}
	if icon := strings.TrimSpace(tokens[TokenIconError]); icon != "" {
		icons[model.SeverityError] = icon
	}
	return icons
}

// ResolveIcons selects name/variant through selector and extracts the icons.
func ResolveIcons(selector theme.ThemeSelector, name, variant string) (Icons, error) {
	if selector == nil {
		return DefaultIcons(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return DefaultIcons(), fmt.Errorf("toast: select theme %q: %w", name, err)
	}
	return IconsFromSelection(selection), nil
}

// NewManifest builds a single-theme manifest from flat tokens.
func NewManifest(name string, tokens map[string]string) *theme.Manifest {
	if strings.TrimSpace(name) == "" {
		name = DefaultThemeName
	}
	copied := make(map[string]string, len(tokens))
	for key, value := range tokens {
		copied[key] = value
	}
	return &theme.Manifest{
		Name:    name,
		Version: "1.0.0",
		Tokens:  copied,
	}
}

// ManifestSelector resolves selections against one in-memory manifest.
type ManifestSelector struct {
	Manifest *theme.Manifest
}

var _ theme.ThemeSelector = ManifestSelector{}

// Select returns the manifest when name is empty or matches it.
func (s ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s.Manifest == nil {
		return nil, ErrUnknownTheme
	}
	if name != "" && name != s.Manifest.Name {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return &theme.Selection{
		Theme:    s.Manifest.Name,
		Variant:  variant,
		Manifest: s.Manifest,
	}, nil
}
