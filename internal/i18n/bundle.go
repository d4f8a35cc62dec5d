// Package i18n resolves user-facing strings through key-based lookup
// against embedded language bundles (English and Arabic).
package i18n

import (
	"embed"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Supported locale codes, first entry is the fallback.
var Locales = []string{"en", "ar"}

// Bundle wraps the go-i18n bundle with PropDesk conventions: a two-locale
// message set and a text-direction lookup for the layout shell.
type Bundle struct {
	bundle *goi18n.Bundle
}

// NewBundle loads the embedded message files.
func NewBundle() (*Bundle, error) {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, loc := range Locales {
		path := fmt.Sprintf("locales/%s.toml", loc)
		if _, err := b.LoadMessageFileFS(localeFS, path); err != nil {
			return nil, fmt.Errorf("failed to load message file %s: %w", path, err)
		}
	}

	return &Bundle{bundle: b}, nil
}

// Translator returns a lookup func bound to the given locale. Unknown keys
// render as the key itself so a missing translation is visible, not fatal.
func (b *Bundle) Translator(locale string) func(id string, data map[string]interface{}) string {
	localizer := goi18n.NewLocalizer(b.bundle, locale)
	return func(id string, data map[string]interface{}) string {
		msg, err := localizer.Localize(&goi18n.LocalizeConfig{
			MessageID:    id,
			TemplateData: data,
		})
		if err != nil {
			return id
		}
		return msg
	}
}

// T is a one-shot lookup for handlers that need a single message.
func (b *Bundle) T(locale, id string) string {
	return b.Translator(locale)(id, nil)
}

// IsSupported reports whether the locale code has a bundle.
func IsSupported(locale string) bool {
	for _, loc := range Locales {
		if loc == locale {
			return true
		}
	}
	return false
}

// Dir returns the document text direction for a locale.
func Dir(locale string) string {
	if locale == "ar" {
		return "rtl"
	}
	return "ltr"
}
