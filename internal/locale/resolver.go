// Package locale resolves localizable content values against a requested
// locale. Missing translations fall back to the default locale and finally to
// an empty value; resolution never fails.
package locale

import (
	"strings"

	"carsu-site-backend/internal/models"
	"carsu-site-backend/pkg/lang"
)

// Resolver applies the site's fallback rule to localized values. The zero
// value falls back to lang.Default.
type Resolver struct {
	defaultLocale string
	supported     []string
}

// NewResolver builds a resolver for the given locale configuration. The
// default locale is normalised and always part of the supported set.
func NewResolver(defaultLocale string, supported []string) *Resolver {
	normalizedDefault, normalizedSupported, err := lang.EnsureDefault(defaultLocale, supported)
	if err != nil {
		normalizedDefault = lang.Default
		normalizedSupported = []string{lang.Default}
	}
	return &Resolver{
		defaultLocale: normalizedDefault,
		supported:     normalizedSupported,
	}
}

// DefaultLocale returns the configured fallback locale.
func (r *Resolver) DefaultLocale() string {
	if r == nil || r.defaultLocale == "" {
		return lang.Default
	}
	return r.defaultLocale
}

// Supported returns the supported locale codes, default first.
func (r *Resolver) Supported() []string {
	if r == nil || len(r.supported) == 0 {
		return []string{lang.Default}
	}
	return append([]string(nil), r.supported...)
}

// Normalize maps an arbitrary requested locale onto the supported set:
// exact match, then base-language match, then the default locale.
func (r *Resolver) Normalize(locale string) string {
	normalized, err := lang.Normalize(locale)
	if err != nil {
		return r.DefaultLocale()
	}
	supported := r.Supported()
	if lang.Contains(supported, normalized) {
		return normalized
	}
	if base := lang.MatchBase(normalized, supported); base != "" {
		return base
	}
	return r.DefaultLocale()
}

// ResolveString resolves a localizable string. A nil/absent value resolves to
// "". A bare value is returned unchanged. For a locale map the requested
// locale wins when it carries a non-blank value, then the default locale,
// then "". Blank and absent entries are equivalent: both trigger fallback.
func (r *Resolver) ResolveString(value models.LocalizedString, locale string) string {
	if len(value) == 0 {
		return ""
	}

	if bare, ok := value.Bare(); ok {
		return bare
	}

	if v := strings.TrimSpace(value.Get(locale)); v != "" {
		return value.Get(locale)
	}
	if v := strings.TrimSpace(value.Get(r.DefaultLocale())); v != "" {
		return value.Get(r.DefaultLocale())
	}
	return ""
}

// ResolveText resolves a localizable rich text document with the same
// precedence as ResolveString. The result is never nil semantics: callers
// always receive a document they can range over. An empty document for the
// requested locale is treated like an absent one and falls back.
func (r *Resolver) ResolveText(value models.LocalizedText, locale string) models.RichTextDocument {
	if value.IsPlain {
		if value.Plain == nil {
			return models.RichTextDocument{}
		}
		return value.Plain
	}

	if doc := value.Get(locale); len(doc) > 0 {
		return doc
	}
	if doc := value.Get(r.DefaultLocale()); len(doc) > 0 {
		return doc
	}
	return models.RichTextDocument{}
}

// ResolveHref applies the locale prefix convention to an href. Absolute URLs,
// protocol-relative URLs, anchors, mailto/tel links and already-prefixed
// paths pass through unchanged; other root-relative paths are prefixed with
// the locale segment.
func (r *Resolver) ResolveHref(href, locale string) string {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return ""
	}

	if !strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "//") {
		return trimmed
	}

	locale = r.Normalize(locale)
	prefix := "/" + locale
	if trimmed == prefix || strings.HasPrefix(trimmed, prefix+"/") {
		return trimmed
	}
	for _, supported := range r.Supported() {
		p := "/" + supported
		if trimmed == p || strings.HasPrefix(trimmed, p+"/") {
			// Already carries a locale segment, leave the author's choice.
			return trimmed
		}
	}

	if trimmed == "/" {
		return prefix
	}
	return prefix + trimmed
}

// ResolveLocalizedHref resolves a localizable href field and then applies the
// locale prefix convention.
func (r *Resolver) ResolveLocalizedHref(value models.LocalizedString, locale string) string {
	return r.ResolveHref(r.ResolveString(value, locale), locale)
}

// HasValue reports whether a non-blank value exists for the locale itself,
// ignoring fallback. Editorial tooling uses this to flag missing
// translations.
func (r *Resolver) HasValue(value models.LocalizedString, locale string) bool {
	if bare, ok := value.Bare(); ok {
		return strings.TrimSpace(bare) != ""
	}
	return strings.TrimSpace(value.Get(locale)) != ""
}

// AvailableLocales lists the locales a value actually carries content for.
func (r *Resolver) AvailableLocales(value models.LocalizedString) []string {
	return value.Locales()
}
