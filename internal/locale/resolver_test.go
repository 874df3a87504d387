package locale

import (
	"testing"

	"carsu-site-backend/internal/models"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver("en", []string{"en", "es", "it"})
}

func TestResolveStringFallsBackToDefault(t *testing.T) {
	r := newTestResolver(t)
	value := models.NewLocalizedString(map[string]string{"en": "Hello", "es": ""})

	if got := r.ResolveString(value, "it"); got != "Hello" {
		t.Errorf("requesting it: expected fallback to en, got %q", got)
	}
	// Blank entry for the requested locale triggers fallback too.
	if got := r.ResolveString(value, "es"); got != "Hello" {
		t.Errorf("requesting es: expected fallback to en, got %q", got)
	}
	if got := r.ResolveString(nil, "en"); got != "" {
		t.Errorf("absent value: expected empty string, got %q", got)
	}
}

func TestResolveStringBareValuePassesThrough(t *testing.T) {
	r := newTestResolver(t)
	if got := r.ResolveString(models.PlainString("Fixed"), "it"); got != "Fixed" {
		t.Errorf("expected bare value unchanged, got %q", got)
	}
}

func TestResolveStringEmptyEverywhere(t *testing.T) {
	r := newTestResolver(t)
	value := models.NewLocalizedString(map[string]string{"es": "", "it": " "})
	if got := r.ResolveString(value, "es"); got != "" {
		t.Errorf("expected empty resolution, got %q", got)
	}
}

func TestResolveTextFallsBack(t *testing.T) {
	r := newTestResolver(t)
	doc := models.RichTextDocument{{Key: "a", Children: []models.Span{{Text: "hi"}}}}
	value := models.LocalizedText{ByLocale: map[string]models.RichTextDocument{
		"en": doc,
		"es": {},
	}}

	if got := r.ResolveText(value, "es"); len(got) != 1 {
		t.Errorf("empty es document should fall back to en, got %d blocks", len(got))
	}
	if got := r.ResolveText(models.LocalizedText{}, "en"); got == nil {
		t.Error("expected non-nil empty document")
	}
}

func TestResolveHref(t *testing.T) {
	r := newTestResolver(t)
	cases := []struct {
		href   string
		locale string
		want   string
	}{
		{"/about", "es", "/es/about"},
		{"/", "it", "/it"},
		{"/es/pricing", "es", "/es/pricing"},
		{"/en/pricing", "es", "/en/pricing"},
		{"https://x.com", "es", "https://x.com"},
		{"#top", "it", "#top"},
		{"mailto:hi@carsu.app", "es", "mailto:hi@carsu.app"},
		{"//cdn.example.com/a.png", "es", "//cdn.example.com/a.png"},
		{"", "es", ""},
		{"/espanol", "es", "/es/espanol"},
	}

	for _, tc := range cases {
		if got := r.ResolveHref(tc.href, tc.locale); got != tc.want {
			t.Errorf("ResolveHref(%q, %q) = %q, want %q", tc.href, tc.locale, got, tc.want)
		}
	}
}

func TestResolveHrefUnsupportedLocaleUsesDefault(t *testing.T) {
	r := newTestResolver(t)
	if got := r.ResolveHref("/about", "de"); got != "/en/about" {
		t.Errorf("unsupported locale should fall back to default prefix, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	r := newTestResolver(t)

	if got := r.Normalize("es"); got != "es" {
		t.Errorf("expected es, got %q", got)
	}
	if got := r.Normalize("es-MX"); got != "es" {
		t.Errorf("expected base match es, got %q", got)
	}
	if got := r.Normalize("xx"); got != "en" {
		t.Errorf("expected default for unsupported, got %q", got)
	}
	if got := r.Normalize(""); got != "en" {
		t.Errorf("expected default for empty, got %q", got)
	}
}

func TestHasValueIgnoresFallback(t *testing.T) {
	r := newTestResolver(t)
	value := models.NewLocalizedString(map[string]string{"en": "Hello"})

	if !r.HasValue(value, "en") {
		t.Error("expected en to have a value")
	}
	if r.HasValue(value, "es") {
		t.Error("es has no value of its own, HasValue must not fall back")
	}
}

func TestAvailableLocales(t *testing.T) {
	r := newTestResolver(t)
	value := models.NewLocalizedString(map[string]string{"en": "Hello", "it": "Ciao", "es": ""})

	locales := r.AvailableLocales(value)
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "it" {
		t.Fatalf("unexpected locales: %v", locales)
	}
}
