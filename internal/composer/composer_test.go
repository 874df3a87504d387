package composer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"

	"carsu-site-backend/internal/assets"
	"carsu-site-backend/internal/locale"
	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/sections"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	resolver := locale.NewResolver("en", []string{"en", "es"})
	builder := assets.NewBuilder("https://cdn.test/images", 80, true)
	return New(sections.DefaultRegistry(), resolver, builder, bluemonday.UGCPolicy())
}

func decodeSections(t *testing.T, raw string) models.PageSections {
	t.Helper()
	var list models.PageSections
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("Failed to decode section fixture: %v", err)
	}
	return list
}

func TestRenderPagePreservesSectionOrder(t *testing.T) {
	c := newTestComposer(t)
	page := &models.Page{
		Slug: "home",
		Sections: decodeSections(t, `[
			{"id": "s1", "type": "banner", "message": "First"},
			{"id": "s2", "type": "ctaStrip", "heading": "Second", "ctas": [{"text": "Go", "href": "/go"}]},
			{"id": "s3", "type": "banner", "message": "Third"}
		]`),
	}

	result := c.RenderPage(page, "en")
	first := strings.Index(result.HTML, "First")
	second := strings.Index(result.HTML, "Second")
	third := strings.Index(result.HTML, "Third")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("Expected all three sections in output, got %q", result.HTML)
	}
	if !(first < second && second < third) {
		t.Fatalf("Expected document order to match section order, got positions %d, %d, %d", first, second, third)
	}
}

func TestRenderPageUnknownTypeFailsOpen(t *testing.T) {
	c := newTestComposer(t)
	page := &models.Page{
		Slug: "home",
		Sections: decodeSections(t, `[
			{"id": "s1", "type": "banner", "message": "Before"},
			{"id": "s2", "type": "hologram", "whatever": true},
			{"id": "s3", "type": "banner", "message": "After"}
		]`),
	}

	result := c.RenderPage(page, "en")
	if !strings.Contains(result.HTML, "Unknown section type: hologram") {
		t.Fatalf("Expected visible diagnostic for unknown type, got %q", result.HTML)
	}
	if !strings.Contains(result.HTML, "Before") || !strings.Contains(result.HTML, "After") {
		t.Fatalf("Expected surrounding sections to render, got %q", result.HTML)
	}
}

func TestRenderPageEmptySectionsPlaceholder(t *testing.T) {
	c := newTestComposer(t)

	result := c.RenderPage(&models.Page{Slug: "blank"}, "en")
	if !strings.Contains(result.HTML, "No sections configured") {
		t.Fatalf("Expected placeholder for empty page, got %q", result.HTML)
	}
	if len(result.Scripts) != 0 {
		t.Fatalf("Expected no scripts for empty page, got %v", result.Scripts)
	}
}

func TestRenderPageDeduplicatesScripts(t *testing.T) {
	c := newTestComposer(t)
	page := &models.Page{
		Slug: "faqs",
		Sections: decodeSections(t, `[
			{"id": "s1", "type": "faq", "items": [{"question": "Q1", "answer": [{"key": "b1", "children": [{"text": "A1"}]}]}]},
			{"id": "s2", "type": "faq", "items": [{"question": "Q2", "answer": [{"key": "b2", "children": [{"text": "A2"}]}]}]}
		]`),
	}

	result := c.RenderPage(page, "en")
	if len(result.Scripts) != 1 || result.Scripts[0] != "/static/js/faq.js" {
		t.Fatalf("Expected one deduplicated script, got %v", result.Scripts)
	}
}

func TestRenderSectionLocaleFallbackInsideSection(t *testing.T) {
	c := newTestComposer(t)
	section := decodeSections(t, `[{
		"id": "s1",
		"type": "banner",
		"message": {"en": "Hello", "es": ""}
	}]`)

	html, _ := c.RenderSection(section[0], "es")
	if !strings.Contains(html, "Hello") {
		t.Fatalf("Expected empty Spanish value to fall back to English, got %q", html)
	}
}

func TestRenderSectionSanitizesPayloadText(t *testing.T) {
	c := newTestComposer(t)
	section := decodeSections(t, `[{
		"id": "s1",
		"type": "banner",
		"message": "<script>alert(1)</script>Sale"
	}]`)

	html, _ := c.RenderSection(section[0], "en")
	if strings.Contains(html, "<script>") {
		t.Fatalf("Expected script tags to be sanitized, got %q", html)
	}
	if !strings.Contains(html, "Sale") {
		t.Fatalf("Expected message text to survive sanitization, got %q", html)
	}
}

func TestRenderPageNormalizesLocale(t *testing.T) {
	c := newTestComposer(t)
	page := &models.Page{
		Slug: "home",
		Sections: decodeSections(t, `[
			{"id": "s1", "type": "banner", "message": {"en": "Hi", "es": "Hola"}}
		]`),
	}

	result := c.RenderPage(page, "es-MX")
	if !strings.Contains(result.HTML, "Hola") {
		t.Fatalf("Expected es-MX to resolve through base locale es, got %q", result.HTML)
	}
}
