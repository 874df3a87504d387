package richtext

import (
	"reflect"
	"strings"
	"testing"

	"carsu-site-backend/internal/locale"
	"carsu-site-backend/internal/models"
)

func testRenderer() *Renderer {
	resolver := locale.NewResolver("en", []string{"en", "es", "it"})
	assetURL := func(ref models.ImageRef, width, height int) string {
		if ref.Asset == "" {
			return ""
		}
		return "https://cdn.example.com/" + ref.Asset
	}
	return NewRenderer(resolver, assetURL)
}

func span(text string, marks ...string) models.Span {
	return models.Span{Text: text, Marks: marks}
}

func TestRenderParagraphEscapesText(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{Key: "a", Style: models.StyleNormal, Children: []models.Span{span("a < b")}},
	}

	got := r.Render(doc, "en")
	if !strings.Contains(got, "a &lt; b") {
		t.Fatalf("expected escaped text, got %q", got)
	}
	if !strings.Contains(got, `rich-text__paragraph`) {
		t.Fatalf("expected paragraph class, got %q", got)
	}
}

func TestRenderHeadingGetsAnchor(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{Key: "Intro1", Style: models.StyleH2, Children: []models.Span{span("Details")}},
	}

	got := r.Render(doc, "en")
	if !strings.Contains(got, `<h2 id="heading-intro1"`) {
		t.Fatalf("expected stable anchor id, got %q", got)
	}
}

func TestRenderGroupsConsecutiveListItems(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{Key: "a", Style: models.StyleNormal, ListType: models.ListBullet, Children: []models.Span{span("one")}},
		{Key: "b", Style: models.StyleNormal, ListType: models.ListBullet, Children: []models.Span{span("two")}},
		{Key: "c", Style: models.StyleNormal, Children: []models.Span{span("after")}},
		{Key: "d", Style: models.StyleNormal, ListType: models.ListNumber, Children: []models.Span{span("first")}},
	}

	got := r.Render(doc, "en")
	if strings.Count(got, "<ul") != 1 {
		t.Fatalf("expected one bullet list, got %q", got)
	}
	if strings.Count(got, "<li") != 3 {
		t.Fatalf("expected three list items, got %q", got)
	}
	if !strings.Contains(got, "<ol") {
		t.Fatalf("expected ordered list for number items, got %q", got)
	}
	if strings.Index(got, "</ul>") > strings.Index(got, "after") {
		t.Fatalf("bullet list should close before the paragraph, got %q", got)
	}
}

func TestRenderMarks(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{
			Key:   "a",
			Style: models.StyleNormal,
			Children: []models.Span{
				span("bold", models.MarkStrong),
				span("linked", "l1"),
				span("tinted", "c1"),
			},
			MarkDefs: []models.MarkDef{
				{Key: "l1", Type: models.MarkDefLink, Href: models.PlainString("/pricing")},
				{Key: "c1", Type: models.MarkDefColored, CustomColor: "#ff0000", Weight: "600"},
			},
		},
	}

	got := r.Render(doc, "es")
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("expected strong mark, got %q", got)
	}
	if !strings.Contains(got, `href="/es/pricing"`) {
		t.Errorf("expected locale-resolved link, got %q", got)
	}
	if !strings.Contains(got, "color:#ff0000") || !strings.Contains(got, "font-weight:600") {
		t.Errorf("expected colored text styles, got %q", got)
	}
}

func TestRenderUnknownMarkAndStyleDegrade(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{Key: "a", Style: "h7", Children: []models.Span{span("future", "sparkly")}},
	}

	got := r.Render(doc, "en")
	if !strings.Contains(got, "future") {
		t.Fatalf("unknown mark should pass text through, got %q", got)
	}
	if !strings.Contains(got, "rich-text__paragraph") {
		t.Fatalf("unknown style should render as paragraph, got %q", got)
	}
}

func TestRenderImageBlockGuardsAsset(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{Key: "a", Type: models.BlockImage, Image: &models.ImageRef{
			Asset: "diagram",
			Alt:   models.NewLocalizedString(map[string]string{"en": "Diagram"}),
		}},
		{Key: "b", Type: models.BlockImage, Image: &models.ImageRef{}},
		{Key: "c", Style: models.StyleNormal, Children: []models.Span{span("sibling")}},
	}

	got := r.Render(doc, "en")
	if strings.Count(got, "<img") != 1 {
		t.Fatalf("expected exactly one image, got %q", got)
	}
	if !strings.Contains(got, `alt="Diagram"`) {
		t.Fatalf("expected resolved alt text, got %q", got)
	}
	if !strings.Contains(got, "sibling") {
		t.Fatalf("malformed image must not drop siblings, got %q", got)
	}
}

func TestRenderLinkWithoutHrefIsPlainText(t *testing.T) {
	r := testRenderer()
	doc := models.RichTextDocument{
		{
			Key:      "a",
			Style:    models.StyleNormal,
			Children: []models.Span{span("dangling", "l1")},
			MarkDefs: []models.MarkDef{{Key: "l1", Type: models.MarkDefLink}},
		},
	}

	got := r.Render(doc, "en")
	if strings.Contains(got, "<a ") {
		t.Fatalf("link without href must not render an anchor, got %q", got)
	}
	if !strings.Contains(got, "dangling") {
		t.Fatalf("text should survive, got %q", got)
	}
}

func TestOverrideBlock(t *testing.T) {
	r := testRenderer()
	r.OverrideBlock(models.StyleBlockquote, func(_ *Renderer, block models.Block, _ string, _ string) string {
		return "<aside>" + block.PlainText() + "</aside>"
	})

	doc := models.RichTextDocument{
		{Key: "a", Style: models.StyleBlockquote, Children: []models.Span{span("quoted")}},
	}
	got := r.Render(doc, "en")
	if got != "<aside>quoted</aside>" {
		t.Fatalf("expected override output, got %q", got)
	}
}

func TestExtractHeadingsRoundTrip(t *testing.T) {
	doc := models.RichTextDocument{
		{Key: "k1", Style: models.StyleH1, Children: []models.Span{span("Intro")}},
		{Key: "k2", Style: models.StyleNormal, Children: []models.Span{span("text")}},
		{Key: "k3", Style: models.StyleH2, Children: []models.Span{span("Details")}},
	}

	first := ExtractHeadings(doc)
	want := []Heading{
		{ID: "heading-k1", Title: "Intro", Level: 1},
		{ID: "heading-k3", Title: "Details", Level: 2},
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("unexpected headings: %+v", first)
	}

	second := ExtractHeadings(doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not idempotent: %+v vs %+v", first, second)
	}
}

func TestExtractHeadingsPositionalFallback(t *testing.T) {
	doc := models.RichTextDocument{
		{Style: models.StyleH3, Children: []models.Span{span("Keyless")}},
	}
	headings := ExtractHeadings(doc)
	if len(headings) != 1 || headings[0].ID != "heading-0" {
		t.Fatalf("expected positional fallback id, got %+v", headings)
	}
}
