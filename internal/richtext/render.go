// Package richtext converts block-based rich text documents into HTML. The
// walk is data driven: per-style block renderers and per-mark span wrappers
// are looked up in maps that callers can override without touching the core
// traversal. Malformed nodes render nothing and never abort their siblings.
package richtext

import (
	"fmt"
	"html/template"
	"strings"

	"carsu-site-backend/internal/locale"
	"carsu-site-backend/internal/models"
)

// AssetURLFunc resolves an image reference to a CDN URL. The renderer never
// builds image URLs itself.
type AssetURLFunc func(ref models.ImageRef, width, height int) string

// BlockFunc renders one text block. The returned string is final HTML.
type BlockFunc func(r *Renderer, block models.Block, loc string, anchorID string) string

// MarkFunc wraps already-rendered inner HTML for one mark occurrence.
type MarkFunc func(r *Renderer, def models.MarkDef, loc string, inner string) string

const (
	defaultPrefix   = "rich-text"
	embedImageWidth = 1200
)

// Renderer walks rich text documents. Construct with NewRenderer; the zero
// value is not usable.
type Renderer struct {
	resolver *locale.Resolver
	assetURL AssetURLFunc
	prefix   string

	blocks map[string]BlockFunc
	marks  map[string]MarkFunc
}

// NewRenderer creates a renderer with the default block and mark handlers
// registered.
func NewRenderer(resolver *locale.Resolver, assetURL AssetURLFunc) *Renderer {
	r := &Renderer{
		resolver: resolver,
		assetURL: assetURL,
		prefix:   defaultPrefix,
		blocks:   make(map[string]BlockFunc),
		marks:    make(map[string]MarkFunc),
	}

	r.blocks[models.StyleNormal] = renderParagraph
	r.blocks[models.StyleBlockquote] = renderBlockquote
	for _, style := range []string{models.StyleH1, models.StyleH2, models.StyleH3, models.StyleH4} {
		r.blocks[style] = renderHeading
	}

	r.marks[models.MarkStrong] = wrapTag("strong")
	r.marks[models.MarkEm] = wrapTag("em")
	r.marks[models.MarkCode] = wrapTag("code")
	r.marks[models.MarkDefLink] = wrapLink
	r.marks[models.MarkDefColored] = wrapColored

	return r
}

// OverrideBlock replaces the handler for a block style.
func (r *Renderer) OverrideBlock(style string, fn BlockFunc) {
	if style == "" || fn == nil {
		return
	}
	r.blocks[style] = fn
}

// OverrideMark replaces the handler for a mark or mark definition type.
func (r *Renderer) OverrideMark(mark string, fn MarkFunc) {
	if mark == "" || fn == nil {
		return
	}
	r.marks[mark] = fn
}

// Render converts a document to HTML, grouping consecutive list items under
// a shared list container and assigning stable anchor ids to headings.
func (r *Renderer) Render(doc models.RichTextDocument, loc string) string {
	if len(doc) == 0 {
		return ""
	}

	var sb strings.Builder
	openList := ""

	closeList := func() {
		switch openList {
		case models.ListNumber:
			sb.WriteString("</ol>")
		case models.ListBullet:
			sb.WriteString("</ul>")
		}
		openList = ""
	}

	for i, block := range doc {
		if block.IsListItem() && !block.IsImage() {
			if openList != block.ListType {
				closeList()
				listClass := fmt.Sprintf("%s__list", r.prefix)
				if block.ListType == models.ListNumber {
					sb.WriteString(`<ol class="` + listClass + ` ` + listClass + `--ordered">`)
				} else {
					sb.WriteString(`<ul class="` + listClass + `">`)
				}
				openList = block.ListType
			}
			itemClass := fmt.Sprintf("%s__list-item", r.prefix)
			sb.WriteString(`<li class="` + itemClass + `">` + r.renderSpans(block, loc) + `</li>`)
			continue
		}

		closeList()

		if block.IsImage() {
			sb.WriteString(r.renderImage(block, loc))
			continue
		}

		style := block.Style
		fn, ok := r.blocks[style]
		if !ok {
			// Unknown styles from newer schemas degrade to paragraphs.
			fn = renderParagraph
		}
		sb.WriteString(fn(r, block, loc, HeadingID(block.Key, i)))
	}
	closeList()

	return sb.String()
}

func renderParagraph(r *Renderer, block models.Block, loc string, _ string) string {
	inner := r.renderSpans(block, loc)
	if inner == "" {
		return ""
	}
	return fmt.Sprintf(`<p class="%s__paragraph">%s</p>`, r.prefix, inner)
}

func renderBlockquote(r *Renderer, block models.Block, loc string, _ string) string {
	inner := r.renderSpans(block, loc)
	if inner == "" {
		return ""
	}
	return fmt.Sprintf(`<blockquote class="%s__quote">%s</blockquote>`, r.prefix, inner)
}

func renderHeading(r *Renderer, block models.Block, loc string, anchorID string) string {
	level := block.HeadingLevel()
	if level == 0 {
		return renderParagraph(r, block, loc, anchorID)
	}
	inner := r.renderSpans(block, loc)
	if inner == "" {
		return ""
	}
	headingClass := fmt.Sprintf("%s__heading %s__heading--h%d", r.prefix, r.prefix, level)
	return fmt.Sprintf(`<h%d id="%s" class="%s">%s</h%d>`,
		level, template.HTMLEscapeString(anchorID), headingClass, inner, level)
}

func (r *Renderer) renderImage(block models.Block, loc string) string {
	ref := block.Image
	if ref == nil || !ref.HasAsset() || r.assetURL == nil {
		return ""
	}

	src := r.assetURL(*ref, embedImageWidth, 0)
	if src == "" {
		return ""
	}

	alt := r.resolver.ResolveString(ref.Alt, loc)
	caption := r.resolver.ResolveString(ref.Caption, loc)

	figureClass := fmt.Sprintf("%s__figure", r.prefix)
	imageClass := fmt.Sprintf("%s__image", r.prefix)

	var sb strings.Builder
	sb.WriteString(`<figure class="` + figureClass + `">`)
	sb.WriteString(`<img class="` + imageClass + `" src="` + template.HTMLEscapeString(src) + `" alt="` + template.HTMLEscapeString(alt) + `" />`)
	if caption != "" {
		captionClass := fmt.Sprintf("%s__caption", r.prefix)
		sb.WriteString(`<figcaption class="` + captionClass + `">` + template.HTMLEscapeString(caption) + `</figcaption>`)
	}
	sb.WriteString(`</figure>`)
	return sb.String()
}

// renderSpans renders the inline children of a block, applying marks from the
// innermost out. Marks without a handler or definition are skipped so newer
// CMS decorations never break existing pages.
func (r *Renderer) renderSpans(block models.Block, loc string) string {
	var sb strings.Builder
	for _, span := range block.Children {
		rendered := template.HTMLEscapeString(span.Text)
		for _, mark := range span.Marks {
			if fn, ok := r.marks[mark]; ok {
				rendered = fn(r, models.MarkDef{Type: mark}, loc, rendered)
				continue
			}
			def, ok := block.Def(mark)
			if !ok {
				continue
			}
			if fn, ok := r.marks[def.Type]; ok {
				rendered = fn(r, def, loc, rendered)
			}
		}
		sb.WriteString(rendered)
	}
	return sb.String()
}

func wrapTag(tag string) MarkFunc {
	return func(_ *Renderer, _ models.MarkDef, _ string, inner string) string {
		return "<" + tag + ">" + inner + "</" + tag + ">"
	}
}

func wrapLink(r *Renderer, def models.MarkDef, loc string, inner string) string {
	href := r.resolver.ResolveLocalizedHref(def.Href, loc)
	if href == "" {
		// A link without a destination renders as plain text.
		return inner
	}
	linkClass := fmt.Sprintf("%s__link", r.prefix)
	return `<a class="` + linkClass + `" href="` + template.HTMLEscapeString(href) + `">` + inner + `</a>`
}

func wrapColored(r *Renderer, def models.MarkDef, _ string, inner string) string {
	var styles []string
	if def.CustomColor != "" {
		styles = append(styles, "color:"+def.CustomColor)
	} else if def.Color != "" {
		styles = append(styles, "color:var(--color-"+def.Color+")")
	}
	if def.Weight != "" {
		styles = append(styles, "font-weight:"+def.Weight)
	}
	if len(styles) == 0 {
		return inner
	}
	coloredClass := fmt.Sprintf("%s__colored", r.prefix)
	return `<span class="` + coloredClass + `" style="` + template.HTMLEscapeString(strings.Join(styles, ";")) + `">` + inner + `</span>`
}
