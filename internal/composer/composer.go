// Package composer assembles full page bodies from ordered section lists,
// dispatching each section to its registered renderer.
package composer

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"carsu-site-backend/internal/assets"
	"carsu-site-backend/internal/locale"
	"carsu-site-backend/internal/metrics"
	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/richtext"
	"carsu-site-backend/internal/sections"
	"carsu-site-backend/pkg/logger"
)

// Result is a fully composed page body plus the deduplicated script assets
// the rendered sections requested.
type Result struct {
	HTML    string
	Scripts []string
}

// Composer renders pages. It implements sections.RenderContext so renderers
// reach localization, sanitization and asset URLs through one capability
// surface instead of holding the collaborators themselves.
type Composer struct {
	registry  *sections.Registry
	assets    *assets.Builder
	sanitizer *bluemonday.Policy

	mu       sync.RWMutex
	resolver *locale.Resolver
	richText *richtext.Renderer
}

// New wires a composer from its collaborators. A nil sanitizer falls back to
// escaping everything.
func New(registry *sections.Registry, resolver *locale.Resolver, builder *assets.Builder, sanitizer *bluemonday.Policy) *Composer {
	return &Composer{
		registry:  registry,
		resolver:  resolver,
		richText:  richtext.NewRenderer(resolver, builder.ImageURL),
		assets:    builder,
		sanitizer: sanitizer,
	}
}

// SetResolver swaps the locale resolver and rebuilds the rich text renderer
// on top of it. Called when the site's locale configuration changes at
// runtime so newly enabled locales reach rendering without a restart.
func (c *Composer) SetResolver(resolver *locale.Resolver) {
	if resolver == nil {
		return
	}
	renderer := richtext.NewRenderer(resolver, c.assets.ImageURL)

	c.mu.Lock()
	c.resolver = resolver
	c.richText = renderer
	c.mu.Unlock()
}

// Resolver exposes the locale resolver for handlers that need to resolve
// titles and navigation labels outside section rendering.
func (c *Composer) Resolver() *locale.Resolver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolver
}

func (c *Composer) localization() (*locale.Resolver, *richtext.Renderer) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolver, c.richText
}

// Registry exposes the section registry for the editorial API.
func (c *Composer) Registry() *sections.Registry {
	return c.registry
}

// SanitizeHTML implements sections.RenderContext.
func (c *Composer) SanitizeHTML(input string) string {
	if c.sanitizer == nil {
		return template.HTMLEscapeString(input)
	}
	return c.sanitizer.Sanitize(input)
}

// ResolveString implements sections.RenderContext.
func (c *Composer) ResolveString(value models.LocalizedString, loc string) string {
	return c.Resolver().ResolveString(value, loc)
}

// ResolveHref implements sections.RenderContext.
func (c *Composer) ResolveHref(value models.LocalizedString, loc string) string {
	return c.Resolver().ResolveLocalizedHref(value, loc)
}

// RenderRichText implements sections.RenderContext.
func (c *Composer) RenderRichText(value models.LocalizedText, loc string) string {
	resolver, richText := c.localization()
	doc := resolver.ResolveText(value, loc)
	if len(doc) == 0 {
		return ""
	}
	return richText.Render(doc, loc)
}

// ImageURL implements sections.RenderContext.
func (c *Composer) ImageURL(ref models.ImageRef, width, height int) string {
	return c.assets.ImageURL(ref, width, height)
}

// RenderSection renders one section wrapped in its page chrome. Unknown
// types produce a visible diagnostic block instead of failing the page; a
// known type whose renderer degrades to empty output disappears entirely.
func (c *Composer) RenderSection(section models.Section, loc string) (string, []string) {
	sectionType := strings.ToLower(strings.TrimSpace(section.Type))
	if sectionType == "" {
		return renderUnknownSection("(missing type)"), nil
	}

	renderer, ok := c.registry.Get(sectionType)
	if !ok {
		metrics.UnknownSections.WithLabelValues(sectionType).Inc()
		logger.Warn("Unknown section type", map[string]interface{}{
			"type": section.Type,
			"id":   section.ID,
		})
		return renderUnknownSection(section.Type), nil
	}

	html, scripts := renderer(c, loc, section)
	if html == "" {
		return "", nil
	}
	metrics.SectionsRendered.WithLabelValues(sectionType).Inc()
	return `<section class="page__section page__section--` + sectionType + `">` + html + `</section>`, scripts
}

// RenderPage renders the page's sections in order and collects their script
// assets. An empty section list yields a visible placeholder.
func (c *Composer) RenderPage(page *models.Page, loc string) Result {
	loc = c.Resolver().Normalize(loc)

	if page == nil || len(page.Sections) == 0 {
		metrics.PagesRendered.WithLabelValues(loc).Inc()
		return Result{HTML: `<div class="page page--empty"><p class="page__notice">No sections configured for this page.</p></div>`}
	}

	var sb strings.Builder
	sb.WriteString(`<div class="page">`)

	seen := make(map[string]bool)
	var scripts []string
	for _, section := range page.Sections {
		html, sectionScripts := c.RenderSection(section, loc)
		if html == "" {
			continue
		}
		sb.WriteString(html)
		for _, script := range sectionScripts {
			if script == "" || seen[script] {
				continue
			}
			seen[script] = true
			scripts = append(scripts, script)
		}
	}

	sb.WriteString(`</div>`)
	metrics.PagesRendered.WithLabelValues(loc).Inc()
	return Result{HTML: sb.String(), Scripts: scripts}
}

func renderUnknownSection(sectionType string) string {
	return `<section class="page__section page__section--unknown"><p class="page__notice page__notice--unknown">Unknown section type: ` +
		template.HTMLEscapeString(sectionType) + `</p></section>`
}
