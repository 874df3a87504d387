package sections

import (
	"fmt"
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterHero registers the hero section renderer.
func RegisterHero(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "hero",
		Name:        "Hero",
		Description: "Landing hero with heading, bullet points, image and call-to-action buttons",
		Category:    "marketing",
	}, renderHero)
}

type heroPayload struct {
	Heading    models.LocalizedString   `json:"heading"`
	Subheading models.LocalizedString   `json:"subheading"`
	Badge      models.LocalizedString   `json:"badge"`
	Body       models.LocalizedText     `json:"body"`
	Bullets    []models.LocalizedString `json:"bullets"`
	HeroImage  models.ImageRef          `json:"heroImage"`
	CTAs       []models.CTAButton       `json:"ctas"`
	Layout     string                   `json:"layout"`
}

func renderHero(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload heroPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	heading := ctx.ResolveString(payload.Heading, loc)
	if strings.TrimSpace(heading) == "" {
		// Heading is the one field a hero cannot do without.
		return "", nil
	}

	layout := normalizeLayout(payload.Layout, "contentLeft", "contentRight")

	prefix := "hero"
	heroClass := fmt.Sprintf("%s %s--%s", prefix, prefix, strings.ToLower(layout))

	var sb strings.Builder
	sb.WriteString(`<div class="` + heroClass + `">`)
	sb.WriteString(`<div class="` + prefix + `__content">`)

	if badge := ctx.ResolveString(payload.Badge, loc); strings.TrimSpace(badge) != "" {
		sb.WriteString(`<span class="` + prefix + `__badge">` + ctx.SanitizeHTML(badge) + `</span>`)
	}

	sb.WriteString(`<h1 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h1>`)

	if subheading := ctx.ResolveString(payload.Subheading, loc); strings.TrimSpace(subheading) != "" {
		sb.WriteString(`<p class="` + prefix + `__subheading">` + ctx.SanitizeHTML(subheading) + `</p>`)
	}

	if body := ctx.RenderRichText(payload.Body, loc); body != "" {
		sb.WriteString(`<div class="` + prefix + `__body">` + body + `</div>`)
	}

	sb.WriteString(renderHeroBullets(ctx, loc, payload.Bullets, prefix))
	sb.WriteString(renderCTAGroup(ctx, loc, payload.CTAs, prefix))
	sb.WriteString(`</div>`)

	if img := renderImage(ctx, loc, payload.HeroImage, 960, 720, prefix+"__image", heading); img != "" {
		sb.WriteString(`<div class="` + prefix + `__media">` + img + `</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func renderHeroBullets(ctx RenderContext, loc string, bullets []models.LocalizedString, prefix string) string {
	resolved := make([]string, 0, len(bullets))
	for _, bullet := range bullets {
		if text := ctx.ResolveString(bullet, loc); strings.TrimSpace(text) != "" {
			resolved = append(resolved, text)
		}
	}

	if len(resolved) == 0 {
		// An empty bullet list is a content mistake editors should see.
		return editorialNotice(prefix, "empty-bullets", "No hero bullet points configured.")
	}

	var sb strings.Builder
	sb.WriteString(`<ul class="` + prefix + `__bullets">`)
	for _, text := range resolved {
		sb.WriteString(`<li class="` + prefix + `__bullet">` + ctx.SanitizeHTML(text) + `</li>`)
	}
	sb.WriteString(`</ul>`)
	return sb.String()
}
