package sections

import (
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterProductHero registers the product hero section renderer.
func RegisterProductHero(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "producthero",
		Name:        "Product hero",
		Description: "Product landing hero with screenshot, store badges and highlight stats",
		Category:    "marketing",
	}, renderProductHero)
}

type productHeroStat struct {
	Value models.LocalizedString `json:"value"`
	Label models.LocalizedString `json:"label"`
}

type productHeroPayload struct {
	Heading    models.LocalizedString `json:"heading"`
	Subheading models.LocalizedString `json:"subheading"`
	Screenshot models.ImageRef        `json:"screenshot"`
	CTAs       []models.CTAButton     `json:"ctas"`
	Stats      []productHeroStat      `json:"stats"`
	StoreLinks []models.CTAButton     `json:"storeLinks"`
}

func renderProductHero(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload productHeroPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	heading := ctx.ResolveString(payload.Heading, loc)
	if strings.TrimSpace(heading) == "" {
		return "", nil
	}

	prefix := "product-hero"

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `">`)
	sb.WriteString(`<div class="` + prefix + `__content">`)
	sb.WriteString(`<h1 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h1>`)

	if subheading := ctx.ResolveString(payload.Subheading, loc); strings.TrimSpace(subheading) != "" {
		sb.WriteString(`<p class="` + prefix + `__subheading">` + ctx.SanitizeHTML(subheading) + `</p>`)
	}

	sb.WriteString(renderCTAGroup(ctx, loc, payload.CTAs, prefix))

	if stores := FilterCTAs(ctx, loc, payload.StoreLinks); len(stores) > 0 {
		sb.WriteString(`<div class="` + prefix + `__stores">`)
		for _, store := range stores {
			sb.WriteString(renderCTA(ctx, loc, store, prefix+"__store"))
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(renderProductHeroStats(ctx, loc, payload.Stats, prefix))
	sb.WriteString(`</div>`)

	if img := renderImage(ctx, loc, payload.Screenshot, 720, 1280, prefix+"__screenshot", heading); img != "" {
		sb.WriteString(`<div class="` + prefix + `__media">` + img + `</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func renderProductHeroStats(ctx RenderContext, loc string, stats []productHeroStat, prefix string) string {
	var sb strings.Builder
	count := 0
	for _, stat := range stats {
		value := ctx.ResolveString(stat.Value, loc)
		label := ctx.ResolveString(stat.Label, loc)
		if strings.TrimSpace(value) == "" {
			continue
		}
		if count == 0 {
			sb.WriteString(`<dl class="` + prefix + `__stats">`)
		}
		count++
		sb.WriteString(`<div class="` + prefix + `__stat">`)
		sb.WriteString(`<dd class="` + prefix + `__stat-value">` + ctx.SanitizeHTML(value) + `</dd>`)
		if strings.TrimSpace(label) != "" {
			sb.WriteString(`<dt class="` + prefix + `__stat-label">` + ctx.SanitizeHTML(label) + `</dt>`)
		}
		sb.WriteString(`</div>`)
	}
	if count == 0 {
		return ""
	}
	sb.WriteString(`</dl>`)
	return sb.String()
}
