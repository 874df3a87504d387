package sections

import (
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterCTAStrip registers the call-to-action strip section renderer.
func RegisterCTAStrip(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "ctastrip",
		Name:        "CTA strip",
		Description: "Full-width call-to-action band closing out a page",
		Category:    "marketing",
	}, renderCTAStrip)
}

type ctaStripPayload struct {
	Heading    models.LocalizedString `json:"heading"`
	Subheading models.LocalizedString `json:"subheading"`
	CTAs       []models.CTAButton     `json:"ctas"`
	Background models.ImageRef        `json:"background"`
}

func renderCTAStrip(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload ctaStripPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	heading := ctx.ResolveString(payload.Heading, loc)
	ctas := FilterCTAs(ctx, loc, payload.CTAs)
	if strings.TrimSpace(heading) == "" && len(ctas) == 0 {
		return "", nil
	}

	prefix := "cta-strip"

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `"`)
	if url := ctx.ImageURL(payload.Background, 1920, 640); url != "" {
		sb.WriteString(` style="background-image:url('` + escapeAttr(url) + `')"`)
	}
	sb.WriteString(`>`)

	if strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}
	if subheading := ctx.ResolveString(payload.Subheading, loc); strings.TrimSpace(subheading) != "" {
		sb.WriteString(`<p class="` + prefix + `__subheading">` + ctx.SanitizeHTML(subheading) + `</p>`)
	}

	if len(ctas) > 0 {
		sb.WriteString(`<div class="` + prefix + `__actions">`)
		for _, cta := range ctas {
			sb.WriteString(renderCTA(ctx, loc, cta, prefix))
		}
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String(), nil
}
