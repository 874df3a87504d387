package sections

import (
	"fmt"
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterFeatures registers the feature list section renderer.
func RegisterFeatures(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "features",
		Name:        "Feature list",
		Description: "Alternating rows of feature blurbs with supporting imagery",
		Category:    "marketing",
	}, renderFeatures)
}

type featureItem struct {
	Title models.LocalizedString `json:"title"`
	Body  models.LocalizedText   `json:"body"`
	Image models.ImageRef        `json:"image"`
	Icon  string                 `json:"icon"`
	CTA   *models.CTAButton      `json:"cta"`
}

type featuresPayload struct {
	Heading  models.LocalizedString `json:"heading"`
	Intro    models.LocalizedText   `json:"intro"`
	Features []featureItem          `json:"features"`
	Layout   string                 `json:"layout"`
}

func renderFeatures(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload featuresPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "features"
	layout := normalizeLayout(payload.Layout, "alternating", "stacked")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="%s %s--%s">`, prefix, prefix, strings.ToLower(layout)))

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}
	if intro := ctx.RenderRichText(payload.Intro, loc); intro != "" {
		sb.WriteString(`<div class="` + prefix + `__intro">` + intro + `</div>`)
	}

	rendered := 0
	for i, feature := range payload.Features {
		if item := renderFeatureItem(ctx, loc, feature, prefix, i); item != "" {
			if rendered == 0 {
				sb.WriteString(`<div class="` + prefix + `__list">`)
			}
			rendered++
			sb.WriteString(item)
		}
	}
	if rendered > 0 {
		sb.WriteString(`</div>`)
	} else {
		sb.WriteString(editorialNotice(prefix, "empty", "No features configured."))
	}

	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func renderFeatureItem(ctx RenderContext, loc string, feature featureItem, prefix string, index int) string {
	title := ctx.ResolveString(feature.Title, loc)
	if strings.TrimSpace(title) == "" {
		return ""
	}

	side := "left"
	if index%2 == 1 {
		side = "right"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="%s__item %s__item--media-%s">`, prefix, prefix, side))
	sb.WriteString(`<div class="` + prefix + `__item-content">`)
	if feature.Icon != "" {
		sb.WriteString(`<span class="` + prefix + `__item-icon" data-icon="` + escapeAttr(feature.Icon) + `"></span>`)
	}
	sb.WriteString(`<h3 class="` + prefix + `__item-title">` + ctx.SanitizeHTML(title) + `</h3>`)
	if body := ctx.RenderRichText(feature.Body, loc); body != "" {
		sb.WriteString(`<div class="` + prefix + `__item-body">` + body + `</div>`)
	}
	if feature.CTA != nil {
		if ctas := FilterCTAs(ctx, loc, []models.CTAButton{*feature.CTA}); len(ctas) > 0 {
			sb.WriteString(renderCTA(ctx, loc, ctas[0], prefix+"__item"))
		}
	}
	sb.WriteString(`</div>`)
	if img := renderImage(ctx, loc, feature.Image, 640, 480, prefix+`__item-image`, title); img != "" {
		sb.WriteString(`<div class="` + prefix + `__item-media">` + img + `</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
