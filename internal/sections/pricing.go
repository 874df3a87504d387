package sections

import (
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterPricing registers the pricing table section renderer.
func RegisterPricing(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "pricing",
		Name:        "Pricing",
		Description: "Pricing plan cards with feature checklists",
		Category:    "commerce",
	}, renderPricing)
}

type pricingPlan struct {
	Name        models.LocalizedString   `json:"name"`
	Price       models.LocalizedString   `json:"price"`
	Period      models.LocalizedString   `json:"period"`
	Description models.LocalizedText     `json:"description"`
	Features    []models.LocalizedString `json:"features"`
	CTA         *models.CTAButton        `json:"cta"`
	Highlighted bool                     `json:"highlighted"`
	Badge       models.LocalizedString   `json:"badge"`
}

type pricingPayload struct {
	Heading    models.LocalizedString `json:"heading"`
	Subheading models.LocalizedString `json:"subheading"`
	Plans      []pricingPlan          `json:"plans"`
	Footnote   models.LocalizedText   `json:"footnote"`
}

func renderPricing(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload pricingPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "pricing"

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `">`)

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}
	if subheading := ctx.ResolveString(payload.Subheading, loc); strings.TrimSpace(subheading) != "" {
		sb.WriteString(`<p class="` + prefix + `__subheading">` + ctx.SanitizeHTML(subheading) + `</p>`)
	}

	rendered := 0
	for _, plan := range payload.Plans {
		if card := renderPricingPlan(ctx, loc, plan, prefix); card != "" {
			if rendered == 0 {
				sb.WriteString(`<div class="` + prefix + `__plans">`)
			}
			rendered++
			sb.WriteString(card)
		}
	}
	if rendered > 0 {
		sb.WriteString(`</div>`)
	} else {
		sb.WriteString(editorialNotice(prefix, "empty", "No pricing plans configured."))
	}

	if footnote := ctx.RenderRichText(payload.Footnote, loc); footnote != "" {
		sb.WriteString(`<div class="` + prefix + `__footnote">` + footnote + `</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func renderPricingPlan(ctx RenderContext, loc string, plan pricingPlan, prefix string) string {
	name := ctx.ResolveString(plan.Name, loc)
	if strings.TrimSpace(name) == "" {
		return ""
	}

	planClass := prefix + "__plan"
	if plan.Highlighted {
		planClass += " " + prefix + "__plan--highlighted"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + planClass + `">`)

	if badge := ctx.ResolveString(plan.Badge, loc); strings.TrimSpace(badge) != "" {
		sb.WriteString(`<span class="` + prefix + `__plan-badge">` + ctx.SanitizeHTML(badge) + `</span>`)
	}

	sb.WriteString(`<h3 class="` + prefix + `__plan-name">` + ctx.SanitizeHTML(name) + `</h3>`)

	if price := ctx.ResolveString(plan.Price, loc); strings.TrimSpace(price) != "" {
		sb.WriteString(`<div class="` + prefix + `__plan-price">`)
		sb.WriteString(`<span class="` + prefix + `__plan-amount">` + ctx.SanitizeHTML(price) + `</span>`)
		if period := ctx.ResolveString(plan.Period, loc); strings.TrimSpace(period) != "" {
			sb.WriteString(`<span class="` + prefix + `__plan-period">` + ctx.SanitizeHTML(period) + `</span>`)
		}
		sb.WriteString(`</div>`)
	}

	if description := ctx.RenderRichText(plan.Description, loc); description != "" {
		sb.WriteString(`<div class="` + prefix + `__plan-description">` + description + `</div>`)
	}

	written := 0
	for _, feature := range plan.Features {
		text := ctx.ResolveString(feature, loc)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if written == 0 {
			sb.WriteString(`<ul class="` + prefix + `__plan-features">`)
		}
		written++
		sb.WriteString(`<li class="` + prefix + `__plan-feature">` + ctx.SanitizeHTML(text) + `</li>`)
	}
	if written > 0 {
		sb.WriteString(`</ul>`)
	}

	if plan.CTA != nil {
		if ctas := FilterCTAs(ctx, loc, []models.CTAButton{*plan.CTA}); len(ctas) > 0 {
			sb.WriteString(renderCTA(ctx, loc, ctas[0], prefix+"__plan"))
		}
	}

	sb.WriteString(`</div>`)
	return sb.String()
}
