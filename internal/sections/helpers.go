package sections

import (
	"fmt"
	"html/template"
	"strings"

	"carsu-site-backend/internal/models"
)

// FilterCTAs drops buttons that cannot produce a usable link for the locale.
// A CTA without an href must never render.
func FilterCTAs(ctx RenderContext, loc string, ctas []models.CTAButton) []models.CTAButton {
	usable := make([]models.CTAButton, 0, len(ctas))
	for _, cta := range ctas {
		if strings.TrimSpace(ctx.ResolveHref(cta.Href, loc)) == "" {
			continue
		}
		usable = append(usable, cta)
	}
	return usable
}

// renderCTA renders one call-to-action button. Callers are expected to have
// filtered out hrefless buttons already; this guards again regardless.
func renderCTA(ctx RenderContext, loc string, cta models.CTAButton, prefix string) string {
	href := ctx.ResolveHref(cta.Href, loc)
	if strings.TrimSpace(href) == "" {
		return ""
	}

	text := ctx.ResolveString(cta.Text, loc)
	if strings.TrimSpace(text) == "" {
		text = "Learn more"
	}

	variant := normalizeVariant(cta.Variant)
	buttonClass := fmt.Sprintf("%s__cta %s__cta--%s", prefix, prefix, variant)
	if cta.Disabled {
		buttonClass += fmt.Sprintf(" %s__cta--disabled", prefix)
	}

	var sb strings.Builder
	sb.WriteString(`<a class="` + buttonClass + `" href="` + template.HTMLEscapeString(href) + `"`)
	if cta.OpenInNewTab {
		sb.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	if cta.Disabled {
		sb.WriteString(` aria-disabled="true"`)
	}
	sb.WriteString(`>` + template.HTMLEscapeString(text) + `</a>`)
	return sb.String()
}

// renderCTAGroup renders the filtered buttons of a section, empty when none
// survive the href guard.
func renderCTAGroup(ctx RenderContext, loc string, ctas []models.CTAButton, prefix string) string {
	usable := FilterCTAs(ctx, loc, ctas)
	if len(usable) == 0 {
		return ""
	}

	groupClass := fmt.Sprintf("%s__cta-group", prefix)
	var sb strings.Builder
	sb.WriteString(`<div class="` + groupClass + `">`)
	for _, cta := range usable {
		sb.WriteString(renderCTA(ctx, loc, cta, prefix))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func normalizeVariant(variant string) string {
	switch strings.TrimSpace(strings.ToLower(variant)) {
	case models.VariantSecondary:
		return models.VariantSecondary
	case models.VariantOutline:
		return models.VariantOutline
	case models.VariantGhost:
		return models.VariantGhost
	default:
		return models.VariantPrimary
	}
}

// renderImage renders an image element, guarding on asset presence and
// falling back to the provided text when the alt is empty. Missing assets
// render nothing rather than a broken placeholder.
func renderImage(ctx RenderContext, loc string, ref models.ImageRef, width, height int, class, fallbackAlt string) string {
	if !ref.HasAsset() {
		return ""
	}
	src := ctx.ImageURL(ref, width, height)
	if src == "" {
		return ""
	}

	alt := ctx.ResolveString(ref.Alt, loc)
	if strings.TrimSpace(alt) == "" {
		alt = fallbackAlt
	}

	return `<img class="` + class + `" src="` + template.HTMLEscapeString(src) + `" alt="` + template.HTMLEscapeString(alt) + `" />`
}

// normalizeLayout validates a layout enum against the allowed values,
// returning the first allowed value as default.
func normalizeLayout(value string, allowed ...string) string {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range allowed {
		if strings.EqualFold(trimmed, candidate) {
			return candidate
		}
	}
	if len(allowed) > 0 {
		return allowed[0]
	}
	return ""
}

// editorialNotice renders a visible configuration warning aimed at content
// editors.
func editorialNotice(prefix, modifier, message string) string {
	noticeClass := fmt.Sprintf("%s__notice %s__notice--%s", prefix, prefix, modifier)
	return `<p class="` + noticeClass + `">` + template.HTMLEscapeString(message) + `</p>`
}

// dataAttr formats a data attribute with an escaped value.
func dataAttr(name, value string) string {
	return ` data-` + name + `="` + template.HTMLEscapeString(value) + `"`
}

func escapeAttr(value string) string {
	return template.HTMLEscapeString(value)
}
