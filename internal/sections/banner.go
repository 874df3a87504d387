package sections

import (
	"fmt"
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterBanner registers the announcement banner section renderer.
func RegisterBanner(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "banner",
		Name:        "Banner",
		Description: "Slim announcement strip with an optional link",
		Category:    "marketing",
	}, renderBanner)
}

type bannerPayload struct {
	Message     models.LocalizedString `json:"message"`
	Link        *models.CTAButton      `json:"link"`
	Tone        string                 `json:"tone"`
	Dismissible bool                   `json:"dismissible"`
}

func renderBanner(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload bannerPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	message := ctx.ResolveString(payload.Message, loc)
	if strings.TrimSpace(message) == "" {
		return "", nil
	}

	prefix := "banner"
	tone := normalizeLayout(payload.Tone, "info", "promo", "warning")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="%s %s--%s" role="status">`, prefix, prefix, tone))
	sb.WriteString(`<span class="` + prefix + `__message">` + ctx.SanitizeHTML(message) + `</span>`)

	if payload.Link != nil {
		if links := FilterCTAs(ctx, loc, []models.CTAButton{*payload.Link}); len(links) > 0 {
			sb.WriteString(renderCTA(ctx, loc, links[0], prefix))
		}
	}

	var scripts []string
	if payload.Dismissible {
		sb.WriteString(`<button class="` + prefix + `__dismiss" type="button" aria-label="Dismiss"></button>`)
		scripts = []string{"/static/js/banner.js"}
	}

	sb.WriteString(`</div>`)
	return sb.String(), scripts
}
