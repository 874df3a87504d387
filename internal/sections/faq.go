package sections

import (
	"strconv"
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterFAQ registers the FAQ accordion section renderer.
func RegisterFAQ(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "faq",
		Name:        "FAQ",
		Description: "Accordion of questions and rich text answers",
		Category:    "support",
	}, renderFAQ)
}

type faqItem struct {
	Question models.LocalizedString `json:"question"`
	Answer   models.LocalizedText   `json:"answer"`
	Open     bool                   `json:"open"`
}

type faqPayload struct {
	Heading models.LocalizedString `json:"heading"`
	Intro   models.LocalizedText   `json:"intro"`
	Items   []faqItem              `json:"items"`
	Contact *models.CTAButton      `json:"contact"`
}

// renderFAQ emits one accordion whose open state lives in data attributes.
// The same markup serves every breakpoint; layout differences are styling
// concerns only, so collapsing the viewport never resets which items are open.
func renderFAQ(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload faqPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "faq"

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `">`)

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}
	if intro := ctx.RenderRichText(payload.Intro, loc); intro != "" {
		sb.WriteString(`<div class="` + prefix + `__intro">` + intro + `</div>`)
	}

	rendered := 0
	for i, item := range payload.Items {
		question := ctx.ResolveString(item.Question, loc)
		answer := ctx.RenderRichText(item.Answer, loc)
		if strings.TrimSpace(question) == "" || answer == "" {
			continue
		}
		if rendered == 0 {
			sb.WriteString(`<div class="` + prefix + `__list">`)
		}
		rendered++

		itemClass := prefix + "__item"
		expanded := "false"
		if item.Open {
			itemClass += " " + prefix + "__item--open"
			expanded = "true"
		}
		sb.WriteString(`<div class="` + itemClass + `"` + dataAttr("index", strconv.Itoa(i)) + `>`)
		sb.WriteString(`<button class="` + prefix + `__question" type="button" aria-expanded="` + expanded + `">`)
		sb.WriteString(ctx.SanitizeHTML(question))
		sb.WriteString(`<span class="` + prefix + `__toggle" aria-hidden="true"></span>`)
		sb.WriteString(`</button>`)
		sb.WriteString(`<div class="` + prefix + `__answer">` + answer + `</div>`)
		sb.WriteString(`</div>`)
	}
	if rendered > 0 {
		sb.WriteString(`</div>`)
	} else {
		sb.WriteString(editorialNotice(prefix, "empty", "No FAQ entries configured."))
	}

	if payload.Contact != nil {
		if ctas := FilterCTAs(ctx, loc, []models.CTAButton{*payload.Contact}); len(ctas) > 0 {
			sb.WriteString(`<div class="` + prefix + `__contact">` + renderCTA(ctx, loc, ctas[0], prefix) + `</div>`)
		}
	}

	sb.WriteString(`</div>`)
	return sb.String(), []string{"/static/js/faq.js"}
}
