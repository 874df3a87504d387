package sections

import (
	"fmt"
	"strconv"
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterFeatureCards registers the tabbed feature cards section renderer.
func RegisterFeatureCards(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "featurecards",
		Name:        "Feature cards",
		Description: "Tabbed cards that swap a shared preview image on selection",
		Category:    "marketing",
	}, renderFeatureCards)
}

type featureCard struct {
	Title   models.LocalizedString `json:"title"`
	Body    models.LocalizedText   `json:"body"`
	Preview models.ImageRef        `json:"preview"`
	Icon    string                 `json:"icon"`
	Default bool                   `json:"default"`
}

type featureCardsPayload struct {
	Heading models.LocalizedString `json:"heading"`
	Cards   []featureCard          `json:"cards"`
}

func renderFeatureCards(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload featureCardsPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "feature-cards"

	type resolvedCard struct {
		title   string
		body    string
		preview string
		icon    string
	}
	cards := make([]resolvedCard, 0, len(payload.Cards))
	active := 0
	for _, card := range payload.Cards {
		title := ctx.ResolveString(card.Title, loc)
		if strings.TrimSpace(title) == "" {
			continue
		}
		if card.Default {
			active = len(cards)
		}
		cards = append(cards, resolvedCard{
			title:   title,
			body:    ctx.RenderRichText(card.Body, loc),
			preview: ctx.ImageURL(card.Preview, 960, 720),
			icon:    card.Icon,
		})
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `"` + dataAttr("active-index", strconv.Itoa(active)) + `>`)

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}

	if len(cards) == 0 {
		sb.WriteString(editorialNotice(prefix, "empty", "No feature cards configured."))
		sb.WriteString(`</div>`)
		return sb.String(), nil
	}

	sb.WriteString(`<div class="` + prefix + `__tabs" role="tablist">`)
	for i, card := range cards {
		cardClass := prefix + "__card"
		selected := "false"
		if i == active {
			cardClass += " " + prefix + "__card--active"
			selected = "true"
		}
		sb.WriteString(fmt.Sprintf(
			`<button class="%s" type="button" role="tab" aria-selected="%s"%s%s>`,
			cardClass, selected,
			dataAttr("index", strconv.Itoa(i)),
			dataAttr("preview", card.preview),
		))
		if card.icon != "" {
			sb.WriteString(`<span class="` + prefix + `__card-icon" data-icon="` + escapeAttr(card.icon) + `"></span>`)
		}
		sb.WriteString(`<span class="` + prefix + `__card-title">` + ctx.SanitizeHTML(card.title) + `</span>`)
		if card.body != "" {
			sb.WriteString(`<span class="` + prefix + `__card-body">` + card.body + `</span>`)
		}
		sb.WriteString(`</button>`)
	}
	sb.WriteString(`</div>`)

	if preview := cards[active].preview; preview != "" {
		sb.WriteString(`<div class="` + prefix + `__preview">`)
		sb.WriteString(`<img class="` + prefix + `__preview-image" src="` + escapeAttr(preview) + `" alt="` + escapeAttr(cards[active].title) + `" />`)
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String(), []string{"/static/js/feature-cards.js"}
}
