package sections

import (
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterContact registers the contact form section renderer.
func RegisterContact(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "contact",
		Name:        "Contact form",
		Description: "Contact form with localized labels posting to the contact endpoint",
		Category:    "support",
	}, renderContact)
}

type contactPayload struct {
	Heading     models.LocalizedString   `json:"heading"`
	Intro       models.LocalizedText     `json:"intro"`
	NameLabel   models.LocalizedString   `json:"nameLabel"`
	EmailLabel  models.LocalizedString   `json:"emailLabel"`
	TopicLabel  models.LocalizedString   `json:"topicLabel"`
	Topics      []models.LocalizedString `json:"topics"`
	BodyLabel   models.LocalizedString   `json:"bodyLabel"`
	SubmitLabel models.LocalizedString   `json:"submitLabel"`
	Action      string                   `json:"action"`
}

func renderContact(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload contactPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "contact"

	action := strings.TrimSpace(payload.Action)
	if action == "" {
		action = "/api/contact"
	}

	label := func(value models.LocalizedString, fallback string) string {
		if text := ctx.ResolveString(value, loc); strings.TrimSpace(text) != "" {
			return text
		}
		return fallback
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `">`)

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}
	if intro := ctx.RenderRichText(payload.Intro, loc); intro != "" {
		sb.WriteString(`<div class="` + prefix + `__intro">` + intro + `</div>`)
	}

	sb.WriteString(`<form class="` + prefix + `__form" method="post" action="` + escapeAttr(action) + `">`)

	sb.WriteString(`<label class="` + prefix + `__label">` + ctx.SanitizeHTML(label(payload.NameLabel, "Name")))
	sb.WriteString(`<input class="` + prefix + `__input" type="text" name="name" required /></label>`)

	sb.WriteString(`<label class="` + prefix + `__label">` + ctx.SanitizeHTML(label(payload.EmailLabel, "Email")))
	sb.WriteString(`<input class="` + prefix + `__input" type="email" name="email" required /></label>`)

	topics := make([]string, 0, len(payload.Topics))
	for _, topic := range payload.Topics {
		if text := ctx.ResolveString(topic, loc); strings.TrimSpace(text) != "" {
			topics = append(topics, text)
		}
	}
	if len(topics) > 0 {
		sb.WriteString(`<label class="` + prefix + `__label">` + ctx.SanitizeHTML(label(payload.TopicLabel, "Topic")))
		sb.WriteString(`<select class="` + prefix + `__select" name="topic">`)
		for _, topic := range topics {
			sb.WriteString(`<option value="` + escapeAttr(topic) + `">` + ctx.SanitizeHTML(topic) + `</option>`)
		}
		sb.WriteString(`</select></label>`)
	}

	sb.WriteString(`<label class="` + prefix + `__label">` + ctx.SanitizeHTML(label(payload.BodyLabel, "Message")))
	sb.WriteString(`<textarea class="` + prefix + `__textarea" name="message" rows="6" required></textarea></label>`)

	sb.WriteString(`<button class="` + prefix + `__submit" type="submit">` + ctx.SanitizeHTML(label(payload.SubmitLabel, "Send message")) + `</button>`)
	sb.WriteString(`</form>`)
	sb.WriteString(`</div>`)

	return sb.String(), []string{"/static/js/contact-form.js"}
}
