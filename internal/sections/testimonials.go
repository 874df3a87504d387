package sections

import (
	"strconv"
	"strings"

	"carsu-site-backend/internal/interactive"
	"carsu-site-backend/internal/models"
)

// RegisterTestimonials registers the testimonial carousel section renderer.
func RegisterTestimonials(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "testimonials",
		Name:        "Testimonials",
		Description: "Carousel of customer quotes sourced from the testimonial library",
		Category:    "social-proof",
	}, renderTestimonials)
}

type testimonialsPayload struct {
	Heading      models.LocalizedString `json:"heading"`
	Testimonials []models.Testimonial   `json:"testimonials"`
	ItemsMobile  int                    `json:"itemsMobile"`
	ItemsTablet  int                    `json:"itemsTablet"`
	ItemsDesktop int                    `json:"itemsDesktop"`
	Infinite     bool                   `json:"infinite"`
	AutoplayMS   int                    `json:"autoplayMs"`
}

func renderTestimonials(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload testimonialsPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "testimonials"

	if payload.ItemsMobile <= 0 {
		payload.ItemsMobile = 1
	}
	if payload.ItemsTablet <= 0 {
		payload.ItemsTablet = 2
	}
	if payload.ItemsDesktop <= 0 {
		payload.ItemsDesktop = 3
	}

	var cards strings.Builder
	rendered := 0
	for _, testimonial := range payload.Testimonials {
		if card := renderTestimonialCard(ctx, loc, testimonial, prefix); card != "" {
			rendered++
			cards.WriteString(card)
		}
	}

	// Controls and autoplay only apply when the widest viewport still cannot
	// show every card at once, the same condition under which
	// interactive.StartAutoplay refuses to start a timer.
	carousel := interactive.NewCarousel(rendered, payload.ItemsDesktop, payload.Infinite)

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `"`)
	sb.WriteString(dataAttr("items-mobile", strconv.Itoa(payload.ItemsMobile)))
	sb.WriteString(dataAttr("items-tablet", strconv.Itoa(payload.ItemsTablet)))
	sb.WriteString(dataAttr("items-desktop", strconv.Itoa(payload.ItemsDesktop)))
	sb.WriteString(dataAttr("infinite", strconv.FormatBool(payload.Infinite)))
	if payload.AutoplayMS > 0 && carousel.CanAdvance() {
		sb.WriteString(dataAttr("autoplay-ms", strconv.Itoa(payload.AutoplayMS)))
	}
	sb.WriteString(`>`)

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}

	if rendered > 0 {
		sb.WriteString(`<div class="` + prefix + `__track">` + cards.String() + `</div>`)
		if carousel.CanAdvance() {
			sb.WriteString(`<div class="` + prefix + `__controls">`)
			sb.WriteString(`<button class="` + prefix + `__control ` + prefix + `__control--prev" type="button" aria-label="Previous"></button>`)
			sb.WriteString(`<button class="` + prefix + `__control ` + prefix + `__control--next" type="button" aria-label="Next"></button>`)
			sb.WriteString(`</div>`)
		}
	} else {
		sb.WriteString(editorialNotice(prefix, "empty", "No testimonials selected."))
	}

	sb.WriteString(`</div>`)
	return sb.String(), []string{"/static/js/carousel.js"}
}

func renderTestimonialCard(ctx RenderContext, loc string, testimonial models.Testimonial, prefix string) string {
	quote := ctx.RenderRichText(testimonial.Quote, loc)
	if quote == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<figure class="` + prefix + `__card">`)
	if testimonial.Rating > 0 {
		rating := testimonial.Rating
		if rating > 5 {
			rating = 5
		}
		sb.WriteString(`<div class="` + prefix + `__rating"` + dataAttr("rating", strconv.Itoa(rating)) + `>`)
		for i := 0; i < rating; i++ {
			sb.WriteString(`<span class="` + prefix + `__star" aria-hidden="true"></span>`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`<blockquote class="` + prefix + `__quote">` + quote + `</blockquote>`)
	sb.WriteString(`<figcaption class="` + prefix + `__attribution">`)
	if img := renderImage(ctx, loc, testimonial.Avatar, 96, 96, prefix+`__avatar`, testimonial.Author); img != "" {
		sb.WriteString(img)
	}
	if testimonial.Author != "" {
		sb.WriteString(`<span class="` + prefix + `__author">` + ctx.SanitizeHTML(testimonial.Author) + `</span>`)
	}
	if role := ctx.ResolveString(testimonial.Role, loc); role != "" {
		sb.WriteString(`<span class="` + prefix + `__role">` + ctx.SanitizeHTML(role) + `</span>`)
	}
	sb.WriteString(`</figcaption>`)
	sb.WriteString(`</figure>`)
	return sb.String()
}
