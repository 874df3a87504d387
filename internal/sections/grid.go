package sections

import (
	"fmt"
	"strings"

	"carsu-site-backend/internal/models"
)

// RegisterGrid registers the content grid section renderer.
func RegisterGrid(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(Metadata{
		Type:        "grid",
		Name:        "Grid",
		Description: "Responsive grid of image and text cells",
		Category:    "layout",
	}, renderGrid)
}

type gridCell struct {
	Title models.LocalizedString `json:"title"`
	Body  models.LocalizedText   `json:"body"`
	Image models.ImageRef        `json:"image"`
	Link  *models.CTAButton      `json:"link"`
}

type gridPayload struct {
	Heading models.LocalizedString `json:"heading"`
	Columns int                    `json:"columns"`
	Cells   []gridCell             `json:"cells"`
}

func renderGrid(ctx RenderContext, loc string, section models.Section) (string, []string) {
	var payload gridPayload
	if err := section.Decode(&payload); err != nil {
		return "", nil
	}

	prefix := "grid"

	columns := payload.Columns
	if columns < 1 || columns > 4 {
		columns = 3
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="%s %s--cols-%d">`, prefix, prefix, columns))

	if heading := ctx.ResolveString(payload.Heading, loc); strings.TrimSpace(heading) != "" {
		sb.WriteString(`<h2 class="` + prefix + `__heading">` + ctx.SanitizeHTML(heading) + `</h2>`)
	}

	rendered := 0
	for _, cell := range payload.Cells {
		if markup := renderGridCell(ctx, loc, cell, prefix); markup != "" {
			if rendered == 0 {
				sb.WriteString(`<div class="` + prefix + `__cells">`)
			}
			rendered++
			sb.WriteString(markup)
		}
	}
	if rendered > 0 {
		sb.WriteString(`</div>`)
	} else {
		sb.WriteString(editorialNotice(prefix, "empty", "No grid cells configured."))
	}

	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func renderGridCell(ctx RenderContext, loc string, cell gridCell, prefix string) string {
	title := ctx.ResolveString(cell.Title, loc)
	body := ctx.RenderRichText(cell.Body, loc)
	img := renderImage(ctx, loc, cell.Image, 640, 480, prefix+`__cell-image`, title)
	if strings.TrimSpace(title) == "" && body == "" && img == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + prefix + `__cell">`)
	if img != "" {
		sb.WriteString(`<div class="` + prefix + `__cell-media">` + img + `</div>`)
	}
	if strings.TrimSpace(title) != "" {
		sb.WriteString(`<h3 class="` + prefix + `__cell-title">` + ctx.SanitizeHTML(title) + `</h3>`)
	}
	if body != "" {
		sb.WriteString(`<div class="` + prefix + `__cell-body">` + body + `</div>`)
	}
	if cell.Link != nil {
		if links := FilterCTAs(ctx, loc, []models.CTAButton{*cell.Link}); len(links) > 0 {
			sb.WriteString(renderCTA(ctx, loc, links[0], prefix+"__cell"))
		}
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
