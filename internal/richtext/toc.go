package richtext

import (
	"fmt"
	"strings"

	"carsu-site-backend/internal/models"
)

// Heading is one table-of-contents entry extracted from a document.
type Heading struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// HeadingID derives the anchor id for a block. The CMS block key is stable
// across renders, so the same document always yields the same ids; blocks
// without a key fall back to their document position.
func HeadingID(key string, index int) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Sprintf("heading-%d", index)
	}
	return "heading-" + strings.ToLower(key)
}

// ExtractHeadings collects heading entries in document order using the same
// anchor derivation the renderer uses, so a table of contents built from the
// extraction always points at rendered headings. Extracting twice from the
// same document yields identical ids.
func ExtractHeadings(doc models.RichTextDocument) []Heading {
	headings := make([]Heading, 0, len(doc))
	for i, block := range doc {
		if block.IsImage() {
			continue
		}
		level := block.HeadingLevel()
		if level == 0 {
			continue
		}
		title := strings.TrimSpace(block.PlainText())
		if title == "" {
			continue
		}
		headings = append(headings, Heading{
			ID:    HeadingID(block.Key, i),
			Title: title,
			Level: level,
		})
	}
	return headings
}
