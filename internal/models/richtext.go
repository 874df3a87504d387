package models

import "strings"

// Block styles understood by the rich text renderer. Anything else renders as
// a normal paragraph.
const (
	StyleNormal     = "normal"
	StyleH1         = "h1"
	StyleH2         = "h2"
	StyleH3         = "h3"
	StyleH4         = "h4"
	StyleBlockquote = "blockquote"
)

// List types for grouped list blocks.
const (
	ListBullet = "bullet"
	ListNumber = "number"
)

// Block discriminators. Text is the default when the field is absent.
const (
	BlockText  = "text"
	BlockImage = "image"
)

// Simple span marks. Decorations referencing a MarkDef use the def key
// instead of one of these constants.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkCode   = "code"
)

// MarkDef types.
const (
	MarkDefLink    = "link"
	MarkDefColored = "coloredText"
)

// RichTextDocument is an ordered sequence of blocks.
type RichTextDocument []Block

// Block is one node of a rich text document: a styled text block with inline
// spans, or an embedded image. The Key is assigned by the CMS and stays
// stable across edits; heading anchors are derived from it.
type Block struct {
	Key      string    `json:"key,omitempty"`
	Type     string    `json:"type,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListType string    `json:"listType,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
	Image    *ImageRef `json:"image,omitempty"`
}

// IsImage reports whether the block embeds an image.
func (b Block) IsImage() bool {
	return strings.EqualFold(b.Type, BlockImage)
}

// IsListItem reports whether the block belongs to a list grouping.
func (b Block) IsListItem() bool {
	return b.ListType != ""
}

// PlainText concatenates the block's span text, used for heading titles and
// alt text fallbacks.
func (b Block) PlainText() string {
	var sb strings.Builder
	for _, span := range b.Children {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// HeadingLevel returns 1-4 for heading styles and 0 otherwise.
func (b Block) HeadingLevel() int {
	switch b.Style {
	case StyleH1:
		return 1
	case StyleH2:
		return 2
	case StyleH3:
		return 3
	case StyleH4:
		return 4
	default:
		return 0
	}
}

// Span is an inline run of text with zero or more marks. A mark is either a
// simple decoration (strong, em, code) or the key of a MarkDef on the
// enclosing block.
type Span struct {
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation definition referenced by span marks: a link with a
// localizable href, or colored text with an optional custom color and weight.
type MarkDef struct {
	Key         string          `json:"key"`
	Type        string          `json:"type"`
	Href        LocalizedString `json:"href,omitempty"`
	Color       string          `json:"color,omitempty"`
	CustomColor string          `json:"customColor,omitempty"`
	Weight      string          `json:"weight,omitempty"`
}

// Def looks up a mark definition on the block by key.
func (b Block) Def(key string) (MarkDef, bool) {
	for _, def := range b.MarkDefs {
		if def.Key == key {
			return def, true
		}
	}
	return MarkDef{}, false
}
