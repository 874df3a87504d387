package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ImageRef points at an asset in the image CDN plus its localizable alt text
// and caption. URLs are never stored; they are derived through the asset URL
// builder at render time.
type ImageRef struct {
	Asset   string          `json:"asset,omitempty"`
	Alt     LocalizedString `json:"alt,omitempty"`
	Caption LocalizedString `json:"caption,omitempty"`
}

// HasAsset reports whether the reference can produce a URL.
func (r ImageRef) HasAsset() bool {
	return strings.TrimSpace(r.Asset) != ""
}

func (r ImageRef) Value() (driver.Value, error) {
	if !r.HasAsset() && len(r.Alt) == 0 && len(r.Caption) == 0 {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *ImageRef) Scan(value interface{}) error {
	if value == nil {
		*r = ImageRef{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ImageRef")
	}
	return json.Unmarshal(bytes, r)
}

// CTA button variants.
const (
	VariantPrimary   = "primary"
	VariantSecondary = "secondary"
	VariantOutline   = "outline"
	VariantGhost     = "ghost"
)

// CTAButton is the call-to-action shape shared across nearly every section
// type. A button without a usable href must never render.
type CTAButton struct {
	Text         LocalizedString `json:"text,omitempty"`
	Href         LocalizedString `json:"href,omitempty"`
	Variant      string          `json:"variant,omitempty"`
	OpenInNewTab bool            `json:"openInNewTab,omitempty"`
	Disabled     bool            `json:"disabled,omitempty"`
}

// Section is one typed content block of a page. The union is open: the type
// discriminator routes to a registered renderer and the raw payload is kept
// so each renderer decodes its own typed shape. Unknown types survive decode
// and are reported by the composer instead of failing the page.
type Section struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"-"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var head struct {
		ID      string `json:"id"`
		Key     string `json:"_key"`
		Type    string `json:"type"`
		AltType string `json:"_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	s.ID = head.ID
	if s.ID == "" {
		s.ID = head.Key
	}
	s.Type = head.Type
	if s.Type == "" {
		s.Type = head.AltType
	}
	s.Data = append(json.RawMessage(nil), data...)
	return nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	if len(s.Data) > 0 {
		return s.Data, nil
	}
	type plain struct {
		ID   string `json:"id,omitempty"`
		Type string `json:"type"`
	}
	return json.Marshal(plain{ID: s.ID, Type: s.Type})
}

// Decode unmarshals the section payload into a renderer-owned struct. An
// empty payload decodes to the zero value.
func (s Section) Decode(into interface{}) error {
	if len(s.Data) == 0 {
		return nil
	}
	return json.Unmarshal(s.Data, into)
}

// PageSections is the ordered section list of a page, stored as JSONB.
type PageSections []Section

func (ps *PageSections) Scan(value interface{}) error {
	if value == nil {
		*ps = PageSections{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PageSections")
	}

	return json.Unmarshal(bytes, ps)
}

func (ps PageSections) Value() (driver.Value, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	return json.Marshal(ps)
}

// Page is one routable page of the site: a localized title plus an ordered,
// open-ended list of sections. Pages are reconstructed fresh from storage per
// request; sections reference shared entities (testimonials, assets) by id.
type Page struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       LocalizedString `gorm:"type:jsonb" json:"title"`
	Description LocalizedString `gorm:"type:jsonb" json:"description"`
	Slug        string          `gorm:"uniqueIndex;not null" json:"slug"`
	IsHomePage  bool            `gorm:"default:false" json:"is_home_page"`
	Published   bool            `gorm:"default:false" json:"published"`
	Sections    PageSections    `gorm:"type:jsonb" json:"sections"`

	Order int `gorm:"default:0" json:"order"`
}

// Testimonial is a shared entity referenced (not owned) by testimonial
// sections across pages.
type Testimonial struct {
	ID        string         `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Quote  LocalizedText   `gorm:"type:jsonb" json:"quote"`
	Author string          `gorm:"not null" json:"author"`
	Role   LocalizedString `gorm:"type:jsonb" json:"role"`
	Avatar ImageRef        `gorm:"type:jsonb" json:"avatar"`
	Rating int             `gorm:"default:0" json:"rating"`
}

// Setting is a persisted key/value site setting, used among other things for
// the locale configuration override.
type Setting struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

type CreatePageRequest struct {
	Title       LocalizedString `json:"title" binding:"required"`
	Description LocalizedString `json:"description"`
	Slug        string          `json:"slug" binding:"required"`
	IsHomePage  bool            `json:"is_home_page"`
	Published   bool            `json:"published"`
	Sections    []Section       `json:"sections"`
	Order       int             `json:"order"`
}

type UpdatePageRequest struct {
	Title       *LocalizedString `json:"title"`
	Description *LocalizedString `json:"description"`
	Slug        *string          `json:"slug"`
	IsHomePage  *bool            `json:"is_home_page"`
	Published   *bool            `json:"published"`
	Sections    *[]Section       `json:"sections"`
	Order       *int             `json:"order"`
}

type CreateTestimonialRequest struct {
	Quote  LocalizedText   `json:"quote" binding:"required"`
	Author string          `json:"author" binding:"required"`
	Role   LocalizedString `json:"role"`
	Avatar ImageRef        `json:"avatar"`
	Rating int             `json:"rating"`
}
