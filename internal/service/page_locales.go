package service

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"carsu-site-backend/internal/models"
	"carsu-site-backend/pkg/lang"
)

// PageLocaleReport summarises which locales a page carries content for.
// Editorial tooling uses it to surface missing translations before publish.
type PageLocaleReport struct {
	Slug         string   `json:"slug"`
	Title        []string `json:"title"`
	Description  []string `json:"description"`
	Sections     []string `json:"sections"`
	MissingTitle []string `json:"missing_title"`
}

// GetBySlugAny returns a page by slug regardless of published state.
func (s *PageService) GetBySlugAny(slug string) (*models.Page, error) {
	page, err := s.pages.GetBySlugAny(strings.TrimSpace(strings.ToLower(slug)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// ContentLocales inspects a page and reports the locales its title,
// description and section payloads actually carry content for.
func (s *PageService) ContentLocales(page *models.Page) PageLocaleReport {
	resolver := s.composer.Resolver()

	report := PageLocaleReport{
		Slug:        page.Slug,
		Title:       resolver.AvailableLocales(page.Title),
		Description: resolver.AvailableLocales(page.Description),
	}

	seen := make(map[string]struct{})
	for _, section := range page.Sections {
		var payload interface{}
		if err := json.Unmarshal(section.Data, &payload); err != nil {
			continue
		}
		collectPayloadLocales(payload, resolver.Supported(), seen)
	}
	sections := make([]string, 0, len(seen))
	for locale := range seen {
		sections = append(sections, locale)
	}
	sort.Strings(sections)
	report.Sections = sections

	missing := make([]string, 0)
	for _, locale := range resolver.Supported() {
		if !resolver.HasValue(page.Title, locale) {
			missing = append(missing, locale)
		}
	}
	report.MissingTitle = missing

	return report
}

// collectPayloadLocales walks decoded section JSON and records locale keys
// from every object whose keys all look like locale codes, which is how
// localized values appear on the wire.
func collectPayloadLocales(value interface{}, supported []string, into map[string]struct{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for _, key := range localeKeys(v, supported) {
			into[key] = struct{}{}
		}
		for _, child := range v {
			collectPayloadLocales(child, supported, into)
		}
	case []interface{}:
		for _, child := range v {
			collectPayloadLocales(child, supported, into)
		}
	}
}

// localeKeys returns the supported locale codes among an object's keys, or
// nil when any key does not parse as a locale. Payload field names like
// "heading" or "items" fail the shape check, so only locale maps match.
func localeKeys(object map[string]interface{}, supported []string) []string {
	if len(object) == 0 {
		return nil
	}
	keys := make([]string, 0, len(object))
	for key, child := range object {
		normalized, err := lang.Normalize(key)
		if err != nil || !localeShaped(key) {
			return nil
		}
		if text, ok := child.(string); ok && strings.TrimSpace(text) == "" {
			continue
		}
		if lang.Contains(supported, normalized) || lang.MatchBase(normalized, supported) != "" {
			keys = append(keys, normalized)
		}
	}
	return keys
}

// localeShaped restricts the language subtag to the two or three letter form
// used throughout the site, since lang.Normalize also accepts longer subtags.
func localeShaped(key string) bool {
	language := strings.TrimSpace(key)
	if idx := strings.Index(language, "-"); idx > 0 {
		language = language[:idx]
	}
	return len(language) == 2 || len(language) == 3
}
