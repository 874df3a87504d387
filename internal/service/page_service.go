package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carsu-site-backend/internal/composer"
	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/repository"
	"carsu-site-backend/pkg/cache"
	"carsu-site-backend/pkg/logger"
)

// PageService loads pages, hydrates shared entity references inside section
// payloads and renders them through the composer. Rendered pages are cached
// per slug and locale.
type PageService struct {
	pages        repository.PageRepository
	testimonials repository.TestimonialRepository
	composer     *composer.Composer
	cache        *cache.Cache
}

func NewPageService(
	pages repository.PageRepository,
	testimonials repository.TestimonialRepository,
	comp *composer.Composer,
	renderCache *cache.Cache,
) *PageService {
	return &PageService{
		pages:        pages,
		testimonials: testimonials,
		composer:     comp,
		cache:        renderCache,
	}
}

// RenderedPage is the cacheable output of a page render.
type RenderedPage struct {
	Slug        string   `json:"slug"`
	Locale      string   `json:"locale"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	HTML        string   `json:"html"`
	Scripts     []string `json:"scripts"`
}

// RenderBySlug renders the published page for a slug in the given locale.
func (s *PageService) RenderBySlug(slug, locale string) (*RenderedPage, error) {
	locale = s.composer.Resolver().Normalize(locale)

	if s.cache != nil {
		var cached RenderedPage
		if err := s.cache.GetCachedPageRender(slug, locale, &cached); err == nil && cached.HTML != "" {
			return &cached, nil
		}
	}

	page, err := s.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	return s.render(page, locale)
}

// RenderHomePage renders the page flagged as home.
func (s *PageService) RenderHomePage(locale string) (*RenderedPage, error) {
	locale = s.composer.Resolver().Normalize(locale)

	page, err := s.pages.GetHomePage()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomePageNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		var cached RenderedPage
		if err := s.cache.GetCachedPageRender(page.Slug, locale, &cached); err == nil && cached.HTML != "" {
			return &cached, nil
		}
	}

	return s.render(page, locale)
}

func (s *PageService) render(page *models.Page, locale string) (*RenderedPage, error) {
	s.hydrateSections(page)

	result := s.composer.RenderPage(page, locale)
	resolver := s.composer.Resolver()

	rendered := &RenderedPage{
		Slug:        page.Slug,
		Locale:      locale,
		Title:       resolver.ResolveString(page.Title, locale),
		Description: resolver.ResolveString(page.Description, locale),
		HTML:        result.HTML,
		Scripts:     result.Scripts,
	}

	if s.cache != nil {
		if err := s.cache.CachePageRender(page.Slug, locale, rendered); err != nil {
			logger.Warn("Failed to cache rendered page", map[string]interface{}{
				"slug":   page.Slug,
				"locale": locale,
				"error":  err.Error(),
			})
		}
	}

	return rendered, nil
}

// hydrateSections replaces testimonial id references inside section payloads
// with the full records so renderers see self-contained data.
func (s *PageService) hydrateSections(page *models.Page) {
	if s.testimonials == nil {
		return
	}

	for i, section := range page.Sections {
		if !strings.EqualFold(strings.TrimSpace(section.Type), "testimonials") {
			continue
		}

		var refs struct {
			TestimonialRefs []string `json:"testimonialRefs"`
		}
		if err := section.Decode(&refs); err != nil || len(refs.TestimonialRefs) == 0 {
			continue
		}

		loaded, err := s.testimonials.GetByIDs(refs.TestimonialRefs)
		if err != nil {
			logger.Error(err, "Failed to load referenced testimonials", map[string]interface{}{
				"section": section.ID,
			})
			continue
		}

		var payload map[string]json.RawMessage
		if err := json.Unmarshal(section.Data, &payload); err != nil {
			continue
		}
		encoded, err := json.Marshal(loaded)
		if err != nil {
			continue
		}
		payload["testimonials"] = encoded
		delete(payload, "testimonialRefs")

		merged, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		page.Sections[i].Data = merged
	}
}

// GetAll returns every published page.
func (s *PageService) GetAll() ([]models.Page, error) {
	return s.pages.GetAll()
}

// GetAllAdmin returns every page including drafts.
func (s *PageService) GetAllAdmin() ([]models.Page, error) {
	return s.pages.GetAllAdmin()
}

// GetByID returns one page including drafts.
func (s *PageService) GetByID(id uint) (*models.Page, error) {
	page, err := s.pages.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return page, nil
}

// Create persists a new page from an editorial request.
func (s *PageService) Create(req models.CreatePageRequest) (*models.Page, error) {
	slug := strings.TrimSpace(strings.ToLower(req.Slug))

	exists, err := s.pages.ExistsBySlug(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugTaken
	}

	page := &models.Page{
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug,
		IsHomePage:  req.IsHomePage,
		Published:   req.Published,
		Sections:    s.withSectionIDs(req.Sections),
		Order:       req.Order,
	}

	if err := s.pages.Create(page); err != nil {
		return nil, err
	}

	if page.IsHomePage {
		if err := s.pages.ClearHomePageExcept(page.ID); err != nil {
			logger.Error(err, "Failed to clear previous home page flag", nil)
		}
	}

	return page, nil
}

// Update applies a partial editorial update and invalidates the render cache.
func (s *PageService) Update(id uint, req models.UpdatePageRequest) (*models.Page, error) {
	page, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	previousSlug := page.Slug

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Description != nil {
		page.Description = *req.Description
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(strings.ToLower(*req.Slug))
		if slug != page.Slug {
			exists, err := s.pages.ExistsBySlugExceptID(slug, page.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrSlugTaken
			}
			page.Slug = slug
		}
	}
	if req.IsHomePage != nil {
		page.IsHomePage = *req.IsHomePage
	}
	if req.Published != nil {
		page.Published = *req.Published
	}
	if req.Sections != nil {
		page.Sections = s.withSectionIDs(*req.Sections)
	}
	if req.Order != nil {
		page.Order = *req.Order
	}

	if err := s.pages.Update(page); err != nil {
		return nil, err
	}

	if page.IsHomePage {
		if err := s.pages.ClearHomePageExcept(page.ID); err != nil {
			logger.Error(err, "Failed to clear previous home page flag", nil)
		}
	}

	s.invalidate(previousSlug)
	if page.Slug != previousSlug {
		s.invalidate(page.Slug)
	}

	return page, nil
}

// Delete removes a page and drops its cached renders.
func (s *PageService) Delete(id uint) error {
	page, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.pages.Delete(id); err != nil {
		return err
	}

	s.invalidate(page.Slug)
	return nil
}

func (s *PageService) invalidate(slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePage(slug); err != nil {
		logger.Warn("Failed to invalidate page cache", map[string]interface{}{
			"slug":  slug,
			"error": err.Error(),
		})
	}
}

// withSectionIDs assigns ids to sections that arrived without one so
// interactive state and diagnostics can address them.
func (s *PageService) withSectionIDs(list []models.Section) models.PageSections {
	sections := make(models.PageSections, 0, len(list))
	for _, section := range list {
		if strings.TrimSpace(section.ID) == "" {
			section.ID = uuid.NewString()
			section.Data = withInjectedID(section.Data, section.ID)
		}
		sections = append(sections, section)
	}
	return sections
}

func withInjectedID(data json.RawMessage, id string) json.RawMessage {
	if len(data) == 0 {
		return data
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return data
	}
	encoded, err := json.Marshal(id)
	if err != nil {
		return data
	}
	payload["id"] = encoded
	merged, err := json.Marshal(payload)
	if err != nil {
		return data
	}
	return merged
}
