package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"carsu-site-backend/internal/assets"
	"carsu-site-backend/internal/composer"
	"carsu-site-backend/internal/config"
	"carsu-site-backend/internal/locale"
	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/sections"
)

type fakePageRepo struct {
	pages map[string]*models.Page
}

func (f *fakePageRepo) Create(page *models.Page) error {
	if page.ID == 0 {
		page.ID = uint(len(f.pages) + 1)
	}
	f.pages[page.Slug] = page
	return nil
}

func (f *fakePageRepo) Update(page *models.Page) error {
	for slug, existing := range f.pages {
		if existing.ID == page.ID && slug != page.Slug {
			delete(f.pages, slug)
		}
	}
	f.pages[page.Slug] = page
	return nil
}

func (f *fakePageRepo) Delete(id uint) error {
	for slug, page := range f.pages {
		if page.ID == id {
			delete(f.pages, slug)
		}
	}
	return nil
}

func (f *fakePageRepo) GetByID(id uint) (*models.Page, error) {
	for _, page := range f.pages {
		if page.ID == id {
			return page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePageRepo) GetBySlug(slug string) (*models.Page, error) {
	page, ok := f.pages[slug]
	if !ok || !page.Published {
		return nil, gorm.ErrRecordNotFound
	}
	return page, nil
}

func (f *fakePageRepo) GetBySlugAny(slug string) (*models.Page, error) {
	page, ok := f.pages[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return page, nil
}

func (f *fakePageRepo) GetHomePage() (*models.Page, error) {
	for _, page := range f.pages {
		if page.IsHomePage && page.Published {
			return page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePageRepo) GetAll() ([]models.Page, error) {
	var out []models.Page
	for _, page := range f.pages {
		if page.Published {
			out = append(out, *page)
		}
	}
	return out, nil
}

func (f *fakePageRepo) GetAllAdmin() ([]models.Page, error) {
	var out []models.Page
	for _, page := range f.pages {
		out = append(out, *page)
	}
	return out, nil
}

func (f *fakePageRepo) ExistsBySlug(slug string) (bool, error) {
	_, ok := f.pages[slug]
	return ok, nil
}

func (f *fakePageRepo) ExistsBySlugExceptID(slug string, excludeID uint) (bool, error) {
	page, ok := f.pages[slug]
	return ok && page.ID != excludeID, nil
}

func (f *fakePageRepo) ClearHomePageExcept(id uint) error {
	for _, page := range f.pages {
		if page.ID != id {
			page.IsHomePage = false
		}
	}
	return nil
}

type fakeTestimonialRepo struct {
	byID map[string]models.Testimonial
}

func (f *fakeTestimonialRepo) Create(t *models.Testimonial) error {
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTestimonialRepo) Update(t *models.Testimonial) error {
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTestimonialRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeTestimonialRepo) GetByID(id string) (*models.Testimonial, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f *fakeTestimonialRepo) GetByIDs(ids []string) ([]models.Testimonial, error) {
	var out []models.Testimonial
	for _, id := range ids {
		if t, ok := f.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTestimonialRepo) GetAll() ([]models.Testimonial, error) {
	var out []models.Testimonial
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, nil
}

func decodeQuote(t *testing.T, text string) models.LocalizedText {
	t.Helper()
	raw := `[{"key":"b1","children":[{"text":"` + text + `"}]}]`
	var quote models.LocalizedText
	if err := json.Unmarshal([]byte(raw), &quote); err != nil {
		t.Fatalf("Failed to decode quote fixture: %v", err)
	}
	return quote
}

func newTestPageService(t *testing.T, pages *fakePageRepo, testimonials *fakeTestimonialRepo) *PageService {
	t.Helper()
	resolver := locale.NewResolver("en", []string{"en", "es"})
	builder := assets.NewBuilder("https://cdn.test/images", 80, true)
	comp := composer.New(sections.DefaultRegistry(), resolver, builder, bluemonday.UGCPolicy())
	return NewPageService(pages, testimonials, comp, nil)
}

func TestRenderBySlugHydratesTestimonialRefs(t *testing.T) {
	pages := &fakePageRepo{pages: map[string]*models.Page{}}
	testimonials := &fakeTestimonialRepo{byID: map[string]models.Testimonial{
		"t-1": {ID: "t-1", Author: "Dana", Quote: decodeQuote(t, "Best tool ever.")},
	}}

	var pageSections models.PageSections
	raw := `[{"id": "s1", "type": "testimonials", "testimonialRefs": ["t-1", "t-missing"]}]`
	if err := json.Unmarshal([]byte(raw), &pageSections); err != nil {
		t.Fatalf("Failed to decode sections: %v", err)
	}
	pages.pages["reviews"] = &models.Page{
		ID:        1,
		Slug:      "reviews",
		Published: true,
		Title:     models.NewLocalizedString(map[string]string{"en": "Reviews"}),
		Sections:  pageSections,
	}

	svc := newTestPageService(t, pages, testimonials)

	rendered, err := svc.RenderBySlug("reviews", "en")
	if err != nil {
		t.Fatalf("RenderBySlug failed: %v", err)
	}
	if !strings.Contains(rendered.HTML, "Best tool ever.") {
		t.Fatalf("Expected hydrated testimonial in output, got %q", rendered.HTML)
	}
	if !strings.Contains(rendered.HTML, "Dana") {
		t.Fatalf("Expected testimonial author in output, got %q", rendered.HTML)
	}
	if rendered.Title != "Reviews" {
		t.Fatalf("Expected resolved title, got %q", rendered.Title)
	}
}

func TestRenderBySlugUnpublishedPageNotFound(t *testing.T) {
	pages := &fakePageRepo{pages: map[string]*models.Page{
		"draft": {ID: 1, Slug: "draft", Published: false},
	}}
	svc := newTestPageService(t, pages, &fakeTestimonialRepo{byID: map[string]models.Testimonial{}})

	if _, err := svc.RenderBySlug("draft", "en"); err != ErrPageNotFound {
		t.Fatalf("Expected ErrPageNotFound for unpublished page, got %v", err)
	}
}

func TestCreatePageRejectsDuplicateSlug(t *testing.T) {
	pages := &fakePageRepo{pages: map[string]*models.Page{
		"about": {ID: 1, Slug: "about"},
	}}
	svc := newTestPageService(t, pages, &fakeTestimonialRepo{byID: map[string]models.Testimonial{}})

	_, err := svc.Create(models.CreatePageRequest{
		Title: models.NewLocalizedString(map[string]string{"en": "About"}),
		Slug:  "About",
	})
	if err != ErrSlugTaken {
		t.Fatalf("Expected ErrSlugTaken for duplicate slug, got %v", err)
	}
}

func TestCreatePageAssignsSectionIDs(t *testing.T) {
	pages := &fakePageRepo{pages: map[string]*models.Page{}}
	svc := newTestPageService(t, pages, &fakeTestimonialRepo{byID: map[string]models.Testimonial{}})

	var reqSections []models.Section
	if err := json.Unmarshal([]byte(`[{"type": "banner", "message": "Hi"}]`), &reqSections); err != nil {
		t.Fatalf("Failed to decode sections: %v", err)
	}

	page, err := svc.Create(models.CreatePageRequest{
		Title:    models.NewLocalizedString(map[string]string{"en": "Home"}),
		Slug:     "home",
		Sections: reqSections,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(page.Sections) != 1 || page.Sections[0].ID == "" {
		t.Fatalf("Expected generated section id, got %+v", page.Sections)
	}
}

func TestLocaleUpdateReachesRendering(t *testing.T) {
	var pageSections models.PageSections
	raw := `[{"id": "s1", "type": "banner", "message": {"en": "Welcome", "fr": "Bienvenue"}}]`
	if err := json.Unmarshal([]byte(raw), &pageSections); err != nil {
		t.Fatalf("Failed to decode sections: %v", err)
	}
	pages := &fakePageRepo{pages: map[string]*models.Page{
		"hello": {
			ID:        1,
			Slug:      "hello",
			Published: true,
			Title:     models.NewLocalizedString(map[string]string{"en": "Hello", "fr": "Bonjour"}),
			Sections:  pageSections,
		},
	}}

	cfg := &config.Config{DefaultLocale: "en", SupportedLocales: []string{"en", "es"}}
	locales := NewLocaleService(cfg, &fakeSettingRepo{values: map[string]string{}})

	resolver := locale.NewResolver(cfg.DefaultLocale, cfg.SupportedLocales)
	builder := assets.NewBuilder("https://cdn.test/images", 80, true)
	comp := composer.New(sections.DefaultRegistry(), resolver, builder, bluemonday.UGCPolicy())
	locales.OnChange(func(defaultLocale string, supported []string) {
		comp.SetResolver(locale.NewResolver(defaultLocale, supported))
	})

	svc := NewPageService(pages, &fakeTestimonialRepo{byID: map[string]models.Testimonial{}}, comp, nil)

	rendered, err := svc.RenderBySlug("hello", "fr")
	if err != nil {
		t.Fatalf("RenderBySlug failed: %v", err)
	}
	if rendered.Locale != "en" || !strings.Contains(rendered.HTML, "Welcome") {
		t.Fatalf("Expected fr to fall back to the default before it is enabled, got locale %q html %q", rendered.Locale, rendered.HTML)
	}

	if err := locales.Update("en", []string{"en", "es", "fr"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	rendered, err = svc.RenderBySlug("hello", "fr")
	if err != nil {
		t.Fatalf("RenderBySlug after update failed: %v", err)
	}
	if rendered.Locale != "fr" {
		t.Fatalf("Expected runtime-enabled locale to reach rendering, got %q", rendered.Locale)
	}
	if !strings.Contains(rendered.HTML, "Bienvenue") {
		t.Fatalf("Expected fr content after locale update, got %q", rendered.HTML)
	}
	if rendered.Title != "Bonjour" {
		t.Fatalf("Expected fr title after locale update, got %q", rendered.Title)
	}
}

func TestUpdatePageClearsOtherHomePages(t *testing.T) {
	pages := &fakePageRepo{pages: map[string]*models.Page{
		"home":  {ID: 1, Slug: "home", IsHomePage: true, Published: true},
		"about": {ID: 2, Slug: "about", Published: true},
	}}
	svc := newTestPageService(t, pages, &fakeTestimonialRepo{byID: map[string]models.Testimonial{}})

	isHome := true
	if _, err := svc.Update(2, models.UpdatePageRequest{IsHomePage: &isHome}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if pages.pages["home"].IsHomePage {
		t.Fatalf("Expected previous home page flag to be cleared")
	}
	if !pages.pages["about"].IsHomePage {
		t.Fatalf("Expected updated page to be home")
	}
}
