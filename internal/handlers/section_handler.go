package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"carsu-site-backend/internal/composer"
	"carsu-site-backend/internal/middleware"
	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/service"
)

// SectionHandler exposes section type discovery and preview rendering for the
// editorial interface.
type SectionHandler struct {
	composer      *composer.Composer
	localeService *service.LocaleService
}

func NewSectionHandler(comp *composer.Composer, locales *service.LocaleService) *SectionHandler {
	return &SectionHandler{composer: comp, localeService: locales}
}

// GetAvailableSections returns metadata for all registered section types so
// admin interfaces can discover them dynamically.
// GET /api/admin/sections/available
func (h *SectionHandler) GetAvailableSections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sections": h.composer.Registry().ListMetadata(),
		"types":    h.composer.Registry().Types(),
	})
}

type previewSectionRequest struct {
	Locale  string          `json:"locale"`
	Section json.RawMessage `json:"section" binding:"required"`
}

// PreviewSection renders a single section payload without persisting it.
// POST /api/admin/sections/preview
func (h *SectionHandler) PreviewSection(c *gin.Context) {
	var req previewSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var section models.Section
	if err := json.Unmarshal(req.Section, &section); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section payload"})
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = middleware.RequestLocale(c)
	}
	locale = h.composer.Resolver().Normalize(locale)

	html, scripts := h.composer.RenderSection(section, locale)
	c.JSON(http.StatusOK, gin.H{
		"html":    html,
		"scripts": scripts,
		"locale":  locale,
	})
}

// GetLocales reports the effective locale configuration.
// GET /api/locales
func (h *SectionHandler) GetLocales(c *gin.Context) {
	defaultLocale, supported, err := h.localeService.Resolve()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"default":   defaultLocale,
		"supported": supported,
	})
}

type updateLocalesRequest struct {
	Default   string   `json:"default" binding:"required"`
	Supported []string `json:"supported" binding:"required"`
}

// UpdateLocales persists a new locale configuration.
// PUT /api/admin/locales
func (h *SectionHandler) UpdateLocales(c *gin.Context) {
	var req updateLocalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.localeService.Update(req.Default, req.Supported); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defaultLocale, supported, _ := h.localeService.Resolve()
	c.JSON(http.StatusOK, gin.H{
		"default":   defaultLocale,
		"supported": supported,
	})
}
