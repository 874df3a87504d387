package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carsu-site-backend/internal/config"
	"carsu-site-backend/internal/middleware"
	"carsu-site-backend/internal/service"
	"carsu-site-backend/pkg/logger"
	"carsu-site-backend/pkg/navigation"
)

const layoutTemplate = `<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}" />{{end}}
<link rel="icon" href="{{.Favicon}}" />
<link rel="stylesheet" href="/static/css/site.css" />
{{range .Alternates}}<link rel="alternate" hreflang="{{.Locale}}" href="{{.URL}}" />
{{end}}</head>
<body>
<header class="site-header">
<a class="site-header__logo" href="/{{.Locale}}">{{.SiteName}}</a>
<nav class="site-header__nav">
{{range .Nav}}<a class="site-header__link" href="{{.Href}}">{{.Label}}</a>
{{end}}</nav>
</header>
<main class="site-main">
{{.Body}}
</main>
<footer class="site-footer">
<span class="site-footer__copy">{{.SiteName}}</span>
</footer>
{{range .Scripts}}<script src="{{.}}" defer></script>
{{end}}</body>
</html>
`

type navLink struct {
	Label string
	Href  string
}

type alternateLink struct {
	Locale string
	URL    string
}

type layoutData struct {
	Locale      string
	Title       string
	Description string
	SiteName    string
	Favicon     string
	Nav         []navLink
	Alternates  []alternateLink
	Body        template.HTML
	Scripts     []string
}

// SiteHandler serves the public localized pages.
type SiteHandler struct {
	cfg         *config.Config
	pageService *service.PageService
	nav         []navigation.Item
	layout      *template.Template
}

func NewSiteHandler(cfg *config.Config, pageService *service.PageService, nav []navigation.Item) (*SiteHandler, error) {
	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site layout: %w", err)
	}

	return &SiteHandler{
		cfg:         cfg,
		pageService: pageService,
		nav:         nav,
		layout:      layout,
	}, nil
}

// Home renders the home page for the negotiated locale.
// GET /  and  GET /:locale
func (h *SiteHandler) Home(c *gin.Context) {
	locale := middleware.RequestLocale(c)

	rendered, err := h.pageService.RenderHomePage(locale)
	if err != nil {
		h.renderError(c, locale, err)
		return
	}

	h.renderLayout(c, locale, rendered)
}

// Page renders a page by slug for the locale in the path.
// GET /:locale/*slug
func (h *SiteHandler) Page(c *gin.Context) {
	locale := middleware.RequestLocale(c)

	slug := strings.Trim(c.Param("slug"), "/")
	if slug == "" {
		h.Home(c)
		return
	}

	rendered, err := h.pageService.RenderBySlug(slug, locale)
	if err != nil {
		h.renderError(c, locale, err)
		return
	}

	h.renderLayout(c, locale, rendered)
}

func (h *SiteHandler) renderLayout(c *gin.Context, locale string, page *service.RenderedPage) {
	defaultLocale := h.cfg.DefaultLocale
	title := page.Title
	if title == "" {
		title = h.cfg.SiteName
	} else {
		title = title + " | " + h.cfg.SiteName
	}

	data := layoutData{
		Locale:      locale,
		Title:       title,
		Description: page.Description,
		SiteName:    h.cfg.SiteName,
		Favicon:     h.cfg.SiteFavicon,
		Nav:         h.navLinks(locale, defaultLocale),
		Alternates:  h.alternates(c, page.Slug),
		Body:        template.HTML(page.HTML),
		Scripts:     page.Scripts,
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.layout.Execute(c.Writer, data); err != nil {
		logger.Error(err, "Failed to execute site layout", map[string]interface{}{
			"slug":   page.Slug,
			"locale": locale,
		})
	}
}

func (h *SiteHandler) navLinks(locale, defaultLocale string) []navLink {
	links := make([]navLink, 0, len(h.nav))
	for _, item := range h.nav {
		label := item.ResolveLabel(locale, defaultLocale)
		if label == "" {
			continue
		}
		href := item.Path
		if strings.HasPrefix(href, "/") {
			href = "/" + locale + href
		}
		links = append(links, navLink{Label: label, Href: href})
	}
	return links
}

func (h *SiteHandler) alternates(c *gin.Context, slug string) []alternateLink {
	supported := middleware.SupportedLocales(c)
	base := strings.TrimRight(h.cfg.SiteURL, "/")

	alternates := make([]alternateLink, 0, len(supported))
	for _, locale := range supported {
		url := base + "/" + locale
		if slug != "" {
			url += "/" + slug
		}
		alternates = append(alternates, alternateLink{Locale: locale, URL: url})
	}
	return alternates
}

func (h *SiteHandler) renderError(c *gin.Context, locale string, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong."
	if errors.Is(err, service.ErrPageNotFound) || errors.Is(err, service.ErrHomePageNotFound) {
		status = http.StatusNotFound
		message = "Page not found."
	} else {
		logger.Error(err, "Failed to render page", map[string]interface{}{"locale": locale})
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	body := template.HTML(`<div class="page page--error"><p class="page__notice">` + template.HTMLEscapeString(message) + `</p></div>`)
	data := layoutData{
		Locale:   locale,
		Title:    h.cfg.SiteName,
		SiteName: h.cfg.SiteName,
		Favicon:  h.cfg.SiteFavicon,
		Nav:      h.navLinks(locale, h.cfg.DefaultLocale),
		Body:     body,
	}
	if execErr := h.layout.Execute(c.Writer, data); execErr != nil {
		logger.Error(execErr, "Failed to execute error layout", nil)
	}
}
