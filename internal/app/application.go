package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"carsu-site-backend/internal/assets"
	"carsu-site-backend/internal/composer"
	"carsu-site-backend/internal/config"
	"carsu-site-backend/internal/handlers"
	"carsu-site-backend/internal/locale"
	"carsu-site-backend/internal/middleware"
	"carsu-site-backend/internal/models"
	"carsu-site-backend/internal/repository"
	"carsu-site-backend/internal/sections"
	"carsu-site-backend/internal/seed"
	"carsu-site-backend/internal/service"
	"carsu-site-backend/pkg/cache"
	"carsu-site-backend/pkg/logger"
	"carsu-site-backend/pkg/navigation"
	"carsu-site-backend/pkg/validator"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	composer *composer.Composer
	router   *gin.Engine
	server   *http.Server
}

type repositoryContainer struct {
	Page        repository.PageRepository
	Testimonial repository.TestimonialRepository
	Setting     repository.SettingRepository
}

type serviceContainer struct {
	Locale      *service.LocaleService
	Page        *service.PageService
	Testimonial *service.TestimonialService
}

type handlerContainer struct {
	Site        *handlers.SiteHandler
	Page        *handlers.PageHandler
	Testimonial *handlers.TestimonialHandler
	Section     *handlers.SectionHandler
	Health      *handlers.HealthHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.initRepositories()
	app.initComposer()
	app.initServices()

	seed.EnsureDefaultPages(app.services.Page)

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Page{},
		&models.Testimonial{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_pages_published ON pages(published) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_pages_home ON pages(is_home_page) WHERE is_home_page = true",
		"CREATE INDEX IF NOT EXISTS idx_pages_order ON pages(\"order\" ASC)",
		"CREATE INDEX IF NOT EXISTS idx_pages_sections ON pages USING GIN (sections)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() error {
	addr := ""
	enable := false
	if a.cfg.EnableCache && a.cfg.EnableRedis {
		addr = a.cfg.RedisURL
		enable = true
	}

	c, err := cache.NewCache(addr, enable)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	a.cache = c
	return nil
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Page:        repository.NewPageRepository(a.db),
		Testimonial: repository.NewTestimonialRepository(a.db),
		Setting:     repository.NewSettingRepository(a.db),
	}
}

// initComposer wires the render pipeline: locale resolution, CDN image URLs,
// the section registry and HTML sanitization.
func (a *Application) initComposer() {
	resolver := locale.NewResolver(a.cfg.DefaultLocale, a.cfg.SupportedLocales)
	builder := assets.NewBuilder(a.cfg.AssetBaseURL, a.cfg.AssetQuality, a.cfg.AssetAutoWebP)

	a.composer = composer.New(sections.DefaultRegistry(), resolver, builder, validator.Sanitizer())
}

func (a *Application) initServices() {
	localeService := service.NewLocaleService(a.cfg, a.repositories.Setting)

	// The composer renders with the effective locale configuration, which
	// settings may override at runtime, not the startup config snapshot.
	defaultLocale, supported, err := localeService.Resolve()
	if err != nil {
		logger.Warn("Failed to load locale settings, using configured fallbacks", map[string]interface{}{
			"error": err.Error(),
		})
	}
	a.composer.SetResolver(locale.NewResolver(defaultLocale, supported))
	localeService.OnChange(func(defaultLocale string, supported []string) {
		a.composer.SetResolver(locale.NewResolver(defaultLocale, supported))
	})

	a.services = serviceContainer{
		Locale:      localeService,
		Page:        service.NewPageService(a.repositories.Page, a.repositories.Testimonial, a.composer, a.cache),
		Testimonial: service.NewTestimonialService(a.repositories.Testimonial, a.cache),
	}
}

func (a *Application) initHandlers() error {
	siteHandler, err := handlers.NewSiteHandler(a.cfg, a.services.Page, defaultNavigation())
	if err != nil {
		return fmt.Errorf("failed to initialize site handler: %w", err)
	}

	a.handlers = handlerContainer{
		Site:        siteHandler,
		Page:        handlers.NewPageHandler(a.services.Page),
		Testimonial: handlers.NewTestimonialHandler(a.services.Testimonial),
		Section:     handlers.NewSectionHandler(a.composer, a.services.Locale),
		Health:      handlers.NewHealthHandler(a.db),
	}
	return nil
}

func (a *Application) initRouter() {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", a.handlers.Health.Health)
	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.Static("/static", "./static")

	localeAware := middleware.LocaleMiddleware(a.services.Locale)

	api := router.Group("/api")
	{
		api.GET("/locales", a.handlers.Section.GetLocales)
		api.GET("/pages", a.handlers.Page.GetAll)
		api.GET("/testimonials", a.handlers.Testimonial.GetAll)
		api.GET("/testimonials/:id", a.handlers.Testimonial.GetByID)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		{
			admin.GET("/pages", a.handlers.Page.GetAllAdmin)
			admin.GET("/pages/:id", a.handlers.Page.GetByID)
			admin.GET("/pages/:id/locales", a.handlers.Page.GetLocales)
			admin.POST("/pages", a.handlers.Page.Create)
			admin.PUT("/pages/:id", a.handlers.Page.Update)
			admin.DELETE("/pages/:id", a.handlers.Page.Delete)

			admin.POST("/testimonials", a.handlers.Testimonial.Create)
			admin.PUT("/testimonials/:id", a.handlers.Testimonial.Update)
			admin.DELETE("/testimonials/:id", a.handlers.Testimonial.Delete)

			admin.GET("/sections/available", a.handlers.Section.GetAvailableSections)
			admin.POST("/sections/preview", a.handlers.Section.PreviewSection)
			admin.PUT("/locales", a.handlers.Section.UpdateLocales)
		}
	}

	router.GET("/", localeAware, a.handlers.Site.Home)
	router.GET("/:locale", localeAware, a.handlers.Site.Home)
	router.GET("/:locale/*slug", localeAware, a.handlers.Site.Page)

	a.router = router
}

func defaultNavigation() []navigation.Item {
	return []navigation.Item{
		{Label: map[string]string{"en": "Features", "es": "Funciones", "it": "Funzionalità"}, Path: "/features"},
		{Label: map[string]string{"en": "Pricing", "es": "Precios", "it": "Prezzi"}, Path: "/pricing"},
		{Label: map[string]string{"en": "FAQ", "es": "Preguntas", "it": "Domande"}, Path: "/faq"},
		{Label: map[string]string{"en": "Contact", "es": "Contacto", "it": "Contatti"}, Path: "/contact"},
	}
}
