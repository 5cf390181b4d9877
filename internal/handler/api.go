package handler

import (
	"github.com/sitecraft/internal/config"
	"github.com/sitecraft/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	pages       *service.PageService
	sliders     *service.SliderService
	blog        *service.BlogService
	sitemap     *service.SitemapService
	contact     *service.ContactService
	admins      *service.AdminService
	cache       *service.RouteCache
	invalidator *service.InvalidationCoordinator
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg config.AppConfig) *API {
	cache := service.NewRouteCache()
	invalidator := service.NewInvalidationCoordinator(cache, cfg.SiteBaseURL)

	return &API{
		db:      gdb,
		pages:   service.NewPageService(gdb, invalidator),
		sliders: service.NewSliderService(gdb, invalidator),
		blog:    service.NewBlogService(gdb),
		sitemap: service.NewSitemapService(gdb, cfg.SiteBaseURL),
		contact: service.NewContactService(gdb, service.MailConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			User:      cfg.SMTPUser,
			Password:  cfg.SMTPPassword,
			Recipient: cfg.ContactRecipient,
		}),
		admins:      service.NewAdminService(gdb),
		cache:       cache,
		invalidator: invalidator,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Invalidator exposes the coordinator so tests can tune it.
func (a *API) Invalidator() *service.InvalidationCoordinator {
	return a.invalidator
}
