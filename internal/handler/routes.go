// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/saunastroy/site/internal/middleware"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	Frontend *FrontendHandler
	Leads    *LeadHandler
	Auth     *AuthHandler
	Admin    *AdminHandler

	SessionManager *scs.SessionManager
	DB             *sql.DB
	LeadLimiter    *middleware.LeadRateLimiter
	CSRFKey        []byte
	IsDev          bool

	StaticFS   fs.FS
	UploadsDir string
}

// NewRouter wires all routes and middleware into a chi router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDev)))
	r.Use(cfg.SessionManager.LoadAndSave)
	r.Use(middleware.SkipCSRF("/credit-request"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.CSRFKey, cfg.IsDev)))

	// Public pages
	r.Get("/", cfg.Frontend.Home)
	r.Get("/catalog", cfg.Frontend.Catalog)
	r.Get("/catalog/{id}", cfg.Frontend.Product)
	r.Get("/additional-services", cfg.Frontend.Services)
	r.Get("/works", cfg.Frontend.Works)
	r.Get("/about", cfg.Frontend.About)
	r.Get("/contact", cfg.Frontend.Contact)
	r.Get("/sitemap.xml", cfg.Frontend.SitemapXML)
	r.Get("/robots.txt", cfg.Frontend.RobotsTxt)

	// Lead forms, rate limited on submission
	r.Group(func(r chi.Router) {
		r.Use(cfg.LeadLimiter.Middleware())
		r.Get("/order", cfg.Leads.OrderForm)
		r.Post("/order", cfg.Leads.OrderSubmit)
		r.Post("/credit-request", cfg.Leads.CreditSubmit)
	})
	r.Get("/order/success", cfg.Leads.OrderSuccess)

	// Admin backend
	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", cfg.Auth.LoginForm)
		r.Post("/login", cfg.Auth.Login)
		r.Post("/logout", cfg.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.SessionManager, cfg.DB))

			r.Get("/", cfg.Admin.Dashboard)
			r.Post("/cache/clear", cfg.Admin.ClearCache)

			r.Get("/products", cfg.Admin.ProductList)
			r.Get("/products/new", cfg.Admin.NewProductForm)
			r.Post("/products", cfg.Admin.CreateProduct)
			r.Get("/products/{id}", cfg.Admin.EditProductForm)
			r.Post("/products/{id}", cfg.Admin.UpdateProduct)
			r.Post("/products/{id}/delete", cfg.Admin.DeleteProduct)
			r.Post("/products/{id}/tiers", cfg.Admin.CreateTier)
			r.Post("/products/{id}/gallery", cfg.Admin.CreateGalleryImage)
			r.Post("/tiers/{id}", cfg.Admin.UpdateTier)
			r.Post("/tiers/{id}/delete", cfg.Admin.DeleteTier)
			r.Post("/gallery/{id}/delete", cfg.Admin.DeleteGalleryImage)

			r.Get("/options", cfg.Admin.OptionList)
			r.Get("/options/new", cfg.Admin.NewOptionForm)
			r.Post("/options", cfg.Admin.CreateOption)
			r.Get("/options/{id}", cfg.Admin.EditOptionForm)
			r.Post("/options/{id}", cfg.Admin.UpdateOption)
			r.Post("/options/{id}/delete", cfg.Admin.DeleteOption)

			r.Get("/works", cfg.Admin.WorkPhotoList)
			r.Post("/works", cfg.Admin.CreateWorkPhoto)
			r.Post("/works/{id}/delete", cfg.Admin.DeleteWorkPhoto)

			r.Get("/company", cfg.Admin.CompanyForm)
			r.Post("/company", cfg.Admin.SaveCompany)

			r.Get("/orders", cfg.Admin.OrderRequestList)
			r.Get("/orders/{id}", cfg.Admin.OrderRequestDetail)

			r.Get("/credits", cfg.Admin.CreditRequestList)
			r.Post("/credits/{id}/status", cfg.Admin.UpdateCreditStatus)
		})
	})

	// Static assets and uploaded media
	r.Group(func(r chi.Router) {
		r.Use(middleware.StaticCache(86400))
		r.Handle("/static/*", http.FileServer(http.FS(cfg.StaticFS)))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(cfg.UploadsDir))))
	})

	r.NotFound(cfg.Frontend.NotFound)

	return r
}
