// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/saunastroy/site/internal/catalog"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/store"
)

// workPhotosPageSize bounds the public works gallery.
const workPhotosPageSize = 50

// FrontendHandler serves the public catalog pages.
type FrontendHandler struct {
	catalog        *catalog.Service
	renderer       *render.Renderer
	featuredLimit  int64
	siteURL        string
	captchaSiteKey string
	isDev          bool
	logger         *slog.Logger
}

// FrontendConfig collects FrontendHandler dependencies.
type FrontendConfig struct {
	Catalog        *catalog.Service
	Renderer       *render.Renderer
	FeaturedLimit  int64
	SiteURL        string
	CaptchaSiteKey string
	IsDev          bool
	Logger         *slog.Logger
}

// NewFrontendHandler creates a FrontendHandler.
func NewFrontendHandler(cfg FrontendConfig) *FrontendHandler {
	return &FrontendHandler{
		catalog:        cfg.Catalog,
		renderer:       cfg.Renderer,
		featuredLimit:  cfg.FeaturedLimit,
		siteURL:        cfg.SiteURL,
		captchaSiteKey: cfg.CaptchaSiteKey,
		isDev:          cfg.IsDev,
		logger:         cfg.Logger,
	}
}

// Home renders the landing page with the featured products strip.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.catalog.ListFeaturedProducts(r.Context(), h.featuredLimit)
	if err != nil {
		serverError(w, h.logger, "loading featured products", err)
		return
	}

	data := struct {
		Featured []model.Product
	}{Featured: featured}

	// The credit-consultation widget on the landing page carries the
	// hCaptcha challenge.
	h.render(w, r, "frontend/home", render.TemplateData{
		Title:          "Бани и сауны под ключ",
		Data:           data,
		CaptchaSiteKey: h.captchaSiteKey,
	})
}

// Catalog renders the full product list with price tiers.
func (h *FrontendHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAllProducts(r.Context())
	if err != nil {
		serverError(w, h.logger, "loading catalog", err)
		return
	}

	h.render(w, r, "frontend/catalog", render.TemplateData{
		Title: "Каталог",
		Data:  products,
	})
}

// Product renders a single product page with its calculator.
func (h *FrontendHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		h.NotFound(w, r)
		return
	}

	detail, err := h.catalog.GetProductDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading product", err)
		return
	}

	h.render(w, r, "frontend/product", render.TemplateData{
		Title: detail.Product.Title,
		Data:  detail,
	})
}

// Services renders active global options grouped by category.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalog.ListActiveOptionsGrouped(r.Context())
	if err != nil {
		serverError(w, h.logger, "loading options", err)
		return
	}

	h.render(w, r, "frontend/services", render.TemplateData{
		Title: "Дополнительные услуги",
		Data:  groups,
	})
}

// Works renders the completed-work photo gallery.
func (h *FrontendHandler) Works(w http.ResponseWriter, r *http.Request) {
	photos, err := h.catalog.ListWorkPhotos(r.Context(), workPhotosPageSize)
	if err != nil {
		serverError(w, h.logger, "loading work photos", err)
		return
	}

	h.render(w, r, "frontend/works", render.TemplateData{
		Title: "Наши работы",
		Data:  photos,
	})
}

// About renders the company description page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.GetCompanyInfo(r.Context())
	if err != nil {
		serverError(w, h.logger, "loading company info", err)
		return
	}

	h.render(w, r, "frontend/about", render.TemplateData{
		Title: "О компании",
		Data:  info,
	})
}

// Contact renders the contact details page.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.GetCompanyInfo(r.Context())
	if err != nil {
		serverError(w, h.logger, "loading company info", err)
		return
	}

	h.render(w, r, "frontend/contact", render.TemplateData{
		Title: "Контакты",
		Data:  info,
	})
}

// NotFound renders the public 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.RenderStatus(w, r, "frontend/notfound", http.StatusNotFound, render.TemplateData{
		Title: "Страница не найдена",
	}); err != nil {
		h.logger.Error("rendering 404 page", "error", err)
		http.NotFound(w, r)
	}
}

func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, r, name, data); err != nil {
		serverError(w, h.logger, "rendering "+name, err)
	}
}
