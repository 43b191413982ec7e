// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/saunastroy/site/internal/seo"
)

// SitemapXML serves the sitemap built from the cached catalog.
func (h *FrontendHandler) SitemapXML(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAllProducts(r.Context())
	if err != nil {
		serverError(w, h.logger, "loading catalog for sitemap", err)
		return
	}

	b := seo.NewSitemapBuilder(h.siteURL)
	b.AddHomepage()
	b.AddStaticPages()
	for _, p := range products {
		b.AddProduct(seo.SitemapProduct{ID: p.Product.ID, UpdatedAt: p.Product.UpdatedAt})
	}

	out, err := b.Build()
	if err != nil {
		serverError(w, h.logger, "building sitemap", err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// RobotsTxt serves robots.txt. Development instances opt out of indexing
// entirely.
func (h *FrontendHandler) RobotsTxt(w http.ResponseWriter, r *http.Request) {
	robots := seo.GenerateRobots(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.isDev,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(robots))
}
