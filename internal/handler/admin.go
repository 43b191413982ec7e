// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/saunastroy/site/internal/cache"
	"github.com/saunastroy/site/internal/catalog"
	"github.com/saunastroy/site/internal/media"
	"github.com/saunastroy/site/internal/middleware"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/store"
)

// AdminHandler serves the admin backend: content management, lead review
// and cache control.
type AdminHandler struct {
	catalog  *catalog.Service
	queries  *store.Queries
	renderer *render.Renderer
	media    *media.Store
	logger   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(c *catalog.Service, queries *store.Queries, renderer *render.Renderer, m *media.Store, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog:  c,
		queries:  queries,
		renderer: renderer,
		media:    m,
		logger:   logger,
	}
}

// dashboardEventLimit bounds the recent-events table.
const dashboardEventLimit = 20

// Dashboard renders counters for the main admin entities and the recent
// warning/error log.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.queries.ListProducts(ctx)
	if err != nil {
		serverError(w, h.logger, "counting products", err)
		return
	}
	orders, err := h.queries.ListOrderRequests(ctx)
	if err != nil {
		serverError(w, h.logger, "counting orders", err)
		return
	}
	credits, err := h.queries.ListCreditRequests(ctx)
	if err != nil {
		serverError(w, h.logger, "counting credit requests", err)
		return
	}
	events, err := h.queries.ListRecentEvents(ctx, dashboardEventLimit)
	if err != nil {
		serverError(w, h.logger, "loading events", err)
		return
	}

	cacheStats, hasStats := h.catalog.CacheStats()

	data := struct {
		Products   int
		Orders     int
		Credits    int
		Events     []model.Event
		CacheStats cache.Stats
		HasStats   bool
	}{len(products), len(orders), len(credits), events, cacheStats, hasStats}

	h.render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Обзор",
		Data:  data,
	})
}

// ClearCache drops every cached catalog entry.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ClearCache(r.Context()); err != nil {
		serverError(w, h.logger, "clearing cache", err)
		return
	}
	flashRedirect(w, r, h.renderer, redirectAdmin, "Кэш сброшен", "success")
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	h.renderStatus(w, r, name, http.StatusOK, data)
}

func (h *AdminHandler) renderStatus(w http.ResponseWriter, r *http.Request, name string, status int, data render.TemplateData) {
	if admin := middleware.GetAdmin(r); admin != nil {
		data.Admin = admin
	}
	if err := h.renderer.RenderStatus(w, r, name, status, data); err != nil {
		serverError(w, h.logger, "rendering "+name, err)
	}
}
