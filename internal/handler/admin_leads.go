// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/store"
)

// OrderRequestList renders order leads, optionally filtered by a search
// query across name, phone and email.
func (h *AdminHandler) OrderRequestList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var (
		orders []model.OrderRequest
		err    error
	)
	if query != "" {
		orders, err = h.queries.SearchOrderRequests(r.Context(), query)
	} else {
		orders, err = h.queries.ListOrderRequests(r.Context())
	}
	if err != nil {
		serverError(w, h.logger, "listing order requests", err)
		return
	}

	data := struct {
		Query  string
		Orders []model.OrderRequest
	}{Query: query, Orders: orders}

	h.render(w, r, "admin/orders", render.TemplateData{
		Title: "Заявки",
		Data:  data,
	})
}

// OrderRequestDetail renders one order lead read-only.
func (h *AdminHandler) OrderRequestDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := h.queries.GetOrderRequestByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading order request", err)
		return
	}

	h.render(w, r, "admin/order_detail", render.TemplateData{
		Title: "Заявка",
		Data:  order,
	})
}

// CreditRequestList renders credit leads with their status controls.
func (h *AdminHandler) CreditRequestList(w http.ResponseWriter, r *http.Request) {
	credits, err := h.queries.ListCreditRequests(r.Context())
	if err != nil {
		serverError(w, h.logger, "listing credit requests", err)
		return
	}

	data := struct {
		Credits  []model.CreditRequest
		Statuses []string
	}{Credits: credits, Statuses: model.ValidCreditStatuses()}

	h.render(w, r, "admin/credits", render.TemplateData{
		Title: "Кредитные заявки",
		Data:  data,
	})
}

// UpdateCreditStatus changes the status of a credit lead. Status is the
// only mutable field.
func (h *AdminHandler) UpdateCreditStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	status := r.FormValue("status")
	if !model.IsValidCreditStatus(status) {
		flashRedirect(w, r, h.renderer, "/admin/credits", "Неизвестный статус", "error")
		return
	}

	if _, err := h.queries.UpdateCreditRequestStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "updating credit status", err)
		return
	}

	flashRedirect(w, r, h.renderer, "/admin/credits", "Статус обновлён", "success")
}
