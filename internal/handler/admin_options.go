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

// categoryOption is a select-box entry for the closed category set.
type categoryOption struct {
	Value string
	Label string
}

func categoryOptions() []categoryOption {
	categories := model.OptionCategories()
	opts := make([]categoryOption, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, categoryOption{Value: c, Label: model.CategoryLabel(c)})
	}
	return opts
}

// optionFormData feeds the option create/edit form.
type optionFormData struct {
	Option     *model.GlobalOption
	Categories []categoryOption
}

// OptionList renders all global options, active or not.
func (h *AdminHandler) OptionList(w http.ResponseWriter, r *http.Request) {
	options, err := h.queries.ListGlobalOptions(r.Context())
	if err != nil {
		serverError(w, h.logger, "listing options", err)
		return
	}

	h.render(w, r, "admin/options", render.TemplateData{
		Title: "Опции",
		Data:  options,
	})
}

// NewOptionForm renders an empty option form.
func (h *AdminHandler) NewOptionForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/option_form", render.TemplateData{
		Title: "Новая опция",
		Data:  optionFormData{Categories: categoryOptions()},
	})
}

// CreateOption handles the new-option form submission.
func (h *AdminHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	arg, formErr := optionParams(r)
	if formErr != "" {
		h.renderStatus(w, r, "admin/option_form", http.StatusUnprocessableEntity, render.TemplateData{
			Title:  "Новая опция",
			Data:   optionFormData{Categories: categoryOptions()},
			Errors: map[string]string{"form": formErr},
		})
		return
	}

	if _, err := h.catalog.CreateGlobalOption(r.Context(), arg); err != nil {
		serverError(w, h.logger, "creating option", err)
		return
	}

	flashRedirect(w, r, h.renderer, "/admin/options", "Опция создана", "success")
}

// EditOptionForm renders the option edit form.
func (h *AdminHandler) EditOptionForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	option, err := h.queries.GetGlobalOptionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading option", err)
		return
	}

	h.render(w, r, "admin/option_form", render.TemplateData{
		Title: option.Name,
		Data:  optionFormData{Option: &option, Categories: categoryOptions()},
	})
}

// UpdateOption handles the edit form submission.
func (h *AdminHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	existing, err := h.queries.GetGlobalOptionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading option", err)
		return
	}

	arg, formErr := optionParams(r)
	if formErr != "" {
		h.renderStatus(w, r, "admin/option_form", http.StatusUnprocessableEntity, render.TemplateData{
			Title:  existing.Name,
			Data:   optionFormData{Option: &existing, Categories: categoryOptions()},
			Errors: map[string]string{"form": formErr},
		})
		return
	}

	if _, err := h.catalog.UpdateGlobalOption(r.Context(), store.UpdateGlobalOptionParams{
		ID:          id,
		Name:        arg.Name,
		Price:       arg.Price,
		Category:    arg.Category,
		Description: arg.Description,
		Image:       existing.Image,
		IsActive:    arg.IsActive,
		SortOrder:   arg.SortOrder,
	}); err != nil {
		serverError(w, h.logger, "updating option", err)
		return
	}

	flashRedirect(w, r, h.renderer, "/admin/options", "Опция сохранена", "success")
}

// DeleteOption removes a global option.
func (h *AdminHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.catalog.DeleteGlobalOption(r.Context(), id); err != nil {
		serverError(w, h.logger, "deleting option", err)
		return
	}

	flashRedirect(w, r, h.renderer, "/admin/options", "Опция удалена", "success")
}

// optionParams reads the shared option form fields.
func optionParams(r *http.Request) (store.CreateGlobalOptionParams, string) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return store.CreateGlobalOptionParams{}, "Укажите название опции"
	}

	category := r.FormValue("category")
	if !model.IsValidCategory(category) {
		return store.CreateGlobalOptionParams{}, "Неизвестная категория"
	}

	price, err := formNullInt64(r, "price")
	if err != nil || (price.Valid && price.Int64 < 0) {
		return store.CreateGlobalOptionParams{}, "Некорректная цена"
	}

	sortOrder, err := formInt64(r, "sort_order", 0)
	if err != nil {
		return store.CreateGlobalOptionParams{}, "Некорректный порядок сортировки"
	}

	return store.CreateGlobalOptionParams{
		Name:        name,
		Price:       price,
		Category:    category,
		Description: r.FormValue("description"),
		IsActive:    r.FormValue("is_active") != "",
		SortOrder:   sortOrder,
	}, ""
}
