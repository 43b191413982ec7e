// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/saunastroy/site/internal/media"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/store"
)

// adminWorkPhotosLimit bounds the admin works listing.
const adminWorkPhotosLimit = 500

// WorkPhotoList renders the work-photo management page.
func (h *AdminHandler) WorkPhotoList(w http.ResponseWriter, r *http.Request) {
	photos, err := h.queries.ListWorkPhotos(r.Context(), adminWorkPhotosLimit)
	if err != nil {
		serverError(w, h.logger, "listing work photos", err)
		return
	}

	h.render(w, r, "admin/workphotos", render.TemplateData{
		Title: "Наши работы",
		Data:  photos,
	})
}

// CreateWorkPhoto uploads a new work photo.
func (h *AdminHandler) CreateWorkPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	image, err := saveOptionalUpload(r, h.media, "image")
	if err != nil {
		flashRedirect(w, r, h.renderer, "/admin/works", "Не удалось сохранить изображение", "error")
		return
	}
	if !image.Valid {
		flashRedirect(w, r, h.renderer, "/admin/works", "Выберите файл изображения", "error")
		return
	}

	if _, err := h.catalog.CreateWorkPhoto(r.Context(), store.CreateWorkPhotoParams{
		Title: strings.TrimSpace(r.FormValue("title")),
		Image: image.String,
	}); err != nil {
		serverError(w, h.logger, "creating work photo", err)
		return
	}

	flashRedirect(w, r, h.renderer, "/admin/works", "Фото загружено", "success")
}

// DeleteWorkPhoto removes a work photo and its files.
func (h *AdminHandler) DeleteWorkPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	photo, err := h.queries.GetWorkPhotoByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading work photo", err)
		return
	}

	if err := h.catalog.DeleteWorkPhoto(r.Context(), id); err != nil {
		serverError(w, h.logger, "deleting work photo", err)
		return
	}
	if err := h.media.Remove(photo.Image); err != nil {
		h.logger.Warn("removing work photo file", "error", err)
	}

	flashRedirect(w, r, h.renderer, "/admin/works", "Фото удалено", "success")
}

// CompanyForm renders the company info form. The entity is a singleton,
// so the form covers both first creation and later edits.
func (h *AdminHandler) CompanyForm(w http.ResponseWriter, r *http.Request) {
	info, err := h.catalog.GetCompanyInfo(r.Context())
	if err != nil {
		serverError(w, h.logger, "loading company info", err)
		return
	}

	h.render(w, r, "admin/company", render.TemplateData{
		Title: "О компании",
		Data:  info,
	})
}

// SaveCompany creates the company info row on first save and updates it
// afterwards.
func (h *AdminHandler) SaveCompany(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		existing, err := h.catalog.GetCompanyInfo(r.Context())
		if err != nil {
			serverError(w, h.logger, "loading company info", err)
			return
		}
		h.renderStatus(w, r, "admin/company", http.StatusUnprocessableEntity, render.TemplateData{
			Title:  "О компании",
			Data:   existing,
			Errors: map[string]string{"form": "Укажите описание компании"},
		})
		return
	}

	ctx := r.Context()
	existing, err := h.catalog.GetCompanyInfo(ctx)
	if err != nil {
		serverError(w, h.logger, "loading company info", err)
		return
	}

	if existing == nil {
		_, err = h.catalog.CreateCompanyInfo(ctx, store.CreateCompanyInfoParams{
			Description: description,
			Phone:       strings.TrimSpace(r.FormValue("phone")),
			Email:       strings.TrimSpace(r.FormValue("email")),
			Address:     strings.TrimSpace(r.FormValue("address")),
		})
		if errors.Is(err, store.ErrSingletonExists) {
			flashRedirect(w, r, h.renderer, "/admin/company", "Запись уже существует, обновите страницу", "error")
			return
		}
	} else {
		_, err = h.catalog.UpdateCompanyInfo(ctx, store.UpdateCompanyInfoParams{
			ID:          existing.ID,
			Description: description,
			Phone:       strings.TrimSpace(r.FormValue("phone")),
			Email:       strings.TrimSpace(r.FormValue("email")),
			Address:     strings.TrimSpace(r.FormValue("address")),
		})
	}
	if err != nil {
		serverError(w, h.logger, "saving company info", err)
		return
	}

	flashRedirect(w, r, h.renderer, "/admin/company", "Информация сохранена", "success")
}
