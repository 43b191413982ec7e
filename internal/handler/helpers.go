// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin backend.
package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saunastroy/site/internal/media"
	"github.com/saunastroy/site/internal/render"
)

// Common redirect targets.
const (
	RouteRoot       = "/"
	redirectAdmin   = "/admin"
	redirectLogin   = "/admin/login"
	redirectOrderOK = "/order/success"
)

// parseID extracts a positive int64 URL parameter.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// formInt64 parses an integer form field, returning def when empty.
func formInt64(r *http.Request, name string, def int64) (int64, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// formNullInt64 parses an optional integer form field into sql.NullInt64.
// An empty field means NULL.
func formNullInt64(r *http.Request, name string) (sql.NullInt64, error) {
	v := r.FormValue(name)
	if v == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}

// saveOptionalUpload stores the named multipart file if one was sent.
// Returns the stored filename, or an invalid NullString when the field
// was left empty.
func saveOptionalUpload(r *http.Request, store *media.Store, field string) (sql.NullString, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return sql.NullString{}, nil
	}
	if err != nil {
		return sql.NullString{}, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	result, err := store.SaveUpload(file, header.Filename)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: result.Path, Valid: true}, nil
}

// serverError logs the error and responds with a plain 500.
func serverError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// flashRedirect sets a flash message and redirects with 303 See Other.
func flashRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, target, message, flashType string) {
	renderer.SetFlash(r, message, flashType)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
