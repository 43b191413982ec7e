// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/saunastroy/site/internal/auth"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/session"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	auth           *auth.Authenticator
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(a *auth.Authenticator, renderer *render.Renderer, sm *scs.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: a, renderer: renderer, sessionManager: sm, logger: logger}
}

// LoginForm renders the login page. Authenticated admins are sent straight
// to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), session.KeyAdminUserID) > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "admin/login", render.TemplateData{
		Title: "Вход",
	}); err != nil {
		serverError(w, h.logger, "rendering login form", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.auth.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.rerenderLogin(w, r, email)
			return
		}
		serverError(w, h.logger, "authenticating admin", err)
		return
	}

	// Rotate the session token on privilege change
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		serverError(w, h.logger, "renewing session token", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyAdminUserID, user.ID)

	h.logger.Info("admin logged in", "email", user.Email)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

func (h *AuthHandler) rerenderLogin(w http.ResponseWriter, r *http.Request, email string) {
	if err := h.renderer.RenderStatus(w, r, "admin/login", http.StatusUnprocessableEntity, render.TemplateData{
		Title:  "Вход",
		Form:   map[string]string{"email": email},
		Errors: map[string]string{"login": "Неверный email или пароль"},
	}); err != nil {
		serverError(w, h.logger, "rendering login form", err)
	}
}

// Logout destroys the session and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		serverError(w, h.logger, "destroying session", err)
		return
	}
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}
