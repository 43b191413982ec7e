// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication,
// CSRF protection and lead-form rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/session"
	"github.com/saunastroy/site/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin is the context key for the logged-in admin user.
const ContextKeyAdmin ContextKey = "admin_user"

// RequireAdmin creates middleware that requires a logged-in admin. It loads
// the admin user into the request context; a stale session (deleted user) is
// destroyed and redirected to login.
func RequireAdmin(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), session.KeyAdminUserID)
			if userID == 0 {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			user, err := queries.GetAdminUserByID(r.Context(), userID)
			if err != nil {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the current admin user from the request context.
// Returns nil outside admin-guarded routes.
func GetAdmin(r *http.Request) *model.AdminUser {
	user, ok := r.Context().Value(ContextKeyAdmin).(model.AdminUser)
	if !ok {
		return nil
	}
	return &user
}
