// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager used for admin login
// state and flash messages.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyAdminUserID = "admin_user_id"
	keyFlash       = "flash"
	keyFlashType   = "flash_type"
)

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		// __Host- prefix pins the cookie to this host over HTTPS.
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Path = "/"
	}

	return sm
}

// PutFlash stores a one-shot message shown on the next rendered page.
// flashType selects the banner style, "success", "error" or "info".
func PutFlash(ctx context.Context, sm *scs.SessionManager, message, flashType string) {
	sm.Put(ctx, keyFlash, message)
	sm.Put(ctx, keyFlashType, flashType)
}

// PopFlash retrieves and removes the pending flash message, if any.
// The type defaults to "info" when a message was stored without one.
func PopFlash(ctx context.Context, sm *scs.SessionManager) (message, flashType string) {
	message = sm.PopString(ctx, keyFlash)
	if message == "" {
		return "", ""
	}
	flashType = sm.PopString(ctx, keyFlashType)
	if flashType == "" {
		flashType = "info"
	}
	return message, flashType
}
