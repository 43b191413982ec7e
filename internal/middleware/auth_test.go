// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/session"
	"github.com/saunastroy/site/internal/store"
	"github.com/saunastroy/site/internal/testutil"
)

func TestGetAdmin(t *testing.T) {
	t.Run("no admin in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if user := GetAdmin(req); user != nil {
			t.Errorf("GetAdmin() = %v, want nil", user)
		}
	})

	t.Run("admin in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		testUser := model.AdminUser{
			ID:    123,
			Email: "admin@example.com",
			Name:  "Админ",
		}
		ctx := context.WithValue(req.Context(), ContextKeyAdmin, testUser)
		req = req.WithContext(ctx)

		user := GetAdmin(req)
		if user == nil {
			t.Fatal("GetAdmin() = nil, want user")
		}
		if user.ID != 123 {
			t.Errorf("GetAdmin().ID = %d, want 123", user.ID)
		}
		if user.Email != "admin@example.com" {
			t.Errorf("GetAdmin().Email = %q", user.Email)
		}
	})
}

func TestRequireAdmin_RedirectsAnonymous(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := session.New(db, true)

	handler := sm.LoadAndSave(RequireAdmin(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run for anonymous requests")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}
}

func TestRequireAdmin_LoadsUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := session.New(db, true)
	q := store.New(db)

	admin, err := q.CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Email:        "admin@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$salt$hash",
		Name:         "Админ",
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}

	var seenEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := GetAdmin(r); user != nil {
			seenEmail = user.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	// Log in: first request puts the user id into the session.
	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyAdminUserID, admin.ID)
	}))
	loginRec := httptest.NewRecorder()
	login.ServeHTTP(loginRec, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie after login")
	}

	guarded := sm.LoadAndSave(RequireAdmin(sm, db)(inner))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if seenEmail != "admin@example.com" {
		t.Errorf("admin in context = %q, want admin@example.com", seenEmail)
	}
}

func TestRequireAdmin_StaleSessionDestroyed(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	sm := session.New(db, true)

	// Session points at a user id that does not exist.
	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyAdminUserID, int64(9999))
	}))
	loginRec := httptest.NewRecorder()
	login.ServeHTTP(loginRec, httptest.NewRequest(http.MethodGet, "/", nil))

	guarded := sm.LoadAndSave(RequireAdmin(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not run for a stale session")
	})))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range loginRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
