// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/store"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so
// the login form cannot be used to probe for accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks admin credentials against the store.
type Authenticator struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewAuthenticator creates an authenticator over the given queries.
func NewAuthenticator(queries *store.Queries, logger *slog.Logger) *Authenticator {
	return &Authenticator{queries: queries, logger: logger}
}

// Authenticate returns the admin user for a valid email/password pair.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (model.AdminUser, error) {
	user, err := a.queries.GetAdminUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// Burn comparable time on a throwaway hash so the response does not
		// reveal whether the email exists.
		_, _ = CheckPassword(password, "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
		return model.AdminUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.AdminUser{}, err
	}

	ok, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		a.logger.Error("password hash unreadable", "user_id", user.ID, "error", err)
		return model.AdminUser{}, ErrInvalidCredentials
	}
	if !ok {
		return model.AdminUser{}, ErrInvalidCredentials
	}

	if NeedsRehash(user.PasswordHash) {
		a.logger.Info("admin password hash uses outdated parameters", "user_id", user.ID)
	}
	return user, nil
}
