// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/saunastroy/site/internal/model"
)

// CreateAdminUserParams holds parameters for CreateAdminUser.
type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
	Name         string
}

// CreateAdminUser inserts an administrative user.
func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (model.AdminUser, error) {
	now := time.Now()
	var u model.AdminUser
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (email, password_hash, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, email, password_hash, name, created_at, updated_at`,
		arg.Email, arg.PasswordHash, arg.Name, now, now)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.AdminUser{}, err
	}
	return u, nil
}

// GetAdminUserByEmail retrieves an admin user by email.
func (q *Queries) GetAdminUserByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	var u model.AdminUser
	row := q.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM admin_users WHERE email = ?`, email)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.AdminUser{}, notFound(err)
	}
	return u, nil
}

// GetAdminUserByID retrieves an admin user by ID.
func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (model.AdminUser, error) {
	var u model.AdminUser
	row := q.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM admin_users WHERE id = ?`, id)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return model.AdminUser{}, notFound(err)
	}
	return u, nil
}

// CountAdminUsers returns the number of admin users.
func (q *Queries) CountAdminUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&count)
	return count, err
}
