// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/saunastroy/site/internal/model"
)

// CreateCompanyInfoParams holds parameters for CreateCompanyInfo.
type CreateCompanyInfoParams struct {
	Description string
	Phone       string
	Email       string
	Address     string
}

// CreateCompanyInfo inserts the singleton company info row.
// Returns ErrSingletonExists if a row already exists.
func (q *Queries) CreateCompanyInfo(ctx context.Context, arg CreateCompanyInfoParams) (model.CompanyInfo, error) {
	var count int64
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM company_info").Scan(&count); err != nil {
		return model.CompanyInfo{}, err
	}
	if count > 0 {
		return model.CompanyInfo{}, ErrSingletonExists
	}

	var info model.CompanyInfo
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO company_info (description, phone, email, address, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, description, phone, email, address, updated_at`,
		arg.Description, arg.Phone, arg.Email, arg.Address, time.Now())
	if err := row.Scan(&info.ID, &info.Description, &info.Phone, &info.Email,
		&info.Address, &info.UpdatedAt); err != nil {
		return model.CompanyInfo{}, err
	}
	return info, nil
}

// GetCompanyInfo returns the singleton company info row.
// Returns ErrNotFound if none is configured yet.
func (q *Queries) GetCompanyInfo(ctx context.Context) (model.CompanyInfo, error) {
	var info model.CompanyInfo
	row := q.db.QueryRowContext(ctx, `
		SELECT id, description, phone, email, address, updated_at
		FROM company_info ORDER BY id LIMIT 1`)
	if err := row.Scan(&info.ID, &info.Description, &info.Phone, &info.Email,
		&info.Address, &info.UpdatedAt); err != nil {
		return model.CompanyInfo{}, notFound(err)
	}
	return info, nil
}

// UpdateCompanyInfoParams holds parameters for UpdateCompanyInfo.
type UpdateCompanyInfoParams struct {
	ID          int64
	Description string
	Phone       string
	Email       string
	Address     string
}

// UpdateCompanyInfo updates the singleton company info row.
func (q *Queries) UpdateCompanyInfo(ctx context.Context, arg UpdateCompanyInfoParams) (model.CompanyInfo, error) {
	var info model.CompanyInfo
	row := q.db.QueryRowContext(ctx, `
		UPDATE company_info
		SET description = ?, phone = ?, email = ?, address = ?, updated_at = ?
		WHERE id = ?
		RETURNING id, description, phone, email, address, updated_at`,
		arg.Description, arg.Phone, arg.Email, arg.Address, time.Now(), arg.ID)
	if err := row.Scan(&info.ID, &info.Description, &info.Phone, &info.Email,
		&info.Address, &info.UpdatedAt); err != nil {
		return model.CompanyInfo{}, notFound(err)
	}
	return info, nil
}
