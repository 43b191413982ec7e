// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// CompanyInfo holds the company description and contact details.
// At most one row may ever exist; creation beyond the first fails.
type CompanyInfo struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkPhoto is a photo of completed work shown in the public gallery.
// Photos are created and deleted through the admin, never updated.
type WorkPhoto struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is the single administrative role of the site.
type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
