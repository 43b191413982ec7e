// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"database/sql"
	"time"
)

// Product represents a prefab building offered in the catalog.
// Price is stored in whole rubles.
type Product struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Price       int64          `json:"price"`
	Description string         `json:"description"`
	Image       sql.NullString `json:"image,omitempty"`
	IsFeatured  bool           `json:"is_featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PriceTier is one selectable size/variant of a Product with its own price.
// Tiers are displayed ordered by (SortOrder, Price).
type PriceTier struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	SortOrder   int64  `json:"sort_order"`
}

// GalleryImage is an additional photo attached to a Product.
type GalleryImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text,omitempty"`
	SortOrder int64  `json:"sort_order"`
}
