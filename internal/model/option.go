// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Global option categories. The set is closed: labels are resolved through
// a compile-time mapping, never a runtime table.
const (
	CategoryExterior     = "exterior"
	CategoryInterior     = "interior"
	CategoryStoves       = "stoves"
	CategoryElectrical   = "electrical"
	CategoryPlumbing     = "plumbing"
	CategoryDoorsWindows = "doors_windows"
	CategoryRoofing      = "roofing"
	CategoryFoundation   = "foundation"
	CategoryFurniture    = "furniture"
	CategoryAdditional   = "additional"
)

// optionCategories lists all categories in display order.
var optionCategories = []string{
	CategoryExterior,
	CategoryInterior,
	CategoryStoves,
	CategoryElectrical,
	CategoryPlumbing,
	CategoryDoorsWindows,
	CategoryRoofing,
	CategoryFoundation,
	CategoryFurniture,
	CategoryAdditional,
}

// categoryLabels maps category tags to their display names.
var categoryLabels = map[string]string{
	CategoryExterior:     "Внешняя отделка",
	CategoryInterior:     "Внутренняя отделка",
	CategoryStoves:       "Печи и дымоходы",
	CategoryElectrical:   "Электрика",
	CategoryPlumbing:     "Водоснабжение",
	CategoryDoorsWindows: "Двери и окна",
	CategoryRoofing:      "Кровля",
	CategoryFoundation:   "Фундамент",
	CategoryFurniture:    "Мебель",
	CategoryAdditional:   "Дополнительно",
}

// OptionCategories returns all valid option categories in display order.
func OptionCategories() []string {
	return optionCategories
}

// IsValidCategory checks whether a category tag belongs to the closed set.
func IsValidCategory(category string) bool {
	_, ok := categoryLabels[category]
	return ok
}

// CategoryLabel returns the display name for a category tag.
// Unknown tags fall back to the tag itself.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// GlobalOption is an add-on feature sellable against any product.
// A NULL price means the price is quoted on request.
type GlobalOption struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Price       sql.NullInt64  `json:"price,omitempty"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	Image       sql.NullString `json:"image,omitempty"`
	IsActive    bool           `json:"is_active"`
	SortOrder   int64          `json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
