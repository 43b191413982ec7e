// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels.
const (
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event is one entry of the persistent warning/error log shown in the
// admin dashboard.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
