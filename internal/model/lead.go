// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Credit request statuses.
const (
	CreditStatusNew        = "new"
	CreditStatusInProgress = "in_progress"
	CreditStatusApproved   = "approved"
	CreditStatusRejected   = "rejected"
)

// ValidCreditStatuses returns all valid credit request statuses.
func ValidCreditStatuses() []string {
	return []string{
		CreditStatusNew,
		CreditStatusInProgress,
		CreditStatusApproved,
		CreditStatusRejected,
	}
}

// IsValidCreditStatus checks if a credit request status is valid.
func IsValidCreditStatus(status string) bool {
	for _, s := range ValidCreditStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// OrderRequest is a customer order/contact lead. All fields are immutable
// after creation; the admin backend only views and searches them.
type OrderRequest struct {
	ID           int64     `json:"id"`
	FIO          string    `json:"fio"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Message      string    `json:"message"`
	OrderDetails string    `json:"order_details"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreditRequest is a credit-consultation lead. Client-supplied fields are
// immutable; Status is the one field the admin may change.
type CreditRequest struct {
	ID        int64     `json:"id"`
	FIO       string    `json:"fio"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
