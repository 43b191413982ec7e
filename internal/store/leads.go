// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/saunastroy/site/internal/model"
)

// CreateOrderRequestParams holds parameters for CreateOrderRequest.
type CreateOrderRequestParams struct {
	FIO          string
	Phone        string
	Email        string
	Message      string
	OrderDetails string
}

// CreateOrderRequest inserts an order lead. Order requests are immutable
// after creation.
func (q *Queries) CreateOrderRequest(ctx context.Context, arg CreateOrderRequestParams) (model.OrderRequest, error) {
	var o model.OrderRequest
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO order_requests (fio, phone, email, message, order_details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, fio, phone, email, message, order_details, created_at`,
		arg.FIO, arg.Phone, arg.Email, arg.Message, arg.OrderDetails, time.Now())
	if err := row.Scan(&o.ID, &o.FIO, &o.Phone, &o.Email, &o.Message,
		&o.OrderDetails, &o.CreatedAt); err != nil {
		return model.OrderRequest{}, err
	}
	return o, nil
}

// GetOrderRequestByID retrieves an order request by ID.
func (q *Queries) GetOrderRequestByID(ctx context.Context, id int64) (model.OrderRequest, error) {
	var o model.OrderRequest
	row := q.db.QueryRowContext(ctx, `
		SELECT id, fio, phone, email, message, order_details, created_at
		FROM order_requests WHERE id = ?`, id)
	if err := row.Scan(&o.ID, &o.FIO, &o.Phone, &o.Email, &o.Message,
		&o.OrderDetails, &o.CreatedAt); err != nil {
		return model.OrderRequest{}, notFound(err)
	}
	return o, nil
}

// ListOrderRequests returns order leads, most recent first.
func (q *Queries) ListOrderRequests(ctx context.Context) ([]model.OrderRequest, error) {
	return q.listOrderRequests(ctx, `
		SELECT id, fio, phone, email, message, order_details, created_at
		FROM order_requests ORDER BY created_at DESC, id DESC`)
}

// SearchOrderRequests returns order leads whose contact fields or details
// match the query, most recent first.
func (q *Queries) SearchOrderRequests(ctx context.Context, query string) ([]model.OrderRequest, error) {
	pattern := "%" + query + "%"
	return q.listOrderRequests(ctx, `
		SELECT id, fio, phone, email, message, order_details, created_at
		FROM order_requests
		WHERE fio LIKE ? OR phone LIKE ? OR email LIKE ? OR order_details LIKE ?
		ORDER BY created_at DESC, id DESC`, pattern, pattern, pattern, pattern)
}

func (q *Queries) listOrderRequests(ctx context.Context, query string, args ...any) ([]model.OrderRequest, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var orders []model.OrderRequest
	for rows.Next() {
		var o model.OrderRequest
		if err := rows.Scan(&o.ID, &o.FIO, &o.Phone, &o.Email, &o.Message,
			&o.OrderDetails, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CreateCreditRequestParams holds parameters for CreateCreditRequest.
type CreateCreditRequestParams struct {
	FIO   string
	Phone string
}

// CreateCreditRequest inserts a credit-consultation lead with status "new".
func (q *Queries) CreateCreditRequest(ctx context.Context, arg CreateCreditRequestParams) (model.CreditRequest, error) {
	var c model.CreditRequest
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO credit_requests (fio, phone, status, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, fio, phone, status, created_at`,
		arg.FIO, arg.Phone, model.CreditStatusNew, time.Now())
	if err := row.Scan(&c.ID, &c.FIO, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
		return model.CreditRequest{}, err
	}
	return c, nil
}

// GetCreditRequestByID retrieves a credit request by ID.
func (q *Queries) GetCreditRequestByID(ctx context.Context, id int64) (model.CreditRequest, error) {
	var c model.CreditRequest
	row := q.db.QueryRowContext(ctx, `
		SELECT id, fio, phone, status, created_at
		FROM credit_requests WHERE id = ?`, id)
	if err := row.Scan(&c.ID, &c.FIO, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
		return model.CreditRequest{}, notFound(err)
	}
	return c, nil
}

// ListCreditRequests returns credit leads, most recent first.
func (q *Queries) ListCreditRequests(ctx context.Context) ([]model.CreditRequest, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, fio, phone, status, created_at
		FROM credit_requests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var credits []model.CreditRequest
	for rows.Next() {
		var c model.CreditRequest
		if err := rows.Scan(&c.ID, &c.FIO, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// UpdateCreditRequestStatus sets the status of a credit request. Status is
// the only admin-mutable field; client-supplied fields stay untouched.
func (q *Queries) UpdateCreditRequestStatus(ctx context.Context, id int64, status string) (model.CreditRequest, error) {
	if !model.IsValidCreditStatus(status) {
		return model.CreditRequest{}, fmt.Errorf("invalid credit request status: %q", status)
	}
	var c model.CreditRequest
	row := q.db.QueryRowContext(ctx, `
		UPDATE credit_requests SET status = ? WHERE id = ?
		RETURNING id, fio, phone, status, created_at`, status, id)
	if err := row.Scan(&c.ID, &c.FIO, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
		return model.CreditRequest{}, notFound(err)
	}
	return c, nil
}
