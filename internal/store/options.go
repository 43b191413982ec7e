// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saunastroy/site/internal/model"
)

const optionColumns = "id, name, price, category, description, image, is_active, sort_order, created_at, updated_at"

func scanOption(row interface{ Scan(...any) error }) (model.GlobalOption, error) {
	var o model.GlobalOption
	err := row.Scan(&o.ID, &o.Name, &o.Price, &o.Category, &o.Description,
		&o.Image, &o.IsActive, &o.SortOrder, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// CreateGlobalOptionParams holds parameters for CreateGlobalOption.
type CreateGlobalOptionParams struct {
	Name        string
	Price       sql.NullInt64
	Category    string
	Description string
	Image       sql.NullString
	IsActive    bool
	SortOrder   int64
}

// CreateGlobalOption inserts a new global option. The category must belong
// to the closed category set.
func (q *Queries) CreateGlobalOption(ctx context.Context, arg CreateGlobalOptionParams) (model.GlobalOption, error) {
	if !model.IsValidCategory(arg.Category) {
		return model.GlobalOption{}, fmt.Errorf("invalid option category: %q", arg.Category)
	}
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO global_options (name, price, category, description, image, is_active, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+optionColumns,
		arg.Name, arg.Price, arg.Category, arg.Description, arg.Image,
		arg.IsActive, arg.SortOrder, now, now)
	return scanOption(row)
}

// GetGlobalOptionByID retrieves a global option by ID.
func (q *Queries) GetGlobalOptionByID(ctx context.Context, id int64) (model.GlobalOption, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+optionColumns+" FROM global_options WHERE id = ?", id)
	o, err := scanOption(row)
	if err != nil {
		return model.GlobalOption{}, notFound(err)
	}
	return o, nil
}

// ListGlobalOptions returns all options ordered by (category, sort_order, name).
func (q *Queries) ListGlobalOptions(ctx context.Context) ([]model.GlobalOption, error) {
	return q.listOptions(ctx,
		"SELECT "+optionColumns+" FROM global_options ORDER BY category, sort_order, name")
}

// ListActiveGlobalOptions returns active options ordered by
// (category, sort_order, name).
func (q *Queries) ListActiveGlobalOptions(ctx context.Context) ([]model.GlobalOption, error) {
	return q.listOptions(ctx,
		"SELECT "+optionColumns+" FROM global_options WHERE is_active = 1 ORDER BY category, sort_order, name")
}

func (q *Queries) listOptions(ctx context.Context, query string) ([]model.GlobalOption, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var options []model.GlobalOption
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// UpdateGlobalOptionParams holds parameters for UpdateGlobalOption.
type UpdateGlobalOptionParams struct {
	ID          int64
	Name        string
	Price       sql.NullInt64
	Category    string
	Description string
	Image       sql.NullString
	IsActive    bool
	SortOrder   int64
}

// UpdateGlobalOption updates a global option.
func (q *Queries) UpdateGlobalOption(ctx context.Context, arg UpdateGlobalOptionParams) (model.GlobalOption, error) {
	if !model.IsValidCategory(arg.Category) {
		return model.GlobalOption{}, fmt.Errorf("invalid option category: %q", arg.Category)
	}
	row := q.db.QueryRowContext(ctx, `
		UPDATE global_options
		SET name = ?, price = ?, category = ?, description = ?, image = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+optionColumns,
		arg.Name, arg.Price, arg.Category, arg.Description, arg.Image,
		arg.IsActive, arg.SortOrder, time.Now(), arg.ID)
	o, err := scanOption(row)
	if err != nil {
		return model.GlobalOption{}, notFound(err)
	}
	return o, nil
}

// DeleteGlobalOption removes a global option.
func (q *Queries) DeleteGlobalOption(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM global_options WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
