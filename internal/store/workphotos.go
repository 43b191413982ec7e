// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/saunastroy/site/internal/model"
)

// CreateWorkPhotoParams holds parameters for CreateWorkPhoto.
type CreateWorkPhotoParams struct {
	Title string
	Image string
}

// CreateWorkPhoto inserts a work photo. created_at is set once and never
// changes; work photos are never updated.
func (q *Queries) CreateWorkPhoto(ctx context.Context, arg CreateWorkPhotoParams) (model.WorkPhoto, error) {
	var p model.WorkPhoto
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO work_photos (title, image, created_at)
		VALUES (?, ?, ?)
		RETURNING id, title, image, created_at`,
		arg.Title, arg.Image, time.Now())
	if err := row.Scan(&p.ID, &p.Title, &p.Image, &p.CreatedAt); err != nil {
		return model.WorkPhoto{}, err
	}
	return p, nil
}

// GetWorkPhotoByID retrieves a work photo by ID.
func (q *Queries) GetWorkPhotoByID(ctx context.Context, id int64) (model.WorkPhoto, error) {
	var p model.WorkPhoto
	row := q.db.QueryRowContext(ctx,
		"SELECT id, title, image, created_at FROM work_photos WHERE id = ?", id)
	if err := row.Scan(&p.ID, &p.Title, &p.Image, &p.CreatedAt); err != nil {
		return model.WorkPhoto{}, notFound(err)
	}
	return p, nil
}

// ListWorkPhotos returns work photos, newest first, truncated to limit.
func (q *Queries) ListWorkPhotos(ctx context.Context, limit int64) ([]model.WorkPhoto, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, title, image, created_at FROM work_photos
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var photos []model.WorkPhoto
	for rows.Next() {
		var p model.WorkPhoto
		if err := rows.Scan(&p.ID, &p.Title, &p.Image, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// DeleteWorkPhoto removes a work photo.
func (q *Queries) DeleteWorkPhoto(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM work_photos WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
