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

const productColumns = "id, title, price, description, image, is_featured, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Description, &p.Image,
		&p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateProductParams holds parameters for CreateProduct.
type CreateProductParams struct {
	Title       string
	Price       int64
	Description string
	Image       sql.NullString
	IsFeatured  bool
}

// CreateProduct inserts a new product.
func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (model.Product, error) {
	if arg.Price < 0 {
		return model.Product{}, fmt.Errorf("product price must not be negative: %d", arg.Price)
	}
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO products (title, price, description, image, is_featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+productColumns,
		arg.Title, arg.Price, arg.Description, arg.Image, arg.IsFeatured, now, now)
	return scanProduct(row)
}

// GetProductByID retrieves a product by ID.
func (q *Queries) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if err != nil {
		return model.Product{}, notFound(err)
	}
	return p, nil
}

// ListProducts returns all products, most recently created first.
func (q *Queries) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListFeaturedProducts returns featured products, most recently created first.
func (q *Queries) ListFeaturedProducts(ctx context.Context, limit int64) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+productColumns+` FROM products
		 WHERE is_featured = 1 ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProductParams holds parameters for UpdateProduct.
type UpdateProductParams struct {
	ID          int64
	Title       string
	Price       int64
	Description string
	Image       sql.NullString
	IsFeatured  bool
}

// UpdateProduct updates a product and bumps its updated_at timestamp.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (model.Product, error) {
	if arg.Price < 0 {
		return model.Product{}, fmt.Errorf("product price must not be negative: %d", arg.Price)
	}
	row := q.db.QueryRowContext(ctx, `
		UPDATE products
		SET title = ?, price = ?, description = ?, image = ?, is_featured = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+productColumns,
		arg.Title, arg.Price, arg.Description, arg.Image, arg.IsFeatured, time.Now(), arg.ID)
	p, err := scanProduct(row)
	if err != nil {
		return model.Product{}, notFound(err)
	}
	return p, nil
}

// DeleteProduct removes a product. Price tiers and gallery images are
// cascade-deleted by the schema.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// touchProduct bumps a product's updated_at after a child write.
func (q *Queries) touchProduct(ctx context.Context, productID int64) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE products SET updated_at = ? WHERE id = ?", time.Now(), productID)
	return err
}

// CreatePriceTierParams holds parameters for CreatePriceTier.
type CreatePriceTierParams struct {
	ProductID   int64
	Name        string
	Price       int64
	Description string
	SortOrder   int64
}

// CreatePriceTier inserts a price tier for a product.
func (q *Queries) CreatePriceTier(ctx context.Context, arg CreatePriceTierParams) (model.PriceTier, error) {
	var t model.PriceTier
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO price_tiers (product_id, name, price, description, sort_order)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, product_id, name, price, description, sort_order`,
		arg.ProductID, arg.Name, arg.Price, arg.Description, arg.SortOrder)
	if err := row.Scan(&t.ID, &t.ProductID, &t.Name, &t.Price, &t.Description, &t.SortOrder); err != nil {
		return model.PriceTier{}, err
	}
	return t, q.touchProduct(ctx, arg.ProductID)
}

// GetPriceTierByID retrieves a price tier by ID.
func (q *Queries) GetPriceTierByID(ctx context.Context, id int64) (model.PriceTier, error) {
	var t model.PriceTier
	row := q.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, price, description, sort_order
		FROM price_tiers WHERE id = ?`, id)
	if err := row.Scan(&t.ID, &t.ProductID, &t.Name, &t.Price, &t.Description, &t.SortOrder); err != nil {
		return model.PriceTier{}, notFound(err)
	}
	return t, nil
}

// ListPriceTiersByProduct returns a product's tiers ordered by
// (sort_order, price).
func (q *Queries) ListPriceTiersByProduct(ctx context.Context, productID int64) ([]model.PriceTier, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, product_id, name, price, description, sort_order
		FROM price_tiers WHERE product_id = ?
		ORDER BY sort_order, price`, productID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tiers []model.PriceTier
	for rows.Next() {
		var t model.PriceTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Name, &t.Price, &t.Description, &t.SortOrder); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// ListAllPriceTiers returns every tier ordered for in-memory grouping by product.
func (q *Queries) ListAllPriceTiers(ctx context.Context) ([]model.PriceTier, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, product_id, name, price, description, sort_order
		FROM price_tiers ORDER BY product_id, sort_order, price`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tiers []model.PriceTier
	for rows.Next() {
		var t model.PriceTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Name, &t.Price, &t.Description, &t.SortOrder); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// UpdatePriceTierParams holds parameters for UpdatePriceTier.
type UpdatePriceTierParams struct {
	ID          int64
	Name        string
	Price       int64
	Description string
	SortOrder   int64
}

// UpdatePriceTier updates a price tier.
func (q *Queries) UpdatePriceTier(ctx context.Context, arg UpdatePriceTierParams) (model.PriceTier, error) {
	var t model.PriceTier
	row := q.db.QueryRowContext(ctx, `
		UPDATE price_tiers SET name = ?, price = ?, description = ?, sort_order = ?
		WHERE id = ?
		RETURNING id, product_id, name, price, description, sort_order`,
		arg.Name, arg.Price, arg.Description, arg.SortOrder, arg.ID)
	if err := row.Scan(&t.ID, &t.ProductID, &t.Name, &t.Price, &t.Description, &t.SortOrder); err != nil {
		return model.PriceTier{}, notFound(err)
	}
	return t, q.touchProduct(ctx, t.ProductID)
}

// DeletePriceTier removes a price tier.
func (q *Queries) DeletePriceTier(ctx context.Context, id int64) error {
	tier, err := q.GetPriceTierByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := q.db.ExecContext(ctx, "DELETE FROM price_tiers WHERE id = ?", id); err != nil {
		return err
	}
	return q.touchProduct(ctx, tier.ProductID)
}

// CreateGalleryImageParams holds parameters for CreateGalleryImage.
type CreateGalleryImageParams struct {
	ProductID int64
	Image     string
	AltText   string
	SortOrder int64
}

// CreateGalleryImage inserts a gallery image for a product.
func (q *Queries) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (model.GalleryImage, error) {
	var g model.GalleryImage
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO gallery_images (product_id, image, alt_text, sort_order)
		VALUES (?, ?, ?, ?)
		RETURNING id, product_id, image, alt_text, sort_order`,
		arg.ProductID, arg.Image, arg.AltText, arg.SortOrder)
	if err := row.Scan(&g.ID, &g.ProductID, &g.Image, &g.AltText, &g.SortOrder); err != nil {
		return model.GalleryImage{}, err
	}
	return g, q.touchProduct(ctx, arg.ProductID)
}

// GetGalleryImageByID retrieves a gallery image by ID.
func (q *Queries) GetGalleryImageByID(ctx context.Context, id int64) (model.GalleryImage, error) {
	var g model.GalleryImage
	row := q.db.QueryRowContext(ctx, `
		SELECT id, product_id, image, alt_text, sort_order
		FROM gallery_images WHERE id = ?`, id)
	if err := row.Scan(&g.ID, &g.ProductID, &g.Image, &g.AltText, &g.SortOrder); err != nil {
		return model.GalleryImage{}, notFound(err)
	}
	return g, nil
}

// ListGalleryImagesByProduct returns a product's gallery ordered by sort_order.
func (q *Queries) ListGalleryImagesByProduct(ctx context.Context, productID int64) ([]model.GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, product_id, image, alt_text, sort_order
		FROM gallery_images WHERE product_id = ?
		ORDER BY sort_order, id`, productID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var images []model.GalleryImage
	for rows.Next() {
		var g model.GalleryImage
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Image, &g.AltText, &g.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, g)
	}
	return images, rows.Err()
}

// ListAllGalleryImages returns every gallery image ordered for in-memory
// grouping by product.
func (q *Queries) ListAllGalleryImages(ctx context.Context) ([]model.GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, product_id, image, alt_text, sort_order
		FROM gallery_images ORDER BY product_id, sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var images []model.GalleryImage
	for rows.Next() {
		var g model.GalleryImage
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Image, &g.AltText, &g.SortOrder); err != nil {
			return nil, err
		}
		images = append(images, g)
	}
	return images, rows.Err()
}

// DeleteGalleryImage removes a gallery image.
func (q *Queries) DeleteGalleryImage(ctx context.Context, id int64) error {
	img, err := q.GetGalleryImageByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := q.db.ExecContext(ctx, "DELETE FROM gallery_images WHERE id = ?", id); err != nil {
		return err
	}
	return q.touchProduct(ctx, img.ProductID)
}
