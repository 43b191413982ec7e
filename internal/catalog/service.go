// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog orchestrates catalog reads through the cache layer and
// catalog writes through the store, with cache invalidation on every write.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/saunastroy/site/internal/cache"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/store"
)

// ProductView is a product with its tiers and gallery eagerly attached.
type ProductView struct {
	Product model.Product        `json:"product"`
	Tiers   []model.PriceTier    `json:"tiers"`
	Gallery []model.GalleryImage `json:"gallery"`
}

// OptionGroup is one category bucket of active global options.
type OptionGroup struct {
	Category string               `json:"category"`
	Label    string               `json:"label"`
	Options  []model.GlobalOption `json:"options"`
}

// ProductDetail is the full product page payload: the product, its ordered
// tiers and gallery, and the grouped-options view for the price calculator.
type ProductDetail struct {
	Product      model.Product        `json:"product"`
	Tiers        []model.PriceTier    `json:"tiers"`
	Gallery      []model.GalleryImage `json:"gallery"`
	OptionGroups []OptionGroup        `json:"option_groups"`
}

// Service serves catalog reads through the cache and performs catalog writes
// with precise invalidation. The cache is an injected capability so tests can
// substitute a deterministic in-memory instance.
type Service struct {
	queries *store.Queries
	cacher  cache.Cacher
	inv     *cache.Invalidator

	featured *cache.TypedCache[[]model.Product]
	catalog  *cache.TypedCache[[]ProductView]
	detail   *cache.TypedCache[ProductDetail]
	options  *cache.TypedCache[[]OptionGroup]
	company  *cache.TypedCache[model.CompanyInfo]
}

// NewService creates a catalog service over the given queries and cache.
func NewService(queries *store.Queries, c cache.Cacher) *Service {
	return &Service{
		queries:  queries,
		cacher:   c,
		inv:      cache.NewInvalidator(c),
		featured: cache.NewTypedCache[[]model.Product](c, cache.TTLCatalog),
		catalog:  cache.NewTypedCache[[]ProductView](c, cache.TTLCatalog),
		detail:   cache.NewTypedCache[ProductDetail](c, cache.TTLDetail),
		options:  cache.NewTypedCache[[]OptionGroup](c, cache.TTLOptions),
		company:  cache.NewTypedCache[model.CompanyInfo](c, cache.TTLCompanyInfo),
	}
}

// CacheStats reports hit and miss counters when the cache backend tracks
// them. The second return is false for backends without counters.
func (s *Service) CacheStats() (cache.Stats, bool) {
	sp, ok := s.cacher.(cache.StatsProvider)
	if !ok {
		return cache.Stats{}, false
	}
	return sp.Stats(), true
}

// ListFeaturedProducts returns featured products, most recently created
// first, truncated to limit. Cached under a fixed key.
func (s *Service) ListFeaturedProducts(ctx context.Context, limit int64) ([]model.Product, error) {
	products, err := s.featured.GetOrSet(ctx, cache.KeyCatalogFeatured, func() (*[]model.Product, error) {
		list, err := s.queries.ListFeaturedProducts(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("listing featured products: %w", err)
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	// The cached strip may be longer than the caller's limit if limits vary
	// between surfaces.
	if int64(len(*products)) > limit {
		trimmed := (*products)[:limit]
		return trimmed, nil
	}
	return *products, nil
}

// ListAllProducts returns every product with tiers and gallery attached.
// Children are fetched with two bulk queries and joined in memory rather than
// one query per product.
func (s *Service) ListAllProducts(ctx context.Context) ([]ProductView, error) {
	views, err := s.catalog.GetOrSet(ctx, cache.KeyCatalogAll, func() (*[]ProductView, error) {
		products, err := s.queries.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}
		tiers, err := s.queries.ListAllPriceTiers(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing price tiers: %w", err)
		}
		images, err := s.queries.ListAllGalleryImages(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing gallery images: %w", err)
		}

		tiersByProduct := make(map[int64][]model.PriceTier)
		for _, t := range tiers {
			tiersByProduct[t.ProductID] = append(tiersByProduct[t.ProductID], t)
		}
		imagesByProduct := make(map[int64][]model.GalleryImage)
		for _, g := range images {
			imagesByProduct[g.ProductID] = append(imagesByProduct[g.ProductID], g)
		}

		result := make([]ProductView, 0, len(products))
		for _, p := range products {
			result = append(result, ProductView{
				Product: p,
				Tiers:   tiersByProduct[p.ID],
				Gallery: imagesByProduct[p.ID],
			})
		}
		return &result, nil
	})
	if err != nil {
		return nil, err
	}
	return *views, nil
}

// GetProductDetail returns one product with ordered tiers, ordered gallery
// and the grouped-options view. Cached per product id. A missing id returns
// store.ErrNotFound and is never cached as a negative result.
func (s *Service) GetProductDetail(ctx context.Context, id int64) (*ProductDetail, error) {
	return s.detail.GetOrSet(ctx, cache.ProductDetailKey(id), func() (*ProductDetail, error) {
		product, err := s.queries.GetProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		tiers, err := s.queries.ListPriceTiersByProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("listing price tiers: %w", err)
		}
		gallery, err := s.queries.ListGalleryImagesByProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("listing gallery images: %w", err)
		}
		groups, err := s.loadGroupedOptions(ctx)
		if err != nil {
			return nil, err
		}
		return &ProductDetail{
			Product:      product,
			Tiers:        tiers,
			Gallery:      gallery,
			OptionGroups: groups,
		}, nil
	})
}

// ListActiveOptionsGrouped returns active global options partitioned by
// category, categories in display order, options ordered (order, name)
// within. Cached under a fixed key.
func (s *Service) ListActiveOptionsGrouped(ctx context.Context) ([]OptionGroup, error) {
	groups, err := s.options.GetOrSet(ctx, cache.KeyOptionsGrouped, func() (*[]OptionGroup, error) {
		result, err := s.loadGroupedOptions(ctx)
		if err != nil {
			return nil, err
		}
		return &result, nil
	})
	if err != nil {
		return nil, err
	}
	return *groups, nil
}

// loadGroupedOptions fetches active options and partitions them by category.
// Empty categories are omitted.
func (s *Service) loadGroupedOptions(ctx context.Context) ([]OptionGroup, error) {
	options, err := s.queries.ListActiveGlobalOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active options: %w", err)
	}

	byCategory := make(map[string][]model.GlobalOption)
	for _, o := range options {
		byCategory[o.Category] = append(byCategory[o.Category], o)
	}

	var groups []OptionGroup
	for _, category := range model.OptionCategories() {
		opts := byCategory[category]
		if len(opts) == 0 {
			continue
		}
		groups = append(groups, OptionGroup{
			Category: category,
			Label:    model.CategoryLabel(category),
			Options:  opts,
		})
	}
	return groups, nil
}

// GetCompanyInfo returns the singleton company info, or nil if none is
// configured yet. Absence is not cached.
func (s *Service) GetCompanyInfo(ctx context.Context) (*model.CompanyInfo, error) {
	info, err := s.company.GetOrSet(ctx, cache.KeyCompanyInfo, func() (*model.CompanyInfo, error) {
		row, err := s.queries.GetCompanyInfo(ctx)
		if err != nil {
			return nil, err
		}
		return &row, nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// ListWorkPhotos returns work photos, newest first. Not cached: the gallery
// page is cheap and admin-managed photos should appear immediately.
func (s *Service) ListWorkPhotos(ctx context.Context, limit int64) ([]model.WorkPhoto, error) {
	return s.queries.ListWorkPhotos(ctx, limit)
}

// ClearCache drops every cache entry. Administrative escape hatch.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.inv.Clear(ctx)
}

// Writes. Each store write completes before its invalidation is issued, so a
// racing reader sees at worst a stale entry bounded by TTL, never a value
// resurrected from before the write.

// CreateProduct creates a product and evicts the list and detail keys.
func (s *Service) CreateProduct(ctx context.Context, arg store.CreateProductParams) (model.Product, error) {
	p, err := s.queries.CreateProduct(ctx, arg)
	if err != nil {
		return model.Product{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityProduct, p.ID)
	return p, nil
}

// UpdateProduct updates a product and evicts the list and detail keys.
func (s *Service) UpdateProduct(ctx context.Context, arg store.UpdateProductParams) (model.Product, error) {
	p, err := s.queries.UpdateProduct(ctx, arg)
	if err != nil {
		return model.Product{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityProduct, p.ID)
	return p, nil
}

// DeleteProduct deletes a product (tiers and gallery cascade) and evicts the
// list and detail keys.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.queries.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityProduct, id)
	return nil
}

// CreatePriceTier adds a tier and evicts the owning product's derived keys.
func (s *Service) CreatePriceTier(ctx context.Context, arg store.CreatePriceTierParams) (model.PriceTier, error) {
	t, err := s.queries.CreatePriceTier(ctx, arg)
	if err != nil {
		return model.PriceTier{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityPriceTier, t.ProductID)
	return t, nil
}

// UpdatePriceTier updates a tier and evicts the owning product's derived keys.
func (s *Service) UpdatePriceTier(ctx context.Context, arg store.UpdatePriceTierParams) (model.PriceTier, error) {
	t, err := s.queries.UpdatePriceTier(ctx, arg)
	if err != nil {
		return model.PriceTier{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityPriceTier, t.ProductID)
	return t, nil
}

// DeletePriceTier deletes a tier and evicts the owning product's derived keys.
func (s *Service) DeletePriceTier(ctx context.Context, id int64) error {
	tier, err := s.queries.GetPriceTierByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.queries.DeletePriceTier(ctx, id); err != nil {
		return err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityPriceTier, tier.ProductID)
	return nil
}

// CreateGalleryImage adds a gallery image and evicts the owning product's
// derived keys.
func (s *Service) CreateGalleryImage(ctx context.Context, arg store.CreateGalleryImageParams) (model.GalleryImage, error) {
	g, err := s.queries.CreateGalleryImage(ctx, arg)
	if err != nil {
		return model.GalleryImage{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityGalleryImage, g.ProductID)
	return g, nil
}

// DeleteGalleryImage deletes a gallery image and evicts the owning product's
// derived keys.
func (s *Service) DeleteGalleryImage(ctx context.Context, id int64) error {
	img, err := s.queries.GetGalleryImageByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.queries.DeleteGalleryImage(ctx, id); err != nil {
		return err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityGalleryImage, img.ProductID)
	return nil
}

// CreateGlobalOption creates an option and evicts the grouped-options view
// and every product detail that embeds it.
func (s *Service) CreateGlobalOption(ctx context.Context, arg store.CreateGlobalOptionParams) (model.GlobalOption, error) {
	o, err := s.queries.CreateGlobalOption(ctx, arg)
	if err != nil {
		return model.GlobalOption{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityGlobalOption, 0)
	return o, nil
}

// UpdateGlobalOption updates an option and evicts its derived keys.
func (s *Service) UpdateGlobalOption(ctx context.Context, arg store.UpdateGlobalOptionParams) (model.GlobalOption, error) {
	o, err := s.queries.UpdateGlobalOption(ctx, arg)
	if err != nil {
		return model.GlobalOption{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityGlobalOption, 0)
	return o, nil
}

// DeleteGlobalOption deletes an option and evicts its derived keys.
func (s *Service) DeleteGlobalOption(ctx context.Context, id int64) error {
	if err := s.queries.DeleteGlobalOption(ctx, id); err != nil {
		return err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityGlobalOption, 0)
	return nil
}

// CreateCompanyInfo creates the singleton company info. A second create
// fails with store.ErrSingletonExists and evicts nothing.
func (s *Service) CreateCompanyInfo(ctx context.Context, arg store.CreateCompanyInfoParams) (model.CompanyInfo, error) {
	info, err := s.queries.CreateCompanyInfo(ctx, arg)
	if err != nil {
		return model.CompanyInfo{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityCompanyInfo, 0)
	return info, nil
}

// UpdateCompanyInfo updates the singleton company info and evicts its key.
func (s *Service) UpdateCompanyInfo(ctx context.Context, arg store.UpdateCompanyInfoParams) (model.CompanyInfo, error) {
	info, err := s.queries.UpdateCompanyInfo(ctx, arg)
	if err != nil {
		return model.CompanyInfo{}, err
	}
	s.inv.InvalidateEntity(ctx, cache.EntityCompanyInfo, 0)
	return info, nil
}

// CreateWorkPhoto adds a work photo. No cached read path, no eviction.
func (s *Service) CreateWorkPhoto(ctx context.Context, arg store.CreateWorkPhotoParams) (model.WorkPhoto, error) {
	return s.queries.CreateWorkPhoto(ctx, arg)
}

// DeleteWorkPhoto removes a work photo. No cached read path, no eviction.
func (s *Service) DeleteWorkPhoto(ctx context.Context, id int64) error {
	return s.queries.DeleteWorkPhoto(ctx, id)
}
