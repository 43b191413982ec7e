// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Cache keys for catalog reads. Every cached read path has exactly one key
// constant here; writers never build key strings by hand.
const (
	// KeyCatalogAll holds the full product list with tiers and galleries.
	KeyCatalogAll = "catalog:all"

	// KeyCatalogFeatured holds the featured-product strip for the home page.
	KeyCatalogFeatured = "catalog:featured"

	// KeyOptionsGrouped holds active global options grouped by category.
	KeyOptionsGrouped = "options:grouped"

	// KeyCompanyInfo holds the singleton company info.
	KeyCompanyInfo = "company:info"

	// productDetailPrefix prefixes per-product detail keys.
	productDetailPrefix = "product:detail:"
)

// Cache TTLs per read path.
const (
	TTLCatalog     = 5 * time.Minute
	TTLDetail      = 10 * time.Minute
	TTLOptions     = 15 * time.Minute
	TTLCompanyInfo = 24 * time.Hour
)

// ProductDetailKey returns the cache key for one product's detail view.
func ProductDetailKey(productID int64) string {
	return fmt.Sprintf("%s%d", productDetailPrefix, productID)
}

// EntityKind identifies a cached entity type for invalidation purposes.
type EntityKind string

// Entity kinds.
const (
	EntityProduct      EntityKind = "product"
	EntityPriceTier    EntityKind = "price_tier"
	EntityGalleryImage EntityKind = "gallery_image"
	EntityGlobalOption EntityKind = "global_option"
	EntityCompanyInfo  EntityKind = "company_info"
	EntityWorkPhoto    EntityKind = "work_photo"
)

// invalidationTable maps an entity kind to the fixed cache keys any write to
// it must evict. Per-product detail keys are handled separately since they
// carry the product id. Work photos have no cached read path, so their entry
// is empty on purpose.
//
// The catalog list embeds tiers and galleries, so tier/image writes evict the
// list keys too, not just the owning product's detail key. Option writes
// evict every product detail because details embed the grouped-options view.
var invalidationTable = map[EntityKind]struct {
	keys          []string
	productDetail bool // also evict the touched product's detail key
	allDetails    bool // also evict every product detail key
}{
	EntityProduct:      {keys: []string{KeyCatalogAll, KeyCatalogFeatured}, productDetail: true},
	EntityPriceTier:    {keys: []string{KeyCatalogAll, KeyCatalogFeatured}, productDetail: true},
	EntityGalleryImage: {keys: []string{KeyCatalogAll, KeyCatalogFeatured}, productDetail: true},
	EntityGlobalOption: {keys: []string{KeyOptionsGrouped}, allDetails: true},
	EntityCompanyInfo:  {keys: []string{KeyCompanyInfo}},
	EntityWorkPhoto:    {},
}

// Invalidator evicts cache keys after entity writes. All write paths go
// through InvalidateEntity so the eviction rules live in one table.
type Invalidator struct {
	cache Cacher
}

// NewInvalidator creates an Invalidator over the given cache.
func NewInvalidator(cache Cacher) *Invalidator {
	return &Invalidator{cache: cache}
}

// InvalidateEntity evicts every cache key that may contain data derived from
// the given entity. productID scopes the per-product detail eviction; pass 0
// for entities not tied to a product.
//
// Eviction failures are logged, not returned: the worst case is a stale entry
// bounded by its TTL, and the store write that preceded this call has already
// succeeded.
func (i *Invalidator) InvalidateEntity(ctx context.Context, kind EntityKind, productID int64) {
	rule, ok := invalidationTable[kind]
	if !ok {
		slog.Warn("no invalidation rule for entity kind", "kind", kind)
		return
	}

	keys := rule.keys
	if rule.productDetail && productID > 0 {
		keys = append(append([]string{}, keys...), ProductDetailKey(productID))
	}

	if len(keys) > 0 {
		if err := i.cache.DeleteMany(ctx, keys); err != nil {
			slog.Warn("cache invalidation failed", "kind", kind, "keys", keys, "error", err)
		}
	}

	if rule.allDetails {
		if err := i.cache.DeleteByPrefix(ctx, productDetailPrefix); err != nil {
			slog.Warn("cache invalidation failed", "kind", kind, "prefix", productDetailPrefix, "error", err)
		}
	}
}

// Clear drops every cache entry. Administrative escape hatch.
func (i *Invalidator) Clear(ctx context.Context) error {
	return i.cache.Clear(ctx)
}
