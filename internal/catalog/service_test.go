package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/saunastroy/site/internal/cache"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/store"
	"github.com/saunastroy/site/internal/testutil"
)

func testService(t *testing.T) (*Service, *cache.MemoryCache, *store.Queries) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	c := cache.NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	q := store.New(db)
	return NewService(q, c), c, q
}

func seedProduct(t *testing.T, q *store.Queries, title string, price int64, featured bool) model.Product {
	t.Helper()
	p, err := q.CreateProduct(context.Background(), store.CreateProductParams{
		Title:       title,
		Price:       price,
		Description: "Описание " + title,
		IsFeatured:  featured,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return p
}

func seedOption(t *testing.T, q *store.Queries, name, category string, price int64, active bool) model.GlobalOption {
	t.Helper()
	o, err := q.CreateGlobalOption(context.Background(), store.CreateGlobalOptionParams{
		Name:     name,
		Price:    sql.NullInt64{Int64: price, Valid: price > 0},
		Category: category,
		IsActive: active,
	})
	if err != nil {
		t.Fatalf("CreateGlobalOption: %v", err)
	}
	return o
}

func TestListFeaturedProducts_CachesResult(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	seedProduct(t, q, "Баня 6x4", 450000, true)
	seedProduct(t, q, "Баня 6x6", 620000, true)
	seedProduct(t, q, "Хозблок", 120000, false)

	got, err := svc.ListFeaturedProducts(ctx, 10)
	if err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d featured products, want 2", len(got))
	}

	if has, _ := c.Has(ctx, cache.KeyCatalogFeatured); !has {
		t.Error("featured list should be cached after the first read")
	}

	// A product created behind the cache's back stays invisible until the
	// entry expires or is evicted. Reads are served from cache, not the store.
	seedProduct(t, q, "Баня 8x6", 900000, true)
	got, err = svc.ListFeaturedProducts(ctx, 10)
	if err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d featured products from cache, want 2 (stale)", len(got))
	}
}

func TestCacheStats(t *testing.T) {
	svc, _, q := testService(t)
	ctx := context.Background()

	seedProduct(t, q, "Баня 6x4", 450000, true)

	// Miss on first read, hit on the second.
	if _, err := svc.ListFeaturedProducts(ctx, 10); err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}
	if _, err := svc.ListFeaturedProducts(ctx, 10); err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}

	stats, ok := svc.CacheStats()
	if !ok {
		t.Fatal("memory cache should report stats")
	}
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Items != 1 {
		t.Errorf("Items = %d, want 1", stats.Items)
	}
}

func TestListAllProducts_JoinsChildren(t *testing.T) {
	svc, _, q := testService(t)
	ctx := context.Background()

	p1 := seedProduct(t, q, "Баня 6x4", 450000, false)
	p2 := seedProduct(t, q, "Баня 6x6", 620000, false)

	for _, tier := range []store.CreatePriceTierParams{
		{ProductID: p1.ID, Name: "6x4", Price: 450000, SortOrder: 1},
		{ProductID: p1.ID, Name: "6x4 с террасой", Price: 510000, SortOrder: 2},
		{ProductID: p2.ID, Name: "6x6", Price: 620000, SortOrder: 1},
	} {
		if _, err := q.CreatePriceTier(ctx, tier); err != nil {
			t.Fatalf("CreatePriceTier: %v", err)
		}
	}
	if _, err := q.CreateGalleryImage(ctx, store.CreateGalleryImageParams{
		ProductID: p1.ID, Image: "uploads/p1-front.jpg", SortOrder: 1,
	}); err != nil {
		t.Fatalf("CreateGalleryImage: %v", err)
	}

	views, err := svc.ListAllProducts(ctx)
	if err != nil {
		t.Fatalf("ListAllProducts: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d products, want 2", len(views))
	}

	byID := make(map[int64]ProductView)
	for _, v := range views {
		byID[v.Product.ID] = v
	}
	if len(byID[p1.ID].Tiers) != 2 {
		t.Errorf("product 1: got %d tiers, want 2", len(byID[p1.ID].Tiers))
	}
	if len(byID[p1.ID].Gallery) != 1 {
		t.Errorf("product 1: got %d gallery images, want 1", len(byID[p1.ID].Gallery))
	}
	if len(byID[p2.ID].Tiers) != 1 {
		t.Errorf("product 2: got %d tiers, want 1", len(byID[p2.ID].Tiers))
	}
	if len(byID[p2.ID].Gallery) != 0 {
		t.Errorf("product 2: got %d gallery images, want 0", len(byID[p2.ID].Gallery))
	}
}

func TestGetProductDetail(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	p := seedProduct(t, q, "Баня 6x6", 620000, false)
	// Same sort order: price breaks the tie.
	for _, tier := range []store.CreatePriceTierParams{
		{ProductID: p.ID, Name: "8x6", Price: 900000, SortOrder: 1},
		{ProductID: p.ID, Name: "6x4", Price: 450000, SortOrder: 1},
		{ProductID: p.ID, Name: "6x6", Price: 620000, SortOrder: 1},
	} {
		if _, err := q.CreatePriceTier(ctx, tier); err != nil {
			t.Fatalf("CreatePriceTier: %v", err)
		}
	}
	seedOption(t, q, "Печь Harvia", model.CategoryStoves, 85000, true)

	detail, err := svc.GetProductDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}
	if detail.Product.ID != p.ID {
		t.Errorf("Product.ID = %d, want %d", detail.Product.ID, p.ID)
	}

	wantOrder := []string{"6x4", "6x6", "8x6"}
	if len(detail.Tiers) != len(wantOrder) {
		t.Fatalf("got %d tiers, want %d", len(detail.Tiers), len(wantOrder))
	}
	for i, name := range wantOrder {
		if detail.Tiers[i].Name != name {
			t.Errorf("tier[%d] = %q, want %q", i, detail.Tiers[i].Name, name)
		}
	}

	if len(detail.OptionGroups) != 1 || detail.OptionGroups[0].Category != model.CategoryStoves {
		t.Errorf("expected one stoves option group, got %+v", detail.OptionGroups)
	}

	if has, _ := c.Has(ctx, cache.ProductDetailKey(p.ID)); !has {
		t.Error("product detail should be cached after the first read")
	}
}

func TestGetProductDetail_NotFoundNeverCached(t *testing.T) {
	svc, c, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.GetProductDetail(ctx, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if has, _ := c.Has(ctx, cache.ProductDetailKey(9999)); has {
		t.Error("missing product must not leave a cache entry")
	}

	// The miss stays a clean miss on repeat.
	if _, err := svc.GetProductDetail(ctx, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second read, got %v", err)
	}
}

func TestListActiveOptionsGrouped(t *testing.T) {
	svc, _, q := testService(t)
	ctx := context.Background()

	// Insert out of display order on purpose.
	seedOption(t, q, "Розетки и свет", model.CategoryElectrical, 15000, true)
	seedOption(t, q, "Вагонка липа", model.CategoryInterior, 40000, true)
	seedOption(t, q, "Печь Harvia", model.CategoryStoves, 85000, true)
	seedOption(t, q, "Печь Везувий", model.CategoryStoves, 60000, true)
	seedOption(t, q, "Снятая опция", model.CategoryRoofing, 10000, false)

	groups, err := svc.ListActiveOptionsGrouped(ctx)
	if err != nil {
		t.Fatalf("ListActiveOptionsGrouped: %v", err)
	}

	// Categories come back in display order and empty ones are omitted.
	wantCategories := []string{model.CategoryInterior, model.CategoryStoves, model.CategoryElectrical}
	if len(groups) != len(wantCategories) {
		t.Fatalf("got %d groups, want %d: %+v", len(groups), len(wantCategories), groups)
	}
	for i, cat := range wantCategories {
		if groups[i].Category != cat {
			t.Errorf("group[%d] = %q, want %q", i, groups[i].Category, cat)
		}
		if groups[i].Label != model.CategoryLabel(cat) {
			t.Errorf("group[%d] label = %q, want %q", i, groups[i].Label, model.CategoryLabel(cat))
		}
	}

	// Options within a group sort by (sort_order, name).
	stoves := groups[1].Options
	if len(stoves) != 2 || stoves[0].Name != "Печь Harvia" || stoves[1].Name != "Печь Везувий" {
		t.Errorf("stoves group out of order: %+v", stoves)
	}

	// The inactive option is nowhere in the result.
	for _, g := range groups {
		for _, o := range g.Options {
			if o.Name == "Снятая опция" {
				t.Error("inactive option leaked into grouped view")
			}
		}
	}
}

func TestGetCompanyInfo_AbsentIsNilAndUncached(t *testing.T) {
	svc, c, _ := testService(t)
	ctx := context.Background()

	info, err := svc.GetCompanyInfo(ctx)
	if err != nil {
		t.Fatalf("GetCompanyInfo: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil company info, got %+v", info)
	}
	if has, _ := c.Has(ctx, cache.KeyCompanyInfo); has {
		t.Error("absence must not be cached")
	}
}

func TestGetCompanyInfo_CachedAfterCreate(t *testing.T) {
	svc, c, _ := testService(t)
	ctx := context.Background()

	created, err := svc.CreateCompanyInfo(ctx, store.CreateCompanyInfoParams{
		Description: "Строим бани под ключ",
		Phone:       "+7 900 123-45-67",
		Email:       "info@example.com",
		Address:     "г. Киров",
	})
	if err != nil {
		t.Fatalf("CreateCompanyInfo: %v", err)
	}

	info, err := svc.GetCompanyInfo(ctx)
	if err != nil {
		t.Fatalf("GetCompanyInfo: %v", err)
	}
	if info == nil || info.ID != created.ID {
		t.Fatalf("got %+v, want id %d", info, created.ID)
	}
	if has, _ := c.Has(ctx, cache.KeyCompanyInfo); !has {
		t.Error("company info should be cached after the first read")
	}

	// A second create must fail: the record is a singleton.
	if _, err := svc.CreateCompanyInfo(ctx, store.CreateCompanyInfoParams{
		Description: "Дубль",
	}); !errors.Is(err, store.ErrSingletonExists) {
		t.Errorf("expected ErrSingletonExists, got %v", err)
	}
}

func TestUpdateProduct_EvictsCaches(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	p := seedProduct(t, q, "Баня 6x4", 450000, true)

	// Warm every derived entry.
	if _, err := svc.ListFeaturedProducts(ctx, 10); err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}
	if _, err := svc.ListAllProducts(ctx); err != nil {
		t.Fatalf("ListAllProducts: %v", err)
	}
	if _, err := svc.GetProductDetail(ctx, p.ID); err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}

	if _, err := svc.UpdateProduct(ctx, store.UpdateProductParams{
		ID:          p.ID,
		Title:       "Баня 6x4 люкс",
		Price:       500000,
		Description: p.Description,
		IsFeatured:  true,
	}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	for _, key := range []string{cache.KeyCatalogAll, cache.KeyCatalogFeatured, cache.ProductDetailKey(p.ID)} {
		if has, _ := c.Has(ctx, key); has {
			t.Errorf("key %q should be evicted after product update", key)
		}
	}

	// The next read observes the write.
	detail, err := svc.GetProductDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductDetail after update: %v", err)
	}
	if detail.Product.Title != "Баня 6x4 люкс" {
		t.Errorf("Title = %q, want the updated title", detail.Product.Title)
	}
}

func TestPriceTierWrite_EvictsListAndDetail(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	p := seedProduct(t, q, "Баня 6x6", 620000, false)
	other := seedProduct(t, q, "Хозблок", 120000, false)

	if _, err := svc.ListAllProducts(ctx); err != nil {
		t.Fatalf("ListAllProducts: %v", err)
	}
	if _, err := svc.GetProductDetail(ctx, p.ID); err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}
	if _, err := svc.GetProductDetail(ctx, other.ID); err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}

	if _, err := svc.CreatePriceTier(ctx, store.CreatePriceTierParams{
		ProductID: p.ID, Name: "6x6 с верандой", Price: 700000, SortOrder: 2,
	}); err != nil {
		t.Fatalf("CreatePriceTier: %v", err)
	}

	if has, _ := c.Has(ctx, cache.KeyCatalogAll); has {
		t.Error("catalog list should be evicted after a tier write")
	}
	if has, _ := c.Has(ctx, cache.ProductDetailKey(p.ID)); has {
		t.Error("owning product's detail should be evicted after a tier write")
	}
	if has, _ := c.Has(ctx, cache.ProductDetailKey(other.ID)); !has {
		t.Error("unrelated product's detail should survive a tier write")
	}
}

func TestGlobalOptionWrite_EvictsOptionsAndAllDetails(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	p1 := seedProduct(t, q, "Баня 6x4", 450000, false)
	p2 := seedProduct(t, q, "Баня 6x6", 620000, false)

	if _, err := svc.ListActiveOptionsGrouped(ctx); err != nil {
		t.Fatalf("ListActiveOptionsGrouped: %v", err)
	}
	if _, err := svc.GetProductDetail(ctx, p1.ID); err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}
	if _, err := svc.GetProductDetail(ctx, p2.ID); err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}

	if _, err := svc.CreateGlobalOption(ctx, store.CreateGlobalOptionParams{
		Name:     "Громоотвод",
		Category: model.CategoryElectrical,
		IsActive: true,
	}); err != nil {
		t.Fatalf("CreateGlobalOption: %v", err)
	}

	for _, key := range []string{cache.KeyOptionsGrouped, cache.ProductDetailKey(p1.ID), cache.ProductDetailKey(p2.ID)} {
		if has, _ := c.Has(ctx, key); has {
			t.Errorf("key %q should be evicted after an option write", key)
		}
	}

	groups, err := svc.ListActiveOptionsGrouped(ctx)
	if err != nil {
		t.Fatalf("ListActiveOptionsGrouped after write: %v", err)
	}
	found := false
	for _, g := range groups {
		for _, o := range g.Options {
			if o.Name == "Громоотвод" {
				found = true
			}
		}
	}
	if !found {
		t.Error("new option missing from the re-read grouped view")
	}
}

func TestDeletePriceTier_UsesOwningProduct(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	p := seedProduct(t, q, "Баня 6x4", 450000, false)
	tier, err := q.CreatePriceTier(ctx, store.CreatePriceTierParams{
		ProductID: p.ID, Name: "6x4", Price: 450000, SortOrder: 1,
	})
	if err != nil {
		t.Fatalf("CreatePriceTier: %v", err)
	}

	if _, err := svc.GetProductDetail(ctx, p.ID); err != nil {
		t.Fatalf("GetProductDetail: %v", err)
	}

	if err := svc.DeletePriceTier(ctx, tier.ID); err != nil {
		t.Fatalf("DeletePriceTier: %v", err)
	}
	if has, _ := c.Has(ctx, cache.ProductDetailKey(p.ID)); has {
		t.Error("detail should be evicted after deleting the product's tier")
	}

	detail, err := svc.GetProductDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductDetail after delete: %v", err)
	}
	if len(detail.Tiers) != 0 {
		t.Errorf("got %d tiers after delete, want 0", len(detail.Tiers))
	}
}

func TestWorkPhotos_NoCaching(t *testing.T) {
	svc, c, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateWorkPhoto(ctx, store.CreateWorkPhotoParams{
		Title: "Баня в Слободском",
		Image: "uploads/works/slobodskoy.jpg",
	}); err != nil {
		t.Fatalf("CreateWorkPhoto: %v", err)
	}

	photos, err := svc.ListWorkPhotos(ctx, 50)
	if err != nil {
		t.Fatalf("ListWorkPhotos: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("got %d photos, want 1", len(photos))
	}

	stats := c.Stats()
	if stats.Items != 0 {
		t.Errorf("work photo paths must not touch the cache, found %d items", stats.Items)
	}
}

func TestClearCache(t *testing.T) {
	svc, c, q := testService(t)
	ctx := context.Background()

	seedProduct(t, q, "Баня 6x4", 450000, true)
	if _, err := svc.ListFeaturedProducts(ctx, 10); err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}

	if err := svc.ClearCache(ctx); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if has, _ := c.Has(ctx, cache.KeyCatalogFeatured); has {
		t.Error("cache should be empty after ClearCache")
	}
}
