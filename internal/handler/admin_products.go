// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/saunastroy/site/internal/media"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/store"
)

// productFormData feeds the product edit form and its tier/gallery sections.
type productFormData struct {
	Product *model.Product
	Tiers   []model.PriceTier
	Gallery []model.GalleryImage
}

func productEditPath(id int64) string {
	return fmt.Sprintf("/admin/products/%d", id)
}

// ProductList renders all products.
func (h *AdminHandler) ProductList(w http.ResponseWriter, r *http.Request) {
	products, err := h.queries.ListProducts(r.Context())
	if err != nil {
		serverError(w, h.logger, "listing products", err)
		return
	}

	h.render(w, r, "admin/products", render.TemplateData{
		Title: "Товары",
		Data:  products,
	})
}

// NewProductForm renders an empty product form.
func (h *AdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/product_form", render.TemplateData{
		Title: "Новый товар",
		Data:  productFormData{},
	})
}

// CreateProduct handles the new-product form submission.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	arg, formErr := h.productParams(r, sql.NullString{})
	if formErr != "" {
		h.renderStatus(w, r, "admin/product_form", http.StatusUnprocessableEntity, render.TemplateData{
			Title:  "Новый товар",
			Data:   productFormData{},
			Errors: map[string]string{"form": formErr},
		})
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), arg)
	if err != nil {
		serverError(w, h.logger, "creating product", err)
		return
	}

	flashRedirect(w, r, h.renderer, productEditPath(product.ID), "Товар создан", "success")
}

// EditProductForm renders the product form with its tiers and gallery.
func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	product, err := h.queries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading product", err)
		return
	}

	tiers, err := h.queries.ListPriceTiersByProduct(ctx, id)
	if err != nil {
		serverError(w, h.logger, "loading price tiers", err)
		return
	}
	gallery, err := h.queries.ListGalleryImagesByProduct(ctx, id)
	if err != nil {
		serverError(w, h.logger, "loading gallery", err)
		return
	}

	h.render(w, r, "admin/product_form", render.TemplateData{
		Title: product.Title,
		Data:  productFormData{Product: &product, Tiers: tiers, Gallery: gallery},
	})
}

// UpdateProduct handles the edit form submission. A missing file upload
// keeps the current image.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	existing, err := h.queries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading product", err)
		return
	}

	arg, formErr := h.productParams(r, existing.Image)
	if formErr != "" {
		h.renderStatus(w, r, "admin/product_form", http.StatusUnprocessableEntity, render.TemplateData{
			Title:  existing.Title,
			Data:   productFormData{Product: &existing},
			Errors: map[string]string{"form": formErr},
		})
		return
	}

	if _, err := h.catalog.UpdateProduct(ctx, store.UpdateProductParams{
		ID:          id,
		Title:       arg.Title,
		Price:       arg.Price,
		Description: arg.Description,
		Image:       arg.Image,
		IsFeatured:  arg.IsFeatured,
	}); err != nil {
		serverError(w, h.logger, "updating product", err)
		return
	}

	// Drop the replaced file
	if arg.Image != existing.Image && existing.Image.Valid {
		if err := h.media.Remove(existing.Image.String); err != nil {
			h.logger.Warn("removing replaced product image", "error", err)
		}
	}

	flashRedirect(w, r, h.renderer, productEditPath(id), "Товар сохранён", "success")
}

// DeleteProduct removes a product along with its stored images.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	product, err := h.queries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading product", err)
		return
	}
	gallery, err := h.queries.ListGalleryImagesByProduct(ctx, id)
	if err != nil {
		serverError(w, h.logger, "loading gallery", err)
		return
	}

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		serverError(w, h.logger, "deleting product", err)
		return
	}

	if product.Image.Valid {
		if err := h.media.Remove(product.Image.String); err != nil {
			h.logger.Warn("removing product image", "error", err)
		}
	}
	for _, img := range gallery {
		if err := h.media.Remove(img.Image); err != nil {
			h.logger.Warn("removing gallery image", "error", err)
		}
	}

	flashRedirect(w, r, h.renderer, "/admin/products", "Товар удалён", "success")
}

// CreateTier adds a price tier to a product.
func (h *AdminHandler) CreateTier(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	price, err := formInt64(r, "price", 0)
	if err != nil || price < 0 {
		flashRedirect(w, r, h.renderer, productEditPath(productID), "Некорректная цена", "error")
		return
	}
	sortOrder, err := formInt64(r, "sort_order", 0)
	if err != nil {
		flashRedirect(w, r, h.renderer, productEditPath(productID), "Некорректный порядок сортировки", "error")
		return
	}

	if _, err := h.catalog.CreatePriceTier(r.Context(), store.CreatePriceTierParams{
		ProductID:   productID,
		Name:        r.FormValue("name"),
		Price:       price,
		Description: r.FormValue("description"),
		SortOrder:   sortOrder,
	}); err != nil {
		serverError(w, h.logger, "creating price tier", err)
		return
	}

	flashRedirect(w, r, h.renderer, productEditPath(productID), "Размер добавлен", "success")
}

// UpdateTier saves the inline tier edit form.
func (h *AdminHandler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	tier, err := h.queries.GetPriceTierByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading price tier", err)
		return
	}

	price, err := formInt64(r, "price", 0)
	if err != nil || price < 0 {
		flashRedirect(w, r, h.renderer, productEditPath(tier.ProductID), "Некорректная цена", "error")
		return
	}
	sortOrder, err := formInt64(r, "sort_order", 0)
	if err != nil {
		flashRedirect(w, r, h.renderer, productEditPath(tier.ProductID), "Некорректный порядок сортировки", "error")
		return
	}

	if _, err := h.catalog.UpdatePriceTier(r.Context(), store.UpdatePriceTierParams{
		ID:          id,
		Name:        r.FormValue("name"),
		Price:       price,
		Description: r.FormValue("description"),
		SortOrder:   sortOrder,
	}); err != nil {
		serverError(w, h.logger, "updating price tier", err)
		return
	}

	flashRedirect(w, r, h.renderer, productEditPath(tier.ProductID), "Размер сохранён", "success")
}

// DeleteTier removes a price tier.
func (h *AdminHandler) DeleteTier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tier, err := h.queries.GetPriceTierByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading price tier", err)
		return
	}

	if err := h.catalog.DeletePriceTier(r.Context(), id); err != nil {
		serverError(w, h.logger, "deleting price tier", err)
		return
	}

	flashRedirect(w, r, h.renderer, productEditPath(tier.ProductID), "Размер удалён", "success")
}

// CreateGalleryImage uploads a photo into a product gallery.
func (h *AdminHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	image, err := saveOptionalUpload(r, h.media, "image")
	if err != nil {
		flashRedirect(w, r, h.renderer, productEditPath(productID), "Не удалось сохранить изображение", "error")
		return
	}
	if !image.Valid {
		flashRedirect(w, r, h.renderer, productEditPath(productID), "Выберите файл изображения", "error")
		return
	}

	sortOrder, err := formInt64(r, "sort_order", 0)
	if err != nil {
		flashRedirect(w, r, h.renderer, productEditPath(productID), "Некорректный порядок сортировки", "error")
		return
	}

	if _, err := h.catalog.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
		ProductID: productID,
		Image:     image.String,
		AltText:   r.FormValue("alt_text"),
		SortOrder: sortOrder,
	}); err != nil {
		serverError(w, h.logger, "creating gallery image", err)
		return
	}

	flashRedirect(w, r, h.renderer, productEditPath(productID), "Фото добавлено", "success")
}

// DeleteGalleryImage removes a gallery photo and its files.
func (h *AdminHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	img, err := h.queries.GetGalleryImageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, h.logger, "loading gallery image", err)
		return
	}

	if err := h.catalog.DeleteGalleryImage(r.Context(), id); err != nil {
		serverError(w, h.logger, "deleting gallery image", err)
		return
	}
	if err := h.media.Remove(img.Image); err != nil {
		h.logger.Warn("removing gallery image file", "error", err)
	}

	flashRedirect(w, r, h.renderer, productEditPath(img.ProductID), "Фото удалено", "success")
}

// productParams reads the shared product form fields. currentImage is kept
// when no new file was uploaded.
func (h *AdminHandler) productParams(r *http.Request, currentImage sql.NullString) (store.CreateProductParams, string) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		return store.CreateProductParams{}, "Укажите название товара"
	}

	price, err := formInt64(r, "price", -1)
	if err != nil || price < 0 {
		return store.CreateProductParams{}, "Некорректная цена"
	}

	image := currentImage
	if uploaded, err := saveOptionalUpload(r, h.media, "image"); err != nil {
		return store.CreateProductParams{}, "Не удалось сохранить изображение"
	} else if uploaded.Valid {
		image = uploaded
	}

	return store.CreateProductParams{
		Title:       title,
		Price:       price,
		Description: r.FormValue("description"),
		Image:       image,
		IsFeatured:  r.FormValue("is_featured") != "",
	}, ""
}
