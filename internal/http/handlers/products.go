package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ergiva/ergiva-server/internal/cache"
	"github.com/ergiva/ergiva-server/internal/domain/repository"
	httpx "github.com/ergiva/ergiva-server/internal/http"
	"github.com/ergiva/ergiva-server/internal/observability/logger"
)

// Solo se cachea el listado sin filtros (el hot path de la home); las
// variantes filtradas o paginadas van directo al store.
const productListKey = "products:all"

// ListProducts lista el catálogo público.
//
// GET /v1/products?category=...&limit=...&offset=...
func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ProductFilter{Category: strings.TrimSpace(q.Get("category"))}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "limit inválido")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "offset inválido")
			return
		}
		filter.Offset = n
	}

	cacheable := filter.Category == "" && filter.Limit == 0 && filter.Offset == 0
	if cacheable {
		if raw, err := a.Cache.Get(r.Context(), productListKey); err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(raw)
			return
		}
	}

	items, err := a.Store.Products().List(r.Context(), filter)
	if err != nil {
		logger.From(r.Context()).Error("product list failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}

	dtos := make([]productDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toProductDTO(&items[i]))
	}
	body := map[string]any{"products": dtos}

	if cacheable {
		if raw, err := json.Marshal(body); err == nil {
			_ = a.Cache.Set(r.Context(), productListKey, raw, a.CacheTTL)
		}
	}
	httpx.WriteJSON(w, http.StatusOK, body)
}

// GetProduct retorna un producto por id.
//
// GET /v1/products/{id}
func (a *API) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := a.Store.Products().GetByID(r.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			httpx.WriteError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		logger.From(r.Context()).Error("product fetch failed", logger.ProductID(id), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductDTO(p))
}

type productRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	Category      string `json:"category"`
	ImageURL      string `json:"image_url"`
	InStock       *bool  `json:"in_stock"`
}

// CreateProduct da de alta un producto. Solo admin.
//
// POST /v1/admin/products
func (a *API) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !readJSON(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "title es obligatorio")
		return
	}
	if req.Price <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "price debe ser positivo (paise)")
		return
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	p, err := a.Store.Products().Create(r.Context(), repository.CreateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      strings.TrimSpace(req.Category),
		ImageURL:      req.ImageURL,
		InStock:       inStock,
	})
	if err != nil {
		logger.From(r.Context()).Error("product create failed", logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	a.invalidateProducts(r)
	httpx.WriteJSON(w, http.StatusCreated, toProductDTO(p))
}

type updateProductRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	OriginalPrice *int64  `json:"original_price"`
	Category      *string `json:"category"`
	ImageURL      *string `json:"image_url"`
	InStock       *bool   `json:"in_stock"`
}

// UpdateProduct actualiza campos sueltos de un producto. Solo admin.
//
// PUT /v1/admin/products/{id}
func (a *API) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "price debe ser positivo (paise)")
		return
	}

	id := chi.URLParam(r, "id")
	p, err := a.Store.Products().Update(r.Context(), id, repository.UpdateProductInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		InStock:       req.InStock,
	})
	if err != nil {
		if repository.IsNotFound(err) {
			httpx.WriteError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		logger.From(r.Context()).Error("product update failed", logger.ProductID(id), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	a.invalidateProducts(r)
	httpx.WriteJSON(w, http.StatusOK, toProductDTO(p))
}

// DeleteProduct borra un producto. Solo admin.
//
// DELETE /v1/admin/products/{id}
func (a *API) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Store.Products().Delete(r.Context(), id); err != nil {
		if repository.IsNotFound(err) {
			httpx.WriteError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		logger.From(r.Context()).Error("product delete failed", logger.ProductID(id), logger.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "")
		return
	}
	a.invalidateProducts(r)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) invalidateProducts(r *http.Request) {
	if err := a.Cache.Delete(r.Context(), productListKey); err != nil && err != cache.ErrNotFound {
		logger.From(r.Context()).Warn("product cache invalidation failed", logger.Err(err))
	}
}
