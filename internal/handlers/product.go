package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/invoice-admin/httpx"
	"github.com/diewo77/invoice-admin/internal/billing"
	"github.com/diewo77/invoice-admin/internal/models"
	"github.com/diewo77/invoice-admin/validation"
	"gorm.io/gorm"
)

// ProductHandler manages the catalog feeding line-item quick-add.
type ProductHandler struct {
	db    *gorm.DB
	store billing.DocumentStore
}

func NewProductHandler(db *gorm.DB, store billing.DocumentStore) *ProductHandler {
	return &ProductHandler{db: db, store: store}
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.store.FetchCatalog(r.Context())
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	httpx.OK(w, http.StatusOK, catalog)
}

type productRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func (req *productRequest) validate() (string, bool) {
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	if req.Price < 0 {
		v["price"] = "must_not_be_negative"
	}
	if v.Empty() {
		return "", true
	}
	if _, ok := v["name"]; ok {
		return "Product name is required", false
	}
	return "Price must not be negative", false
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg, ok := req.validate(); !ok {
		httpx.Fail(w, http.StatusBadRequest, msg)
		return
	}
	product := models.Product{Name: req.Name, Price: req.Price, Description: req.Description}
	if err := h.db.WithContext(r.Context()).Create(&product).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	httpx.OK(w, http.StatusCreated, product)
}

// Update: PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var product models.Product
	if err := h.db.WithContext(r.Context()).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Product not found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg, ok := req.validate(); !ok {
		httpx.Fail(w, http.StatusBadRequest, msg)
		return
	}
	product.Name = req.Name
	product.Price = req.Price
	product.Description = req.Description
	if err := h.db.WithContext(r.Context()).Save(&product).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	httpx.OK(w, http.StatusOK, product)
}

// Delete: DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.WithContext(r.Context()).Delete(&models.Product{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
