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

// ClientHandler manages the client address book. Reads go through the
// document store so the list matches what draft forms consume; writes go
// straight to the table.
type ClientHandler struct {
	db    *gorm.DB
	store billing.DocumentStore
}

func NewClientHandler(db *gorm.DB, store billing.DocumentStore) *ClientHandler {
	return &ClientHandler{db: db, store: store}
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.store.FetchClients(r.Context())
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to list clients")
		return
	}
	httpx.OK(w, http.StatusOK, clients)
}

type clientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

func (req *clientRequest) validate() (string, bool) {
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Email("email", req.Email, v)
	if v.Empty() {
		return "", true
	}
	if _, ok := v["name"]; ok {
		return "Client name is required", false
	}
	return "Invalid email address", false
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg, ok := req.validate(); !ok {
		httpx.Fail(w, http.StatusBadRequest, msg)
		return
	}
	client := models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Company: req.Company,
		Phone:   req.Phone,
	}
	if err := h.db.WithContext(r.Context()).Create(&client).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to create client")
		return
	}
	httpx.OK(w, http.StatusCreated, client)
}

// Update: PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var client models.Client
	if err := h.db.WithContext(r.Context()).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Client not found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, "Failed to load client")
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg, ok := req.validate(); !ok {
		httpx.Fail(w, http.StatusBadRequest, msg)
		return
	}
	client.Name = req.Name
	client.Email = req.Email
	client.Address = req.Address
	client.Company = req.Company
	client.Phone = req.Phone
	if err := h.db.WithContext(r.Context()).Save(&client).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to update client")
		return
	}
	httpx.OK(w, http.StatusOK, client)
}

// Delete: DELETE /clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res := h.db.WithContext(r.Context()).Delete(&models.Client{}, id)
	if res.Error != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if res.RowsAffected == 0 {
		httpx.Fail(w, http.StatusNotFound, "Client not found")
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}
