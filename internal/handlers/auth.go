package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/invoice-admin/auth"
	"github.com/diewo77/invoice-admin/httpx"
	"github.com/diewo77/invoice-admin/internal/models"
	"github.com/diewo77/invoice-admin/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues bearer tokens for the SPA. Token format and session
// handling live in the auth package; this handler only does account CRUD.
type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register: POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	if len(req.Password) < 8 {
		v["password"] = "too_short"
	}
	if !v.Empty() {
		httpx.Fail(w, http.StatusBadRequest, "Name, a valid email and a password of at least 8 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to create account")
		return
	}
	user := models.User{Name: req.Name, Email: req.Email, Password: string(hash)}
	if err := h.db.WithContext(r.Context()).Create(&user).Error; err != nil {
		// Unique index on email; a failed insert here is a duplicate account.
		httpx.Fail(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	httpx.OK(w, http.StatusCreated, authResponse{Token: auth.Token(user.ID), User: user})
}

// Login: POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	var user models.User
	if err := h.db.WithContext(r.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		httpx.Fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.Fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	httpx.OK(w, http.StatusOK, authResponse{Token: auth.Token(user.ID), User: user})
}

// Users: GET /users
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.db.WithContext(r.Context()).Order("name").Find(&users).Error; err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	httpx.OK(w, http.StatusOK, users)
}
