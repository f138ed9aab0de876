package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoice-admin/internal/models"
)

const registerPayload = `{"name": "Fatima", "email": "fatima@example.com", "password": "correct horse"}`

func TestAuthHandler_Register(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(http.MethodPost, "/auth/register", registerPayload))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Token == "" || !strings.Contains(resp.Token, ".") {
		t.Errorf("token = %q", resp.Token)
	}
	if resp.User["email"] != "fatima@example.com" {
		t.Errorf("user email = %v", resp.User["email"])
	}
	if _, leaked := resp.User["password"]; leaked {
		t.Errorf("password hash leaked in response")
	}

	var stored models.User
	if err := db.First(&stored, "email = ?", "fatima@example.com").Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Password == "correct horse" {
		t.Errorf("password stored in clear")
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	for _, payload := range []string{
		`{"name": "", "email": "a@b.co", "password": "longenough"}`,
		`{"name": "Ali", "email": "not-an-email", "password": "longenough"}`,
		`{"name": "Ali", "email": "a@b.co", "password": "short"}`,
	} {
		rec := httptest.NewRecorder()
		h.Register(rec, jsonRequest(http.MethodPost, "/auth/register", payload))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %s: status = %d, want 400", payload, rec.Code)
		}
	}
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(http.MethodPost, "/auth/register", registerPayload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: status %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.Register(rec, jsonRequest(http.MethodPost, "/auth/register", registerPayload))
	if rec.Code != http.StatusConflict {
		t.Errorf("second register: status = %d, want 409", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.Register(rec, jsonRequest(http.MethodPost, "/auth/register", registerPayload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(http.MethodPost, "/auth/login",
		`{"email": "fatima@example.com", "password": "correct horse"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d (body %s)", rec.Code, rec.Body.String())
	}

	for _, payload := range []string{
		`{"email": "fatima@example.com", "password": "wrong"}`,
		`{"email": "nobody@example.com", "password": "correct horse"}`,
	} {
		rec = httptest.NewRecorder()
		h.Login(rec, jsonRequest(http.MethodPost, "/auth/login", payload))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("payload %s: status = %d, want 401", payload, rec.Code)
		}
	}
}
