package main

import (
	"net/http"

	"github.com/diewo77/invoice-admin/auth"
	"github.com/diewo77/invoice-admin/httpx"
	"github.com/diewo77/invoice-admin/internal/handlers"
	"github.com/diewo77/invoice-admin/internal/store"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB) *App {
	app := &App{mux: http.NewServeMux(), db: db}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	st := store.New(a.db)

	ah := handlers.NewAuthHandler(a.db)
	ih := handlers.NewInvoiceHandler(st)
	qh := handlers.NewQuoteHandler(st)
	ch := handlers.NewClientHandler(a.db, st)
	ph := handlers.NewProductHandler(a.db, st)

	// Public routes
	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("POST /auth/register", ah.Register)
	a.mux.HandleFunc("POST /auth/login", ah.Login)

	// Invoices
	a.mux.Handle("GET /invoices", a.protect(ih.List))
	a.mux.Handle("POST /invoices", a.protect(ih.Create))
	a.mux.Handle("DELETE /invoices/{id}", a.protect(ih.Delete))
	a.mux.Handle("PATCH /invoices/{id}/status", a.protect(ih.ChangeStatus))
	a.mux.Handle("GET /invoices/{id}/pdf", a.protect(ih.PDF))

	// Devis (quotes)
	a.mux.Handle("GET /devis", a.protect(qh.List))
	a.mux.Handle("POST /devis", a.protect(qh.Create))
	a.mux.Handle("DELETE /devis/{id}", a.protect(qh.Delete))
	a.mux.Handle("PATCH /devis/{id}/status", a.protect(qh.ChangeStatus))
	a.mux.Handle("POST /devis/{id}/convert", a.protect(qh.Convert))
	a.mux.Handle("GET /devis/{id}/pdf", a.protect(qh.PDF))

	// Clients
	a.mux.Handle("GET /clients", a.protect(ch.List))
	a.mux.Handle("POST /clients", a.protect(ch.Create))
	a.mux.Handle("PUT /clients/{id}", a.protect(ch.Update))
	a.mux.Handle("DELETE /clients/{id}", a.protect(ch.Delete))

	// Products (catalog)
	a.mux.Handle("GET /products", a.protect(ph.List))
	a.mux.Handle("POST /products", a.protect(ph.Create))
	a.mux.Handle("PUT /products/{id}", a.protect(ph.Update))
	a.mux.Handle("DELETE /products/{id}", a.protect(ph.Delete))

	// Users
	a.mux.Handle("GET /users", a.protect(ah.Users))
}

func (a *App) protect(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, http.StatusOK, map[string]string{"status": "ok"})
}
