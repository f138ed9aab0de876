package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/invoice-admin/httpx"
	"github.com/diewo77/invoice-admin/internal/billing"
	"github.com/diewo77/invoice-admin/internal/store"
	"github.com/diewo77/invoice-admin/pdf"
	"github.com/diewo77/invoice-admin/validation"
)

// DocumentHandler serves one document variant. The same handler backs both
// /invoices and /devis; only the variant and the display vocabulary differ.
type DocumentHandler struct {
	variant   billing.Variant
	store     billing.DocumentStore
	lifecycle *billing.Lifecycle

	numberKey string // JSON field the SPA reads the display number from
	label     string // user-facing noun for messages
	pdfTitle  string
}

func NewInvoiceHandler(s billing.DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		variant:   billing.VariantInvoice,
		store:     s,
		lifecycle: billing.NewLifecycle(s),
		numberKey: "invoiceNumber",
		label:     "Invoice",
		pdfTitle:  "INVOICE",
	}
}

func NewQuoteHandler(s billing.DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		variant:   billing.VariantQuote,
		store:     s,
		lifecycle: billing.NewLifecycle(s),
		numberKey: "devisNumber",
		label:     "Devis",
		pdfTitle:  "DEVIS",
	}
}

// List: GET /invoices or /devis
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.List(r.Context(), h.variant)
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, h.docJSON(d))
	}
	httpx.OK(w, http.StatusOK, out)
}

// rawNumber tolerates the loose typing of the form payload: quantity, unit
// price and tax rate may arrive as JSON numbers or as strings. The value is
// handed to the ledger verbatim, where non-numeric input degrades to 0.
type rawNumber string

func (n *rawNumber) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "null" {
		s = ""
	}
	*n = rawNumber(s)
	return nil
}

type itemRequest struct {
	Description string    `json:"description"`
	Quantity    rawNumber `json:"quantity"`
	UnitPrice   rawNumber `json:"unitPrice"`
}

type createRequest struct {
	ClientName    string        `json:"clientName"`
	ClientEmail   string        `json:"clientEmail"`
	ClientAddress string        `json:"clientAddress"`
	DueDate       string        `json:"dueDate"`
	Notes         string        `json:"notes"`
	TaxRate       rawNumber     `json:"taxRate"`
	Items         []itemRequest `json:"items"`
}

// Create: POST /invoices or /devis
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ledger := billing.NewLedger()
	for i, it := range req.Items {
		if i > 0 {
			ledger.AddItem()
		}
		ledger.UpdateItem(i, billing.FieldDescription, it.Description)
		ledger.UpdateItem(i, billing.FieldQuantity, string(it.Quantity))
		ledger.UpdateItem(i, billing.FieldUnitPrice, string(it.UnitPrice))
	}
	ledger.TaxRate = parseTaxRate(string(req.TaxRate))

	v := make(validation.Violations)
	validation.RangeFloat("taxRate", ledger.TaxRate, 0, 100, v)
	validation.Email("clientEmail", req.ClientEmail, v)
	if !v.Empty() {
		field, _, _ := v.First("taxRate", "clientEmail")
		httpx.Fail(w, http.StatusBadRequest, "Invalid value for "+field)
		return
	}

	draft, err := ledger.ToDraft(billing.Header{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientAddress: req.ClientAddress,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
	if err != nil {
		var verr *billing.ValidationError
		if errors.As(err, &verr) {
			httpx.Fail(w, http.StatusBadRequest, validationMessage(verr))
			return
		}
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.store.Create(r.Context(), h.variant, draft)
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to create "+strings.ToLower(h.label))
		return
	}
	httpx.OK(w, http.StatusCreated, h.docJSON(doc))
}

// ChangeStatus: PATCH /invoices/{id}/status or /devis/{id}/status
func (h *DocumentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	updated, err := h.lifecycle.ChangeStatus(r.Context(), doc, billing.Status(body.Status))
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidStatus):
			httpx.Fail(w, http.StatusBadRequest, fmt.Sprintf("Invalid status %q", body.Status))
		case errors.Is(err, billing.ErrDocumentLocked):
			httpx.Fail(w, http.StatusConflict, "Devis has been converted to an invoice and can no longer change status")
		default:
			httpx.Fail(w, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}
	httpx.OK(w, http.StatusOK, h.docJSON(updated))
}

// Convert: POST /devis/{id}/convert. One-way: the new invoice is independent
// and the devis is locked afterwards.
func (h *DocumentHandler) Convert(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	result, err := h.lifecycle.ConvertToInvoice(r.Context(), doc)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrAlreadyConverted):
			httpx.Fail(w, http.StatusConflict, "Devis has already been converted to an invoice")
		case result.Invoice.ID != 0:
			// Invoice was created but the devis update failed. Surface the
			// inconsistency instead of pretending the conversion succeeded.
			httpx.Fail(w, http.StatusInternalServerError,
				fmt.Sprintf("Invoice %s was created but the devis could not be marked converted", result.Invoice.Number))
		default:
			httpx.Fail(w, http.StatusInternalServerError, "Failed to convert devis")
		}
		return
	}
	inv := NewInvoiceHandler(h.store)
	httpx.OK(w, http.StatusOK, map[string]any{
		"invoice": inv.docJSON(result.Invoice),
		"devis":   h.docJSON(result.Quote),
	})
}

// Delete: DELETE /invoices/{id} or /devis/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), h.variant, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, h.label+" not found")
			return
		}
		httpx.Fail(w, http.StatusInternalServerError, "Failed to delete "+strings.ToLower(h.label))
		return
	}
	httpx.OK(w, http.StatusOK, nil)
}

// PDF: GET /invoices/{id}/pdf or /devis/{id}/pdf
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.load(w, r)
	if !ok {
		return
	}
	data := pdf.DocumentData{
		Title:   h.pdfTitle,
		Number:  doc.Number,
		Date:    doc.CreatedAt.Format("02/01/2006"),
		DueDate: doc.DueDate,
		Client: pdf.ClientData{
			Name:    doc.ClientName,
			Address: doc.ClientAddress,
			Email:   doc.ClientEmail,
		},
		Subtotal:  billing.Round2(doc.Subtotal),
		TaxRate:   doc.TaxRate,
		TaxAmount: billing.Round2(doc.TaxAmount),
		Total:     billing.Round2(doc.Total),
		Notes:     doc.Notes,
	}
	for _, it := range doc.Items {
		data.Items = append(data.Items, pdf.DocumentItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       billing.Round2(it.Total()),
		})
	}
	bytesOut, err := pdf.DocumentPDF(data)
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", strings.ToLower(h.label)+"-"+doc.Number+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bytesOut)
}

func (h *DocumentHandler) load(w http.ResponseWriter, r *http.Request) (billing.Document, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return billing.Document{}, false
	}
	doc, err := h.store.Get(r.Context(), h.variant, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, h.label+" not found")
			return billing.Document{}, false
		}
		httpx.Fail(w, http.StatusInternalServerError, "Failed to load "+strings.ToLower(h.label))
		return billing.Document{}, false
	}
	return doc, true
}

func (h *DocumentHandler) docJSON(d billing.Document) map[string]any {
	m := map[string]any{
		"id":            d.ID,
		h.numberKey:     d.Number,
		"status":        d.Status,
		"clientName":    d.ClientName,
		"clientEmail":   d.ClientEmail,
		"clientAddress": d.ClientAddress,
		"dueDate":       d.DueDate,
		"notes":         d.Notes,
		"taxRate":       d.TaxRate,
		"items":         d.Items,
		"subtotal":      d.Subtotal,
		"taxAmount":     d.TaxAmount,
		"total":         d.Total,
		"createdAt":     d.CreatedAt,
	}
	if h.variant == billing.VariantQuote && d.ConvertedToInvoiceID != 0 {
		m["convertedToInvoice"] = d.ConvertedToInvoiceID
	}
	return m
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		httpx.Fail(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseTaxRate mirrors the ledger's numeric policy for the header field.
func parseTaxRate(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func validationMessage(err *billing.ValidationError) string {
	if err.Field == "client_name" {
		return "Client name is required"
	}
	return "All items must have a description"
}
