package billing

import "time"

// Variant distinguishes the two persisted document kinds.
type Variant string

const (
	VariantInvoice Variant = "invoice"
	VariantQuote   Variant = "quote"
)

// Status is a document lifecycle state. The legal set depends on the variant.
type Status string

const (
	// Invoice statuses.
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"

	// Quote statuses.
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// InitialStatus returns the status a freshly created document starts in.
func (v Variant) InitialStatus() Status {
	if v == VariantQuote {
		return StatusDraft
	}
	return StatusPending
}

var statusSets = map[Variant][]Status{
	VariantInvoice: {StatusPending, StatusPaid, StatusOverdue, StatusCancelled},
	VariantQuote:   {StatusDraft, StatusSent, StatusAccepted, StatusRejected},
}

// ValidStatus reports whether s belongs to the variant's status set.
// Transitions inside the set are unrestricted; only membership is checked.
func (v Variant) ValidStatus(s Status) bool {
	for _, allowed := range statusSets[v] {
		if s == allowed {
			return true
		}
	}
	return false
}

// Statuses returns the variant's full status set, in display order.
func (v Variant) Statuses() []Status {
	set := statusSets[v]
	out := make([]Status, len(set))
	copy(out, set)
	return out
}

// Header carries the non-item fields of a document being drafted.
type Header struct {
	ClientName    string
	ClientEmail   string
	ClientAddress string
	DueDate       string
	Notes         string
	TaxRate       float64 // percent, 0..100
}

// DocumentDraft is the validated, immutable payload produced by a Ledger on
// submit. Totals are captured at draft time and never recomputed afterwards.
type DocumentDraft struct {
	Header
	Items     []LineItem
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Document is a persisted invoice or quote as seen by the core. Identity and
// number are assigned by the store; totals are the ones captured at creation.
type Document struct {
	ID      uint
	Number  string
	Variant Variant
	Status  Status
	Header
	Items     []LineItem
	Subtotal  float64
	TaxAmount float64
	Total     float64

	// ConvertedToInvoiceID is set once on quotes and locks the quote against
	// any further status change. Zero means not converted.
	ConvertedToInvoiceID uint

	CreatedAt time.Time
}

// Converted reports whether the document is a quote that has been turned
// into an invoice.
func (d Document) Converted() bool {
	return d.Variant == VariantQuote && d.ConvertedToInvoiceID != 0
}

// Draft returns a creation payload copied verbatim from the document:
// header, items and captured totals, with no recomputation. Used by the
// quote conversion so the invoice matches what the client was quoted.
func (d Document) Draft() DocumentDraft {
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return DocumentDraft{
		Header:    d.Header,
		Items:     items,
		Subtotal:  d.Subtotal,
		TaxAmount: d.TaxAmount,
		Total:     d.Total,
	}
}
