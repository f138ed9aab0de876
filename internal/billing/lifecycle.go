package billing

import (
	"context"
	"fmt"
)

// Lifecycle enforces legal status transitions per variant and performs the
// one-way quote to invoice conversion against the document store.
type Lifecycle struct {
	store DocumentStore
}

func NewLifecycle(store DocumentStore) *Lifecycle {
	return &Lifecycle{store: store}
}

// ChangeStatus validates newStatus against the document's variant and
// persists it via the store. A converted quote is locked: the request fails
// with ErrDocumentLocked regardless of the requested status. Concurrent
// requests for the same document are not serialized here; the last store
// write wins.
func (c *Lifecycle) ChangeStatus(ctx context.Context, doc Document, newStatus Status) (Document, error) {
	if !doc.Variant.ValidStatus(newStatus) {
		return Document{}, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, newStatus, doc.Variant)
	}
	if doc.Converted() {
		return Document{}, ErrDocumentLocked
	}
	updated, err := c.store.UpdateStatus(ctx, doc.ID, newStatus)
	if err != nil {
		return Document{}, fmt.Errorf("update status: %w", err)
	}
	return updated, nil
}

// ConversionResult reports both sides of a quote conversion.
type ConversionResult struct {
	Invoice Document
	Quote   Document
}

// ConvertToInvoice creates a new invoice from the quote and marks the quote
// as converted. The invoice carries a verbatim copy of the quote's header,
// items and captured totals. The two store writes happen in a fixed order,
// invoice creation first, so a quote is never marked converted without its
// invoice existing. If the quote update fails after the invoice was created
// the result still carries the invoice and the error is returned: the store
// offers no cross-entity transaction, and the gap is surfaced, not hidden.
//
// The precondition is re-checked here even though callers also guard it,
// because the caller-side check can race with another conversion.
func (c *Lifecycle) ConvertToInvoice(ctx context.Context, quote Document) (ConversionResult, error) {
	if quote.Variant != VariantQuote {
		return ConversionResult{}, ErrNotAQuote
	}
	if quote.Converted() {
		return ConversionResult{}, ErrAlreadyConverted
	}

	invoice, err := c.store.Create(ctx, VariantInvoice, quote.Draft())
	if err != nil {
		return ConversionResult{}, fmt.Errorf("create invoice: %w", err)
	}

	updated, err := c.store.MarkConverted(ctx, quote.ID, invoice.ID)
	if err != nil {
		return ConversionResult{Invoice: invoice}, fmt.Errorf("mark quote converted: %w", err)
	}
	return ConversionResult{Invoice: invoice, Quote: updated}, nil
}
