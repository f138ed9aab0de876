package billing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LineItem is one editable row of a document draft.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Total is the derived line amount. Never stored, always recomputed.
func (it LineItem) Total() float64 { return it.Quantity * it.UnitPrice }

// NewLineItem returns the default row: empty description, quantity 1, price 0.
func NewLineItem() LineItem { return LineItem{Quantity: 1} }

// ItemField names an editable LineItem field for Ledger.UpdateItem.
type ItemField string

const (
	FieldDescription ItemField = "description"
	FieldQuantity    ItemField = "quantity"
	FieldUnitPrice   ItemField = "unitPrice"
)

// Ledger holds the in-progress line items and tax rate for a document being
// drafted. It is exclusively owned by one editing session and mutated in
// place; nothing is persisted until ToDraft succeeds and the caller submits.
type Ledger struct {
	Items   []LineItem
	TaxRate float64 // percent, 0..100
}

// NewLedger starts with a single default item, matching a fresh form.
func NewLedger() *Ledger {
	return &Ledger{Items: []LineItem{NewLineItem()}}
}

// AddItem appends a default line item.
func (l *Ledger) AddItem() {
	l.Items = append(l.Items, NewLineItem())
}

// RemoveItem removes the item at index. Removing the sole remaining item is
// a deliberate no-op, not an error: a draft always keeps at least one row.
// Out-of-range indexes are ignored as well.
func (l *Ledger) RemoveItem(index int) {
	if len(l.Items) <= 1 || index < 0 || index >= len(l.Items) {
		return
	}
	l.Items = append(l.Items[:index], l.Items[index+1:]...)
}

// UpdateItem applies a raw edit to one field of the item at index.
// Description is stored verbatim. Quantity and unit price are parsed as
// floats; input that fails to parse degrades to 0 rather than erroring.
func (l *Ledger) UpdateItem(index int, field ItemField, value string) {
	if index < 0 || index >= len(l.Items) {
		return
	}
	switch field {
	case FieldDescription:
		l.Items[index].Description = value
	case FieldQuantity:
		l.Items[index].Quantity = parseAmount(value)
	case FieldUnitPrice:
		l.Items[index].UnitPrice = parseAmount(value)
	}
}

// ApplyCatalogEntry fills the item at index from a catalog entry: the
// description and unit price are overwritten, the quantity is kept.
func (l *Ledger) ApplyCatalogEntry(index int, entry CatalogEntry) {
	if index < 0 || index >= len(l.Items) {
		return
	}
	l.Items[index].Description = entry.Name
	l.Items[index].UnitPrice = entry.Price
}

// Subtotal is the sum of line totals at full precision.
func (l *Ledger) Subtotal() float64 {
	var sum float64
	for _, it := range l.Items {
		sum += it.Total()
	}
	return sum
}

// TaxAmount is Subtotal scaled by the tax rate percent.
func (l *Ledger) TaxAmount() float64 {
	return l.Subtotal() * l.TaxRate / 100
}

// Total is Subtotal plus TaxAmount.
func (l *Ledger) Total() float64 {
	return l.Subtotal() + l.TaxAmount()
}

// ToDraft validates the ledger against the header and returns the
// submission payload with totals captured. The first failing field is
// reported as a *ValidationError: client_name, then items[N].description in
// item order.
func (l *Ledger) ToDraft(h Header) (DocumentDraft, error) {
	if strings.TrimSpace(h.ClientName) == "" {
		return DocumentDraft{}, &ValidationError{Field: "client_name"}
	}
	for i, it := range l.Items {
		if strings.TrimSpace(it.Description) == "" {
			return DocumentDraft{}, &ValidationError{Field: fmt.Sprintf("items[%d].description", i)}
		}
	}
	items := make([]LineItem, len(l.Items))
	copy(items, l.Items)
	h.TaxRate = l.TaxRate
	return DocumentDraft{
		Header:    h,
		Items:     items,
		Subtotal:  l.Subtotal(),
		TaxAmount: l.TaxAmount(),
		Total:     l.Total(),
	}, nil
}

// parseAmount mirrors the form behavior: anything that is not a number
// becomes 0.
func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round2 rounds to two decimals for presentation. Internal computation
// keeps full precision so repeated recomputation does not compound error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
