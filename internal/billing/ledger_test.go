package billing

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestNewLedger_Defaults(t *testing.T) {
	l := NewLedger()
	if len(l.Items) != 1 {
		t.Fatalf("expected 1 default item, got %d", len(l.Items))
	}
	it := l.Items[0]
	if it.Description != "" || it.Quantity != 1 || it.UnitPrice != 0 {
		t.Errorf("unexpected default item: %+v", it)
	}
}

func TestLedger_AddAndRemoveItem(t *testing.T) {
	l := NewLedger()
	l.AddItem()
	l.AddItem()
	if len(l.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(l.Items))
	}

	l.UpdateItem(1, FieldDescription, "keep me out")
	l.RemoveItem(1)
	if len(l.Items) != 2 {
		t.Fatalf("expected 2 items after removal, got %d", len(l.Items))
	}
	for _, it := range l.Items {
		if it.Description == "keep me out" {
			t.Errorf("removed item still present")
		}
	}

	// Out-of-range indexes are ignored.
	l.RemoveItem(-1)
	l.RemoveItem(5)
	if len(l.Items) != 2 {
		t.Errorf("out-of-range removal changed item count to %d", len(l.Items))
	}
}

func TestLedger_RemoveLastItemIsNoOp(t *testing.T) {
	l := NewLedger()
	l.RemoveItem(0)
	if len(l.Items) != 1 {
		t.Fatalf("sole item was removed; count = %d", len(l.Items))
	}
}

func TestLedger_UpdateItem(t *testing.T) {
	tests := []struct {
		name  string
		field ItemField
		value string
		check func(t *testing.T, it LineItem)
	}{
		{"description verbatim", FieldDescription, "  Widget  ", func(t *testing.T, it LineItem) {
			if it.Description != "  Widget  " {
				t.Errorf("description = %q", it.Description)
			}
		}},
		{"quantity parsed", FieldQuantity, "2.5", func(t *testing.T, it LineItem) {
			if it.Quantity != 2.5 {
				t.Errorf("quantity = %v", it.Quantity)
			}
		}},
		{"quantity non-numeric degrades to zero", FieldQuantity, "abc", func(t *testing.T, it LineItem) {
			if it.Quantity != 0 {
				t.Errorf("quantity = %v, want 0", it.Quantity)
			}
		}},
		{"price parsed", FieldUnitPrice, "9.99", func(t *testing.T, it LineItem) {
			if it.UnitPrice != 9.99 {
				t.Errorf("unitPrice = %v", it.UnitPrice)
			}
		}},
		{"price empty degrades to zero", FieldUnitPrice, "", func(t *testing.T, it LineItem) {
			if it.UnitPrice != 0 {
				t.Errorf("unitPrice = %v, want 0", it.UnitPrice)
			}
		}},
		{"price NaN degrades to zero", FieldUnitPrice, "NaN", func(t *testing.T, it LineItem) {
			if it.UnitPrice != 0 {
				t.Errorf("unitPrice = %v, want 0", it.UnitPrice)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			l.UpdateItem(0, tt.field, tt.value)
			tt.check(t, l.Items[0])
		})
	}
}

func TestLedger_UpdateItemOutOfRange(t *testing.T) {
	l := NewLedger()
	l.UpdateItem(3, FieldDescription, "ghost")
	l.UpdateItem(-1, FieldQuantity, "4")
	if len(l.Items) != 1 || l.Items[0].Description != "" || l.Items[0].Quantity != 1 {
		t.Errorf("out-of-range update mutated ledger: %+v", l.Items)
	}
}

func TestLedger_ApplyCatalogEntry(t *testing.T) {
	l := NewLedger()
	l.UpdateItem(0, FieldQuantity, "3")
	l.ApplyCatalogEntry(0, CatalogEntry{ID: 7, Name: "Consulting (hour)", Price: 400})
	it := l.Items[0]
	if it.Description != "Consulting (hour)" || it.UnitPrice != 400 {
		t.Errorf("catalog entry not applied: %+v", it)
	}
	if it.Quantity != 3 {
		t.Errorf("quantity should be untouched, got %v", it.Quantity)
	}
}

func TestLedger_Totals(t *testing.T) {
	l := &Ledger{
		Items: []LineItem{
			{Description: "Widget", Quantity: 2, UnitPrice: 9.99},
			{Description: "Labor", Quantity: 1, UnitPrice: 50},
		},
		TaxRate: 20,
	}
	if got := l.Subtotal(); !almostEqual(got, 69.98) {
		t.Errorf("Subtotal() = %v, want 69.98", got)
	}
	if got := l.TaxAmount(); !almostEqual(got, 13.996) {
		t.Errorf("TaxAmount() = %v, want 13.996", got)
	}
	if got := l.Total(); !almostEqual(got, 83.976) {
		t.Errorf("Total() = %v, want 83.976", got)
	}
	if got := Round2(l.Total()); got != 83.98 {
		t.Errorf("Round2(Total()) = %v, want 83.98", got)
	}
}

func TestLedger_TotalsAcrossTaxRates(t *testing.T) {
	l := &Ledger{Items: []LineItem{{Description: "x", Quantity: 3, UnitPrice: 14.5}}}
	for rate := 0.0; rate <= 100; rate += 12.5 {
		l.TaxRate = rate
		want := l.Subtotal() + l.Subtotal()*rate/100
		if got := l.Total(); !almostEqual(got, want) {
			t.Errorf("rate %v: Total() = %v, want %v", rate, got, want)
		}
	}
}

func TestLedger_ToDraft(t *testing.T) {
	l := &Ledger{
		Items: []LineItem{
			{Description: "Widget", Quantity: 2, UnitPrice: 9.99},
			{Description: "Labor", Quantity: 1, UnitPrice: 50},
		},
		TaxRate: 20,
	}
	draft, err := l.ToDraft(Header{ClientName: " Atlas Trading ", ClientEmail: "x@y.ma"})
	if err != nil {
		t.Fatalf("ToDraft: %v", err)
	}
	if draft.ClientName != " Atlas Trading " {
		t.Errorf("header should be stored verbatim, got %q", draft.ClientName)
	}
	if draft.TaxRate != 20 {
		t.Errorf("draft tax rate = %v, want 20", draft.TaxRate)
	}
	if len(draft.Items) != 2 {
		t.Fatalf("draft items = %d", len(draft.Items))
	}
	if !almostEqual(draft.Subtotal, 69.98) || !almostEqual(draft.TaxAmount, 13.996) || !almostEqual(draft.Total, 83.976) {
		t.Errorf("captured totals wrong: %v %v %v", draft.Subtotal, draft.TaxAmount, draft.Total)
	}

	// Draft items are a copy: later ledger edits must not leak in.
	l.UpdateItem(0, FieldDescription, "changed")
	if draft.Items[0].Description != "Widget" {
		t.Errorf("draft aliases ledger items")
	}
}

func TestLedger_ToDraftValidation(t *testing.T) {
	tests := []struct {
		name      string
		client    string
		items     []LineItem
		wantField string
	}{
		{"missing client name", "   ", []LineItem{{Description: "ok", Quantity: 1}}, "client_name"},
		{"empty client name", "", []LineItem{{Description: "ok", Quantity: 1}}, "client_name"},
		{"blank item description", "Client", []LineItem{
			{Description: "ok", Quantity: 1},
			{Description: "   ", Quantity: 1},
		}, "items[1].description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Ledger{Items: tt.items}
			_, err := l.ToDraft(Header{ClientName: tt.client})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{83.976, 83.98},
		{13.996, 14.00},
		{0, 0},
		{12.344, 12.34},
		{-7.556, -7.56},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
