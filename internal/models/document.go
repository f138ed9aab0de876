package models

import "time"

// Document is a persisted invoice or quote. The client identity is copied
// into the row at creation time, and the totals are the ones captured when
// the draft was submitted; they are never recomputed from a stale client
// view afterwards.
type Document struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Variant string `gorm:"size:20;not null;index" json:"-"` // invoice | quote
	Number  string `gorm:"size:50;uniqueIndex" json:"number"`
	Status  string `gorm:"size:20;not null" json:"status"`

	ClientName    string  `gorm:"size:255;not null" json:"clientName"`
	ClientEmail   string  `gorm:"size:255" json:"clientEmail,omitempty"`
	ClientAddress string  `gorm:"size:500" json:"clientAddress,omitempty"`
	DueDate       string  `gorm:"size:10" json:"dueDate,omitempty"`
	Notes         string  `gorm:"type:text" json:"notes,omitempty"`
	TaxRate       float64 `json:"taxRate"`

	Subtotal  float64 `gorm:"not null" json:"subtotal"`
	TaxAmount float64 `gorm:"not null" json:"taxAmount"`
	Total     float64 `gorm:"not null" json:"total"`

	// Quote only. Non-zero once the quote has been converted, which locks
	// it against further status changes.
	ConvertedToInvoiceID uint `gorm:"index" json:"convertedToInvoice,omitempty"`

	Items []DocumentItem `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// DocumentItem is one line of a persisted document. Position preserves the
// insertion order of the draft, which defines display and PDF order.
type DocumentItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	DocumentID  uint    `gorm:"index;not null" json:"-"`
	Position    int     `gorm:"not null;default:0" json:"-"`
	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    float64 `gorm:"type:decimal(10,3);not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}

// Total is the derived line amount.
func (it *DocumentItem) Total() float64 {
	return it.Quantity * it.UnitPrice
}
