package billing

import "context"

// CatalogEntry is a reusable product/service template used to fill a line item.
type CatalogEntry struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ClientEntry is an address-book client used to fill a draft header.
type ClientEntry struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Company string `json:"company"`
}

// DocumentStore is the external persistence collaborator. The core never
// sees transport detail; implementations own endpoints, drivers and retries.
type DocumentStore interface {
	// Create persists a draft as a new document of the given variant. The
	// store assigns id, number, createdAt and the variant's initial status.
	Create(ctx context.Context, variant Variant, draft DocumentDraft) (Document, error)

	// UpdateStatus persists a status change and returns the updated document.
	UpdateStatus(ctx context.Context, id uint, status Status) (Document, error)

	// MarkConverted sets the quote's status to accepted and records the
	// invoice it was converted into, returning the updated quote.
	MarkConverted(ctx context.Context, quoteID, invoiceID uint) (Document, error)

	Get(ctx context.Context, variant Variant, id uint) (Document, error)
	List(ctx context.Context, variant Variant) ([]Document, error)
	Delete(ctx context.Context, variant Variant, id uint) error

	FetchCatalog(ctx context.Context) ([]CatalogEntry, error)
	FetchClients(ctx context.Context) ([]ClientEntry, error)
}
