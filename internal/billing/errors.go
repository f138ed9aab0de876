package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus is returned when a status change names a status that
	// does not belong to the document variant's status set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrDocumentLocked is returned when a status change targets a quote that
	// has already been converted to an invoice.
	ErrDocumentLocked = errors.New("document locked")

	// ErrAlreadyConverted is returned when a conversion is attempted on a
	// quote whose ConvertedToInvoiceID is already set.
	ErrAlreadyConverted = errors.New("quote already converted")

	// ErrNotAQuote is returned when a conversion is attempted on an invoice.
	ErrNotAQuote = errors.New("document is not a quote")
)

// ValidationError reports the first field that failed draft validation.
// Field is "client_name" or "items[N].description".
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s is required", e.Field)
}
