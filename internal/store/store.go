package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/invoice-admin/internal/billing"
	"github.com/diewo77/invoice-admin/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a document id does not exist for the variant.
var ErrNotFound = errors.New("document not found")

// Store implements billing.DocumentStore on top of gorm.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists the draft as a new document. The row gets a store-assigned
// number (INV-YYYY-NNNN or DEV-YYYY-NNNN), the variant's initial status, and
// the totals captured in the draft, stored as-is.
func (s *Store) Create(ctx context.Context, variant billing.Variant, draft billing.DocumentDraft) (billing.Document, error) {
	doc := models.Document{
		Variant:       string(variant),
		Status:        string(variant.InitialStatus()),
		ClientName:    draft.ClientName,
		ClientEmail:   draft.ClientEmail,
		ClientAddress: draft.ClientAddress,
		DueDate:       draft.DueDate,
		Notes:         draft.Notes,
		TaxRate:       draft.TaxRate,
		Subtotal:      draft.Subtotal,
		TaxAmount:     draft.TaxAmount,
		Total:         draft.Total,
	}
	for i, it := range draft.Items {
		doc.Items = append(doc.Items, models.DocumentItem{
			Position:    i,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextNumber(tx, variant)
		if err != nil {
			return err
		}
		doc.Number = number
		return tx.Create(&doc).Error
	})
	if err != nil {
		return billing.Document{}, fmt.Errorf("create %s: %w", variant, err)
	}
	return toBilling(doc), nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uint, status billing.Status) (billing.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).Preload("Items", itemOrder).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Document{}, ErrNotFound
		}
		return billing.Document{}, err
	}
	if err := s.db.WithContext(ctx).Model(&doc).Update("status", string(status)).Error; err != nil {
		return billing.Document{}, err
	}
	doc.Status = string(status)
	return toBilling(doc), nil
}

func (s *Store) MarkConverted(ctx context.Context, quoteID, invoiceID uint) (billing.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).Preload("Items", itemOrder).
		Where("variant = ?", string(billing.VariantQuote)).
		First(&doc, quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Document{}, ErrNotFound
		}
		return billing.Document{}, err
	}
	updates := map[string]any{
		"status":                  string(billing.StatusAccepted),
		"converted_to_invoice_id": invoiceID,
	}
	if err := s.db.WithContext(ctx).Model(&doc).Updates(updates).Error; err != nil {
		return billing.Document{}, err
	}
	doc.Status = string(billing.StatusAccepted)
	doc.ConvertedToInvoiceID = invoiceID
	return toBilling(doc), nil
}

func (s *Store) Get(ctx context.Context, variant billing.Variant, id uint) (billing.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).Preload("Items", itemOrder).
		Where("variant = ?", string(variant)).
		First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Document{}, ErrNotFound
		}
		return billing.Document{}, err
	}
	return toBilling(doc), nil
}

func (s *Store) List(ctx context.Context, variant billing.Variant) ([]billing.Document, error) {
	var docs []models.Document
	err := s.db.WithContext(ctx).Preload("Items", itemOrder).
		Where("variant = ?", string(variant)).
		Order("created_at DESC, id DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	out := make([]billing.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, toBilling(d))
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, variant billing.Variant, id uint) error {
	res := s.db.WithContext(ctx).
		Where("variant = ?", string(variant)).
		Delete(&models.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) FetchCatalog(ctx context.Context) ([]billing.CatalogEntry, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	out := make([]billing.CatalogEntry, 0, len(products))
	for _, p := range products {
		out = append(out, billing.CatalogEntry{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out, nil
}

func (s *Store) FetchClients(ctx context.Context) ([]billing.ClientEntry, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("name").Find(&clients).Error; err != nil {
		return nil, err
	}
	out := make([]billing.ClientEntry, 0, len(clients))
	for _, c := range clients {
		out = append(out, billing.ClientEntry{
			ID:      c.ID,
			Name:    c.Name,
			Email:   c.Email,
			Address: c.Address,
			Company: c.Company,
		})
	}
	return out, nil
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

var numberPrefixes = map[billing.Variant]string{
	billing.VariantInvoice: "INV",
	billing.VariantQuote:   "DEV",
}

// nextNumber assigns the display number: INV-2025-0001, DEV-2025-0001, one
// sequence per variant and year. The suffix is one past the highest suffix
// ever assigned, not a row count, so deleted documents leave gaps instead of
// making the next create collide with the unique index on number.
func nextNumber(tx *gorm.DB, variant billing.Variant) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", numberPrefixes[variant], year)
	var numbers []string
	err := tx.Model(&models.Document{}).
		Where("variant = ? AND number LIKE ?", string(variant), prefix+"%").
		Pluck("number", &numbers).Error
	if err != nil {
		return "", err
	}
	highest := 0
	for _, n := range numbers {
		if suffix, err := strconv.Atoi(strings.TrimPrefix(n, prefix)); err == nil && suffix > highest {
			highest = suffix
		}
	}
	return fmt.Sprintf("%s%04d", prefix, highest+1), nil
}

func toBilling(doc models.Document) billing.Document {
	out := billing.Document{
		ID:      doc.ID,
		Number:  doc.Number,
		Variant: billing.Variant(doc.Variant),
		Status:  billing.Status(doc.Status),
		Header: billing.Header{
			ClientName:    doc.ClientName,
			ClientEmail:   doc.ClientEmail,
			ClientAddress: doc.ClientAddress,
			DueDate:       doc.DueDate,
			Notes:         doc.Notes,
			TaxRate:       doc.TaxRate,
		},
		Subtotal:             doc.Subtotal,
		TaxAmount:            doc.TaxAmount,
		Total:                doc.Total,
		ConvertedToInvoiceID: doc.ConvertedToInvoiceID,
		CreatedAt:            doc.CreatedAt,
	}
	for _, it := range doc.Items {
		out.Items = append(out.Items, billing.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
