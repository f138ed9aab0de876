// Package pdf renders invoices and quotes as PDF documents using maroto.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// DocumentItem is one rendered line.
type DocumentItem struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// ClientData identifies the billed party.
type ClientData struct {
	Name    string
	Address string
	Email   string
}

// DocumentData is the full input for rendering one invoice or quote.
type DocumentData struct {
	Title     string // "INVOICE" or "QUOTE"
	Number    string
	Date      string
	DueDate   string
	Client    ClientData
	Items     []DocumentItem
	Subtotal  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64
	Notes     string
	Currency  string
}

// DocumentPDF renders the document and returns the PDF bytes.
func DocumentPDF(data DocumentData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	cur := data.Currency
	if cur == "" {
		cur = "DH"
	}

	m.AddRow(12,
		text.NewCol(6, data.Title, props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewCol(6, data.Number, props.Text{Size: 12, Align: align.Right, Top: 3}),
	)
	m.AddRow(6,
		text.NewCol(6, "Date: "+data.Date, props.Text{Size: 9}),
		text.NewCol(6, dueLine(data.DueDate), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRows(line.NewRow(4))

	m.AddRow(6, text.NewCol(12, "Billed to", props.Text{Size: 9, Style: fontstyle.Bold}))
	m.AddRow(5, text.NewCol(12, data.Client.Name, props.Text{Size: 10}))
	if data.Client.Address != "" {
		m.AddRow(5, text.NewCol(12, data.Client.Address, props.Text{Size: 9}))
	}
	if data.Client.Email != "" {
		m.AddRow(5, text.NewCol(12, data.Client.Email, props.Text{Size: 9}))
	}
	m.AddRows(line.NewRow(4))

	header := props.Text{Size: 9, Style: fontstyle.Bold}
	m.AddRow(7,
		text.NewCol(6, "Description", header),
		text.NewCol(2, "Qty", withAlign(header, align.Right)),
		text.NewCol(2, "Unit price", withAlign(header, align.Right)),
		text.NewCol(2, "Total", withAlign(header, align.Right)),
	)
	cell := props.Text{Size: 9}
	for _, it := range data.Items {
		m.AddRow(6,
			text.NewCol(6, it.Description, cell),
			text.NewCol(2, trimFloat(it.Quantity), withAlign(cell, align.Right)),
			text.NewCol(2, money(it.UnitPrice, cur), withAlign(cell, align.Right)),
			text.NewCol(2, money(it.Total, cur), withAlign(cell, align.Right)),
		)
	}
	m.AddRows(line.NewRow(4))

	summary := props.Text{Size: 9, Align: align.Right}
	m.AddRow(5,
		text.NewCol(10, "Subtotal", summary),
		text.NewCol(2, money(data.Subtotal, cur), summary),
	)
	m.AddRow(5,
		text.NewCol(10, fmt.Sprintf("Tax (%s%%)", trimFloat(data.TaxRate)), summary),
		text.NewCol(2, money(data.TaxAmount, cur), summary),
	)
	m.AddRow(7,
		text.NewCol(10, "Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, money(data.Total, cur), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	if data.Notes != "" {
		m.AddRows(line.NewRow(6))
		m.AddRow(5, text.NewCol(12, "Notes", props.Text{Size: 9, Style: fontstyle.Bold}))
		m.AddRow(5, text.NewCol(12, data.Notes, props.Text{Size: 9}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func dueLine(due string) string {
	if due == "" {
		return ""
	}
	return "Due: " + due
}

func money(v float64, cur string) string {
	return fmt.Sprintf("%.2f %s", v, cur)
}

// trimFloat drops a trailing ".00" so whole quantities render as integers.
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func withAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}
