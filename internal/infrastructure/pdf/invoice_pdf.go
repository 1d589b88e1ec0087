// Package pdf genera la factura imprimible de un cliente del estudio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Emisor (nombre + contacto)   │  N° factura + fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Cliente: nombre + email        Estado / medio de pago       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Importe                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  Notas                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 94, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Verificar en tiempo de compilación que InvoiceGenerator implementa el puerto.
var _ ports.InvoicePDFGenerator = (*InvoiceGenerator)(nil)

// InvoiceGenerator genera facturas con Maroto v2.
type InvoiceGenerator struct{}

// NewInvoiceGenerator construye el generador.
func NewInvoiceGenerator() *InvoiceGenerator { return &InvoiceGenerator{} }

// Generate renderiza la factura y devuelve los bytes del PDF.
func (g *InvoiceGenerator) Generate(doc ports.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	if inv == nil {
		return nil, fmt.Errorf("pdf: factura vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Number, true).
		WithAuthor(doc.Issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, doc.Issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(inv)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	if inv.Notes != "" {
		m.AddRows(notesRow(inv.Notes))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(inv *entity.Invoice, issuer ports.Issuer) core.Row {
	dates := "Emitida: " + formatDate(inv.IssuedAt)
	if inv.DueAt != nil {
		dates += "   |   Vence: " + formatDate(inv.DueAt)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(contactLine(issuer), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(inv.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New(dates, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func customerRow(inv *entity.Invoice) core.Row {
	status := "Estado: " + strings.ToUpper(inv.Status)
	if inv.PaymentMethod != "" {
		status += "   |   Pago: " + inv.PaymentMethod
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(inv.CustomerName, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(inv.CustomerEmail, "—"), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(status, props.Text{Size: 8, Align: align.Right, Top: 6, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 6, align.Left),
		h("Cant.", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(inv *entity.Invoice) []core.Row {
	rows := make([]core.Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(FormatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatMoney(it.LineTotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	total := inv.Currency + " " + FormatMoney(inv.Total)
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("Impuestos:", 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value(FormatMoney(inv.Subtotal), 1),
			value(FormatMoney(inv.Tax), 7),
			text.New(strings.TrimSpace(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13}),
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New("Notas", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 7}),
	))
}

func contactLine(issuer ports.Issuer) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{issuer.Address, issuer.Email} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "   |   ")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney dos decimales con separador de miles: 1234567.5 => "1,234,567.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}
