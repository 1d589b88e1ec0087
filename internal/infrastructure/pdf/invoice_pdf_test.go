package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/domain/entity"
	"github.com/jhoicas/wellness-admin/internal/infrastructure/pdf"
)

func TestGenerate_ProducePDF(t *testing.T) {
	issued := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		Number:       "INV-0042",
		CustomerName: "Ana Pérez",
		Status:       "paid",
		Currency:     "USD",
		IssuedAt:     &issued,
		Items: []entity.InvoiceItem{
			{Description: "Programa 12 semanas", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("199.90")},
			{Description: "Sesión extra", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(25)},
		},
		Subtotal: decimal.RequireFromString("249.90"),
		Total:    decimal.RequireFromString("249.90"),
		Notes:    "Gracias por tu confianza",
	}

	out, err := pdf.NewInvoiceGenerator().Generate(ports.InvoiceDocument{
		Issuer:  ports.Issuer{Name: "Wellness Studio", Email: "hola@example.com"},
		Invoice: inv,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SinFactura(t *testing.T) {
	_, err := pdf.NewInvoiceGenerator().Generate(ports.InvoiceDocument{})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", pdf.FormatMoney(decimal.Zero))
	assert.Equal(t, "999.50", pdf.FormatMoney(decimal.RequireFromString("999.5")))
	assert.Equal(t, "1,234,567.50", pdf.FormatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1,000.00", pdf.FormatMoney(decimal.NewFromInt(-1000)))
}
