package ports

import "github.com/jhoicas/wellness-admin/internal/domain/entity"

// Issuer datos del emisor impresos en la cabecera de la factura.
type Issuer struct {
	Name    string
	Email   string
	Address string
}

// InvoiceDocument todo lo necesario para imprimir una factura.
type InvoiceDocument struct {
	Issuer  Issuer
	Invoice *entity.Invoice
}

// InvoicePDFGenerator renderiza una factura a PDF.
type InvoicePDFGenerator interface {
	Generate(doc InvoiceDocument) ([]byte, error)
}
