package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/internal/domain/entity"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// InvoiceSource lectura tipada de registros (la implementa el caso de uso de recursos).
type InvoiceSource interface {
	Show(ctx context.Context, key, id string) (any, error)
}

// PDFUseCase genera el PDF de una factura a partir de los datos de la API.
type PDFUseCase struct {
	source    InvoiceSource
	generator ports.InvoicePDFGenerator
	issuer    ports.Issuer
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(source InvoiceSource, generator ports.InvoicePDFGenerator, issuer ports.Issuer) *PDFUseCase {
	return &PDFUseCase{source: source, generator: generator, issuer: issuer}
}

// DownloadInvoicePDF devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound / APIError 404  si la factura no existe.
//   - domain.ErrInvalidInput             si la factura es un borrador sin número.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	rec, err := uc.source.Show(ctx, resource.Invoices, invoiceID)
	if err != nil {
		return nil, "", err
	}
	inv, ok := rec.(*entity.Invoice)
	if !ok || inv == nil {
		return nil, "", fmt.Errorf("pdf: tipo inesperado %T", rec)
	}

	// ── 2. Solo facturas numeradas ────────────────────────────────────────────
	if strings.TrimSpace(inv.Number) == "" {
		return nil, "", fmt.Errorf("%w: la factura %s está en estado %s y aún no tiene número",
			domain.ErrInvalidInput, invoiceID, inv.Status)
	}

	// ── 3. Generar ────────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.Generate(ports.InvoiceDocument{Issuer: uc.issuer, Invoice: inv})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfBytes, "factura-" + safeFilename(inv.Number) + ".pdf", nil
}

func safeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, s)
}
