package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura emitida a un cliente. Los totales los calcula el servidor.
type Invoice struct {
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	UserID        int64           `json:"user_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Status        string          `json:"status"` // draft, pending, paid, overdue, cancelled
	Currency      string          `json:"currency"`
	IssuedAt      *time.Time      `json:"issued_at,omitempty"`
	DueAt         *time.Time      `json:"due_at,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Actions       Actions         `json:"actions"`
}

// InvoiceItem línea de factura.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal cantidad × precio unitario.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
