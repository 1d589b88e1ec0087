package entity

// PaymentMethod medio de pago aceptado en facturas.
type PaymentMethod struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Provider string  `json:"provider"`
	Type     string  `json:"type"` // card, bank_transfer, cash, wallet
	IsActive bool    `json:"is_active"`
	Actions  Actions `json:"actions"`
}
