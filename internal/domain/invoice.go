package domain

import "time"

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusUnpaid: {InvoiceStatusPaid, InvoiceStatusVoid},
	InvoiceStatusPaid:   {},
	InvoiceStatusVoid:   {},
}

// IsValid returns true if the status is a known invoice status
func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// CanTransitionTo returns true if the transition s -> next is allowed
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Invoice счёт, выставленный клиенту
type Invoice struct {
	ID        int64
	Number    string // Уникальный номер вида INV-XXXXXXXX
	UserID    int64
	BookingID *int64
	Amount    float64
	Details   string
	Status    InvoiceStatus

	IssuedAt time.Time
	PaidAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
