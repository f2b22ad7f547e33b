package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid invoice status")
)

// Request модели

// CreateInvoiceRequest запрос на выставление счета
type CreateInvoiceRequest struct {
	UserID    int64   `json:"userId"`
	BookingID *int64  `json:"bookingId,omitempty"`
	Amount    float64 `json:"amount"`
	Details   string  `json:"details"`
}

// UpdateStatusRequest запрос на смену статуса счета
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListInvoicesRequest запрос на получение списка счетов
type ListInvoicesRequest struct {
	UserID *int64  `json:"userId,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// InvoiceResponse ответ с данными счета
type InvoiceResponse struct {
	ID        int64   `json:"id"`
	Number    string  `json:"number"`
	UserID    int64   `json:"userId"`
	BookingID *int64  `json:"bookingId,omitempty"`
	Amount    float64 `json:"amount"`
	Details   string  `json:"details"`
	Status    string  `json:"status"`

	IssuedAt time.Time  `json:"issuedAt"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InvoiceListResponse ответ со списком счетов
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// Методы конвертации

// FromDomainInvoice конвертирует domain модель в DTO
func FromDomainInvoice(inv *domain.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		UserID:    inv.UserID,
		BookingID: inv.BookingID,
		Amount:    inv.Amount,
		Details:   inv.Details,
		Status:    string(inv.Status),
		IssuedAt:  inv.IssuedAt,
		PaidAt:    inv.PaidAt,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// FromDomainInvoiceList конвертирует список domain моделей в DTO
func FromDomainInvoiceList(invoices []*domain.Invoice) *InvoiceListResponse {
	resp := &InvoiceListResponse{
		Invoices: make([]InvoiceResponse, 0, len(invoices)),
	}
	for _, inv := range invoices {
		if invResp := FromDomainInvoice(inv); invResp != nil {
			resp.Invoices = append(resp.Invoices, *invResp)
		}
	}
	return resp
}

// ToDomainInvoiceStatus конвертирует строку в domain.InvoiceStatus с валидацией
func ToDomainInvoiceStatus(status string) (domain.InvoiceStatus, error) {
	s := domain.InvoiceStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
