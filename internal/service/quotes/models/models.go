package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid quote status")
)

// Request модели

// CreateQuoteRequest запрос клиента на расчёт стоимости работ
type CreateQuoteRequest struct {
	UserID       int64  `json:"userId"`
	ServiceID    int64  `json:"serviceId"`
	VehicleBrand string `json:"vehicleBrand"`
	VehiclePlate string `json:"vehiclePlate"`
	Description  string `json:"description"`
}

// ReviewQuoteRequest ответ админа на запрос: статус quoted/rejected и цена
type ReviewQuoteRequest struct {
	Status     string   `json:"status"`
	Price      *float64 `json:"price,omitempty"`
	AdminNotes *string  `json:"adminNotes,omitempty"`
}

// DecideQuoteRequest решение клиента по выставленной цене: accepted/rejected
type DecideQuoteRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// ListQuotesRequest запрос на получение списка запросов
type ListQuotesRequest struct {
	UserID *int64  `json:"userId,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// QuoteResponse ответ с данными запроса на расчёт
type QuoteResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	ServiceID    int64  `json:"serviceId"`
	VehicleBrand string `json:"vehicleBrand"`
	VehiclePlate string `json:"vehiclePlate"`
	Description  string `json:"description"`
	Status       string `json:"status"`

	Price      *float64 `json:"price,omitempty"`
	AdminNotes *string  `json:"adminNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuoteListResponse ответ со списком запросов
type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

// Методы конвертации

// FromDomainQuote конвертирует domain модель в DTO
func FromDomainQuote(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}
	return &QuoteResponse{
		ID:           q.ID,
		UserID:       q.UserID,
		ServiceID:    q.ServiceID,
		VehicleBrand: q.VehicleBrand,
		VehiclePlate: q.VehiclePlate,
		Description:  q.Description,
		Status:       string(q.Status),
		Price:        q.Price,
		AdminNotes:   q.AdminNotes,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// FromDomainQuoteList конвертирует список domain моделей в DTO
func FromDomainQuoteList(quotes []*domain.Quote) *QuoteListResponse {
	resp := &QuoteListResponse{
		Quotes: make([]QuoteResponse, 0, len(quotes)),
	}
	for _, q := range quotes {
		if quoteResp := FromDomainQuote(q); quoteResp != nil {
			resp.Quotes = append(resp.Quotes, *quoteResp)
		}
	}
	return resp
}

// ToDomainQuoteStatus конвертирует строку в domain.QuoteStatus с валидацией
func ToDomainQuoteStatus(status string) (domain.QuoteStatus, error) {
	s := domain.QuoteStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
