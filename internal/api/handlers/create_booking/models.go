package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	createBooking "github.com/m04kA/SMC-WheelShopService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// CreateBookingRequest HTTP request model
// Время задаётся либо парой date+timeSlot, либо парой startAt+endAt
type CreateBookingRequest struct {
	ServiceID int64 `json:"serviceId"`

	Date     *string `json:"date,omitempty"`     // "2025-10-15"
	TimeSlot *string `json:"timeSlot,omitempty"` // "10:00"

	StartAt *time.Time `json:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty"`

	VehicleBrand string  `json:"vehicleBrand"`
	VehiclePlate string  `json:"vehiclePlate"`
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	ServiceID int64  `json:"serviceId"`
	TimeKind  string `json:"timeKind"`

	Date     *string    `json:"date,omitempty"`
	TimeSlot *string    `json:"timeSlot,omitempty"`
	StartAt  *time.Time `json:"startAt,omitempty"`
	EndAt    *time.Time `json:"endAt,omitempty"`

	VehicleBrand string `json:"vehicleBrand"`
	VehiclePlate string `json:"vehiclePlate"`
	Status       string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes   *string `json:"notes,omitempty"`
	Warning *string `json:"warning,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// userID берется из контекста авторизации, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	req := &createBooking.Request{
		UserID:       userID,
		ServiceID:    r.ServiceID,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		VehicleBrand: r.VehicleBrand,
		VehiclePlate: r.VehiclePlate,
		Notes:        r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.TimeSlot != nil {
		slot, err := types.NewTimeStringFromString(*r.TimeSlot)
		if err != nil {
			return nil, err
		}
		req.TimeSlot = &slot
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		ServiceID:    resp.ServiceID,
		TimeKind:     resp.TimeKind,
		Date:         resp.Date,
		TimeSlot:     resp.TimeSlot,
		StartAt:      resp.StartAt,
		EndAt:        resp.EndAt,
		VehicleBrand: resp.VehicleBrand,
		VehiclePlate: resp.VehiclePlate,
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		Warning:      resp.Warning,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
