package create_booking

import (
	"time"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// Request модель запроса на создание бронирования
// Время задаётся ровно одним из двух способов:
// фиксированный слот (Date + TimeSlot) или произвольный интервал (StartAt + EndAt)
type Request struct {
	UserID    int64
	ServiceID int64

	// Фиксированный слот
	Date     *time.Time
	TimeSlot *types.TimeString

	// Произвольный интервал
	StartAt *time.Time
	EndAt   *time.Time

	VehicleBrand string
	VehiclePlate string
	Notes        *string
}

// IsFixedSlot возвращает true, если запрошен фиксированный слот
func (r *Request) IsFixedSlot() bool {
	return r.Date != nil && r.TimeSlot != nil
}

// IsRange возвращает true, если запрошен произвольный интервал
func (r *Request) IsRange() bool {
	return r.StartAt != nil && r.EndAt != nil
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	UserID    int64
	ServiceID int64
	TimeKind  string

	Date     *string // "2025-10-15", для фиксированных слотов
	TimeSlot *string // "10:00", для фиксированных слотов
	StartAt  *time.Time
	EndAt    *time.Time

	VehicleBrand string
	VehiclePlate string
	Status       string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	Notes *string

	// Warning заполняется в advisory-режиме, когда проверка допуска
	// отклонила бы бронирование, но оно всё равно создано
	Warning *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
