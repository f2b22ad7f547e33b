package get_calendar_data

import (
	"time"
)

// Request модель запроса данных календаря за период
type Request struct {
	StartDate time.Time
	EndDate   time.Time
}

// BookingCell краткие данные бронирования в ячейке календаря
type BookingCell struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	ServiceName  string  `json:"serviceName"`
	VehicleBrand string  `json:"vehicleBrand"`
	VehiclePlate string  `json:"vehiclePlate"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}

// SlotCell ячейка календаря: слот с политикой и бронированиями
type SlotCell struct {
	TimeSlot    string        `json:"timeSlot"`
	MaxCapacity int           `json:"maxCapacity"`
	IsActive    bool          `json:"isActive"`
	Reason      *string       `json:"reason,omitempty"`
	Taken       int           `json:"taken"`
	Bookings    []BookingCell `json:"bookings"`
}

// RangeBooking интервальное бронирование, попадающее в день
type RangeBooking struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	ServiceName  string    `json:"serviceName"`
	VehicleBrand string    `json:"vehicleBrand"`
	VehiclePlate string    `json:"vehiclePlate"`
	Status       string    `json:"status"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
}

// Day один день календаря
type Day struct {
	Date          string         `json:"date"` // "2025-10-15"
	Slots         []SlotCell     `json:"slots"`
	RangeBookings []RangeBooking `json:"rangeBookings,omitempty"`
}

// Response модель ответа с данными календаря
type Response struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      []Day  `json:"days"`
}
