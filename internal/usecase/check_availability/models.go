package check_availability

import (
	"time"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// Request модель запроса доступности слотов на дату
type Request struct {
	Date time.Time
}

// Slot доступность одного слота
type Slot struct {
	TimeSlot       types.TimeString `json:"timeSlot"`
	Available      bool             `json:"available"`
	AvailableSpots int              `json:"availableSpots"`
	TotalSpots     int              `json:"totalSpots"`
	Reason         string           `json:"reason,omitempty"` // Причина недоступности
}

// Response модель ответа с доступностью слотов на дату
type Response struct {
	Date  string `json:"date"` // "2025-10-15"
	Slots []Slot `json:"slots"`
}
