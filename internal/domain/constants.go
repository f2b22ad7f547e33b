package domain

// Default slot policy values
// Применяются, когда для (date, timeSlot) нет строки TimeSlotConfig
const (
	DefaultSlotCapacity = 2
	DefaultSlotActive   = true
)

// Business validation constants
const (
	MinSlotCapacity = 0
	MaxSlotCapacity = 50

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxQuoteDescriptionLength   = 2000
	MaxLeaveReasonLength        = 500
	MaxVehicleBrandLength       = 100
	MaxVehiclePlateLength       = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Admission rejection reasons
const (
	ReasonSlotFull        = "full"
	ReasonSlotUnavailable = "unavailable"
)
