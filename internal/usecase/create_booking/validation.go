package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, dayLabels []types.TimeString) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Время бронирования задаётся ровно одним способом
	if req.IsFixedSlot() == req.IsRange() {
		return fmt.Errorf("%w: either date+timeSlot or startAt+endAt must be set", ErrInvalidInput)
	}

	if req.IsFixedSlot() {
		if err := req.TimeSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
		}
		if !domain.IsKnownSlotLabel(*req.TimeSlot, dayLabels) {
			return fmt.Errorf("%w: %s", ErrUnknownSlot, *req.TimeSlot)
		}
	} else {
		if !req.EndAt.After(*req.StartAt) {
			return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidTimeRange)
		}
	}

	if strings.TrimSpace(req.VehicleBrand) == "" {
		return fmt.Errorf("%w: vehicleBrand is required", ErrInvalidInput)
	}
	if len(req.VehicleBrand) > domain.MaxVehicleBrandLength {
		return fmt.Errorf("%w: vehicleBrand too long", ErrInvalidInput)
	}
	if len(req.VehiclePlate) > domain.MaxVehiclePlateLength {
		return fmt.Errorf("%w: vehiclePlate too long", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата слота не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	return nil
}

// countActiveBookings подсчитывает бронирования, занимающие место в слоте
func countActiveBookings(bookings []*domain.Booking) int {
	count := 0
	for _, b := range bookings {
		if b.CountsTowardCapacity() {
			count++
		}
	}
	return count
}

// checkAdmission принимает решение о допуске бронирования в слот
// Слот закрыт админом -> отказ с причиной из политики
// Занято мест >= maxCapacity -> отказ "full" (maxCapacity=0 не пропускает никого)
func checkAdmission(policy domain.Policy, taken int) domain.AdmissionDecision {
	if !policy.IsActive {
		return domain.Reject(policy.RejectionReason())
	}
	if taken >= policy.MaxCapacity {
		return domain.Reject(domain.ReasonSlotFull)
	}
	return domain.Admit()
}
