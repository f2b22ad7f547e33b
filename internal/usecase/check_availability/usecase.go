// Package check_availability рассчитывает доступность слотов рабочего дня.
// Результат advisory: фактический допуск проверяется при создании бронирования
package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	bookingRepo BookingRepository
	policies    PolicyResolver
	timer       TimeProvider
	dayLabels   []types.TimeString
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policies PolicyResolver,
	dayLabels []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		policies:    policies,
		timer:       &RealTimeProvider{},
		dayLabels:   dayLabels,
		logger:      logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(timer TimeProvider) *UseCase {
	uc.timer = timer
	return uc
}

// Execute выполняет use case получения доступности слотов
// Для каждого слота рабочего дня возвращает занятость и причину недоступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timer.Now()
	if isDateInPast(req.Date, now) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	slots := make([]Slot, 0, len(uc.dayLabels))
	for _, label := range uc.dayLabels {
		key := domain.NewSlotKey(req.Date, label)

		policy, err := uc.policies.ResolvePolicy(ctx, key)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to resolve policy for key=%s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.ListForSlot(ctx, key)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to list bookings for key=%s: %v", key, err)
			return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		taken := 0
		for _, b := range bookings {
			if b.CountsTowardCapacity() {
				taken++
			}
		}

		slots = append(slots, buildSlot(label, policy, taken))
	}

	uc.logger.Info("CheckAvailability: calculated %d slots for date=%s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date.Format(domain.DateFormat),
		Slots: slots,
	}, nil
}

// buildSlot собирает доступность одного слота из политики и занятости
func buildSlot(label types.TimeString, policy domain.Policy, taken int) Slot {
	slot := Slot{
		TimeSlot:   label,
		TotalSpots: policy.MaxCapacity,
	}

	if !policy.IsActive {
		slot.Reason = policy.RejectionReason()
		return slot
	}

	available := policy.MaxCapacity - taken
	if available < 0 {
		available = 0
	}
	slot.AvailableSpots = available
	slot.Available = available > 0
	if !slot.Available {
		slot.Reason = domain.ReasonSlotFull
	}

	return slot
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
