// Package get_calendar_data собирает календарь мастерской за период:
// сетка день x слот с политиками, занятостью и бронированиями
package get_calendar_data

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// Период календаря ограничен, чтобы один запрос не собирал годовую сетку
const maxRangeDays = 62

// UseCase use case для получения данных календаря
type UseCase struct {
	bookingRepo BookingRepository
	configRepo  ConfigRepository
	dayLabels   []types.TimeString
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	dayLabels []types.TimeString,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		configRepo:  configRepo,
		dayLabels:   dayLabels,
		logger:      logger,
	}
}

// Execute выполняет use case получения данных календаря
// Отменённые бронирования включаются в ячейки, но не занимают места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarData: period=%s..%s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendarData: validation failed: %v", err)
		return nil, err
	}

	start := truncateToDay(req.StartDate)
	end := truncateToDay(req.EndDate)

	// 1. Конфигурации слотов за период
	configs, err := uc.configRepo.ListRange(ctx, start, end)
	if err != nil {
		uc.logger.Error("GetCalendarData: failed to list configs: %v", err)
		return nil, fmt.Errorf("%w: failed to list configs: %v", ErrInternal, err)
	}

	policyByKey := make(map[string]domain.Policy, len(configs))
	for _, cfg := range configs {
		policyByKey[cfg.Key().String()] = domain.PolicyFromConfig(cfg)
	}

	// 2. Бронирования за период, включая отменённые
	filter := domain.BookingsFilter{
		StartDate:        &start,
		EndDate:          &end,
		IncludeCancelled: true,
	}
	bookings, err := uc.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCalendarData: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	fixedByKey := make(map[string][]*domain.Booking)
	rangeByDay := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		if key, ok := b.SlotKey(); ok {
			fixedByKey[key.String()] = append(fixedByKey[key.String()], b)
			continue
		}
		if b.StartAt != nil && b.EndAt != nil {
			day := truncateToDay(*b.StartAt).Format(domain.DateFormat)
			rangeByDay[day] = append(rangeByDay[day], b)
		}
	}

	// 3. Собираем сетку день x слот
	days := make([]Day, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		days = append(days, uc.buildDay(date, policyByKey, fixedByKey, rangeByDay))
	}

	uc.logger.Info("GetCalendarData: built %d days with %d bookings", len(days), len(bookings))

	return &Response{
		StartDate: start.Format(domain.DateFormat),
		EndDate:   end.Format(domain.DateFormat),
		Days:      days,
	}, nil
}

func (uc *UseCase) buildDay(
	date time.Time,
	policyByKey map[string]domain.Policy,
	fixedByKey map[string][]*domain.Booking,
	rangeByDay map[string][]*domain.Booking,
) Day {
	dayStr := date.Format(domain.DateFormat)
	day := Day{
		Date:  dayStr,
		Slots: make([]SlotCell, 0, len(uc.dayLabels)),
	}

	for _, label := range uc.dayLabels {
		key := domain.NewSlotKey(date, label).String()

		policy, ok := policyByKey[key]
		if !ok {
			policy = domain.DefaultPolicy()
		}

		cell := SlotCell{
			TimeSlot:    label.String(),
			MaxCapacity: policy.MaxCapacity,
			IsActive:    policy.IsActive,
			Reason:      policy.Reason,
			Bookings:    make([]BookingCell, 0),
		}

		for _, b := range fixedByKey[key] {
			cell.Bookings = append(cell.Bookings, BookingCell{
				ID:           b.ID,
				UserID:       b.UserID,
				ServiceName:  b.ServiceName,
				VehicleBrand: b.VehicleBrand,
				VehiclePlate: b.VehiclePlate,
				Status:       string(b.Status),
				Notes:        b.Notes,
			})
			if b.CountsTowardCapacity() {
				cell.Taken++
			}
		}

		day.Slots = append(day.Slots, cell)
	}

	for _, b := range rangeByDay[dayStr] {
		day.RangeBookings = append(day.RangeBookings, RangeBooking{
			ID:           b.ID,
			UserID:       b.UserID,
			ServiceName:  b.ServiceName,
			VehicleBrand: b.VehicleBrand,
			VehiclePlate: b.VehiclePlate,
			Status:       string(b.Status),
			StartAt:      *b.StartAt,
			EndAt:        *b.EndAt,
		})
	}

	return day
}

func validateRequest(req *Request) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate before startDate", ErrInvalidRange)
	}
	if req.EndDate.Sub(req.StartDate) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: period longer than %d days", ErrInvalidRange, maxRangeDays)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
