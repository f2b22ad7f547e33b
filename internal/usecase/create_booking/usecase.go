package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-WheelShopService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// UseCase use case для создания бронирования
// Проверка допуска в слот выполняется в сериализуемой транзакции,
// чтобы два конкурентных запроса не переполнили слот
type UseCase struct {
	bookingRepo BookingRepository
	policies    PolicyResolver
	catalog     ServiceCatalog
	userRepo    UserRepository
	publisher   EventPublisher
	calendar    CalendarSync
	txManager   TransactionManager
	timer       TimeProvider
	dayLabels   []types.TimeString
	enforce     bool
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// enforce управляет режимом проверки допуска: при false проверка advisory:
// отказ логируется и возвращается как warning, но бронирование создаётся
func NewUseCase(
	bookingRepo BookingRepository,
	policies PolicyResolver,
	catalog ServiceCatalog,
	userRepo UserRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	dayLabels []types.TimeString,
	enforce bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		policies:    policies,
		catalog:     catalog,
		userRepo:    userRepo,
		publisher:   publisher,
		txManager:   txManager,
		timer:       &RealTimeProvider{},
		dayLabels:   dayLabels,
		enforce:     enforce,
		logger:      logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(timer TimeProvider) *UseCase {
	uc.timer = timer
	return uc
}

// WithCalendarSync включает синхронизацию бронирований с внешним календарем
func (uc *UseCase) WithCalendarSync(calendar CalendarSync) *UseCase {
	uc.calendar = calendar
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, fixedSlot=%v", req.UserID, req.ServiceID, req.IsFixedSlot())

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.dayLabels); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timer.Now()

	if req.IsFixedSlot() {
		if err := validateDate(*req.Date, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return nil, err
		}
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	booking := uc.buildBooking(req, service)

	var (
		result  *domain.Booking
		warning *string
	)

	if booking.IsFixedSlot() {
		// 3. Проверка допуска и вставка в одной сериализуемой транзакции
		key, _ := booking.SlotKey()
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			policy, err := uc.policies.ResolvePolicy(txCtx, key)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to resolve policy for key=%s: %v", key, err)
				return fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
			}

			// Внутри транзакции выборка блокирует строки слота (FOR UPDATE)
			existing, err := uc.bookingRepo.ListForSlot(txCtx, key)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to list slot bookings for key=%s: %v", key, err)
				return fmt.Errorf("%w: failed to list slot bookings: %v", ErrInternal, err)
			}

			taken := countActiveBookings(existing)
			decision := checkAdmission(policy, taken)

			if !decision.Admitted {
				uc.logger.Warn("CreateBooking: admission rejected for key=%s reason=%s taken=%d/%d",
					key, decision.Reason, taken, policy.MaxCapacity)

				if uc.enforce {
					if decision.Reason == domain.ReasonSlotFull {
						return ErrSlotFull
					}
					return fmt.Errorf("%w: %s", ErrSlotUnavailable, decision.Reason)
				}

				// Advisory-режим: бронирование создаётся, отказ возвращается как warning
				w := fmt.Sprintf("slot admission check failed: %s", decision.Reason)
				warning = &w
			} else {
				uc.logger.Info("CreateBooking: admission granted for key=%s, %d/%d spots taken",
					key, taken, policy.MaxCapacity)
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
			result = created
			return nil
		})
	} else {
		// Интервальные бронирования не управляются политиками слотов
		result, err = uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create range booking: %v", err)
			err = fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	uc.notify(ctx, result)
	uc.syncCalendar(ctx, result, service)

	return uc.buildResponse(result, warning), nil
}

func (uc *UseCase) buildBooking(req *Request, service *domain.ShopService) *domain.Booking {
	booking := &domain.Booking{
		UserID:       req.UserID,
		ServiceID:    req.ServiceID,
		VehicleBrand: req.VehicleBrand,
		VehiclePlate: req.VehiclePlate,
		Status:       domain.StatusPending,
		Notes:        req.Notes,
		// Денормализация данных услуги
		ServiceName:  service.Name,
		ServicePrice: service.Price,
	}

	if req.IsFixedSlot() {
		booking.TimeKind = domain.TimeKindFixedSlot
		booking.Date = *req.Date
		booking.TimeSlot = *req.TimeSlot
	} else {
		booking.TimeKind = domain.TimeKindRange
		booking.StartAt = req.StartAt
		booking.EndAt = req.EndAt
	}

	return booking
}

func (uc *UseCase) buildResponse(b *domain.Booking, warning *string) *Response {
	resp := &Response{
		ID:           b.ID,
		UserID:       b.UserID,
		ServiceID:    b.ServiceID,
		TimeKind:     string(b.TimeKind),
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		VehicleBrand: b.VehicleBrand,
		VehiclePlate: b.VehiclePlate,
		Status:       string(b.Status),
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		Notes:        b.Notes,
		Warning:      warning,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.IsFixedSlot() {
		date := b.Date.Format(domain.DateFormat)
		slot := b.TimeSlot.String()
		resp.Date = &date
		resp.TimeSlot = &slot
	}

	return resp
}

// notify публикует событие о создании бронирования best-effort
func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) {
	if uc.publisher == nil {
		return
	}

	user, err := uc.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve recipient for booking id=%d: %v", booking.ID, err)
		return
	}

	when := ""
	if booking.IsFixedSlot() {
		when = fmt.Sprintf("%s at %s", booking.Date.Format(domain.DateFormat), booking.TimeSlot)
	} else if booking.StartAt != nil {
		when = booking.StartAt.Format(time.RFC3339)
	}

	event := queue.NotificationEvent{
		Type:       queue.EventBookingCreated,
		Recipient:  user.Email,
		Subject:    "Booking created",
		Body:       fmt.Sprintf("Your booking #%d (%s) on %s has been registered.", booking.ID, booking.ServiceName, when),
		EntityID:   booking.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil && !errors.Is(err, queue.ErrDisabled) {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
}

// syncCalendar создает событие во внешнем календаре best-effort
func (uc *UseCase) syncCalendar(ctx context.Context, booking *domain.Booking, service *domain.ShopService) {
	if uc.calendar == nil {
		return
	}

	var start, end time.Time
	if booking.IsFixedSlot() {
		minutes, err := booking.TimeSlot.Minutes()
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to parse slot time for booking id=%d: %v", booking.ID, err)
			return
		}
		start = booking.Date.Add(time.Duration(minutes) * time.Minute)
		end = start.Add(time.Duration(service.DurationMinutes) * time.Minute)
	} else {
		start = *booking.StartAt
		end = *booking.EndAt
	}

	event := gcalendar.Event{
		Summary:     fmt.Sprintf("%s: %s %s", booking.ServiceName, booking.VehicleBrand, booking.VehiclePlate),
		Description: fmt.Sprintf("Booking #%d", booking.ID),
		Start:       gcalendar.EventTime{DateTime: start.Format(time.RFC3339)},
		End:         gcalendar.EventTime{DateTime: end.Format(time.RFC3339)},
	}

	eventID, err := uc.calendar.CreateEvent(ctx, event)
	if err != nil {
		if !errors.Is(err, gcalendar.ErrDisabled) {
			uc.logger.Warn("CreateBooking: failed to sync booking id=%d to calendar: %v", booking.ID, err)
		}
		return
	}
	uc.logger.Info("CreateBooking: booking id=%d synced to calendar, event=%s", booking.ID, eventID)
}
