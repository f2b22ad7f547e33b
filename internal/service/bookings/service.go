package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/user"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
	"github.com/m04kA/SMC-WheelShopService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только своё бронирование, сотрудникам доступно любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.UserRole) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !role.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListBookings получает бронирования с гибкой фильтрацией
// Доступно только сотрудникам мастерской
//
// Примеры использования:
// - Все активные бронирования: ListBookings(ctx, &ListBookingsRequest{})
// - Бронирования клиента: указать UserID
// - Бронирования за период: StartDate и EndDate
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings with filter user=%v status=%v includeCancelled=%v",
		req.UserID, req.Status, req.IncludeCancelled)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только своё бронирование, сотрудникам доступно любое
func (s *Service) Cancel(ctx context.Context, bookingID int64, role domain.UserRole, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != req.UserID && !role.IsStaff() {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.notify(ctx, booking, queue.EventBookingCancelled, "Booking cancelled",
		fmt.Sprintf("Your booking #%d (%s) has been cancelled.", booking.ID, booking.ServiceName))

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только сотрудникам; переход валидируется по статусной модели
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", bookingID, newStatus)
	return nil
}

// AssignEmployee назначает сотрудника на бронирование
// Назначаемый пользователь должен иметь роль staff или admin
func (s *Service) AssignEmployee(ctx context.Context, bookingID int64, req *models.AssignEmployeeRequest) error {
	s.logger.Info("AssignEmployee: assigning employee=%d to booking id=%d", req.EmployeeID, bookingID)

	employee, err := s.userRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("AssignEmployee: employee id=%d not found", req.EmployeeID)
			return ErrEmployeeNotFound
		}
		s.logger.Error("AssignEmployee: repository error for employee id=%d: %v", req.EmployeeID, err)
		return fmt.Errorf("%w: AssignEmployee - repository error: %v", ErrInternal, err)
	}

	if !employee.Role.IsStaff() {
		s.logger.Warn("AssignEmployee: user id=%d is not an employee", req.EmployeeID)
		return ErrNotAnEmployee
	}

	if err := s.bookingRepo.AssignEmployee(ctx, bookingID, req.EmployeeID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("AssignEmployee: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("AssignEmployee: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: AssignEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignEmployee: employee=%d assigned to booking id=%d", req.EmployeeID, bookingID)
	return nil
}

// notify публикует событие уведомления best-effort
func (s *Service) notify(ctx context.Context, booking *domain.Booking, eventType, subject, body string) {
	if s.publisher == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.Warn("notify: failed to resolve recipient for booking id=%d: %v", booking.ID, err)
		return
	}

	event := queue.NotificationEvent{
		Type:       eventType,
		Recipient:  user.Email,
		Subject:    subject,
		Body:       body,
		EntityID:   booking.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, queue.ErrDisabled) {
		s.logger.Warn("notify: failed to publish event type=%s for booking id=%d: %v", eventType, booking.ID, err)
	}
}
