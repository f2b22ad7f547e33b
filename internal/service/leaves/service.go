package leaves

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	leaveRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/leave"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
)

// Service сервис для работы с заявками на отпуск
type Service struct {
	leaveRepo LeaveRepository
	userRepo  UserRepository
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса заявок на отпуск
func NewService(leaveRepo LeaveRepository, userRepo UserRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create создает новую заявку на отпуск
func (s *Service) Create(ctx context.Context, req *models.CreateLeaveRequest) (*models.LeaveResponse, error) {
	s.logger.Info("Create: creating leave request for employee=%d %s..%s",
		req.EmployeeID, req.StartDate, req.EndDate)

	leave, err := req.ToDomainLeave()
	if err != nil {
		s.logger.Warn("Create: invalid input for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if leave.EndDate.Before(leave.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	if strings.TrimSpace(leave.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(leave.Reason) > domain.MaxLeaveReasonLength {
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	created, err := s.leaveRepo.Create(ctx, leave)
	if err != nil {
		s.logger.Error("Create: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created leave request id=%d for employee=%d", created.ID, created.EmployeeID)
	return models.FromDomainLeave(created), nil
}

// GetByID получает заявку по ID
// Сотрудник видит только свою заявку, админу доступна любая
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.UserRole) (*models.LeaveResponse, error) {
	leave, err := s.getLeave(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if leave.EmployeeID != userID && role != domain.RoleAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to leave id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainLeave(leave), nil
}

// List возвращает заявки с фильтрацией по сотруднику и статусу
func (s *Service) List(ctx context.Context, req *models.ListLeavesRequest) (*models.LeaveListResponse, error) {
	var domainStatus *domain.LeaveStatus
	if req.Status != nil {
		status, err := models.ToDomainLeaveStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	leaves, err := s.leaveRepo.List(ctx, req.EmployeeID, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLeaveList(leaves), nil
}

// Review обрабатывает решение админа по заявке
// Допустимые переходы: pending -> approved, pending -> rejected
func (s *Service) Review(ctx context.Context, id int64, req *models.ReviewLeaveRequest) (*models.LeaveResponse, error) {
	s.logger.Info("Review: reviewer=%d reviewing leave id=%d status=%s", req.ReviewerID, id, req.Status)

	leave, err := s.getLeave(ctx, id, "Review")
	if err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainLeaveStatus(req.Status)
	if err != nil {
		s.logger.Warn("Review: invalid status=%s for leave id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !leave.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("Review: transition %s -> %s not allowed for leave id=%d", leave.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, leave.Status, newStatus)
	}

	if err := s.leaveRepo.Review(ctx, id, newStatus, req.ReviewerID); err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			return nil, ErrLeaveNotFound
		}
		s.logger.Error("Review: repository error for leave id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Review - repository error: %v", ErrInternal, err)
	}

	s.notify(ctx, leave, newStatus)

	s.logger.Info("Review: leave id=%d reviewed with status=%s", id, newStatus)

	reviewed, err := s.getLeave(ctx, id, "Review")
	if err != nil {
		return nil, err
	}
	return models.FromDomainLeave(reviewed), nil
}

func (s *Service) getLeave(ctx context.Context, id int64, op string) (*domain.LeaveRequest, error) {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leaveRepo.ErrLeaveNotFound) {
			s.logger.Warn("%s: leave id=%d not found", op, id)
			return nil, ErrLeaveNotFound
		}
		s.logger.Error("%s: repository error for leave id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return leave, nil
}

// notify публикует событие уведомления best-effort
func (s *Service) notify(ctx context.Context, leave *domain.LeaveRequest, status domain.LeaveStatus) {
	if s.publisher == nil {
		return
	}

	employee, err := s.userRepo.GetByID(ctx, leave.EmployeeID)
	if err != nil {
		s.logger.Warn("notify: failed to resolve recipient for leave id=%d: %v", leave.ID, err)
		return
	}

	event := queue.NotificationEvent{
		Type:      queue.EventLeaveReviewed,
		Recipient: employee.Email,
		Subject:   "Leave request reviewed",
		Body: fmt.Sprintf("Your leave request %s..%s has been %s.",
			leave.StartDate.Format(domain.DateFormat), leave.EndDate.Format(domain.DateFormat), status),
		EntityID:   leave.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, queue.ErrDisabled) {
		s.logger.Warn("notify: failed to publish event for leave id=%d: %v", leave.ID, err)
	}
}
