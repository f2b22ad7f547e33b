package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/catalog"
	quoteRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/quote"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

// Service сервис для работы с запросами на расчёт стоимости
type Service struct {
	quoteRepo QuoteRepository
	catalog   ServiceCatalog
	userRepo  UserRepository
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса запросов на расчёт
func NewService(
	quoteRepo QuoteRepository,
	catalog ServiceCatalog,
	userRepo UserRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		quoteRepo: quoteRepo,
		catalog:   catalog,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create создает новый запрос на расчёт стоимости
func (s *Service) Create(ctx context.Context, req *models.CreateQuoteRequest) (*models.QuoteResponse, error) {
	s.logger.Info("Create: creating quote for user=%d service=%d", req.UserID, req.ServiceID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: invalid input for user=%d: %v", req.UserID, err)
		return nil, err
	}

	if _, err := s.catalog.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Create: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	quote := &domain.Quote{
		UserID:       req.UserID,
		ServiceID:    req.ServiceID,
		VehicleBrand: strings.TrimSpace(req.VehicleBrand),
		VehiclePlate: strings.TrimSpace(req.VehiclePlate),
		Description:  strings.TrimSpace(req.Description),
		Status:       domain.QuoteStatusPending,
	}

	created, err := s.quoteRepo.Create(ctx, quote)
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created quote id=%d for user=%d", created.ID, created.UserID)
	return models.FromDomainQuote(created), nil
}

// GetByID получает запрос по ID
// Клиент видит только свой запрос, сотрудникам доступен любой
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.UserRole) (*models.QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if quote.UserID != userID && !role.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to quote id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainQuote(quote), nil
}

// List возвращает запросы с фильтрацией по пользователю и статусу
func (s *Service) List(ctx context.Context, req *models.ListQuotesRequest) (*models.QuoteListResponse, error) {
	var domainStatus *domain.QuoteStatus
	if req.Status != nil {
		status, err := models.ToDomainQuoteStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	quotes, err := s.quoteRepo.List(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainQuoteList(quotes), nil
}

// Review обрабатывает ответ админа на запрос
// Допустимые переходы: pending -> quoted (с ценой), pending -> rejected
func (s *Service) Review(ctx context.Context, id int64, req *models.ReviewQuoteRequest) (*models.QuoteResponse, error) {
	s.logger.Info("Review: reviewing quote id=%d status=%s", id, req.Status)

	quote, err := s.getQuote(ctx, id, "Review")
	if err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainQuoteStatus(req.Status)
	if err != nil {
		s.logger.Warn("Review: invalid status=%s for quote id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus != domain.QuoteStatusQuoted && newStatus != domain.QuoteStatusRejected {
		return nil, fmt.Errorf("%w: review status must be quoted or rejected", ErrInvalidInput)
	}
	if !quote.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("Review: transition %s -> %s not allowed for quote id=%d", quote.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, quote.Status, newStatus)
	}
	if newStatus == domain.QuoteStatusQuoted && (req.Price == nil || *req.Price < 0) {
		return nil, fmt.Errorf("%w: price is required for quoted status", ErrInvalidInput)
	}

	if err := s.quoteRepo.Review(ctx, id, newStatus, req.Price, req.AdminNotes); err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("Review: repository error for quote id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Review - repository error: %v", ErrInternal, err)
	}

	s.notify(ctx, quote, "Quote reviewed",
		fmt.Sprintf("Your quote request #%d has been reviewed: %s.", quote.ID, newStatus))

	s.logger.Info("Review: quote id=%d reviewed with status=%s", id, newStatus)
	return s.refresh(ctx, id)
}

// Decide обрабатывает решение клиента по выставленной цене
// Допустимые переходы: quoted -> accepted, quoted -> rejected
func (s *Service) Decide(ctx context.Context, id int64, req *models.DecideQuoteRequest) (*models.QuoteResponse, error) {
	s.logger.Info("Decide: user=%d deciding on quote id=%d status=%s", req.UserID, id, req.Status)

	quote, err := s.getQuote(ctx, id, "Decide")
	if err != nil {
		return nil, err
	}

	if quote.UserID != req.UserID {
		s.logger.Warn("Decide: access denied for user=%d to quote id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	newStatus, err := models.ToDomainQuoteStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus != domain.QuoteStatusAccepted && newStatus != domain.QuoteStatusRejected {
		return nil, fmt.Errorf("%w: decision status must be accepted or rejected", ErrInvalidInput)
	}
	if !quote.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("Decide: transition %s -> %s not allowed for quote id=%d", quote.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, quote.Status, newStatus)
	}

	if err := s.quoteRepo.Review(ctx, id, newStatus, quote.Price, quote.AdminNotes); err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("Decide: repository error for quote id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Decide: quote id=%d decided with status=%s", id, newStatus)
	return s.refresh(ctx, id)
}

func (s *Service) getQuote(ctx context.Context, id int64, op string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			s.logger.Warn("%s: quote id=%d not found", op, id)
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("%s: repository error for quote id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return quote, nil
}

func (s *Service) refresh(ctx context.Context, id int64) (*models.QuoteResponse, error) {
	quote, err := s.getQuote(ctx, id, "refresh")
	if err != nil {
		return nil, err
	}
	return models.FromDomainQuote(quote), nil
}

// notify публикует событие уведомления best-effort
func (s *Service) notify(ctx context.Context, quote *domain.Quote, subject, body string) {
	if s.publisher == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, quote.UserID)
	if err != nil {
		s.logger.Warn("notify: failed to resolve recipient for quote id=%d: %v", quote.ID, err)
		return
	}

	event := queue.NotificationEvent{
		Type:       queue.EventQuoteReviewed,
		Recipient:  user.Email,
		Subject:    subject,
		Body:       body,
		EntityID:   quote.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, queue.ErrDisabled) {
		s.logger.Warn("notify: failed to publish event for quote id=%d: %v", quote.ID, err)
	}
}

func validateCreate(req *models.CreateQuoteRequest) error {
	if strings.TrimSpace(req.VehicleBrand) == "" {
		return fmt.Errorf("%w: vehicleBrand is required", ErrInvalidInput)
	}
	if len(req.VehicleBrand) > domain.MaxVehicleBrandLength {
		return fmt.Errorf("%w: vehicleBrand too long", ErrInvalidInput)
	}
	if len(req.VehiclePlate) > domain.MaxVehiclePlateLength {
		return fmt.Errorf("%w: vehiclePlate too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if len(req.Description) > domain.MaxQuoteDescriptionLength {
		return fmt.Errorf("%w: description too long", ErrInvalidInput)
	}
	return nil
}
