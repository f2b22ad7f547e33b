package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/booking"
	invoiceRepo "github.com/m04kA/SMC-WheelShopService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-WheelShopService/internal/queue"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices/models"
)

// Service сервис для работы со счетами
type Service struct {
	invoiceRepo InvoiceRepository
	bookingRepo BookingRepository
	userRepo    UserRepository
	renderer    PDFRenderer
	publisher   EventPublisher
	timer       TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(
	invoiceRepo InvoiceRepository,
	bookingRepo BookingRepository,
	userRepo UserRepository,
	renderer PDFRenderer,
	publisher EventPublisher,
	timer TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		publisher:   publisher,
		timer:       timer,
		logger:      logger,
	}
}

// Create выставляет новый счёт клиенту
// Номер вида INV-XXXXXXXX генерируется из uuid
func (s *Service) Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.InvoiceResponse, error) {
	s.logger.Info("Create: issuing invoice for user=%d booking=%v amount=%.2f",
		req.UserID, req.BookingID, req.Amount)

	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}

	if req.BookingID != nil {
		booking, err := s.bookingRepo.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Create: booking id=%d not found", *req.BookingID)
				return nil, ErrBookingNotFound
			}
			s.logger.Error("Create: failed to get booking id=%d: %v", *req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.UserID != req.UserID {
			return nil, fmt.Errorf("%w: booking belongs to another user", ErrInvalidInput)
		}
	}

	invoice := &domain.Invoice{
		Number:    generateNumber(),
		UserID:    req.UserID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Details:   strings.TrimSpace(req.Details),
		Status:    domain.InvoiceStatusUnpaid,
		IssuedAt:  s.timer.Now().UTC(),
	}

	created, err := s.invoiceRepo.Create(ctx, invoice)
	if err != nil {
		// Коллизия по номеру крайне маловероятна, но повторяем генерацию один раз
		if errors.Is(err, invoiceRepo.ErrNumberTaken) {
			invoice.Number = generateNumber()
			created, err = s.invoiceRepo.Create(ctx, invoice)
		}
		if err != nil {
			s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
	}

	s.notify(ctx, created, "Invoice issued",
		fmt.Sprintf("Invoice %s for %.2f has been issued to you.", created.Number, created.Amount))

	s.logger.Info("Create: issued invoice id=%d number=%s", created.ID, created.Number)
	return models.FromDomainInvoice(created), nil
}

// GetByID получает счёт по ID
// Клиент видит только свой счёт, сотрудникам доступен любой
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, role domain.UserRole) (*models.InvoiceResponse, error) {
	invoice, err := s.getInvoice(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if invoice.UserID != userID && !role.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to invoice id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainInvoice(invoice), nil
}

// List возвращает счета с фильтрацией по пользователю и статусу
func (s *Service) List(ctx context.Context, req *models.ListInvoicesRequest) (*models.InvoiceListResponse, error) {
	var domainStatus *domain.InvoiceStatus
	if req.Status != nil {
		status, err := models.ToDomainInvoiceStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	invoices, err := s.invoiceRepo.List(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainInvoiceList(invoices), nil
}

// UpdateStatus меняет статус счета
// Допустимые переходы: unpaid -> paid, unpaid -> void
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating invoice id=%d to status=%s", id, req.Status)

	invoice, err := s.getInvoice(ctx, id, "UpdateStatus")
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainInvoiceStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for invoice id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !invoice.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for invoice id=%d",
			invoice.Status, newStatus, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, invoice.Status, newStatus)
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			return ErrInvoiceNotFound
		}
		s.logger.Error("UpdateStatus: repository error for invoice id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: invoice id=%d updated to status=%s", id, newStatus)
	return nil
}

// RenderPDF генерирует PDF-представление счета
// Клиент может скачать только свой счёт, сотрудникам доступен любой
func (s *Service) RenderPDF(ctx context.Context, id int64, userID int64, role domain.UserRole) ([]byte, string, error) {
	invoice, err := s.getInvoice(ctx, id, "RenderPDF")
	if err != nil {
		return nil, "", err
	}

	if invoice.UserID != userID && !role.IsStaff() {
		s.logger.Warn("RenderPDF: access denied for user=%d to invoice id=%d", userID, id)
		return nil, "", ErrAccessDenied
	}

	customerName := ""
	if user, err := s.userRepo.GetByID(ctx, invoice.UserID); err == nil {
		customerName = user.Name
	}

	serviceName := ""
	if invoice.BookingID != nil {
		if booking, err := s.bookingRepo.GetByID(ctx, *invoice.BookingID); err == nil {
			serviceName = booking.ServiceName
		}
	}

	pdf, err := s.renderer.Render(*invoice, customerName, serviceName)
	if err != nil {
		s.logger.Error("RenderPDF: failed to render invoice id=%d: %v", id, err)
		return nil, "", fmt.Errorf("%w: RenderPDF - render error: %v", ErrInternal, err)
	}

	filename := fmt.Sprintf("invoice-%s.pdf", invoice.Number)
	s.logger.Info("RenderPDF: rendered invoice id=%d number=%s (%d bytes)", id, invoice.Number, len(pdf))
	return pdf, filename, nil
}

func (s *Service) getInvoice(ctx context.Context, id int64, op string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("%s: invoice id=%d not found", op, id)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("%s: repository error for invoice id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return invoice, nil
}

// notify публикует событие уведомления best-effort
func (s *Service) notify(ctx context.Context, invoice *domain.Invoice, subject, body string) {
	if s.publisher == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, invoice.UserID)
	if err != nil {
		s.logger.Warn("notify: failed to resolve recipient for invoice id=%d: %v", invoice.ID, err)
		return
	}

	event := queue.NotificationEvent{
		Type:       queue.EventInvoiceIssued,
		Recipient:  user.Email,
		Subject:    subject,
		Body:       body,
		EntityID:   invoice.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, queue.ErrDisabled) {
		s.logger.Warn("notify: failed to publish event for invoice id=%d: %v", invoice.ID, err)
	}
}

// generateNumber возвращает номер счета вида INV-XXXXXXXX
func generateNumber() string {
	id := uuid.New().String()
	return "INV-" + strings.ToUpper(id[:8])
}
