package invoices

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/integrations/pdfgen"
	"github.com/m04kA/SMC-WheelShopService/internal/service/invoices/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/ptr"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fixture struct {
	svc      *Service
	bookings *memory.BookingStore
	users    *memory.UserStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	bookings := memory.NewBookingStore(store)
	users := memory.NewUserStore(store)

	svc := NewService(
		memory.NewInvoiceStore(store),
		bookings,
		users,
		pdfgen.NewRenderer("SMC Wheel Shop", "qr-secret"),
		nil,
		&fixedClock{now: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	return &fixture{svc: svc, bookings: bookings, users: users}
}

func (f *fixture) seedBooking(t *testing.T, userID int64) *domain.Booking {
	t.Helper()

	slot, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)
	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		UserID:      userID,
		ServiceID:   1,
		TimeKind:    domain.TimeKindFixedSlot,
		Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:    slot,
		ServiceName: "Замена колёс",
		Status:      domain.StatusCompleted,
	})
	require.NoError(t, err)
	return b
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seedBooking(t, 1)

	resp, err := f.svc.Create(ctx, &models.CreateInvoiceRequest{
		UserID:    1,
		BookingID: &b.ID,
		Amount:    3200,
		Details:   "Замена колёс",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Number, "INV-"))
	assert.Equal(t, string(domain.InvoiceStatusUnpaid), resp.Status)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), resp.IssuedAt)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 1, Amount: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := int64(9999)
	_, err = f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 1, BookingID: &missing, Amount: 100})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// Счёт нельзя привязать к чужому бронированию
	b := f.seedBooking(t, 2)
	_, err = f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 1, BookingID: &b.ID, Amount: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 1, Amount: 900})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, resp.ID, &models.UpdateStatusRequest{Status: "paid"}))

	// Оплаченный счёт нельзя аннулировать
	err = f.svc.UpdateStatus(ctx, resp.ID, &models.UpdateStatusRequest{Status: "void"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = f.svc.UpdateStatus(ctx, resp.ID, &models.UpdateStatusRequest{Status: "shredded"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = f.svc.UpdateStatus(ctx, 9999, &models.UpdateStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestRenderPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, &domain.User{Name: "Иван", Email: "ivan@example.com", Role: domain.RoleCustomer})
	require.NoError(t, err)

	resp, err := f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 1, Amount: 1800, Details: "Балансировка"})
	require.NoError(t, err)

	pdf, filename, err := f.svc.RenderPDF(ctx, resp.ID, 1, domain.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "invoice-"+resp.Number+".pdf", filename)

	// Чужой клиент счёт не скачает
	_, _, err = f.svc.RenderPDF(ctx, resp.ID, 2, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, _, err = f.svc.RenderPDF(ctx, resp.ID, 2, domain.RoleStaff)
	assert.NoError(t, err)
}

func TestList_CustomerScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 1, Amount: 100})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, &models.CreateInvoiceRequest{UserID: 2, Amount: 200})
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, &models.ListInvoicesRequest{UserID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	require.Len(t, mine.Invoices, 1)
	assert.Equal(t, int64(1), mine.Invoices[0].UserID)
}
