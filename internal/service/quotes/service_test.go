package quotes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
	"github.com/m04kA/SMC-WheelShopService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc     *Service
	service domain.ShopService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	svc := store.SeedService(domain.ShopService{
		Name:   "Правка диска",
		Price:  1500,
		Active: true,
	})

	return &fixture{
		svc: NewService(
			memory.NewQuoteStore(store),
			memory.NewCatalogStore(store),
			memory.NewUserStore(store),
			nil,
			nopLogger{},
		),
		service: svc,
	}
}

func (f *fixture) createQuote(t *testing.T, userID int64) *models.QuoteResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), &models.CreateQuoteRequest{
		UserID:       userID,
		ServiceID:    f.service.ID,
		VehicleBrand: "УАЗ",
		VehiclePlate: "В456ГД77",
		Description:  "Сильная восьмёрка на переднем правом",
	})
	require.NoError(t, err)
	return resp
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	resp := f.createQuote(t, 1)
	assert.Equal(t, string(domain.QuoteStatusPending), resp.Status)
	assert.Nil(t, resp.Price)

	_, err := f.svc.Create(context.Background(), &models.CreateQuoteRequest{
		UserID:       1,
		ServiceID:    9999,
		VehicleBrand: "УАЗ",
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.svc.Create(context.Background(), &models.CreateQuoteRequest{
		UserID:    1,
		ServiceID: f.service.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReviewThenDecide(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuote(t, 1)

	price := 2500.0
	reviewed, err := f.svc.Review(ctx, q.ID, &models.ReviewQuoteRequest{
		Status: "quoted",
		Price:  &price,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QuoteStatusQuoted), reviewed.Status)
	require.NotNil(t, reviewed.Price)
	assert.InDelta(t, price, *reviewed.Price, 0.001)

	decided, err := f.svc.Decide(ctx, q.ID, &models.DecideQuoteRequest{UserID: 1, Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QuoteStatusAccepted), decided.Status)

	// accepted терминален
	_, err = f.svc.Decide(ctx, q.ID, &models.DecideQuoteRequest{UserID: 1, Status: "rejected"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReview_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuote(t, 1)

	// quoted без цены не принимается
	_, err := f.svc.Review(ctx, q.ID, &models.ReviewQuoteRequest{Status: "quoted"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Review не может сразу перевести в accepted
	_, err = f.svc.Review(ctx, q.ID, &models.ReviewQuoteRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Review(ctx, 9999, &models.ReviewQuoteRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestDecide_AccessAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuote(t, 1)

	// Решение до выставления цены невозможно
	_, err := f.svc.Decide(ctx, q.ID, &models.DecideQuoteRequest{UserID: 1, Status: "accepted"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	price := 2000.0
	_, err = f.svc.Review(ctx, q.ID, &models.ReviewQuoteRequest{Status: "quoted", Price: &price})
	require.NoError(t, err)

	// Чужой клиент не решает
	_, err = f.svc.Decide(ctx, q.ID, &models.DecideQuoteRequest{UserID: 2, Status: "accepted"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := f.createQuote(t, 1)

	_, err := f.svc.GetByID(ctx, q.ID, 1, domain.RoleCustomer)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, q.ID, 2, domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, q.ID, 2, domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestList_Filter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createQuote(t, 1)
	f.createQuote(t, 1)
	f.createQuote(t, 2)

	all, err := f.svc.List(ctx, &models.ListQuotesRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Quotes, 3)

	mine, err := f.svc.List(ctx, &models.ListQuotesRequest{UserID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	assert.Len(t, mine.Quotes, 2)

	_, err = f.svc.List(ctx, &models.ListQuotesRequest{Status: ptr.Ptr("galactic")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
