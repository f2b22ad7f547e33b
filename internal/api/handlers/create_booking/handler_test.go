package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WheelShopService/internal/api/middleware"
	"github.com/m04kA/SMC-WheelShopService/internal/auth"
	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	createBooking "github.com/m04kA/SMC-WheelShopService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

func serve(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	tokens := auth.NewTokenManager("test-secret", 60)
	token, _, err := tokens.Generate(42, domain.RoleCustomer)
	require.NoError(t, err)

	h := NewHandler(uc, nopLogger{})
	handler := middleware.Auth(tokens)(http.HandlerFunc(h.Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	date := "2026-09-15"
	slot := "10:00"
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:           7,
		UserID:       42,
		ServiceID:    1,
		TimeKind:     string(domain.TimeKindFixedSlot),
		Date:         &date,
		TimeSlot:     &slot,
		VehicleBrand: "Lada",
		Status:       string(domain.StatusPending),
		ServiceName:  "Замена колёс",
		ServicePrice: 3200,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}}

	rec := serve(t, uc, `{"serviceId":1,"date":"2026-09-15","timeSlot":"10:00","vehicleBrand":"Lada"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	// userID берется из токена, а не из тела
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(42), uc.gotReq.UserID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	require.NotNil(t, resp.TimeSlot)
	assert.Equal(t, "10:00", *resp.TimeSlot)
	assert.Nil(t, resp.Warning)
}

func TestHandle_ErrorMapping(t *testing.T) {
	body := `{"serviceId":1,"date":"2026-09-15","timeSlot":"10:00","vehicleBrand":"Lada"}`

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"slot full", createBooking.ErrSlotFull, http.StatusConflict},
		{"slot unavailable", createBooking.ErrSlotUnavailable, http.StatusConflict},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"unknown slot", createBooking.ErrUnknownSlot, http.StatusBadRequest},
		{"past date", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(t, uc, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"serviceId":1,"date":"15.09.2026","timeSlot":"10:00","vehicleBrand":"Lada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"serviceId":1,"unknownField":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_Unauthorized(t *testing.T) {
	handler := NewHandler(&stubUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
