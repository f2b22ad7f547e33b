package assign_employee

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/service/bookings"
	"github.com/m04kA/SMC-WheelShopService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgNotAnEmployee      = "пользователь не является сотрудником"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/assignee
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/assignee - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.AssignEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/assignee - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.AssignEmployee(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/assignee - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /bookings/{id}/assignee - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, bookings.ErrNotAnEmployee):
			h.logger.Warn("PATCH /bookings/{id}/assignee - Not an employee: employee_id=%d", req.EmployeeID)
			handlers.RespondBadRequest(w, msgNotAnEmployee)

		default:
			h.logger.Error("PATCH /bookings/{id}/assignee - Failed to assign employee: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/assignee - Employee assigned: booking_id=%d, employee_id=%d",
		bookingID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
