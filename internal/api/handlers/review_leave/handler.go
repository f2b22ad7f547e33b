package review_leave

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/api/middleware"
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidLeaveID     = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgInvalidInput       = "некорректное решение по заявке"
)

type Handler struct {
	service LeaveService
	logger  Logger
}

func NewHandler(service LeaveService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/leaves/{leaveId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.CallerID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	leaveID, err := strconv.ParseInt(vars["leaveId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /leaves/{id}/review - Invalid leave ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	var req ReviewLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /leaves/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Review(r.Context(), leaveID, req.ToServiceRequest(reviewerID))
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrLeaveNotFound):
			h.logger.Warn("PATCH /leaves/{id}/review - Leave request not found: leave_id=%d", leaveID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leaves.ErrInvalidTransition):
			h.logger.Warn("PATCH /leaves/{id}/review - Invalid transition: leave_id=%d, status=%s",
				leaveID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("PATCH /leaves/{id}/review - Invalid input: leave_id=%d, error=%v", leaveID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /leaves/{id}/review - Failed to review leave request: leave_id=%d, error=%v",
				leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /leaves/{id}/review - Leave request reviewed: leave_id=%d, reviewer_id=%d, status=%s",
		leaveID, reviewerID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
