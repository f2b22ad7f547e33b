package get_leave

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
	msgUnauthorized   = "требуется авторизация"
	msgInvalidLeaveID = "некорректный ID заявки"
	msgNotFound       = "заявка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/leaves/{leaveId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	leaveID, err := strconv.ParseInt(vars["leaveId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /leaves/{id} - Invalid leave ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	result, err := h.service.GetByID(r.Context(), leaveID, claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrLeaveNotFound):
			h.logger.Warn("GET /leaves/{id} - Leave request not found: leave_id=%d", leaveID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leaves.ErrAccessDenied):
			h.logger.Warn("GET /leaves/{id} - Access denied: leave_id=%d, user_id=%d", leaveID, claims.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /leaves/{id} - Failed to get leave request: leave_id=%d, error=%v", leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
