package list_leaves

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/api/middleware"
	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves"
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
)

const (
	msgUnauthorized      = "требуется авторизация"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidInput      = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/leaves
// Сотрудник видит только свои заявки, администратор может фильтровать по employeeId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req := &models.ListLeavesRequest{}

	if claims.Role == domain.RoleAdmin {
		if v := r.URL.Query().Get("employeeId"); v != "" {
			employeeID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				h.logger.Warn("GET /leaves - Invalid employeeId filter: %v", err)
				handlers.RespondBadRequest(w, msgInvalidEmployeeID)
				return
			}
			req.EmployeeID = &employeeID
		}
	} else {
		req.EmployeeID = &claims.UserID
	}

	if v := r.URL.Query().Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, leaves.ErrInvalidInput):
			h.logger.Warn("GET /leaves - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /leaves - Failed to list leave requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
