package upsert_slot_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WheelShopService/internal/api/handlers"
	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs"
	"github.com/m04kA/SMC-WheelShopService/internal/service/slotconfigs/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownSlot        = "указанный слот не входит в рабочий день"
	msgInvalidInput       = "некорректные данные конфигурации"
)

type Handler struct {
	service SlotConfigService
	logger  Logger
}

func NewHandler(service SlotConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/time-slot-configs
// Создает конфигурацию слота или обновляет существующую
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/time-slot-configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slotconfigs.ErrUnknownSlot):
			h.logger.Warn("PUT /admin/time-slot-configs - Unknown slot: date=%s, time_slot=%s", req.Date, req.TimeSlot)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, slotconfigs.ErrInvalidInput):
			h.logger.Warn("PUT /admin/time-slot-configs - Invalid input: date=%s, time_slot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/time-slot-configs - Failed to upsert config: date=%s, time_slot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/time-slot-configs - Config upserted: config_id=%d, date=%s, time_slot=%s",
		result.ID, result.Date, result.TimeSlot)
	handlers.RespondJSON(w, http.StatusOK, result)
}
