package create_quote

import (
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

// CreateQuoteRequest HTTP request model
// userID подставляется из контекста авторизации
type CreateQuoteRequest struct {
	ServiceID    int64  `json:"serviceId"`
	VehicleBrand string `json:"vehicleBrand"`
	VehiclePlate string `json:"vehiclePlate"`
	Description  string `json:"description"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateQuoteRequest) ToServiceRequest(userID int64) *models.CreateQuoteRequest {
	return &models.CreateQuoteRequest{
		UserID:       userID,
		ServiceID:    r.ServiceID,
		VehicleBrand: r.VehicleBrand,
		VehiclePlate: r.VehiclePlate,
		Description:  r.Description,
	}
}
