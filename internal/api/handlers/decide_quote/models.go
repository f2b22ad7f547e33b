package decide_quote

import (
	"github.com/m04kA/SMC-WheelShopService/internal/service/quotes/models"
)

// DecideQuoteRequest HTTP request model
// userID подставляется из контекста авторизации
type DecideQuoteRequest struct {
	Status string `json:"status"` // accepted | rejected
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *DecideQuoteRequest) ToServiceRequest(userID int64) *models.DecideQuoteRequest {
	return &models.DecideQuoteRequest{
		UserID: userID,
		Status: r.Status,
	}
}
