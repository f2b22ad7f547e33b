package review_leave

import (
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
)

// ReviewLeaveRequest HTTP request model
// reviewerID подставляется из контекста авторизации
type ReviewLeaveRequest struct {
	Status string `json:"status"` // approved | rejected
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReviewLeaveRequest) ToServiceRequest(reviewerID int64) *models.ReviewLeaveRequest {
	return &models.ReviewLeaveRequest{
		ReviewerID: reviewerID,
		Status:     r.Status,
	}
}
