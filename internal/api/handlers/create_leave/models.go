package create_leave

import (
	"github.com/m04kA/SMC-WheelShopService/internal/service/leaves/models"
)

// CreateLeaveRequest HTTP request model
// employeeID подставляется из контекста авторизации
type CreateLeaveRequest struct {
	StartDate string `json:"startDate"` // "2025-10-15"
	EndDate   string `json:"endDate"`   // "2025-10-20"
	Reason    string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLeaveRequest) ToServiceRequest(employeeID int64) *models.CreateLeaveRequest {
	return &models.CreateLeaveRequest{
		EmployeeID: employeeID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
	}
}
