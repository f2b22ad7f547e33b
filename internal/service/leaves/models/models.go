package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid leave status")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// CreateLeaveRequest заявка сотрудника на отпуск
type CreateLeaveRequest struct {
	EmployeeID int64  `json:"employeeId"`
	StartDate  string `json:"startDate"` // "2025-10-15"
	EndDate    string `json:"endDate"`   // "2025-10-20"
	Reason     string `json:"reason"`
}

// ToDomainLeave конвертирует request в domain модель
func (r *CreateLeaveRequest) ToDomainLeave() (*domain.LeaveRequest, error) {
	start, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &domain.LeaveRequest{
		EmployeeID: r.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     r.Reason,
		Status:     domain.LeaveStatusPending,
	}, nil
}

// ReviewLeaveRequest решение по заявке: approved/rejected
type ReviewLeaveRequest struct {
	ReviewerID int64  `json:"reviewerId"`
	Status     string `json:"status"`
}

// ListLeavesRequest запрос на получение списка заявок
type ListLeavesRequest struct {
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// LeaveResponse ответ с данными заявки на отпуск
type LeaveResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	ReviewedBy *int64 `json:"reviewedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeaveListResponse ответ со списком заявок
type LeaveListResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

// Методы конвертации

// FromDomainLeave конвертирует domain модель в DTO
func FromDomainLeave(l *domain.LeaveRequest) *LeaveResponse {
	if l == nil {
		return nil
	}
	return &LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  l.StartDate.Format(domain.DateFormat),
		EndDate:    l.EndDate.Format(domain.DateFormat),
		Reason:     l.Reason,
		Status:     string(l.Status),
		ReviewedBy: l.ReviewedBy,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// FromDomainLeaveList конвертирует список domain моделей в DTO
func FromDomainLeaveList(leaves []*domain.LeaveRequest) *LeaveListResponse {
	resp := &LeaveListResponse{
		Leaves: make([]LeaveResponse, 0, len(leaves)),
	}
	for _, l := range leaves {
		if leaveResp := FromDomainLeave(l); leaveResp != nil {
			resp.Leaves = append(resp.Leaves, *leaveResp)
		}
	}
	return resp
}

// ToDomainLeaveStatus конвертирует строку в domain.LeaveStatus с валидацией
func ToDomainLeaveStatus(status string) (domain.LeaveStatus, error) {
	s := domain.LeaveStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
