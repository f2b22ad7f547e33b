package domain

import "time"

// LeaveStatus represents the status of an employee leave request
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

var leaveTransitions = map[LeaveStatus][]LeaveStatus{
	LeaveStatusPending:  {LeaveStatusApproved, LeaveStatusRejected},
	LeaveStatusApproved: {},
	LeaveStatusRejected: {},
}

// IsValid returns true if the status is a known leave status
func (s LeaveStatus) IsValid() bool {
	_, ok := leaveTransitions[s]
	return ok
}

// CanTransitionTo returns true if the transition s -> next is allowed
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	for _, allowed := range leaveTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LeaveRequest заявка сотрудника на отпуск
type LeaveRequest struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveStatus
	ReviewedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsReviewed returns true if the request has been approved or rejected
func (l *LeaveRequest) IsReviewed() bool {
	return l.Status != LeaveStatusPending
}
