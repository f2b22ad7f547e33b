package domain

import "time"

// QuoteStatus represents the status of a quote request
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusQuoted   QuoteStatus = "quoted"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusPending:  {QuoteStatusQuoted, QuoteStatusRejected},
	QuoteStatusQuoted:   {QuoteStatusAccepted, QuoteStatusRejected},
	QuoteStatusAccepted: {},
	QuoteStatusRejected: {},
}

// IsValid returns true if the status is a known quote status
func (s QuoteStatus) IsValid() bool {
	_, ok := quoteTransitions[s]
	return ok
}

// CanTransitionTo returns true if the transition s -> next is allowed
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Quote запрос клиента на расчёт стоимости работ
type Quote struct {
	ID           int64
	UserID       int64
	ServiceID    int64
	VehicleBrand string
	VehiclePlate string
	Description  string
	Status       QuoteStatus

	// Заполняются админом при ответе на запрос
	Price      *float64
	AdminNotes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the quote is in a terminal state
func (q *Quote) IsTerminal() bool {
	return q.Status == QuoteStatusAccepted || q.Status == QuoteStatusRejected
}
