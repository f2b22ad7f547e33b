package queue

// Типы событий уведомлений
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
	EventQuoteReviewed    = "quote.reviewed"
	EventInvoiceIssued    = "invoice.issued"
	EventLeaveReviewed    = "leave.reviewed"
)

// NotificationEvent событие, публикуемое в очередь уведомлений.
// Consumer превращает его в письмо получателю
type NotificationEvent struct {
	Type       string `json:"type"`
	Recipient  string `json:"recipient"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	EntityID   int64  `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
}
