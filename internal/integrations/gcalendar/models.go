package gcalendar

// Event событие календаря в формате Google Calendar API
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
}

// EventTime время начала/конца события
type EventTime struct {
	DateTime string `json:"dateTime"` // RFC3339
	TimeZone string `json:"timeZone,omitempty"`
}

// createdEvent ответ API на создание события
type createdEvent struct {
	ID string `json:"id"`
}

// tokenResponse ответ token endpoint на refresh-запрос
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
