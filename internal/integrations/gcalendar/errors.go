package gcalendar

import "errors"

var (
	// ErrDisabled возвращается, когда синхронизация с календарём выключена
	ErrDisabled = errors.New("gcalendar: sync is disabled")

	// ErrTokenRefresh возвращается при ошибке обновления access token
	ErrTokenRefresh = errors.New("gcalendar: failed to refresh access token")

	// ErrInvalidResponse возвращается при некорректном ответе Google API
	ErrInvalidResponse = errors.New("gcalendar: invalid response from calendar API")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gcalendar: internal error")
)
