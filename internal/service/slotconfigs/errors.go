package slotconfigs

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация слота не найдена
	ErrConfigNotFound = errors.New("slot config not found")

	// ErrUnknownSlot возвращается, когда метка слота не принадлежит рабочему дню
	ErrUnknownSlot = errors.New("unknown time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
