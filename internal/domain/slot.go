package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// SlotKey canonical (date, timeSlot) key governing slot capacity
type SlotKey struct {
	Date     time.Time
	TimeSlot types.TimeString
}

// NewSlotKey создает ключ слота, отбрасывая время у даты
func NewSlotKey(date time.Time, timeSlot types.TimeString) SlotKey {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return SlotKey{Date: day, TimeSlot: timeSlot}
}

// String returns the key in "YYYY-MM-DD|HH:MM" form
func (k SlotKey) String() string {
	return fmt.Sprintf("%s|%s", k.Date.Format(DateFormat), k.TimeSlot)
}

// AdmissionDecision результат проверки допуска бронирования в слот
type AdmissionDecision struct {
	Admitted bool
	Reason   string // ReasonSlotFull / ReasonSlotUnavailable или reason из политики; пустой при допуске
}

// Admit возвращает положительное решение
func Admit() AdmissionDecision {
	return AdmissionDecision{Admitted: true}
}

// Reject возвращает отрицательное решение с причиной
func Reject(reason string) AdmissionDecision {
	return AdmissionDecision{Admitted: false, Reason: reason}
}

// SlotLabels генерирует множество допустимых меток слотов рабочего дня
// с шагом stepMinutes, начиная с start; последний слот начинается строго раньше end
func SlotLabels(start, end types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("domain: slot step must be positive, got %d", stepMinutes)
	}

	labels := make([]types.TimeString, 0)
	current := start
	for current.IsBefore(end) {
		labels = append(labels, current)
		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			// Шаг вышел за пределы суток, генерация закончена
			break
		}
		current = next
	}
	return labels, nil
}

// IsKnownSlotLabel проверяет, что метка принадлежит множеству слотов рабочего дня
func IsKnownSlotLabel(label types.TimeString, labels []types.TimeString) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
