package domain

import (
	"time"

	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// TimeSlotConfig admin-set policy override for a single (date, timeSlot) key
// Уникальность пары (date, timeSlot) гарантируется составным индексом в БД
type TimeSlotConfig struct {
	ID          int64
	Date        time.Time
	TimeSlot    types.TimeString
	MaxCapacity int
	IsActive    bool
	Reason      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the slot key governed by this config
func (c *TimeSlotConfig) Key() SlotKey {
	return NewSlotKey(c.Date, c.TimeSlot)
}

// Policy resolved capacity policy for a slot key
// Либо строится из TimeSlotConfig, либо берётся дефолтная
type Policy struct {
	MaxCapacity int
	IsActive    bool
	Reason      *string
}

// DefaultPolicy возвращает политику по умолчанию: capacity 2, слот активен
func DefaultPolicy() Policy {
	return Policy{
		MaxCapacity: DefaultSlotCapacity,
		IsActive:    DefaultSlotActive,
	}
}

// PolicyFromConfig строит политику из строки конфигурации
func PolicyFromConfig(c *TimeSlotConfig) Policy {
	if c == nil {
		return DefaultPolicy()
	}
	return Policy{
		MaxCapacity: c.MaxCapacity,
		IsActive:    c.IsActive,
		Reason:      c.Reason,
	}
}

// RejectionReason причина отказа для неактивного слота
// Если админ не указал reason, используется ReasonSlotUnavailable
func (p Policy) RejectionReason() string {
	if p.Reason != nil && *p.Reason != "" {
		return *p.Reason
	}
	return ReasonSlotUnavailable
}
