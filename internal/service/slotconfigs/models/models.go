package models

import (
	"time"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
	"github.com/m04kA/SMC-WheelShopService/pkg/types"
)

// Request модели

// UpsertConfigRequest запрос на создание или обновление конфигурации слота
type UpsertConfigRequest struct {
	Date        string  `json:"date"`     // "2025-10-15"
	TimeSlot    string  `json:"timeSlot"` // "10:00"
	MaxCapacity int     `json:"maxCapacity"`
	IsActive    bool    `json:"isActive"`
	Reason      *string `json:"reason,omitempty"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() (*domain.TimeSlotConfig, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	slot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}
	return &domain.TimeSlotConfig{
		Date:        date,
		TimeSlot:    slot,
		MaxCapacity: r.MaxCapacity,
		IsActive:    r.IsActive,
		Reason:      r.Reason,
	}, nil
}

// Response модели

// ConfigResponse ответ с данными конфигурации слота
type ConfigResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	MaxCapacity int     `json:"maxCapacity"`
	IsActive    bool    `json:"isActive"`
	Reason      *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.TimeSlotConfig) *ConfigResponse {
	if c == nil {
		return nil
	}
	return &ConfigResponse{
		ID:          c.ID,
		Date:        c.Date.Format(domain.DateFormat),
		TimeSlot:    c.TimeSlot.String(),
		MaxCapacity: c.MaxCapacity,
		IsActive:    c.IsActive,
		Reason:      c.Reason,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.TimeSlotConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}
	for _, c := range configs {
		if configResp := FromDomainConfig(c); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}
	return resp
}
