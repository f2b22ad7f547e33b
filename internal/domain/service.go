package domain

import "time"

// ShopService услуга из каталога мастерской (правка диска, балансировка и т.д.)
type ShopService struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
