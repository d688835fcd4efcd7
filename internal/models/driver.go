package models

import "time"

// Driver: Şoför. RouteID nil ise şoför henüz bir güzergaha atanmamıştır.
type Driver struct {
	ID         uint   `gorm:"primaryKey"`
	NationalID string `gorm:"size:20;not null;unique"`
	FirstName  string `gorm:"size:100;not null"`
	LastName   string `gorm:"size:100;not null"`
	Phone      string `gorm:"size:50"`
	Address    string `gorm:"size:255"`
	HireDate   time.Time `gorm:"not null"`
	RouteID    *uint     `gorm:"index"`
	Route      *Route    `gorm:"foreignKey:RouteID"`
	AssignedAt *time.Time // güzergaha atanma tarihi
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
