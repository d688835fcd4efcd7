package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:200;not null"`
	Description *string `gorm:"size:500"`
	UnitPrice   float64 `gorm:"not null"`
	SupplierID  uint    `gorm:"index;not null"`
	Supplier    Supplier
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
