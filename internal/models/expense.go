package models

import "time"

// Expense: Güzergah bazlı gider kaydı
type Expense struct {
	ID          uint `gorm:"primaryKey"`
	RouteID     uint `gorm:"index;not null"`
	Route       Route
	ExpenseDate time.Time `gorm:"index;not null"`
	Amount      float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
