package models

import "time"

type Supplier struct {
	ID            uint   `gorm:"primaryKey"`
	TaxID         string `gorm:"size:20;not null;unique"` // vergi numarası
	Name          string `gorm:"size:200;not null"`
	ContactPerson string `gorm:"size:100"`
	Phone         string `gorm:"size:50"`
	Address       string `gorm:"size:255"`
	Active        bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
