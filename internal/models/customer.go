package models

import "time"

type Customer struct {
	ID         uint   `gorm:"primaryKey"`
	NationalID string `gorm:"size:20;not null;unique"`
	Name       string `gorm:"size:200;not null"`
	Phone      string `gorm:"size:50"`
	Address    string `gorm:"size:255"`
	CityID     uint   `gorm:"index;not null"`
	City       City
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
