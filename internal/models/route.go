package models

import "time"

type RouteStatus string

const (
	RouteStatusActive   RouteStatus = "ACTIVE"
	RouteStatusInactive RouteStatus = "INACTIVE"
)

// Route: İki şehir arasındaki taşıma güzergahı
type Route struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"size:100;not null"`
	OriginCityID      uint   `gorm:"index;not null"`
	OriginCity        City   `gorm:"foreignKey:OriginCityID"`
	DestinationCityID uint   `gorm:"index;not null"`
	DestinationCity   City   `gorm:"foreignKey:DestinationCityID"`
	OpeningDate       time.Time `gorm:"not null"`
	CurrentCost       float64   `gorm:"not null"`
	Status            RouteStatus `gorm:"size:20;not null;default:ACTIVE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
