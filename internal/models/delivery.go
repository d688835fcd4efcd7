package models

import "time"

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusReturned  DeliveryStatus = "RETURNED"
)

// Delivery: Satış başına tam bir adet oluşturulan teslimat kaydı.
// Satış oluşturulurken PENDING durumuyla ve satış tarihiyle açılır.
type Delivery struct {
	ID           uint `gorm:"primaryKey"`
	SaleID       uint `gorm:"uniqueIndex;not null"`
	Sale         Sale
	DeliveryDate time.Time      `gorm:"not null"`
	Status       DeliveryStatus `gorm:"size:20;not null;default:PENDING"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
