package models

import "time"

// Sale: Satış başlığı (birden fazla satış kalemi içerebilir)
type Sale struct {
	ID         uint `gorm:"primaryKey"`
	CustomerID uint `gorm:"index;not null"`
	Customer   Customer
	RouteID    uint `gorm:"index;not null"`
	Route      Route
	SaleDate   time.Time `gorm:"index;not null"`
	TotalValue float64   `gorm:"not null"` // kalem subtotal'larının toplamı (commit anında)
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Lines []SaleLine `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleLine: Satıştaki her ürün kalemi
type SaleLine struct {
	ID        uint `gorm:"primaryKey"`
	SaleID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"` // ekleme anında üründen kopyalanır, ayrıca düzenlenebilir
	Subtotal  float64 `gorm:"not null"` // Quantity * UnitPrice
	CreatedAt time.Time
	UpdatedAt time.Time
}
