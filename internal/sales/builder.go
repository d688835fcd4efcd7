package sales

import (
	"errors"
	"fmt"

	"lojistik-backend/internal/models"

	"gorm.io/gorm"
)

// Builder: Satış commit edilmeden önce kalemleri biriktirir.
// Kalemler ekleme sırasıyla tutulur; aynı ürün birden fazla kez eklenebilir,
// birleştirme yapılmaz.
type Builder struct {
	db    *gorm.DB
	lines []models.SaleLine
}

func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

// AddLine: Yeni kalem ekler. Geçersiz girişte hiçbir kalem eklenmez.
func (b *Builder) AddLine(productID uint, quantity int, unitPrice float64) error {
	if productID == 0 {
		return newValidationError("Ürün seçilmelidir")
	}
	if quantity <= 0 {
		return newValidationError("Miktar 0'dan büyük olmalı")
	}
	if unitPrice < 0 {
		return newValidationError("Birim fiyat negatif olamaz")
	}

	var product models.Product
	if err := b.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError(fmt.Sprintf("Ürün bulunamadı: %d", productID))
		}
		return err
	}

	b.lines = append(b.lines, models.SaleLine{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  float64(quantity) * unitPrice,
	})
	return nil
}

// RemoveLine: Verilen sıradaki kalemi çıkarır. Sıra aralık dışındaysa hiçbir şey yapmaz.
func (b *Builder) RemoveLine(index int) {
	if index < 0 || index >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
}

// Lines: Mevcut kalemlerin kopyasını döndürür.
func (b *Builder) Lines() []models.SaleLine {
	out := make([]models.SaleLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Total: Kalem subtotal'larının toplamı. Her çağrıda yeniden hesaplanır.
func (b *Builder) Total() float64 {
	var total float64
	for _, l := range b.lines {
		total += l.Subtotal
	}
	return total
}
