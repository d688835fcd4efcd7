package sales

import (
	"time"

	"lojistik-backend/internal/models"

	"gorm.io/gorm"
)

// SaleInput: Commit edilecek satışın başlık bilgileri ve kalemleri.
// Kalemler Builder'dan gelir; subtotal'lar burada yeniden hesaplanmaz,
// Builder ekleme anında hesaplamıştır.
type SaleInput struct {
	CustomerID uint
	RouteID    uint
	SaleDate   time.Time
	Lines      []models.SaleLine
}

// CreateSale: Satış başlığını, kalemlerini ve PENDING durumundaki teslimat
// kaydını tek transaction içinde oluşturur. Teslimat tarihi satış tarihidir.
func CreateSale(db *gorm.DB, in SaleInput) (*models.Sale, error) {
	if len(in.Lines) == 0 {
		return nil, newValidationError("En az bir ürün eklenmelidir")
	}

	var total float64
	for _, l := range in.Lines {
		total += l.Subtotal
	}

	sale := models.Sale{
		CustomerID: in.CustomerID,
		RouteID:    in.RouteID,
		SaleDate:   in.SaleDate,
		TotalValue: total,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	lines := make([]models.SaleLine, len(in.Lines))
	copy(lines, in.Lines)
	for i := range lines {
		lines[i].ID = 0
		lines[i].SaleID = sale.ID
	}
	if err := tx.Create(&lines).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	delivery := models.Delivery{
		SaleID:       sale.ID,
		DeliveryDate: in.SaleDate,
		Status:       models.DeliveryStatusPending,
	}
	if err := tx.Create(&delivery).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	sale.Lines = lines
	return &sale, nil
}

// UpdateSale: Başlık alanlarını ve toplamı günceller, eski kalemlerin tamamını
// yenileriyle değiştirir. Teslimat kaydına dokunmaz.
func UpdateSale(db *gorm.DB, saleID uint, in SaleInput) (*models.Sale, error) {
	if len(in.Lines) == 0 {
		return nil, newValidationError("En az bir ürün eklenmelidir")
	}

	var sale models.Sale
	if err := db.First(&sale, "id = ?", saleID).Error; err != nil {
		return nil, err
	}

	var total float64
	for _, l := range in.Lines {
		total += l.Subtotal
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Model(&sale).Updates(map[string]interface{}{
		"customer_id": in.CustomerID,
		"route_id":    in.RouteID,
		"sale_date":   in.SaleDate,
		"total_value": total,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Eski kalemleri sil, yenilerini ekle
	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleLine{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	lines := make([]models.SaleLine, len(in.Lines))
	copy(lines, in.Lines)
	for i := range lines {
		lines[i].ID = 0
		lines[i].SaleID = sale.ID
	}
	if err := tx.Create(&lines).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	sale.CustomerID = in.CustomerID
	sale.RouteID = in.RouteID
	sale.SaleDate = in.SaleDate
	sale.TotalValue = total
	sale.Lines = lines
	return &sale, nil
}

// DeleteSale: Önce kalemleri, sonra teslimatı, en son satışı siler.
// Üçü tek transaction içinde yürür.
func DeleteSale(db *gorm.DB, saleID uint) error {
	var sale models.Sale
	if err := db.First(&sale, "id = ?", saleID).Error; err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleLine{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.Delivery{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&sale).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
