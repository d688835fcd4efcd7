package sales

import (
	"testing"
	"time"

	"lojistik-backend/internal/models"
)

func TestCreateSale(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLine(f.productB.ID, 1, 500); err != nil {
		t.Fatal(err)
	}

	saleDate := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)
	sale, err := CreateSale(db, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   saleDate,
		Lines:      b.Lines(),
	})
	if err != nil {
		t.Fatalf("satış oluşturulamadı: %v", err)
	}

	if sale.TotalValue != 2500 {
		t.Fatalf("toplam 2500 olmalı, gelen: %v", sale.TotalValue)
	}

	var lineCount int64
	if err := db.Model(&models.SaleLine{}).Where("sale_id = ?", sale.ID).Count(&lineCount).Error; err != nil {
		t.Fatal(err)
	}
	if lineCount != 2 {
		t.Fatalf("2 kalem bekleniyordu, gelen: %d", lineCount)
	}

	// Satışla birlikte tam bir adet PENDING teslimat oluşmalı
	var deliveries []models.Delivery
	if err := db.Where("sale_id = ?", sale.ID).Find(&deliveries).Error; err != nil {
		t.Fatal(err)
	}
	if len(deliveries) != 1 {
		t.Fatalf("1 teslimat bekleniyordu, gelen: %d", len(deliveries))
	}
	if deliveries[0].Status != models.DeliveryStatusPending {
		t.Fatalf("teslimat durumu PENDING olmalı, gelen: %s", deliveries[0].Status)
	}
	if !deliveries[0].DeliveryDate.Equal(saleDate) {
		t.Fatalf("teslimat tarihi satış tarihi olmalı, gelen: %v", deliveries[0].DeliveryDate)
	}
}

func TestCreateSaleEmptyLines(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	_, err := CreateSale(db, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   time.Now(),
	})
	if err == nil {
		t.Fatal("hata bekleniyordu")
	}
	if !IsValidation(err) {
		t.Fatalf("doğrulama hatası bekleniyordu, gelen: %v", err)
	}

	// Hiçbir kayıt yazılmamış olmalı
	var saleCount, deliveryCount int64
	db.Model(&models.Sale{}).Count(&saleCount)
	db.Model(&models.Delivery{}).Count(&deliveryCount)
	if saleCount != 0 || deliveryCount != 0 {
		t.Fatalf("kayıt yazılmamalıydı: satış=%d teslimat=%d", saleCount, deliveryCount)
	}
}

func TestUpdateSaleEmptyLines(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}
	sale, err := CreateSale(db, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		Lines:      b.Lines(),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = UpdateSale(db, sale.ID, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   sale.SaleDate,
	})
	if err == nil {
		t.Fatal("hata bekleniyordu")
	}
	if !IsValidation(err) {
		t.Fatalf("doğrulama hatası bekleniyordu, gelen: %v", err)
	}

	// Mevcut kalemler ve toplam olduğu gibi kalmalı
	var stored models.Sale
	if err := db.Preload("Lines").First(&stored, "id = ?", sale.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.TotalValue != 2000 {
		t.Fatalf("toplam değişmemeliydi, gelen: %v", stored.TotalValue)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("kalemler değişmemeliydi, gelen: %d", len(stored.Lines))
	}
}

func TestUpdateSaleReplacesLines(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 2, 1000); err != nil {
		t.Fatal(err)
	}
	sale, err := CreateSale(db, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		Lines:      b.Lines(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var deliveryBefore models.Delivery
	if err := db.First(&deliveryBefore, "sale_id = ?", sale.ID).Error; err != nil {
		t.Fatal(err)
	}

	b2 := NewBuilder(db)
	if err := b2.AddLine(f.productB.ID, 4, 500); err != nil {
		t.Fatal(err)
	}
	updated, err := UpdateSale(db, sale.ID, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   sale.SaleDate,
		Lines:      b2.Lines(),
	})
	if err != nil {
		t.Fatalf("satış güncellenemedi: %v", err)
	}

	if updated.TotalValue != 2000 {
		t.Fatalf("toplam 2000 olmalı, gelen: %v", updated.TotalValue)
	}

	// Eski kalemler tamamen silinip yenileri yazılmalı
	var lines []models.SaleLine
	if err := db.Where("sale_id = ?", sale.ID).Find(&lines).Error; err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("1 kalem bekleniyordu, gelen: %d", len(lines))
	}
	if lines[0].ProductID != f.productB.ID {
		t.Fatalf("kalem yanlış ürüne ait: %d", lines[0].ProductID)
	}

	// Teslimat kaydına dokunulmamalı
	var deliveryAfter models.Delivery
	if err := db.First(&deliveryAfter, "sale_id = ?", sale.ID).Error; err != nil {
		t.Fatal(err)
	}
	if deliveryAfter.ID != deliveryBefore.ID || deliveryAfter.Status != deliveryBefore.Status {
		t.Fatal("teslimat kaydı değişmemeliydi")
	}
}

func TestDeleteSaleRemovesEverything(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	b := NewBuilder(db)
	if err := b.AddLine(f.productA.ID, 1, 1000); err != nil {
		t.Fatal(err)
	}
	sale, err := CreateSale(db, SaleInput{
		CustomerID: f.customer.ID,
		RouteID:    f.route.ID,
		SaleDate:   time.Now(),
		Lines:      b.Lines(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := DeleteSale(db, sale.ID); err != nil {
		t.Fatalf("satış silinemedi: %v", err)
	}

	var saleCount, lineCount, deliveryCount int64
	db.Model(&models.Sale{}).Where("id = ?", sale.ID).Count(&saleCount)
	db.Model(&models.SaleLine{}).Where("sale_id = ?", sale.ID).Count(&lineCount)
	db.Model(&models.Delivery{}).Where("sale_id = ?", sale.ID).Count(&deliveryCount)
	if saleCount != 0 || lineCount != 0 || deliveryCount != 0 {
		t.Fatalf("silme sonrası kayıt kalmamalı: satış=%d kalem=%d teslimat=%d", saleCount, lineCount, deliveryCount)
	}
}
