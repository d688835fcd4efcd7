package sales

import (
	"fmt"
	"testing"
	"time"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate başarısız: %v", err)
	}
	return db
}

type fixtures struct {
	city     models.City
	route    models.Route
	supplier models.Supplier
	productA models.Product
	productB models.Product
	customer models.Customer
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	var f fixtures
	f.city = models.City{Name: "İstanbul"}
	if err := db.Create(&f.city).Error; err != nil {
		t.Fatalf("şehir oluşturulamadı: %v", err)
	}

	city2 := models.City{Name: "Ankara"}
	if err := db.Create(&city2).Error; err != nil {
		t.Fatalf("şehir oluşturulamadı: %v", err)
	}

	f.route = models.Route{
		Name:              "İstanbul - Ankara",
		OriginCityID:      f.city.ID,
		DestinationCityID: city2.ID,
		OpeningDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrentCost:       1500,
		Status:            models.RouteStatusActive,
	}
	if err := db.Create(&f.route).Error; err != nil {
		t.Fatalf("güzergah oluşturulamadı: %v", err)
	}

	f.supplier = models.Supplier{TaxID: "1234567890", Name: "ABC Gıda", Active: true}
	if err := db.Create(&f.supplier).Error; err != nil {
		t.Fatalf("tedarikçi oluşturulamadı: %v", err)
	}

	f.productA = models.Product{Name: "Un 50kg", UnitPrice: 1000, SupplierID: f.supplier.ID}
	if err := db.Create(&f.productA).Error; err != nil {
		t.Fatalf("ürün oluşturulamadı: %v", err)
	}
	f.productB = models.Product{Name: "Şeker 25kg", UnitPrice: 500, SupplierID: f.supplier.ID}
	if err := db.Create(&f.productB).Error; err != nil {
		t.Fatalf("ürün oluşturulamadı: %v", err)
	}

	f.customer = models.Customer{NationalID: "11111111111", Name: "Mehmet Yılmaz", CityID: f.city.ID}
	if err := db.Create(&f.customer).Error; err != nil {
		t.Fatalf("müşteri oluşturulamadı: %v", err)
	}

	return f
}
