package guard

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

func seedBase(t *testing.T, db *gorm.DB) (models.Route, models.Supplier, models.Product, models.Customer) {
	t.Helper()

	city1 := models.City{Name: "İzmir"}
	city2 := models.City{Name: "Bursa"}
	if err := db.Create(&city1).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&city2).Error; err != nil {
		t.Fatal(err)
	}

	route := models.Route{
		Name:              "İzmir - Bursa",
		OriginCityID:      city1.ID,
		DestinationCityID: city2.ID,
		OpeningDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CurrentCost:       800,
		Status:            models.RouteStatusActive,
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatal(err)
	}

	supplier := models.Supplier{TaxID: "9876543210", Name: "Ege Tarım", Active: true}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatal(err)
	}

	product := models.Product{Name: "Zeytinyağı 5L", UnitPrice: 750, SupplierID: supplier.ID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatal(err)
	}

	customer := models.Customer{NationalID: "22222222222", Name: "Ayşe Demir", CityID: city1.ID}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatal(err)
	}

	return route, supplier, product, customer
}

func createSaleWithLine(t *testing.T, db *gorm.DB, customerID, routeID, productID uint) models.Sale {
	t.Helper()

	sale := models.Sale{
		CustomerID: customerID,
		RouteID:    routeID,
		SaleDate:   time.Now(),
		TotalValue: 750,
	}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatal(err)
	}
	line := models.SaleLine{SaleID: sale.ID, ProductID: productID, Quantity: 1, UnitPrice: 750, Subtotal: 750}
	if err := db.Create(&line).Error; err != nil {
		t.Fatal(err)
	}
	return sale
}

func TestCanDeleteSupplier(t *testing.T) {
	db := newTestDB(t)
	_, supplier, _, _ := seedBase(t, db)

	err := CanDeleteSupplier(db, supplier.ID)
	if !IsBlocked(err) {
		t.Fatalf("ürünü olan tedarikçi engellenmeliydi, gelen: %v", err)
	}

	free := models.Supplier{TaxID: "5555555555", Name: "Boş Tedarikçi", Active: true}
	if err := db.Create(&free).Error; err != nil {
		t.Fatal(err)
	}
	if err := CanDeleteSupplier(db, free.ID); err != nil {
		t.Fatalf("bağımlılığı olmayan tedarikçi silinebilmeli: %v", err)
	}
}

func TestCanDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	route, supplier, product, customer := seedBase(t, db)

	if err := CanDeleteProduct(db, product.ID); err != nil {
		t.Fatalf("satışı olmayan ürün silinebilmeli: %v", err)
	}

	createSaleWithLine(t, db, customer.ID, route.ID, product.ID)

	err := CanDeleteProduct(db, product.ID)
	if !IsBlocked(err) {
		t.Fatalf("satış kaleminde geçen ürün engellenmeliydi, gelen: %v", err)
	}

	_ = supplier
}

func TestCanDeleteCustomer(t *testing.T) {
	db := newTestDB(t)
	route, _, product, customer := seedBase(t, db)

	if err := CanDeleteCustomer(db, customer.ID); err != nil {
		t.Fatalf("satışı olmayan müşteri silinebilmeli: %v", err)
	}

	createSaleWithLine(t, db, customer.ID, route.ID, product.ID)

	err := CanDeleteCustomer(db, customer.ID)
	if !IsBlocked(err) {
		t.Fatalf("satışı olan müşteri engellenmeliydi, gelen: %v", err)
	}
}

func TestCanDeleteRoute(t *testing.T) {
	db := newTestDB(t)
	route, _, product, customer := seedBase(t, db)

	if err := CanDeleteRoute(db, route.ID); err != nil {
		t.Fatalf("bağımlılığı olmayan güzergah silinebilmeli: %v", err)
	}

	// Şoför ataması engeller
	now := time.Now()
	driver := models.Driver{
		NationalID: "33333333333",
		FirstName:  "Ali",
		LastName:   "Kaya",
		HireDate:   now,
		RouteID:    &route.ID,
		AssignedAt: &now,
	}
	if err := db.Create(&driver).Error; err != nil {
		t.Fatal(err)
	}

	err := CanDeleteRoute(db, route.ID)
	if !IsBlocked(err) {
		t.Fatalf("şoför atanmış güzergah engellenmeliydi, gelen: %v", err)
	}

	// Atama kalksa bile satış kaydı varsa yine engellenir
	if err := db.Model(&models.Driver{}).Where("id = ?", driver.ID).
		Updates(map[string]interface{}{"route_id": nil, "assigned_at": nil}).Error; err != nil {
		t.Fatal(err)
	}
	createSaleWithLine(t, db, customer.ID, route.ID, product.ID)

	err = CanDeleteRoute(db, route.ID)
	if !IsBlocked(err) {
		t.Fatalf("satışı olan güzergah engellenmeliydi, gelen: %v", err)
	}
}

func TestCanDeleteDriver(t *testing.T) {
	db := newTestDB(t)
	route, _, _, _ := seedBase(t, db)

	now := time.Now()
	assigned := models.Driver{
		NationalID: "44444444444",
		FirstName:  "Veli",
		LastName:   "Şahin",
		HireDate:   now,
		RouteID:    &route.ID,
		AssignedAt: &now,
	}
	if err := db.Create(&assigned).Error; err != nil {
		t.Fatal(err)
	}

	err := CanDeleteDriver(db, assigned.ID)
	if !IsBlocked(err) {
		t.Fatalf("güzergaha atanmış şoför engellenmeliydi, gelen: %v", err)
	}

	idle := models.Driver{
		NationalID: "55555555555",
		FirstName:  "Hasan",
		LastName:   "Çelik",
		HireDate:   now,
	}
	if err := db.Create(&idle).Error; err != nil {
		t.Fatal(err)
	}
	if err := CanDeleteDriver(db, idle.ID); err != nil {
		t.Fatalf("atanmamış şoför silinebilmeli: %v", err)
	}
}
