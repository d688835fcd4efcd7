package expense

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Handler'lar global database.DB üzerinden çalıştığı için test başına değiştirilir.
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

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

func seedExpense(t *testing.T, db *gorm.DB) models.Expense {
	t.Helper()

	city1 := models.City{Name: "Samsun"}
	city2 := models.City{Name: "Trabzon"}
	if err := db.Create(&city1).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&city2).Error; err != nil {
		t.Fatal(err)
	}
	route := models.Route{
		Name:              "Samsun - Trabzon",
		OriginCityID:      city1.ID,
		DestinationCityID: city2.ID,
		OpeningDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		CurrentCost:       600,
		Status:            models.RouteStatusActive,
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatal(err)
	}

	e := models.Expense{
		RouteID:     route.ID,
		ExpenseDate: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
		Amount:      320,
		Description: "Otoyol geçişi",
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatal(err)
	}
	return e
}

func TestGetExpenseHandler(t *testing.T) {
	db := newTestDB(t)
	e := seedExpense(t, db)

	app := fiber.New()
	app.Get("/api/expenses/:id", GetExpenseHandler())

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/expenses/%d", e.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("beklenen 200, gelen: %d", resp.StatusCode)
	}

	var body ExpenseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("yanıt çözümlenemedi: %v", err)
	}
	if body.ID != e.ID || body.Amount != 320 || body.RouteName != "Samsun - Trabzon" {
		t.Fatalf("yanıt beklenen gideri taşımıyor: %+v", body)
	}
	if body.Date != "2025-10-03" {
		t.Fatalf("tarih formatı yanlış: %q", body.Date)
	}
}

func TestGetExpenseHandlerNotFound(t *testing.T) {
	newTestDB(t)

	app := fiber.New()
	app.Get("/api/expenses/:id", GetExpenseHandler())

	req := httptest.NewRequest("GET", "/api/expenses/9999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("beklenen 404, gelen: %d", resp.StatusCode)
	}
}
