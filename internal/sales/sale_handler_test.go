package sales

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"lojistik-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

func TestCreateSaleHandlerResponseIncludesNames(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New()
	app.Post("/api/sales", CreateSaleHandler())

	body := fmt.Sprintf(`{
		"customer_id": %d,
		"route_id": %d,
		"date": "2025-12-09",
		"lines": [
			{"product_id": %d, "quantity": 2, "unit_price": 1000},
			{"product_id": %d, "quantity": 1, "unit_price": 500}
		]
	}`, f.customer.ID, f.route.ID, f.productA.ID, f.productB.ID)

	req := httptest.NewRequest("POST", "/api/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("beklenen 201, gelen: %d", resp.StatusCode)
	}

	var sale SaleResponse
	if err := json.NewDecoder(resp.Body).Decode(&sale); err != nil {
		t.Fatalf("yanıt çözümlenemedi: %v", err)
	}

	// Oluşturma yanıtı GET ile aynı alanları taşımalı
	if sale.CustomerName != f.customer.Name {
		t.Fatalf("customer_name beklenen %q, gelen: %q", f.customer.Name, sale.CustomerName)
	}
	if sale.RouteName != f.route.Name {
		t.Fatalf("route_name beklenen %q, gelen: %q", f.route.Name, sale.RouteName)
	}
	if sale.TotalValue != 2500 {
		t.Fatalf("toplam beklenen 2500, gelen: %v", sale.TotalValue)
	}
	if len(sale.Lines) != 2 {
		t.Fatalf("2 kalem bekleniyordu, gelen: %d", len(sale.Lines))
	}
	for _, line := range sale.Lines {
		if line.ProductName == "" {
			t.Fatalf("kalem ürün adı boş: %+v", line)
		}
	}
}
