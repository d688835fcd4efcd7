package reports

import (
	"fmt"
	"time"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MonthlyFigure struct {
	Month    string  `json:"month"` // "2025-12"
	Sales    float64 `json:"sales"`
	Expenses float64 `json:"expenses"`
}

type TopProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type TopRoute struct {
	RouteID   uint   `json:"route_id"`
	RouteName string `json:"route_name"`
	SaleCount int64  `json:"sale_count"`
}

type DeliveryTally struct {
	Pending   int64 `json:"pending"`
	Delivered int64 `json:"delivered"`
	Returned  int64 `json:"returned"`
}

type SummaryResponse struct {
	Monthly     []MonthlyFigure `json:"monthly"`
	TopProducts []TopProduct    `json:"top_products"`
	TopRoutes   []TopRoute      `json:"top_routes"`
	Deliveries  DeliveryTally   `json:"deliveries"`
}

// buildSummary: Son 6 ayın satış/gider toplamları, en çok satan 5 ürün,
// en çok satış yapılan 5 güzergah ve teslimat durum sayıları
func buildSummary(db *gorm.DB, now time.Time) (*SummaryResponse, error) {
	summary := &SummaryResponse{}

	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	for i := 0; i < 6; i++ {
		start := firstMonth.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)

		fig := MonthlyFigure{Month: start.Format("2006-01")}

		if err := db.Model(&models.Sale{}).
			Select("COALESCE(SUM(total_value), 0)").
			Where("sale_date >= ? AND sale_date < ?", start, end).
			Scan(&fig.Sales).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("expense_date >= ? AND expense_date < ?", start, end).
			Scan(&fig.Expenses).Error; err != nil {
			return nil, err
		}

		summary.Monthly = append(summary.Monthly, fig)
	}

	if err := db.Model(&models.SaleLine{}).
		Select("sale_lines.product_id AS product_id, products.name AS product_name, SUM(sale_lines.quantity) AS quantity").
		Joins("JOIN products ON products.id = sale_lines.product_id").
		Group("sale_lines.product_id, products.name").
		Order("quantity DESC").
		Limit(5).
		Scan(&summary.TopProducts).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Sale{}).
		Select("sales.route_id AS route_id, routes.name AS route_name, COUNT(*) AS sale_count").
		Joins("JOIN routes ON routes.id = sales.route_id").
		Group("sales.route_id, routes.name").
		Order("sale_count DESC").
		Limit(5).
		Scan(&summary.TopRoutes).Error; err != nil {
		return nil, err
	}

	statuses := []struct {
		status models.DeliveryStatus
		dst    *int64
	}{
		{models.DeliveryStatusPending, &summary.Deliveries.Pending},
		{models.DeliveryStatusDelivered, &summary.Deliveries.Delivered},
		{models.DeliveryStatusReturned, &summary.Deliveries.Returned},
	}
	for _, s := range statuses {
		if err := db.Model(&models.Delivery{}).
			Where("status = ?", s.status).
			Count(s.dst).Error; err != nil {
			return nil, err
		}
	}

	return summary, nil
}

// GET /api/reports/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := buildSummary(database.DB, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor hesaplanamadı")
		}
		return c.JSON(summary)
	}
}

// parseMonthParam: ?year=2025&month=12 varsa o ayı, yoksa şimdiyi döner
func parseMonthParam(c *fiber.Ctx) (time.Time, error) {
	yearStr, monthStr := c.Query("year"), c.Query("month")
	if yearStr == "" && monthStr == "" {
		return time.Now(), nil
	}

	var year, month int
	if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
	}
	if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}
