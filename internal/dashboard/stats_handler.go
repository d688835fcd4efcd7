package dashboard

import (
	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StatsResponse struct {
	CityCount         int64   `json:"city_count"`
	RouteCount        int64   `json:"route_count"`
	ActiveRouteCount  int64   `json:"active_route_count"`
	DriverCount       int64   `json:"driver_count"`
	SupplierCount     int64   `json:"supplier_count"`
	ProductCount      int64   `json:"product_count"`
	CustomerCount     int64   `json:"customer_count"`
	SaleCount         int64   `json:"sale_count"`
	PendingDeliveries int64   `json:"pending_deliveries"`
	TotalSalesValue   float64 `json:"total_sales_value"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetResult         float64 `json:"net_result"`
}

// GET /api/dashboard/stats
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats StatsResponse
		db := database.DB

		counts := []struct {
			model interface{}
			dst   *int64
		}{
			{&models.City{}, &stats.CityCount},
			{&models.Route{}, &stats.RouteCount},
			{&models.Driver{}, &stats.DriverCount},
			{&models.Supplier{}, &stats.SupplierCount},
			{&models.Product{}, &stats.ProductCount},
			{&models.Customer{}, &stats.CustomerCount},
			{&models.Sale{}, &stats.SaleCount},
		}
		for _, cnt := range counts {
			if err := db.Model(cnt.model).Count(cnt.dst).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
			}
		}

		if err := db.Model(&models.Route{}).
			Where("status = ?", models.RouteStatusActive).
			Count(&stats.ActiveRouteCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
		}

		if err := db.Model(&models.Delivery{}).
			Where("status = ?", models.DeliveryStatusPending).
			Count(&stats.PendingDeliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
		}

		// COALESCE: hiç kayıt yoksa 0 dönsün
		if err := db.Model(&models.Sale{}).
			Select("COALESCE(SUM(total_value), 0)").
			Scan(&stats.TotalSalesValue).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
		}
		if err := db.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&stats.TotalExpenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
		}

		stats.NetResult = stats.TotalSalesValue - stats.TotalExpenses

		return c.JSON(stats)
	}
}
