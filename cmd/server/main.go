package main

import (
	"log"
	"strings"

	"lojistik-backend/internal/audit"
	"lojistik-backend/internal/auth"
	"lojistik-backend/internal/catalog"
	"lojistik-backend/internal/config"
	"lojistik-backend/internal/crm"
	"lojistik-backend/internal/dashboard"
	"lojistik-backend/internal/database"
	"lojistik-backend/internal/expense"
	"lojistik-backend/internal/fleet"
	"lojistik-backend/internal/geo"
	"lojistik-backend/internal/models"
	"lojistik-backend/internal/reports"
	"lojistik-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Sadece admin gerektiren uçlara route bazında takılır; grup olarak
	// takılırsa aynı prefix'i paylaşan operatör uçları da kilitlenir.
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Kullanıcı yönetimi
	protected.Post("/users", adminOnly, auth.CreateUserHandler())

	// Silme işlemleri sadece admin
	protected.Delete("/cities/:id", adminOnly, geo.DeleteCityHandler())
	protected.Delete("/routes/:id", adminOnly, geo.DeleteRouteHandler())
	protected.Delete("/drivers/:id", adminOnly, fleet.DeleteDriverHandler())
	protected.Delete("/suppliers/:id", adminOnly, catalog.DeleteSupplierHandler())
	protected.Delete("/products/:id", adminOnly, catalog.DeleteProductHandler())
	protected.Delete("/customers/:id", adminOnly, crm.DeleteCustomerHandler())
	protected.Delete("/sales/:id", adminOnly, sales.DeleteSaleHandler())
	protected.Delete("/expenses/:id", adminOnly, expense.DeleteExpenseHandler())

	// Geri alma sadece admin
	protected.Post("/audit-logs/:id/undo", adminOnly, audit.UndoAuditLogHandler())

	// Şehirler
	protected.Post("/cities", geo.CreateCityHandler())
	protected.Get("/cities", geo.ListCitiesHandler())
	protected.Put("/cities/:id", geo.UpdateCityHandler())

	// Güzergahlar
	protected.Post("/routes", geo.CreateRouteHandler())
	protected.Get("/routes", geo.ListRoutesHandler())
	protected.Get("/routes/:id", geo.GetRouteHandler())
	protected.Put("/routes/:id", geo.UpdateRouteHandler())

	// Şoförler
	protected.Post("/drivers", fleet.CreateDriverHandler())
	protected.Get("/drivers", fleet.ListDriversHandler())
	protected.Get("/drivers/:id", fleet.GetDriverHandler())
	protected.Put("/drivers/:id", fleet.UpdateDriverHandler())
	protected.Post("/drivers/:id/route", fleet.AssignRouteHandler())

	// Tedarikçiler
	protected.Post("/suppliers", catalog.CreateSupplierHandler())
	protected.Get("/suppliers", catalog.ListSuppliersHandler())
	protected.Get("/suppliers/:id", catalog.GetSupplierHandler())
	protected.Put("/suppliers/:id", catalog.UpdateSupplierHandler())

	// Ürünler
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())

	// Müşteriler
	protected.Post("/customers", crm.CreateCustomerHandler())
	protected.Get("/customers", crm.ListCustomersHandler())
	protected.Get("/customers/:id", crm.GetCustomerHandler())
	protected.Put("/customers/:id", crm.UpdateCustomerHandler())

	// Satışlar
	protected.Post("/sales", sales.CreateSaleHandler())
	protected.Get("/sales", sales.ListSalesHandler())
	protected.Get("/sales/:id", sales.GetSaleHandler())
	protected.Put("/sales/:id", sales.UpdateSaleHandler())

	// Teslimatlar (satışla birlikte otomatik oluşur, sadece durum güncellenir)
	protected.Get("/deliveries", sales.ListDeliveriesHandler())
	protected.Get("/deliveries/:id", sales.GetDeliveryHandler())
	protected.Put("/deliveries/:id", sales.UpdateDeliveryHandler())

	// Giderler
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/:id", expense.GetExpenseHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Get("/expenses/summary/monthly", expense.MonthlyExpenseSummaryHandler())

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler())

	// Raporlar
	protected.Get("/reports/summary", reports.SummaryHandler())
	protected.Get("/reports/summary/export", reports.ExportSummaryHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
