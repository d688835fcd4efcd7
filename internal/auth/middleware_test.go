package auth

import (
	"net/http/httptest"
	"testing"

	"lojistik-backend/internal/config"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newTestConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret-test-secret-test-secret!"}
}

func tokenFor(t *testing.T, cfg *config.Config, role models.UserRole) string {
	t.Helper()
	token, err := GenerateToken(cfg.JWTSecret, &models.User{
		ID:    1,
		Email: "test@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("token üretilemedi: %v", err)
	}
	return token
}

// Ana uygulamadaki kayıt düzenini kurar: JWT tüm korumalı uçlarda,
// rol kontrolü sadece admin uçlarında route bazında takılı.
func newTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New()

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	api := app.Group("/api")
	protected := api.Group("")
	protected.Use(JWTMiddleware(cfg))

	adminOnly := RequireRole(models.RoleAdmin)
	protected.Delete("/cities/:id", adminOnly, ok)
	protected.Get("/cities", ok)

	return app
}

func TestOperatorCanReachNonAdminRoutes(t *testing.T) {
	cfg := newTestConfig()
	app := newTestApp(cfg)
	token := tokenFor(t, cfg, models.RoleOperator)

	req := httptest.NewRequest("GET", "/api/cities", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("operatör GET /api/cities beklenen 200, gelen: %d", resp.StatusCode)
	}
}

func TestOperatorBlockedOnAdminRoutes(t *testing.T) {
	cfg := newTestConfig()
	app := newTestApp(cfg)
	token := tokenFor(t, cfg, models.RoleOperator)

	req := httptest.NewRequest("DELETE", "/api/cities/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("operatör DELETE beklenen 403, gelen: %d", resp.StatusCode)
	}
}

func TestAdminAllowedOnAdminRoutes(t *testing.T) {
	cfg := newTestConfig()
	app := newTestApp(cfg)
	token := tokenFor(t, cfg, models.RoleAdmin)

	req := httptest.NewRequest("DELETE", "/api/cities/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin DELETE beklenen 200, gelen: %d", resp.StatusCode)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	cfg := newTestConfig()
	app := newTestApp(cfg)

	req := httptest.NewRequest("GET", "/api/cities", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("tokensız istek beklenen 401, gelen: %d", resp.StatusCode)
	}
}
