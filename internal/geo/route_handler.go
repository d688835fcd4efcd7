package geo

import (
	"strings"
	"time"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/guard"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RouteResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	OriginCityID    uint    `json:"origin_city_id"`
	OriginCity      string  `json:"origin_city,omitempty"`
	DestCityID      uint    `json:"destination_city_id"`
	DestCity        string  `json:"destination_city,omitempty"`
	OpeningDate     string  `json:"opening_date"`
	CurrentCost     float64 `json:"current_cost"`
	Status          string  `json:"status"`
}

type CreateRouteRequest struct {
	Name         string  `json:"name"`
	OriginCityID uint    `json:"origin_city_id"`
	DestCityID   uint    `json:"destination_city_id"`
	OpeningDate  string  `json:"opening_date"` // "2025-12-09"
	CurrentCost  float64 `json:"current_cost"`
}

type UpdateRouteRequest struct {
	Name         *string  `json:"name"`
	OriginCityID *uint    `json:"origin_city_id"`
	DestCityID   *uint    `json:"destination_city_id"`
	OpeningDate  *string  `json:"opening_date"`
	CurrentCost  *float64 `json:"current_cost"`
	Status       *string  `json:"status"` // ACTIVE | INACTIVE
}

func toRouteResponse(r *models.Route) RouteResponse {
	return RouteResponse{
		ID:           r.ID,
		Name:         r.Name,
		OriginCityID: r.OriginCityID,
		OriginCity:   r.OriginCity.Name,
		DestCityID:   r.DestinationCityID,
		DestCity:     r.DestinationCity.Name,
		OpeningDate:  r.OpeningDate.Format("2006-01-02"),
		CurrentCost:  r.CurrentCost,
		Status:       string(r.Status),
	}
}

// GET /api/routes?status=ACTIVE
func ListRoutesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.
			Preload("OriginCity").
			Preload("DestinationCity")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var routes []models.Route
		if err := dbq.Order("name asc").Find(&routes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Güzergahlar listelenemedi")
		}

		res := make([]RouteResponse, 0, len(routes))
		for i := range routes {
			res = append(res, toRouteResponse(&routes[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/routes/:id
func GetRouteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var route models.Route
		if err := database.DB.
			Preload("OriginCity").
			Preload("DestinationCity").
			First(&route, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Güzergah bulunamadı")
		}

		return c.JSON(toRouteResponse(&route))
	}
}

// POST /api/routes
func CreateRouteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRouteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Güzergah adı zorunlu")
		}
		if body.OriginCityID == 0 || body.DestCityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Çıkış ve varış şehri zorunlu")
		}
		if body.CurrentCost < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Maliyet negatif olamaz")
		}

		d, err := time.Parse("2006-01-02", body.OpeningDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		// Şehir kontrolleri
		var origin, dest models.City
		if err := database.DB.First(&origin, "id = ?", body.OriginCityID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Çıkış şehri bulunamadı")
		}
		if err := database.DB.First(&dest, "id = ?", body.DestCityID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Varış şehri bulunamadı")
		}

		route := models.Route{
			Name:              body.Name,
			OriginCityID:      body.OriginCityID,
			DestinationCityID: body.DestCityID,
			OpeningDate:       d,
			CurrentCost:       body.CurrentCost,
			Status:            models.RouteStatusActive,
		}

		if err := database.DB.Create(&route).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Güzergah oluşturulamadı")
		}

		route.OriginCity = origin
		route.DestinationCity = dest
		return c.Status(fiber.StatusCreated).JSON(toRouteResponse(&route))
	}
}

// PUT /api/routes/:id
// Durum da buradan değiştirilir (ACTIVE/INACTIVE).
func UpdateRouteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var route models.Route
		if err := database.DB.First(&route, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Güzergah bulunamadı")
		}

		var body UpdateRouteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Güzergah adı boş olamaz")
			}
			route.Name = name
		}
		if body.OriginCityID != nil {
			var city models.City
			if err := database.DB.First(&city, "id = ?", *body.OriginCityID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Çıkış şehri bulunamadı")
			}
			route.OriginCityID = *body.OriginCityID
		}
		if body.DestCityID != nil {
			var city models.City
			if err := database.DB.First(&city, "id = ?", *body.DestCityID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Varış şehri bulunamadı")
			}
			route.DestinationCityID = *body.DestCityID
		}
		if body.OpeningDate != nil {
			d, err := time.Parse("2006-01-02", *body.OpeningDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			route.OpeningDate = d
		}
		if body.CurrentCost != nil {
			if *body.CurrentCost < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Maliyet negatif olamaz")
			}
			route.CurrentCost = *body.CurrentCost
		}
		if body.Status != nil {
			status := models.RouteStatus(*body.Status)
			if status != models.RouteStatusActive && status != models.RouteStatusInactive {
				return fiber.NewError(fiber.StatusBadRequest, "Durum ACTIVE veya INACTIVE olmalı")
			}
			route.Status = status
		}

		if err := database.DB.Save(&route).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Güzergah güncellenemedi")
		}

		if err := database.DB.
			Preload("OriginCity").
			Preload("DestinationCity").
			First(&route, "id = ?", route.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Güzergah yüklenemedi")
		}

		return c.JSON(toRouteResponse(&route))
	}
}

// DELETE /api/routes/:id (sadece admin)
// Atanmış şoförü veya satışı olan güzergah silinemez.
func DeleteRouteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var route models.Route
		if err := database.DB.First(&route, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Güzergah bulunamadı")
		}

		if err := guard.CanDeleteRoute(database.DB, route.ID); err != nil {
			if guard.IsBlocked(err) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Bağımlılık kontrolü yapılamadı")
		}

		if err := database.DB.Delete(&route).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Güzergah silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
