package geo

import (
	"fmt"
	"strings"

	"lojistik-backend/internal/audit"
	"lojistik-backend/internal/auth"
	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Yardımcı: Kullanıcı bilgilerini al (audit log için)
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

type CityResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateCityRequest struct {
	Name string `json:"name"`
}

type UpdateCityRequest struct {
	Name *string `json:"name"`
}

// GET /api/cities
func ListCitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cities []models.City
		if err := database.DB.Order("name asc").Find(&cities).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şehirler listelenemedi")
		}

		res := make([]CityResponse, 0, len(cities))
		for _, city := range cities {
			res = append(res, CityResponse{ID: city.ID, Name: city.Name})
		}
		return c.JSON(res)
	}
}

// POST /api/cities
func CreateCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Şehir adı zorunlu")
		}

		city := models.City{Name: body.Name}
		if err := database.DB.Create(&city).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu şehir zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şehir oluşturulamadı")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "city",
				EntityID:    city.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Şehir eklendi: %s", city.Name),
				Before:      nil,
				After:       city,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(CityResponse{ID: city.ID, Name: city.Name})
	}
}

// PUT /api/cities/:id
func UpdateCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var city models.City
		if err := database.DB.First(&city, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şehir bulunamadı")
		}

		before := city

		var body UpdateCityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Şehir adı boş olamaz")
			}
			city.Name = name
		}

		if err := database.DB.Save(&city).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu şehir zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şehir güncellenemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "city",
				EntityID:    city.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Şehir güncellendi: %s", city.Name),
				Before:      before,
				After:       city,
			})
		}

		return c.JSON(CityResponse{ID: city.ID, Name: city.Name})
	}
}

// DELETE /api/cities/:id (sadece admin)
func DeleteCityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var city models.City
		if err := database.DB.First(&city, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şehir bulunamadı")
		}

		if err := database.DB.Delete(&city).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Şehre bağlı kayıtlar var, silinemez")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şehir silinemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "city",
				EntityID:    city.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Şehir silindi: %s", city.Name),
				Before:      city,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
