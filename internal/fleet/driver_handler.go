package fleet

import (
	"strings"
	"time"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/guard"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DriverResponse struct {
	ID         uint   `json:"id"`
	NationalID string `json:"national_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	HireDate   string `json:"hire_date"`
	RouteID    *uint  `json:"route_id"`
	RouteName  string `json:"route_name,omitempty"`
	AssignedAt string `json:"assigned_at,omitempty"`
}

type CreateDriverRequest struct {
	NationalID string `json:"national_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	HireDate   string `json:"hire_date"` // "2025-12-09"
}

type UpdateDriverRequest struct {
	NationalID *string `json:"national_id"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	HireDate   *string `json:"hire_date"`
}

type AssignRouteRequest struct {
	RouteID *uint `json:"route_id"` // nil gönderilirse atama kaldırılır
}

func toDriverResponse(d *models.Driver) DriverResponse {
	resp := DriverResponse{
		ID:         d.ID,
		NationalID: d.NationalID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Phone:      d.Phone,
		Address:    d.Address,
		HireDate:   d.HireDate.Format("2006-01-02"),
		RouteID:    d.RouteID,
	}
	if d.Route != nil {
		resp.RouteName = d.Route.Name
	}
	if d.AssignedAt != nil {
		resp.AssignedAt = d.AssignedAt.Format("2006-01-02")
	}
	return resp
}

// GET /api/drivers
func ListDriversHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var drivers []models.Driver
		if err := database.DB.
			Preload("Route").
			Order("first_name asc, last_name asc").
			Find(&drivers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şoförler listelenemedi")
		}

		res := make([]DriverResponse, 0, len(drivers))
		for i := range drivers {
			res = append(res, toDriverResponse(&drivers[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/drivers/:id
func GetDriverHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var driver models.Driver
		if err := database.DB.Preload("Route").First(&driver, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şoför bulunamadı")
		}

		return c.JSON(toDriverResponse(&driver))
	}
}

// POST /api/drivers
func CreateDriverHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDriverRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.NationalID = strings.TrimSpace(body.NationalID)
		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)

		if body.NationalID == "" || body.FirstName == "" || body.LastName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kimlik no, ad ve soyad zorunlu")
		}

		d, err := time.Parse("2006-01-02", body.HireDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		driver := models.Driver{
			NationalID: body.NationalID,
			FirstName:  body.FirstName,
			LastName:   body.LastName,
			Phone:      body.Phone,
			Address:    body.Address,
			HireDate:   d,
		}

		if err := database.DB.Create(&driver).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kimlik numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şoför oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toDriverResponse(&driver))
	}
}

// PUT /api/drivers/:id
func UpdateDriverHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var driver models.Driver
		if err := database.DB.First(&driver, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şoför bulunamadı")
		}

		var body UpdateDriverRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.NationalID != nil {
			nid := strings.TrimSpace(*body.NationalID)
			if nid == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kimlik no boş olamaz")
			}
			driver.NationalID = nid
		}
		if body.FirstName != nil {
			name := strings.TrimSpace(*body.FirstName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ad boş olamaz")
			}
			driver.FirstName = name
		}
		if body.LastName != nil {
			name := strings.TrimSpace(*body.LastName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Soyad boş olamaz")
			}
			driver.LastName = name
		}
		if body.Phone != nil {
			driver.Phone = *body.Phone
		}
		if body.Address != nil {
			driver.Address = *body.Address
		}
		if body.HireDate != nil {
			d, err := time.Parse("2006-01-02", *body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			driver.HireDate = d
		}

		if err := database.DB.Save(&driver).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kimlik numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Şoför güncellenemedi")
		}

		return c.JSON(toDriverResponse(&driver))
	}
}

// POST /api/drivers/:id/route
// Güzergah atar veya route_id=null ile atamayı kaldırır.
func AssignRouteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var driver models.Driver
		if err := database.DB.First(&driver, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şoför bulunamadı")
		}

		var body AssignRouteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.RouteID == nil {
			driver.RouteID = nil
			driver.AssignedAt = nil
		} else {
			var route models.Route
			if err := database.DB.First(&route, "id = ?", *body.RouteID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Güzergah bulunamadı")
			}
			if route.Status != models.RouteStatusActive {
				return fiber.NewError(fiber.StatusBadRequest, "Pasif güzergaha şoför atanamaz")
			}
			now := time.Now()
			driver.RouteID = body.RouteID
			driver.AssignedAt = &now
		}

		// Atama kaldırmada nil yazılması gerektiği için map ile güncelle
		if err := database.DB.Model(&driver).Updates(map[string]interface{}{
			"route_id":    driver.RouteID,
			"assigned_at": driver.AssignedAt,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Atama güncellenemedi")
		}

		if err := database.DB.Preload("Route").First(&driver, "id = ?", driver.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şoför yüklenemedi")
		}

		return c.JSON(toDriverResponse(&driver))
	}
}

// DELETE /api/drivers/:id (sadece admin)
// Atanmış güzergahı olan şoför silinemez.
func DeleteDriverHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var driver models.Driver
		if err := database.DB.First(&driver, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şoför bulunamadı")
		}

		if err := guard.CanDeleteDriver(database.DB, driver.ID); err != nil {
			if guard.IsBlocked(err) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Bağımlılık kontrolü yapılamadı")
		}

		if err := database.DB.Delete(&driver).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şoför silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
