package crm

import (
	"strings"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/guard"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CustomerResponse struct {
	ID         uint   `json:"id"`
	NationalID string `json:"national_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CityID     uint   `json:"city_id"`
	CityName   string `json:"city_name,omitempty"`
}

type CreateCustomerRequest struct {
	NationalID string `json:"national_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CityID     uint   `json:"city_id"`
}

type UpdateCustomerRequest struct {
	NationalID *string `json:"national_id"`
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	CityID     *uint   `json:"city_id"`
}

func toCustomerResponse(cu *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         cu.ID,
		NationalID: cu.NationalID,
		Name:       cu.Name,
		Phone:      cu.Phone,
		Address:    cu.Address,
		CityID:     cu.CityID,
		CityName:   cu.City.Name,
	}
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Preload("City").Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteriler listelenemedi")
		}

		res := make([]CustomerResponse, 0, len(customers))
		for i := range customers {
			res = append(res, toCustomerResponse(&customers[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/customers/:id
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.Preload("City").First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		return c.JSON(toCustomerResponse(&customer))
	}
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.NationalID = strings.TrimSpace(body.NationalID)
		body.Name = strings.TrimSpace(body.Name)

		if body.NationalID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kimlik no ve isim zorunlu")
		}
		if body.CityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Şehir seçilmelidir")
		}

		var city models.City
		if err := database.DB.First(&city, "id = ?", body.CityID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Şehir bulunamadı")
		}

		customer := models.Customer{
			NationalID: body.NationalID,
			Name:       body.Name,
			Phone:      body.Phone,
			Address:    body.Address,
			CityID:     body.CityID,
		}

		if err := database.DB.Create(&customer).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kimlik numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri oluşturulamadı")
		}

		customer.City = city
		return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(&customer))
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.NationalID != nil {
			nid := strings.TrimSpace(*body.NationalID)
			if nid == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Kimlik no boş olamaz")
			}
			customer.NationalID = nid
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			customer.Name = name
		}
		if body.Phone != nil {
			customer.Phone = *body.Phone
		}
		if body.Address != nil {
			customer.Address = *body.Address
		}
		if body.CityID != nil {
			var city models.City
			if err := database.DB.First(&city, "id = ?", *body.CityID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Şehir bulunamadı")
			}
			customer.CityID = *body.CityID
		}

		if err := database.DB.Save(&customer).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu kimlik numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri güncellenemedi")
		}

		if err := database.DB.Preload("City").First(&customer, "id = ?", customer.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri yüklenemedi")
		}

		return c.JSON(toCustomerResponse(&customer))
	}
}

// DELETE /api/customers/:id (sadece admin)
// Satış kaydı olan müşteri silinemez.
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		if err := guard.CanDeleteCustomer(database.DB, customer.ID); err != nil {
			if guard.IsBlocked(err) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Bağımlılık kontrolü yapılamadı")
		}

		if err := database.DB.Delete(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Müşteri silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
