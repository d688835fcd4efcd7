package catalog

import (
	"strings"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/guard"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SupplierResponse struct {
	ID            uint   `json:"id"`
	TaxID         string `json:"tax_id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Active        bool   `json:"active"`
}

type CreateSupplierRequest struct {
	TaxID         string `json:"tax_id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type UpdateSupplierRequest struct {
	TaxID         *string `json:"tax_id"`
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Active        *bool   `json:"active"`
}

func toSupplierResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		TaxID:         s.TaxID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Address:       s.Address,
		Active:        s.Active,
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			res = append(res, toSupplierResponse(&suppliers[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		return c.JSON(toSupplierResponse(&supplier))
	}
}

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.TaxID = strings.TrimSpace(body.TaxID)
		body.Name = strings.TrimSpace(body.Name)

		if body.TaxID == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Vergi no ve isim zorunlu")
		}

		supplier := models.Supplier{
			TaxID:         body.TaxID,
			Name:          body.Name,
			ContactPerson: body.ContactPerson,
			Phone:         body.Phone,
			Address:       body.Address,
			Active:        true,
		}

		if err := database.DB.Create(&supplier).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu vergi numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toSupplierResponse(&supplier))
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.TaxID != nil {
			taxID := strings.TrimSpace(*body.TaxID)
			if taxID == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Vergi no boş olamaz")
			}
			supplier.TaxID = taxID
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			supplier.Name = name
		}
		if body.ContactPerson != nil {
			supplier.ContactPerson = *body.ContactPerson
		}
		if body.Phone != nil {
			supplier.Phone = *body.Phone
		}
		if body.Address != nil {
			supplier.Address = *body.Address
		}
		if body.Active != nil {
			supplier.Active = *body.Active
		}

		if err := database.DB.Save(&supplier).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Bu vergi numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		return c.JSON(toSupplierResponse(&supplier))
	}
}

// DELETE /api/suppliers/:id (sadece admin)
// Bağlı ürünü olan tedarikçi silinemez.
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		if err := guard.CanDeleteSupplier(database.DB, supplier.ID); err != nil {
			if guard.IsBlocked(err) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Bağımlılık kontrolü yapılamadı")
		}

		if err := database.DB.Delete(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
