package catalog

import (
	"strings"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/guard"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProductResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	UnitPrice    float64 `json:"unit_price"`
	SupplierID   uint    `json:"supplier_id"`
	SupplierName string  `json:"supplier_name,omitempty"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	SupplierID  uint    `json:"supplier_id"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unit_price"`
	SupplierID  *uint    `json:"supplier_id"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		UnitPrice:    p.UnitPrice,
		SupplierID:   p.SupplierID,
		SupplierName: p.Supplier.Name,
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("Supplier").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.Preload("Supplier").First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(toProductResponse(&product))
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı zorunlu")
		}
		if body.UnitPrice < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Birim fiyat negatif olamaz")
		}
		if body.SupplierID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi seçilmelidir")
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", body.SupplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi bulunamadı")
		}

		product := models.Product{
			Name:        body.Name,
			Description: body.Description,
			UnitPrice:   body.UnitPrice,
			SupplierID:  body.SupplierID,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		product.Supplier = supplier
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&product))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ürün adı boş olamaz")
			}
			product.Name = name
		}
		if body.Description != nil {
			product.Description = body.Description
		}
		if body.UnitPrice != nil {
			if *body.UnitPrice < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Birim fiyat negatif olamaz")
			}
			product.UnitPrice = *body.UnitPrice
		}
		if body.SupplierID != nil {
			var supplier models.Supplier
			if err := database.DB.First(&supplier, "id = ?", *body.SupplierID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi bulunamadı")
			}
			product.SupplierID = *body.SupplierID
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		if err := database.DB.Preload("Supplier").First(&product, "id = ?", product.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün yüklenemedi")
		}

		return c.JSON(toProductResponse(&product))
	}
}

// DELETE /api/products/:id (sadece admin)
// Satış kalemlerinde geçen ürün silinemez.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if err := guard.CanDeleteProduct(database.DB, product.ID); err != nil {
			if guard.IsBlocked(err) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Bağımlılık kontrolü yapılamadı")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
