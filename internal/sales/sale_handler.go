package sales

import (
	"errors"
	"fmt"
	"time"

	"lojistik-backend/internal/audit"
	"lojistik-backend/internal/auth"
	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateSaleRequest: Yeni satış oluşturma
type CreateSaleRequest struct {
	CustomerID uint              `json:"customer_id"`
	RouteID    uint              `json:"route_id"`
	Date       string            `json:"date"` // "2025-12-09"
	Lines      []SaleLineRequest `json:"lines"`
}

type SaleLineRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type SaleResponse struct {
	ID           uint               `json:"id"`
	CustomerID   uint               `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	RouteID      uint               `json:"route_id"`
	RouteName    string             `json:"route_name,omitempty"`
	Date         string             `json:"date"`
	TotalValue   float64            `json:"total_value"`
	Lines        []SaleLineResponse `json:"lines"`
	CreatedAt    string             `json:"created_at"`
}

type SaleLineResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

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

// İstek gövdesini doğrulayıp Builder üzerinden kalem listesine çevirir.
func buildSaleInput(body CreateSaleRequest) (SaleInput, error) {
	if body.CustomerID == 0 {
		return SaleInput{}, fiber.NewError(fiber.StatusBadRequest, "Müşteri seçilmelidir")
	}
	if body.RouteID == 0 {
		return SaleInput{}, fiber.NewError(fiber.StatusBadRequest, "Güzergah seçilmelidir")
	}

	d, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return SaleInput{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", body.CustomerID).Error; err != nil {
		return SaleInput{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Müşteri bulunamadı: %d", body.CustomerID))
	}
	var route models.Route
	if err := database.DB.First(&route, "id = ?", body.RouteID).Error; err != nil {
		return SaleInput{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Güzergah bulunamadı: %d", body.RouteID))
	}

	b := NewBuilder(database.DB)
	for _, lineReq := range body.Lines {
		if err := b.AddLine(lineReq.ProductID, lineReq.Quantity, lineReq.UnitPrice); err != nil {
			if IsValidation(err) {
				return SaleInput{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return SaleInput{}, fiber.NewError(fiber.StatusInternalServerError, "Ürün kontrolü yapılamadı")
		}
	}

	return SaleInput{
		CustomerID: body.CustomerID,
		RouteID:    body.RouteID,
		SaleDate:   d,
		Lines:      b.Lines(),
	}, nil
}

func toSaleResponse(s *models.Sale) SaleResponse {
	linesResp := make([]SaleLineResponse, 0, len(s.Lines))
	for _, line := range s.Lines {
		linesResp = append(linesResp, SaleLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}

	return SaleResponse{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		CustomerName: s.Customer.Name,
		RouteID:      s.RouteID,
		RouteName:    s.Route.Name,
		Date:         s.SaleDate.Format("2006-01-02"),
		TotalValue:   s.TotalValue,
		Lines:        linesResp,
		CreatedAt:    s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := buildSaleInput(body)
		if err != nil {
			return err
		}

		sale, err := CreateSale(database.DB, in)
		if err != nil {
			if IsValidation(err) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Satış oluşturulamadı")
		}

		// Yanıt GET ile aynı şekli taşısın diye ilişkileriyle yeniden yükle
		if err := database.DB.
			Preload("Customer").
			Preload("Route").
			Preload("Lines.Product").
			First(sale, "id = ?", sale.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış yüklenemedi")
		}

		// Audit log yaz
		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sale",
				EntityID:    sale.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Satış eklendi: %d kalem, Toplam: %.2f", len(sale.Lines), sale.TotalValue),
				Before:      nil,
				After:       sale,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
	}
}

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var saleRows []models.Sale
		if err := database.DB.
			Preload("Customer").
			Preload("Route").
			Preload("Lines.Product").
			Order("sale_date DESC, created_at DESC").
			Find(&saleRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		resp := make([]SaleResponse, 0, len(saleRows))
		for i := range saleRows {
			resp = append(resp, toSaleResponse(&saleRows[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/sales/:id
func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sale models.Sale
		if err := database.DB.
			Preload("Customer").
			Preload("Route").
			Preload("Lines.Product").
			First(&sale, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		return c.JSON(toSaleResponse(&sale))
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var existing models.Sale
		if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := buildSaleInput(body)
		if err != nil {
			return err
		}

		sale, err := UpdateSale(database.DB, existing.ID, in)
		if err != nil {
			if IsValidation(err) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Satış güncellenemedi")
		}

		if err := database.DB.
			Preload("Customer").
			Preload("Route").
			Preload("Lines.Product").
			First(sale, "id = ?", sale.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış yüklenemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sale",
				EntityID:    sale.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Satış güncellendi: %d kalem, Toplam: %.2f", len(sale.Lines), sale.TotalValue),
				Before:      existing,
				After:       sale,
			})
		}

		return c.JSON(toSaleResponse(sale))
	}
}

// DELETE /api/sales/:id
// Kalemler, teslimat ve satış birlikte silinir.
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var sale models.Sale
		if err := database.DB.Preload("Lines").First(&sale, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		if err := DeleteSale(database.DB, sale.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış silinemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "sale",
				EntityID:    sale.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Satış silindi: %d kalem, Toplam: %.2f", len(sale.Lines), sale.TotalValue),
				Before:      sale,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
