package sales

import (
	"time"

	"lojistik-backend/internal/audit"
	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DeliveryResponse struct {
	ID           uint    `json:"id"`
	SaleID       uint    `json:"sale_id"`
	SaleTotal    float64 `json:"sale_total"`
	CustomerName string  `json:"customer_name,omitempty"`
	RouteName    string  `json:"route_name,omitempty"`
	DeliveryDate string  `json:"delivery_date"`
	Status       string  `json:"status"`
}

type UpdateDeliveryRequest struct {
	DeliveryDate *string `json:"delivery_date"` // "2025-12-09"
	Status       *string `json:"status"`        // PENDING | DELIVERED | RETURNED
}

func toDeliveryResponse(d *models.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:           d.ID,
		SaleID:       d.SaleID,
		SaleTotal:    d.Sale.TotalValue,
		CustomerName: d.Sale.Customer.Name,
		RouteName:    d.Sale.Route.Name,
		DeliveryDate: d.DeliveryDate.Format("2006-01-02"),
		Status:       string(d.Status),
	}
}

// GET /api/deliveries
func ListDeliveriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.
			Preload("Sale.Customer").
			Preload("Sale.Route")

		// ?status=PENDING gibi filtre
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var deliveries []models.Delivery
		if err := dbq.Order("delivery_date DESC, created_at DESC").Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimatlar listelenemedi")
		}

		resp := make([]DeliveryResponse, 0, len(deliveries))
		for i := range deliveries {
			resp = append(resp, toDeliveryResponse(&deliveries[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/deliveries/:id
func GetDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var delivery models.Delivery
		if err := database.DB.
			Preload("Sale.Customer").
			Preload("Sale.Route").
			First(&delivery, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Teslimat bulunamadı")
		}

		return c.JSON(toDeliveryResponse(&delivery))
	}
}

// PUT /api/deliveries/:id
// Sadece tarih ve durum güncellenebilir; teslimat bir satıştan başka satışa taşınamaz.
func UpdateDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var delivery models.Delivery
		if err := database.DB.First(&delivery, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Teslimat bulunamadı")
		}
		before := delivery

		var body UpdateDeliveryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.DeliveryDate != nil {
			d, err := time.Parse("2006-01-02", *body.DeliveryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			delivery.DeliveryDate = d
		}

		if body.Status != nil {
			status := models.DeliveryStatus(*body.Status)
			switch status {
			case models.DeliveryStatusPending, models.DeliveryStatusDelivered, models.DeliveryStatusReturned:
				delivery.Status = status
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Durum PENDING, DELIVERED veya RETURNED olmalı")
			}
		}

		if err := database.DB.Save(&delivery).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimat güncellenemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "delivery",
				EntityID:    delivery.ID,
				Action:      models.AuditActionUpdate,
				Description: "Teslimat güncellendi: " + string(delivery.Status),
				Before:      before,
				After:       delivery,
			})
		}

		if err := database.DB.
			Preload("Sale.Customer").
			Preload("Sale.Route").
			First(&delivery, "id = ?", delivery.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teslimat yüklenemedi")
		}

		return c.JSON(toDeliveryResponse(&delivery))
	}
}
