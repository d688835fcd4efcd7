package expense

import (
	"fmt"
	"time"

	"lojistik-backend/internal/audit"
	"lojistik-backend/internal/auth"
	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	RouteID     uint    `json:"route_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type UpdateExpenseRequest struct {
	Date        *string  `json:"date"`
	RouteID     *uint    `json:"route_id"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	RouteID     uint    `json:"route_id"`
	RouteName   string  `json:"route_name,omitempty"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type MonthlyExpenseSummaryItem struct {
	RouteID   uint    `json:"route_id"`
	RouteName string  `json:"route_name"`
	Total     float64 `json:"total"`
}

type MonthlyExpenseSummaryResponse struct {
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Items      []MonthlyExpenseSummaryItem `json:"items"`
	GrandTotal float64                     `json:"grand_total"`
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

func toExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		RouteID:     e.RouteID,
		RouteName:   e.Route.Name,
		Date:        e.ExpenseDate.Format("2006-01-02"),
		Amount:      e.Amount,
		Description: e.Description,
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.RouteID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Güzergah seçilmelidir")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		var route models.Route
		if err := database.DB.First(&route, "id = ?", body.RouteID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Güzergah bulunamadı")
		}

		expense := models.Expense{
			RouteID:     body.RouteID,
			ExpenseDate: d,
			Amount:      body.Amount,
			Description: body.Description,
		}

		if err := database.DB.Create(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider oluşturulamadı")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "expense",
				EntityID:    expense.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Gider eklendi: %s, %.2f", route.Name, expense.Amount),
				Before:      nil,
				After:       expense,
			})
		}

		expense.Route = route
		return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(&expense))
	}
}

// GET /api/expenses?route_id=1
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Route")

		if routeIDStr := c.Query("route_id"); routeIDStr != "" {
			var rid uint
			if _, err := fmt.Sscan(routeIDStr, &rid); err == nil && rid > 0 {
				dbq = dbq.Where("route_id = ?", rid)
			}
		}

		var expenses []models.Expense
		if err := dbq.Order("expense_date DESC, created_at DESC").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giderler listelenemedi")
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for i := range expenses {
			resp = append(resp, toExpenseResponse(&expenses[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/expenses/:id
func GetExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var expense models.Expense
		if err := database.DB.Preload("Route").First(&expense, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		return c.JSON(toExpenseResponse(&expense))
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var expense models.Expense
		if err := database.DB.First(&expense, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}
		before := expense

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			expense.ExpenseDate = d
		}
		if body.RouteID != nil {
			var route models.Route
			if err := database.DB.First(&route, "id = ?", *body.RouteID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Güzergah bulunamadı")
			}
			expense.RouteID = *body.RouteID
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
			}
			expense.Amount = *body.Amount
		}
		if body.Description != nil {
			expense.Description = *body.Description
		}

		if err := database.DB.Save(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider güncellenemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "expense",
				EntityID:    expense.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Gider güncellendi: %.2f", expense.Amount),
				Before:      before,
				After:       expense,
			})
		}

		if err := database.DB.Preload("Route").First(&expense, "id = ?", expense.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider yüklenemedi")
		}

		return c.JSON(toExpenseResponse(&expense))
	}
}

// DELETE /api/expenses/:id (sadece admin)
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var expense models.Expense
		if err := database.DB.First(&expense, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		if err := database.DB.Delete(&expense).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider silinemedi")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "expense",
				EntityID:    expense.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Gider silindi: %.2f", expense.Amount),
				Before:      expense,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/expenses/summary/monthly?year=2025&month=12
func MonthlyExpenseSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var year, month int
		if _, err := fmt.Sscan(c.Query("year"), &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
		}
		if _, err := fmt.Sscan(c.Query("month"), &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
		}

		firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		lastDay := firstDay.AddDate(0, 1, 0).Add(-time.Second)

		var expenses []models.Expense
		if err := database.DB.
			Preload("Route").
			Where("expense_date >= ? AND expense_date <= ?", firstDay, lastDay).
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		totals := make(map[uint]*MonthlyExpenseSummaryItem)
		var grandTotal float64
		for _, e := range expenses {
			item, ok := totals[e.RouteID]
			if !ok {
				item = &MonthlyExpenseSummaryItem{RouteID: e.RouteID, RouteName: e.Route.Name}
				totals[e.RouteID] = item
			}
			item.Total += e.Amount
			grandTotal += e.Amount
		}

		items := make([]MonthlyExpenseSummaryItem, 0, len(totals))
		for _, item := range totals {
			items = append(items, *item)
		}

		return c.JSON(MonthlyExpenseSummaryResponse{
			Year:       year,
			Month:      month,
			Items:      items,
			GrandTotal: grandTotal,
		})
	}
}
