package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"lojistik-backend/internal/database"
	"lojistik-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Bir audit log'u geri al
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	switch log.Action {
	case models.AuditActionCreate:
		// Create ise entity'yi sil
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("entity silinemedi: %w", err)
		}

	case models.AuditActionUpdate:
		// Update ise önceki haline geri döndür
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri yüklenemedi: %w", err)
		}

	case models.AuditActionDelete:
		// Delete ise entity'yi önceki halinden geri oluştur
		if err := recreateEntity(log.EntityType, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	// Undo işlemi için yeni bir log oluştur
	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

// deleteEntity - Entity'yi sil.
// Satış silinirken kalemleri ve teslimatı da birlikte gider (oluşturma sırasının tersi).
func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "expense":
		return database.DB.Delete(&models.Expense{}, "id = ?", entityID).Error
	case "city":
		return database.DB.Delete(&models.City{}, "id = ?", entityID).Error
	case "sale":
		tx := database.DB.Begin()
		if tx.Error != nil {
			return tx.Error
		}
		if err := tx.Where("sale_id = ?", entityID).Delete(&models.SaleLine{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Where("sale_id = ?", entityID).Delete(&models.Delivery{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Delete(&models.Sale{}, "id = ?", entityID).Error; err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit().Error
	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// recreateEntity - Silinen entity'yi geri oluştur
func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "expense":
		var expense models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &expense); err != nil {
			return err
		}
		expense.ID = 0 // Yeni entity oluştur
		return database.DB.Create(&expense).Error

	case "city":
		var city models.City
		if err := json.Unmarshal([]byte(dataJSON), &city); err != nil {
			return err
		}
		city.ID = 0
		return database.DB.Create(&city).Error

	default:
		// Satış silmesi kalem ve teslimat kayıtlarını da götürdüğü için
		// buradan güvenilir şekilde geri oluşturulamaz.
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// restoreEntity - Entity'yi önceki haline döndür (update)
func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "expense":
		var expense models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &expense); err != nil {
			return err
		}
		return database.DB.Model(&models.Expense{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"route_id":     expense.RouteID,
			"expense_date": expense.ExpenseDate,
			"amount":       expense.Amount,
			"description":  expense.Description,
		}).Error

	case "delivery":
		var delivery models.Delivery
		if err := json.Unmarshal([]byte(dataJSON), &delivery); err != nil {
			return err
		}
		return database.DB.Model(&models.Delivery{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"delivery_date": delivery.DeliveryDate,
			"status":        delivery.Status,
		}).Error

	case "city":
		var city models.City
		if err := json.Unmarshal([]byte(dataJSON), &city); err != nil {
			return err
		}
		return database.DB.Model(&models.City{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name": city.Name,
		}).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}
