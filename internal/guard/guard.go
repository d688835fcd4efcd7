// Package guard: silme öncesi bağımlılık kontrolleri.
// Her kontrol bağımlı tabloya tek bir varlık sorgusu atar; kayıt varsa silme
// reddedilir. Kontrol ile silme arasında transaction yoktur.
package guard

import (
	"errors"

	"lojistik-backend/internal/models"

	"gorm.io/gorm"
)

// BlockedError: bağımlı kayıtlar yüzünden silme reddedildi.
// Handler katmanında 409'a çevrilir.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string { return e.Reason }

// IsBlocked: hata bir BlockedError mı?
func IsBlocked(err error) bool {
	var b *BlockedError
	return errors.As(err, &b)
}

func hasAny(db *gorm.DB, model interface{}, query string, id uint) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanDeleteSupplier: Tedarikçiye bağlı ürün var mı?
func CanDeleteSupplier(db *gorm.DB, id uint) error {
	found, err := hasAny(db, &models.Product{}, "supplier_id = ?", id)
	if err != nil {
		return err
	}
	if found {
		return &BlockedError{Reason: "Tedarikçinin bağlı ürünleri var, silinemez"}
	}
	return nil
}

// CanDeleteProduct: Ürün herhangi bir satış kaleminde kullanılmış mı?
func CanDeleteProduct(db *gorm.DB, id uint) error {
	found, err := hasAny(db, &models.SaleLine{}, "product_id = ?", id)
	if err != nil {
		return err
	}
	if found {
		return &BlockedError{Reason: "Ürün satış kayıtlarında kullanılıyor, silinemez"}
	}
	return nil
}

// CanDeleteCustomer: Müşterinin satışı var mı?
func CanDeleteCustomer(db *gorm.DB, id uint) error {
	found, err := hasAny(db, &models.Sale{}, "customer_id = ?", id)
	if err != nil {
		return err
	}
	if found {
		return &BlockedError{Reason: "Müşterinin satış kayıtları var, silinemez"}
	}
	return nil
}

// CanDeleteRoute: Güzergaha atanmış şoför veya güzergah üzerinden satış var mı?
// Hangi bağımlılığın engellediği gerekçede belirtilir.
func CanDeleteRoute(db *gorm.DB, id uint) error {
	found, err := hasAny(db, &models.Driver{}, "route_id = ?", id)
	if err != nil {
		return err
	}
	if found {
		return &BlockedError{Reason: "Güzergaha atanmış şoför var, silinemez"}
	}

	found, err = hasAny(db, &models.Sale{}, "route_id = ?", id)
	if err != nil {
		return err
	}
	if found {
		return &BlockedError{Reason: "Güzergahın satış kayıtları var, silinemez"}
	}
	return nil
}

// CanDeleteDriver: Şoför bir güzergaha atanmışsa silinemez.
func CanDeleteDriver(db *gorm.DB, id uint) error {
	var driver models.Driver
	if err := db.First(&driver, "id = ?", id).Error; err != nil {
		return err
	}
	if driver.RouteID != nil {
		return &BlockedError{Reason: "Şoför bir güzergaha atanmış, önce atamayı kaldırın"}
	}
	return nil
}
