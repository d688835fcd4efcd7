package database

import (
	"log"

	"lojistik-backend/internal/config"
	"lojistik-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: Tüm tabloları oluşturur/günceller. Testlerde sqlite üzerinde de çağrılır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.Route{},
		&models.Driver{},
		&models.Supplier{},
		&models.Product{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleLine{},
		&models.Delivery{},
		&models.Expense{},
		&models.AuditLog{},
	)
}
