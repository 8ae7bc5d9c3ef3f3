package database

import (
	"log"

	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RestaurantProfile{},
		&models.DishOrder{},
		&models.DishPhoto{},
		&models.PaymentRecord{},
		&models.SubscriptionRecord{},
		&models.CreditPack{},
	)
	if err != nil {
		return err
	}

	return seedCreditPacks(db)
}

func seedCreditPacks(db *gorm.DB) error {
	packs := []models.CreditPack{
		{
			Name:          "Starter Pack",
			Description:   "5 dish credits, valid for any 3D/AR dish order",
			Dishes:        5,
			Price:         449.0,
			Currency:      "USD",
			PaddlePriceID: "pri_pack_starter",
			IsActive:      true,
		},
		{
			Name:          "Menu Pack",
			Description:   "10 dish credits, best for a full menu section",
			Dishes:        10,
			Price:         849.0,
			Currency:      "USD",
			PaddlePriceID: "pri_pack_menu",
			IsActive:      true,
		},
		{
			Name:          "Full Menu Pack",
			Description:   "25 dish credits, covers an entire menu",
			Dishes:        25,
			Price:         1899.0,
			Currency:      "USD",
			PaddlePriceID: "pri_pack_full_menu",
			IsActive:      true,
		},
	}

	for _, pack := range packs {
		var count int64
		db.Model(&models.CreditPack{}).Where("name = ?", pack.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&pack).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
