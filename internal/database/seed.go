package database

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bankcore/payment-processor/internal/models"
)

// DefaultBalances is the demo data set: five accounts, balances in minor units.
func DefaultBalances() map[int64]int64 {
	return map[int64]int64{
		1: 1_000_000,
		2: 500_000,
		3: 200_000,
		4: 750_000,
		5: 300_000,
	}
}

func SeedAccounts(db *gorm.DB) error {
	for id, balance := range DefaultBalances() {
		account := models.Account{ID: id, Balance: balance}
		result := db.Where(models.Account{ID: id}).FirstOrCreate(&account)
		if result.Error != nil {
			return result.Error
		}
	}

	logrus.Info("accounts seeded successfully")
	return nil
}
