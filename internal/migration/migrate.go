package migration

import (
	"github.com/givespark/moderation-backend/internal/domain"
	"gorm.io/gorm"
)

// Run applies schema migrations for the moderation tables
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Campaign{},
		&domain.ModerationResult{},
		&domain.ManualReview{},
	)
}
