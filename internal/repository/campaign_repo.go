package repository

import (
	"errors"
	"time"

	"github.com/givespark/moderation-backend/internal/common"
	"github.com/givespark/moderation-backend/internal/domain"
	"gorm.io/gorm"
)

// CampaignRepository handles campaign data operations
type CampaignRepository interface {
	GetByID(id string) (*domain.Campaign, error)
	Create(campaign *domain.Campaign) error
	UpdateModeration(id, status string, score float64, moderatedAt time.Time) error
	UpdateStatus(id, status string) error
	ListUnderReview(limit int) ([]domain.Campaign, error)
}

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// GetByID retrieves a campaign
func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := r.db.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

// Create saves a new campaign
func (r *campaignRepository) Create(campaign *domain.Campaign) error {
	return r.db.Create(campaign).Error
}

// UpdateModeration writes the denormalized moderation outcome onto the campaign
func (r *campaignRepository) UpdateModeration(id, status string, score float64, moderatedAt time.Time) error {
	return r.db.Model(&domain.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"moderation_score": score,
			"moderated_at":     moderatedAt,
		}).Error
}

// UpdateStatus changes only the campaign status
func (r *campaignRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&domain.Campaign{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListUnderReview retrieves campaigns awaiting a manual decision,
// oldest moderation first so the queue drains in order
func (r *campaignRepository) ListUnderReview(limit int) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	if err := r.db.Where("status = ?", domain.CampaignStatusUnderReview).
		Order("moderated_at ASC").
		Limit(limit).
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}
