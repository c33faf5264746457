package repository

import (
	"errors"

	"github.com/givespark/moderation-backend/internal/common"
	"github.com/givespark/moderation-backend/internal/domain"
	"gorm.io/gorm"
)

// ModerationRepository handles moderation audit records.
// Results and reviews are append-only: there are no update or delete
// operations on this interface.
type ModerationRepository interface {
	Create(result *domain.ModerationResult) error
	GetByID(id string) (*domain.ModerationResult, error)
	GetLatestByCampaign(campaignID string) (*domain.ModerationResult, error)
	ListByCampaign(campaignID string) ([]domain.ModerationResult, error)
	CreateReview(review *domain.ManualReview) error
	ListReviewsByCampaign(campaignID string) ([]domain.ManualReview, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new ModerationRepository
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

// Create appends a new moderation result row
func (r *moderationRepository) Create(result *domain.ModerationResult) error {
	return r.db.Create(result).Error
}

// GetByID retrieves a single moderation result
func (r *moderationRepository) GetByID(id string) (*domain.ModerationResult, error) {
	var result domain.ModerationResult
	if err := r.db.First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrModerationNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetLatestByCampaign retrieves the most recent result for a campaign
func (r *moderationRepository) GetLatestByCampaign(campaignID string) (*domain.ModerationResult, error) {
	var result domain.ModerationResult
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("moderated_at DESC").
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrModerationNotFound
		}
		return nil, err
	}
	return &result, nil
}

// ListByCampaign retrieves the full audit trail, newest first
func (r *moderationRepository) ListByCampaign(campaignID string) ([]domain.ModerationResult, error) {
	var results []domain.ModerationResult
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("moderated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CreateReview appends a manual review row
func (r *moderationRepository) CreateReview(review *domain.ManualReview) error {
	return r.db.Create(review).Error
}

// ListReviewsByCampaign retrieves manual reviews, newest first
func (r *moderationRepository) ListReviewsByCampaign(campaignID string) ([]domain.ManualReview, error) {
	var reviews []domain.ManualReview
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("reviewed_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
