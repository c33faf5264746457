package domain

import (
	"encoding/json"
	"time"
)

// Need types drive category-specific validation rules during moderation.
const (
	NeedTypeMedical   = "medical"
	NeedTypeEducation = "education"
	NeedTypeEmergency = "emergency"
	NeedTypeCommunity = "community"
	NeedTypeOther     = "other"
)

// Campaign statuses
const (
	CampaignStatusDraft       = "draft"
	CampaignStatusPending     = "pending"
	CampaignStatusActive      = "active"
	CampaignStatusUnderReview = "under_review"
	CampaignStatusRejected    = "rejected"
)

// BudgetItem is one line of a campaign's budget breakdown
type BudgetItem struct {
	Item        string  `json:"item"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Campaign represents a donation campaign - maps to campaigns table
type Campaign struct {
	ID              string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	CreatorID       string     `gorm:"column:creator_id;size:36;index" json:"creator_id"`
	Title           string     `gorm:"column:title;size:255" json:"title"`
	Story           string     `gorm:"column:story;type:text" json:"story"`
	Description     string     `gorm:"column:description;type:text" json:"description"`
	NeedType        string     `gorm:"column:need_type;size:20" json:"need_type"`
	GoalAmount      float64    `gorm:"column:goal_amount" json:"goal_amount"`
	BudgetBreakdown string     `gorm:"column:budget_breakdown;type:json" json:"-"`
	Status          string     `gorm:"column:status;size:20;default:pending;index" json:"status"`
	ModerationScore *float64   `gorm:"column:moderation_score" json:"moderation_score,omitempty"`
	ModeratedAt     *time.Time `gorm:"column:moderated_at" json:"moderated_at,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (Campaign) TableName() string {
	return "campaigns"
}

// Budget decodes the budget breakdown JSON column.
// Malformed or empty JSON degrades to an empty breakdown, never an error.
func (c *Campaign) Budget() []BudgetItem {
	if c.BudgetBreakdown == "" {
		return nil
	}
	var items []BudgetItem
	if err := json.Unmarshal([]byte(c.BudgetBreakdown), &items); err != nil {
		return nil
	}
	return items
}

// SetBudget encodes budget items into the JSON column
func (c *Campaign) SetBudget(items []BudgetItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.BudgetBreakdown = string(data)
	return nil
}

// CampaignQueueItem is the review-queue listing entry
type CampaignQueueItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	NeedType        string     `json:"need_type"`
	GoalAmount      float64    `json:"goal_amount"`
	Status          string     `json:"status"`
	ModerationScore *float64   `json:"moderation_score,omitempty"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`
}

// ToQueueItem builds the review-queue listing entry
func (c *Campaign) ToQueueItem() CampaignQueueItem {
	return CampaignQueueItem{
		ID:              c.ID,
		Title:           c.Title,
		NeedType:        c.NeedType,
		GoalAmount:      c.GoalAmount,
		Status:          c.Status,
		ModerationScore: c.ModerationScore,
		ModeratedAt:     c.ModeratedAt,
	}
}
