package domain

import (
	"encoding/json"
	"time"
)

// Moderation decisions. Error is only produced for failed batch items;
// it never appears on a successfully scored campaign.
const (
	DecisionApproved = "approved"
	DecisionReview   = "review"
	DecisionRejected = "rejected"
	DecisionError    = "error"
)

// Flags emitted by the decision engine
const (
	FlagManualReviewRequired = "manual_review_required"
	FlagHighRisk             = "high_risk"
)

// Manual review actions
const (
	ReviewActionApprove        = "approve"
	ReviewActionReject         = "reject"
	ReviewActionRequestChanges = "request_changes"
)

// ModerationScores holds the five dimension scores plus the composite.
// Every field is clamped to [0,100]. Luxury, Inappropriate and Fraud are
// severity scores (higher = worse); NeedValidation and Trust are
// legitimacy scores (higher = better).
type ModerationScores struct {
	Luxury         float64 `json:"luxury"`
	Inappropriate  float64 `json:"inappropriate"`
	Fraud          float64 `json:"fraud"`
	NeedValidation float64 `json:"need_validation"`
	Trust          float64 `json:"trust"`
	Overall        float64 `json:"overall"`
}

// ModerationDetails lists the de-duplicated matches behind each score,
// kept for audit and reviewer display only - never re-scored.
type ModerationDetails struct {
	LuxuryItems        []string `json:"luxury_items"`
	InappropriateItems []string `json:"inappropriate_items"`
	SuspiciousItems    []string `json:"suspicious_items"`
	TrustIndicators    []string `json:"trust_indicators"`
}

// ModerationResult is one immutable moderation audit record -
// maps to campaign_moderation table. Re-moderating a campaign appends
// a new row; existing rows are never updated or deleted.
type ModerationResult struct {
	ID                 string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	CampaignID         string    `gorm:"column:campaign_id;size:36;index" json:"campaign_id"`
	LuxuryScore        float64   `gorm:"column:luxury_score" json:"luxury_score"`
	InappropriateScore float64   `gorm:"column:inappropriate_score" json:"inappropriate_score"`
	FraudScore         float64   `gorm:"column:fraud_score" json:"fraud_score"`
	NeedScore          float64   `gorm:"column:need_score" json:"need_score"`
	TrustScore         float64   `gorm:"column:trust_score" json:"trust_score"`
	ModerationScore    float64   `gorm:"column:moderation_score" json:"moderation_score"`
	Decision           string    `gorm:"column:decision;size:20;index" json:"decision"`
	Flags              string    `gorm:"column:flags;type:json" json:"-"`
	Recommendations    string    `gorm:"column:recommendations;type:json" json:"-"`
	Details            string    `gorm:"column:details;type:json" json:"-"`
	ErrorMessage       string    `gorm:"column:error_message;size:500" json:"error_message,omitempty"`
	ProcessingMs       int64     `gorm:"column:processing_ms" json:"processing_ms"`
	ModeratedAt        time.Time `gorm:"column:moderated_at;index" json:"moderated_at"`
}

// TableName returns the table name
func (ModerationResult) TableName() string {
	return "campaign_moderation"
}

// Scores assembles the score record from the flattened columns
func (m *ModerationResult) Scores() ModerationScores {
	return ModerationScores{
		Luxury:         m.LuxuryScore,
		Inappropriate:  m.InappropriateScore,
		Fraud:          m.FraudScore,
		NeedValidation: m.NeedScore,
		Trust:          m.TrustScore,
		Overall:        m.ModerationScore,
	}
}

// SetScores spreads a score record across the flattened columns
func (m *ModerationResult) SetScores(s ModerationScores) {
	m.LuxuryScore = s.Luxury
	m.InappropriateScore = s.Inappropriate
	m.FraudScore = s.Fraud
	m.NeedScore = s.NeedValidation
	m.TrustScore = s.Trust
	m.ModerationScore = s.Overall
}

// FlagList decodes the flags JSON column
func (m *ModerationResult) FlagList() []string {
	return decodeStringList(m.Flags)
}

// RecommendationList decodes the recommendations JSON column
func (m *ModerationResult) RecommendationList() []string {
	return decodeStringList(m.Recommendations)
}

// DetailRecord decodes the details JSON column
func (m *ModerationResult) DetailRecord() ModerationDetails {
	var d ModerationDetails
	if m.Details != "" {
		_ = json.Unmarshal([]byte(m.Details), &d)
	}
	return d
}

// ModerationResultResponse is the API representation of a result row
type ModerationResultResponse struct {
	ID              string            `json:"id"`
	CampaignID      string            `json:"campaign_id"`
	Scores          ModerationScores  `json:"scores"`
	Decision        string            `json:"decision"`
	Flags           []string          `json:"flags"`
	Recommendations []string          `json:"recommendations"`
	Details         ModerationDetails `json:"details"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	ProcessingMs    int64             `json:"processing_ms"`
	ModeratedAt     time.Time         `json:"moderated_at"`
}

// ToResponse builds the API representation
func (m *ModerationResult) ToResponse() ModerationResultResponse {
	return ModerationResultResponse{
		ID:              m.ID,
		CampaignID:      m.CampaignID,
		Scores:          m.Scores(),
		Decision:        m.Decision,
		Flags:           m.FlagList(),
		Recommendations: m.RecommendationList(),
		Details:         m.DetailRecord(),
		ErrorMessage:    m.ErrorMessage,
		ProcessingMs:    m.ProcessingMs,
		ModeratedAt:     m.ModeratedAt,
	}
}

// ManualReview is a reviewer's decision on a result that landed in the
// manual-review band - maps to campaign_moderation_reviews table.
// Appended alongside the automatic record, never replacing it.
type ManualReview struct {
	ID                 string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ModerationID       string    `gorm:"column:moderation_id;size:36;index" json:"moderation_id"`
	CampaignID         string    `gorm:"column:campaign_id;size:36;index" json:"campaign_id"`
	ReviewerID         string    `gorm:"column:reviewer_id;size:36" json:"reviewer_id"`
	Action             string    `gorm:"column:action;size:20" json:"action"`
	Notes              string    `gorm:"column:notes;type:text" json:"notes"`
	RecommendedChanges string    `gorm:"column:recommended_changes;type:json" json:"-"`
	ReviewedAt         time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
}

// TableName returns the table name
func (ManualReview) TableName() string {
	return "campaign_moderation_reviews"
}

// ChangeList decodes the recommended changes JSON column
func (r *ManualReview) ChangeList() []string {
	return decodeStringList(r.RecommendedChanges)
}

// ManualReviewResponse is the API representation of a manual review
type ManualReviewResponse struct {
	ID                 string    `json:"id"`
	ModerationID       string    `json:"moderation_id"`
	CampaignID         string    `json:"campaign_id"`
	ReviewerID         string    `json:"reviewer_id"`
	Action             string    `json:"action"`
	Notes              string    `json:"notes"`
	RecommendedChanges []string  `json:"recommended_changes"`
	ReviewedAt         time.Time `json:"reviewed_at"`
}

// ToResponse builds the API representation
func (r *ManualReview) ToResponse() ManualReviewResponse {
	return ManualReviewResponse{
		ID:                 r.ID,
		ModerationID:       r.ModerationID,
		CampaignID:         r.CampaignID,
		ReviewerID:         r.ReviewerID,
		Action:             r.Action,
		Notes:              r.Notes,
		RecommendedChanges: r.ChangeList(),
		ReviewedAt:         r.ReviewedAt,
	}
}

// SubmitReviewRequest is the manual override request body
type SubmitReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject request_changes"`
	Notes  string `json:"notes"`
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}
