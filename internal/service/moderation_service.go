package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/givespark/moderation-backend/internal/common"
	"github.com/givespark/moderation-backend/internal/config"
	"github.com/givespark/moderation-backend/internal/domain"
	"github.com/givespark/moderation-backend/internal/repository"
	"github.com/givespark/moderation-backend/pkg/cache"
	"github.com/givespark/moderation-backend/pkg/logger"
	"github.com/google/uuid"
)

// ModerationService runs the scoring pipeline and manages the audit trail
type ModerationService interface {
	// AnalyzeCampaign scores one campaign, persists the result and updates
	// the campaign status. The computed result is returned even when
	// persistence fails; in that case err wraps common.ErrPersistence.
	AnalyzeCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.ModerationResultResponse, error)

	// BatchModerate applies AnalyzeCampaign sequentially. Failures are
	// isolated per item: the output always has the same length as the
	// input, with failed slots carrying decision "error".
	BatchModerate(ctx context.Context, campaigns []domain.Campaign) []domain.ModerationResultResponse

	// BatchModerateByID resolves campaign ids and moderates them with the
	// same per-item isolation; an unknown id yields an error slot.
	BatchModerateByID(ctx context.Context, campaignIDs []string) []domain.ModerationResultResponse

	GetLatest(ctx context.Context, campaignID string) (*domain.ModerationResultResponse, error)
	GetModerationHistory(ctx context.Context, campaignID string) ([]domain.ModerationResultResponse, error)
	GetReviews(ctx context.Context, campaignID string) ([]domain.ManualReviewResponse, error)
	SubmitReview(ctx context.Context, moderationID, reviewerID string, req *domain.SubmitReviewRequest) (*domain.ManualReviewResponse, error)
	GetReviewQueue(ctx context.Context, limit int) ([]domain.CampaignQueueItem, error)
}

type moderationService struct {
	campaignRepo repository.CampaignRepository
	modRepo      repository.ModerationRepository
	cache        cache.Service
	cfg          config.ModerationConfig
}

// NewModerationService creates a new ModerationService. cacheService may
// be nil; the service then reads straight from storage.
func NewModerationService(
	campaignRepo repository.CampaignRepository,
	modRepo repository.ModerationRepository,
	cacheService cache.Service,
	cfg config.ModerationConfig,
) ModerationService {
	return &moderationService{
		campaignRepo: campaignRepo,
		modRepo:      modRepo,
		cache:        cacheService,
		cfg:          cfg,
	}
}

// AnalyzeCampaign runs the full pipeline: extract, score, compose, decide,
// persist. Scoring itself is pure and never fails; only persistence can.
func (s *moderationService) AnalyzeCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.ModerationResultResponse, error) {
	start := time.Now()

	result := s.score(campaign)
	result.ProcessingMs = time.Since(start).Milliseconds()

	moderationDecisions.WithLabelValues(result.Decision).Inc()
	moderationDuration.Observe(time.Since(start).Seconds())

	resp := result.ToResponse()

	// The audit row is written first; the denormalized campaign status is
	// secondary. Either failure surfaces as a persistence error, but the
	// caller always gets the computed result.
	if err := s.modRepo.Create(result); err != nil {
		moderationPersistFailures.Inc()
		log := logger.WithCampaignID(campaign.ID)
		log.Error().Err(err).Msg("failed to persist moderation result")
		return &resp, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	status, err := statusForDecision(result.Decision)
	if err == nil {
		if err := s.campaignRepo.UpdateModeration(campaign.ID, status, result.ModerationScore, result.ModeratedAt); err != nil {
			moderationPersistFailures.Inc()
			log := logger.WithCampaignID(campaign.ID)
			log.Error().Err(err).Msg("failed to update campaign status")
			return &resp, fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}
	}

	if s.cache != nil {
		_ = s.cache.SetModeration(ctx, campaign.ID, resp)
		_ = s.cache.InvalidateReviewQueue(ctx)
	}

	log := logger.WithCampaignID(campaign.ID)
	log.Info().
		Str("decision", result.Decision).
		Float64("overall", result.ModerationScore).
		Int64("processing_ms", result.ProcessingMs).
		Msg("campaign moderated")

	return &resp, nil
}

// score computes a complete result row for a campaign snapshot.
// The five dimension scorers are independent, so they fan out in parallel
// and each writes its own slot.
func (s *moderationService) score(campaign *domain.Campaign) *domain.ModerationResult {
	text := extractContent(campaign)

	var (
		scores  domain.ModerationScores
		details domain.ModerationDetails
		wg      sync.WaitGroup
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		scores.Luxury, details.LuxuryItems = scoreLuxury(text, campaign)
	}()
	go func() {
		defer wg.Done()
		scores.Inappropriate, details.InappropriateItems = scoreInappropriate(text, campaign)
	}()
	go func() {
		defer wg.Done()
		scores.Fraud, details.SuspiciousItems = scoreFraud(text, campaign)
	}()
	go func() {
		defer wg.Done()
		scores.NeedValidation = scoreNeedValidation(text, campaign)
	}()
	go func() {
		defer wg.Done()
		scores.Trust, details.TrustIndicators = scoreTrust(text, campaign)
	}()
	wg.Wait()

	scores.Overall = composeOverall(s.cfg, scores)
	decision, flags, recommendations := decide(s.cfg, scores.Overall)

	result := &domain.ModerationResult{
		ID:          uuid.New().String(),
		CampaignID:  campaign.ID,
		Decision:    decision,
		ModeratedAt: time.Now(),
	}
	result.SetScores(scores)
	result.Flags = mustJSON(flags)
	result.Recommendations = mustJSON(recommendations)
	result.Details = mustJSON(normalizeDetails(details))

	return result
}

// BatchModerate isolates each item: a panic or persistence error in one
// campaign never aborts the rest of the batch.
func (s *moderationService) BatchModerate(ctx context.Context, campaigns []domain.Campaign) []domain.ModerationResultResponse {
	results := make([]domain.ModerationResultResponse, len(campaigns))

	for i := range campaigns {
		campaign := &campaigns[i]
		resp, err := s.analyzeIsolated(ctx, campaign)
		if resp != nil {
			// a persistence error still carries the computed result
			results[i] = *resp
			continue
		}
		results[i] = domain.ModerationResultResponse{
			ID:              uuid.New().String(),
			CampaignID:      campaign.ID,
			Decision:        domain.DecisionError,
			ErrorMessage:    err.Error(),
			Flags:           []string{},
			Recommendations: []string{},
			ModeratedAt:     time.Now(),
		}
	}

	return results
}

// BatchModerateByID loads each campaign and moderates it, keeping slot
// order aligned with the input ids
func (s *moderationService) BatchModerateByID(ctx context.Context, campaignIDs []string) []domain.ModerationResultResponse {
	results := make([]domain.ModerationResultResponse, len(campaignIDs))

	for i, id := range campaignIDs {
		campaign, err := s.campaignRepo.GetByID(id)
		if err != nil {
			results[i] = domain.ModerationResultResponse{
				ID:              uuid.New().String(),
				CampaignID:      id,
				Decision:        domain.DecisionError,
				ErrorMessage:    err.Error(),
				Flags:           []string{},
				Recommendations: []string{},
				ModeratedAt:     time.Now(),
			}
			continue
		}
		results[i] = s.BatchModerate(ctx, []domain.Campaign{*campaign})[0]
	}

	return results
}

// analyzeIsolated converts a panic during analysis into an error
func (s *moderationService) analyzeIsolated(ctx context.Context, campaign *domain.Campaign) (resp *domain.ModerationResultResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			log := logger.WithCampaignID(campaign.ID)
			log.Error().
				Interface("panic", r).
				Msg("moderation analysis panicked")
			resp = nil
			err = fmt.Errorf("analysis failed: %v", r)
		}
	}()
	return s.AnalyzeCampaign(ctx, campaign)
}

// GetLatest returns the most recent result for a campaign, cache first
func (s *moderationService) GetLatest(ctx context.Context, campaignID string) (*domain.ModerationResultResponse, error) {
	if s.cache != nil {
		var cached domain.ModerationResultResponse
		if err := s.cache.GetModeration(ctx, campaignID, &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	result, err := s.modRepo.GetLatestByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	resp := result.ToResponse()
	if s.cache != nil {
		_ = s.cache.SetModeration(ctx, campaignID, resp)
	}
	return &resp, nil
}

// GetModerationHistory returns the full audit trail, newest first
func (s *moderationService) GetModerationHistory(_ context.Context, campaignID string) ([]domain.ModerationResultResponse, error) {
	results, err := s.modRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load moderation history: %w", err)
	}

	history := make([]domain.ModerationResultResponse, len(results))
	for i := range results {
		history[i] = results[i].ToResponse()
	}
	return history, nil
}

// GetReviews returns the manual review trail for a campaign, newest first
func (s *moderationService) GetReviews(_ context.Context, campaignID string) ([]domain.ManualReviewResponse, error) {
	reviews, err := s.modRepo.ListReviewsByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual reviews: %w", err)
	}

	responses := make([]domain.ManualReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = reviews[i].ToResponse()
	}
	return responses, nil
}

// SubmitReview records a human decision on a result in the review band.
// The review is an audit row of its own; the automatic result stays as-is.
func (s *moderationService) SubmitReview(ctx context.Context, moderationID, reviewerID string, req *domain.SubmitReviewRequest) (*domain.ManualReviewResponse, error) {
	result, err := s.modRepo.GetByID(moderationID)
	if err != nil {
		return nil, err
	}
	if result.Decision != domain.DecisionReview {
		return nil, common.ErrInvalidReviewState
	}

	review := &domain.ManualReview{
		ID:           uuid.New().String(),
		ModerationID: result.ID,
		CampaignID:   result.CampaignID,
		ReviewerID:   reviewerID,
		Action:       req.Action,
		Notes:        req.Notes,
		ReviewedAt:   time.Now(),
	}

	var status string
	switch req.Action {
	case domain.ReviewActionApprove:
		status = domain.CampaignStatusActive
	case domain.ReviewActionReject:
		status = domain.CampaignStatusRejected
	case domain.ReviewActionRequestChanges:
		// back to the creator with concrete fixes derived from sub-scores
		status = domain.CampaignStatusPending
		review.RecommendedChanges = mustJSON(recommendedChanges(result.Scores()))
	default:
		return nil, fmt.Errorf("%w: unknown review action %q", common.ErrInvalidInput, req.Action)
	}

	if err := s.modRepo.CreateReview(review); err != nil {
		return nil, fmt.Errorf("failed to record manual review: %w", err)
	}
	if err := s.campaignRepo.UpdateStatus(result.CampaignID, status); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	manualReviews.WithLabelValues(req.Action).Inc()

	if s.cache != nil {
		_ = s.cache.InvalidateModeration(ctx, result.CampaignID)
		_ = s.cache.InvalidateReviewQueue(ctx)
	}

	log := logger.WithCampaignID(result.CampaignID)
	log.Info().
		Str("action", req.Action).
		Str("reviewer_id", reviewerID).
		Msg("manual review recorded")

	resp := review.ToResponse()
	return &resp, nil
}

// GetReviewQueue lists campaigns awaiting a manual decision
func (s *moderationService) GetReviewQueue(ctx context.Context, limit int) ([]domain.CampaignQueueItem, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	if s.cache != nil {
		var cached []domain.CampaignQueueItem
		if err := s.cache.GetReviewQueue(ctx, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	campaigns, err := s.campaignRepo.ListUnderReview(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load review queue: %w", err)
	}

	queue := make([]domain.CampaignQueueItem, len(campaigns))
	for i := range campaigns {
		queue[i] = campaigns[i].ToQueueItem()
	}

	if s.cache != nil {
		_ = s.cache.SetReviewQueue(ctx, queue)
	}
	return queue, nil
}

// normalizeDetails replaces nil slices so the stored JSON always has all
// four arrays present
func normalizeDetails(d domain.ModerationDetails) domain.ModerationDetails {
	if d.LuxuryItems == nil {
		d.LuxuryItems = []string{}
	}
	if d.InappropriateItems == nil {
		d.InappropriateItems = []string{}
	}
	if d.SuspiciousItems == nil {
		d.SuspiciousItems = []string{}
	}
	if d.TrustIndicators == nil {
		d.TrustIndicators = []string{}
	}
	return d
}

// mustJSON marshals values that cannot fail (string slices and structs of
// string slices)
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
