package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/givespark/moderation-backend/internal/common"
	"github.com/givespark/moderation-backend/internal/domain"
	"github.com/givespark/moderation-backend/internal/middleware"
	"github.com/givespark/moderation-backend/internal/repository"
	"github.com/givespark/moderation-backend/internal/service"
)

// ModerationHandler handles moderation API requests
type ModerationHandler struct {
	service      service.ModerationService
	campaignRepo repository.CampaignRepository
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(svc service.ModerationService, campaignRepo repository.CampaignRepository) *ModerationHandler {
	return &ModerationHandler{service: svc, campaignRepo: campaignRepo}
}

// BatchModerateRequest request body for batch moderation
type BatchModerateRequest struct {
	CampaignIDs []string `json:"campaign_ids" binding:"required,min=1"`
}

// Moderate handles POST /api/v1/campaigns/:id/moderate
// @Summary Run moderation on a campaign
// @Description Scores the campaign, appends an audit record and updates the campaign status
// @Tags moderation
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} common.APIResponse{data=domain.ModerationResultResponse}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /campaigns/{id}/moderate [post]
func (h *ModerationHandler) Moderate(c *gin.Context) {
	campaign, err := h.campaignRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrCampaignNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Campaign not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load campaign", err)
		return
	}

	result, err := h.service.AnalyzeCampaign(c.Request.Context(), campaign)
	if err != nil {
		if errors.Is(err, common.ErrPersistence) && result != nil {
			// scoring succeeded; surface the storage failure without
			// losing the decision
			c.JSON(http.StatusOK, common.APIResponse{
				Data: result,
				Error: &common.ErrorInfo{
					Code:    "PERSISTENCE_ERROR",
					Message: "Moderation result computed but could not be stored",
				},
			})
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Moderation failed", err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// BatchModerate handles POST /api/v1/moderation/batch
// @Summary Run moderation on multiple campaigns
// @Description Moderates each campaign in order; failures occupy their slot with decision "error"
// @Tags moderation
// @Accept json
// @Produce json
// @Param request body BatchModerateRequest true "Campaign IDs"
// @Success 200 {object} common.APIResponse{data=[]domain.ModerationResultResponse}
// @Failure 400 {object} common.APIResponse
// @Security BearerAuth
// @Router /moderation/batch [post]
func (h *ModerationHandler) BatchModerate(c *gin.Context) {
	var req BatchModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	results := h.service.BatchModerateByID(c.Request.Context(), req.CampaignIDs)
	common.SuccessResponse(c, results, &common.Meta{Total: int64(len(results))})
}

// GetLatest handles GET /api/v1/campaigns/:id/moderation
// @Summary Latest moderation result for a campaign
// @Tags moderation
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} common.APIResponse{data=domain.ModerationResultResponse}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /campaigns/{id}/moderation [get]
func (h *ModerationHandler) GetLatest(c *gin.Context) {
	result, err := h.service.GetLatest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrModerationNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "No moderation result for campaign", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load moderation result", err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// GetHistory handles GET /api/v1/campaigns/:id/moderation/history
// @Summary Full moderation audit trail for a campaign
// @Description Returns every moderation result ever recorded, newest first
// @Tags moderation
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} common.APIResponse{data=[]domain.ModerationResultResponse}
// @Security BearerAuth
// @Router /campaigns/{id}/moderation/history [get]
func (h *ModerationHandler) GetHistory(c *gin.Context) {
	history, err := h.service.GetModerationHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load moderation history", err)
		return
	}
	common.SuccessResponse(c, history, &common.Meta{Total: int64(len(history))})
}

// GetReviews handles GET /api/v1/campaigns/:id/moderation/reviews
// @Summary Manual review trail for a campaign
// @Tags moderation
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} common.APIResponse{data=[]domain.ManualReviewResponse}
// @Security BearerAuth
// @Router /campaigns/{id}/moderation/reviews [get]
func (h *ModerationHandler) GetReviews(c *gin.Context) {
	reviews, err := h.service.GetReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load manual reviews", err)
		return
	}
	common.SuccessResponse(c, reviews, &common.Meta{Total: int64(len(reviews))})
}

// SubmitReview handles POST /api/v1/moderation/:id/review
// @Summary Record a manual review decision
// @Description Applies a reviewer decision (approve / reject / request_changes) to a result awaiting review
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Moderation result ID"
// @Param request body domain.SubmitReviewRequest true "Review decision"
// @Success 200 {object} common.APIResponse{data=domain.ManualReviewResponse}
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 409 {object} common.APIResponse
// @Security BearerAuth
// @Router /moderation/{id}/review [post]
func (h *ModerationHandler) SubmitReview(c *gin.Context) {
	var req domain.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reviewerID := middleware.GetUserID(c)
	review, err := h.service.SubmitReview(c.Request.Context(), c.Param("id"), reviewerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrModerationNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Moderation result not found", err)
		case errors.Is(err, common.ErrInvalidReviewState):
			common.ErrorResponse(c, http.StatusConflict, "Moderation result is not awaiting review", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid review action", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to record review", err)
		}
		return
	}

	common.SuccessResponse(c, review, nil)
}

// GetQueue handles GET /api/v1/moderation/queue
// @Summary Campaigns awaiting manual review
// @Tags moderation
// @Produce json
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} common.APIResponse{data=[]domain.CampaignQueueItem}
// @Security BearerAuth
// @Router /moderation/queue [get]
func (h *ModerationHandler) GetQueue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	queue, err := h.service.GetReviewQueue(c.Request.Context(), limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load review queue", err)
		return
	}
	common.SuccessResponse(c, queue, &common.Meta{Total: int64(len(queue))})
}
