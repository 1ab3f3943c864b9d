package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/pkg/response"
	"github.com/linskybing/engagement-go/pkg/utils"
)

type AgreementHandler struct {
	engagement *application.EngagementService
	match      *application.MatchService
}

func NewAgreementHandler(engagement *application.EngagementService, match *application.MatchService) *AgreementHandler {
	return &AgreementHandler{engagement: engagement, match: match}
}

// ListMine godoc
// @Summary List the caller's agreements
// @Tags agreements
// @Security BearerAuth
// @Produce json
// @Success 200 {array} agreement.View
// @Router /agreements/mine [get]
func (h *AgreementHandler) ListMine(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	views, err := h.engagement.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []agreement.View{}
	}
	c.JSON(http.StatusOK, views)
}

// Match godoc
// @Summary Check whether two users share an agreement
// @Description True when an active or settled agreement exists between the pair, optionally on one campaign or one agreement.
// @Tags agreements
// @Produce json
// @Param user_a query int true "First user ID"
// @Param user_b query int true "Second user ID"
// @Param campaign_id query int false "Restrict to this campaign"
// @Param agreement_id query int false "Restrict to this agreement"
// @Param X-Service-Token header string false "Shared service token"
// @Success 200 {object} response.MatchResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /agreements/match [get]
func (h *AgreementHandler) Match(c *gin.Context) {
	var q struct {
		UserA uint `form:"user_a" binding:"required"`
		UserB uint `form:"user_b" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	campaignID, err := utils.ParseOptionalIDQuery(c, "campaign_id")
	if err != nil {
		badRequest(c, err)
		return
	}

	agreementID, err := utils.ParseOptionalIDQuery(c, "agreement_id")
	if err != nil {
		badRequest(c, err)
		return
	}

	ok, err := h.match.IsMatched(c.Request.Context(), q.UserA, q.UserB, campaignID, agreementID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MatchResponse{IsMatch: ok})
}
