package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/pkg/utils"
)

type CampaignHandler struct {
	svc *application.CampaignService
}

func NewCampaignHandler(svc *application.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// ListActive godoc
// @Summary List open campaigns
// @Description Requester summaries are null when the profile service is unavailable.
// @Tags campaigns
// @Security BearerAuth
// @Produce json
// @Success 200 {array} campaign.ListingDTO
// @Failure 500 {object} response.ErrorResponse
// @Router /campaigns [get]
func (h *CampaignHandler) ListActive(c *gin.Context) {
	listings, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// ListMine godoc
// @Summary List the caller's campaigns
// @Tags campaigns
// @Security BearerAuth
// @Produce json
// @Success 200 {array} campaign.Campaign
// @Failure 403 {object} response.ErrorResponse
// @Router /campaigns/mine [get]
func (h *CampaignHandler) ListMine(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	campaigns, err := h.svc.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if campaigns == nil {
		campaigns = []campaign.Campaign{}
	}
	c.JSON(http.StatusOK, campaigns)
}

// Get godoc
// @Summary Get a campaign
// @Tags campaigns
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} campaign.Campaign
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	cmp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Create godoc
// @Summary Create a campaign
// @Tags campaigns
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body campaign.CreateCampaignDTO true "Campaign"
// @Success 201 {object} campaign.Campaign
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var input campaign.CreateCampaignDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	cmp, err := h.svc.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cmp)
}

// Update godoc
// @Summary Update a campaign
// @Description Only the owner may update. Setting status to passive stops new offers and acceptances.
// @Tags campaigns
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param input body campaign.UpdateCampaignDTO true "Fields to change"
// @Success 200 {object} campaign.Campaign
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /campaigns/{id} [put]
func (h *CampaignHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var input campaign.UpdateCampaignDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	cmp, err := h.svc.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}
