package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/pkg/utils"
)

type OfferHandler struct {
	svc *application.OfferService
}

func NewOfferHandler(svc *application.OfferService) *OfferHandler {
	return &OfferHandler{svc: svc}
}

// Apply godoc
// @Summary Apply to a campaign
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 201 {object} offer.Application
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /campaigns/{id}/applications [post]
func (h *OfferHandler) Apply(c *gin.Context) {
	campaignID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	app, err := h.svc.Apply(c.Request.Context(), actor, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Invite godoc
// @Summary Invite a provider to a campaign
// @Description The provider is verified with the profile service; 503 when it cannot be reached.
// @Tags invitations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Param providerId path int true "Provider user ID"
// @Success 201 {object} offer.Invitation
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /campaigns/{id}/invitations/{providerId} [post]
func (h *OfferHandler) Invite(c *gin.Context) {
	campaignID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	providerID, err := utils.ParseIDParam(c, "providerId")
	if err != nil {
		badRequest(c, err)
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	inv, err := h.svc.Invite(c.Request.Context(), actor, campaignID, providerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// SetApplicationStatus godoc
// @Summary Accept or reject an application
// @Description Accepting creates an agreement. On 409 "capacity exceeded" the application stays pending.
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param input body offer.UpdateStatusDTO true "New status"
// @Success 200 {object} offer.Application
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /applications/{id}/status [put]
func (h *OfferHandler) SetApplicationStatus(c *gin.Context) {
	id, input, ok := bindDecision(c)
	if !ok {
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	app, err := h.svc.SetApplicationStatus(c.Request.Context(), actor, id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// SetInvitationStatus godoc
// @Summary Accept or reject an invitation
// @Tags invitations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Invitation ID"
// @Param input body offer.UpdateStatusDTO true "New status"
// @Success 200 {object} offer.Invitation
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /invitations/{id}/status [put]
func (h *OfferHandler) SetInvitationStatus(c *gin.Context) {
	id, input, ok := bindDecision(c)
	if !ok {
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	inv, err := h.svc.SetInvitationStatus(c.Request.Context(), actor, id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func bindDecision(c *gin.Context) (uint, offer.UpdateStatusDTO, bool) {
	var input offer.UpdateStatusDTO
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return 0, input, false
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return 0, input, false
	}
	return id, input, true
}

// ListApplicationsForCampaign godoc
// @Summary List applications of one of the caller's campaigns
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {array} offer.Application
// @Failure 403 {object} response.ErrorResponse
// @Router /campaigns/{id}/applications [get]
func (h *OfferHandler) ListApplicationsForCampaign(c *gin.Context) {
	campaignID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	apps, err := h.svc.ListApplicationsForCampaign(c.Request.Context(), actor, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = []offer.Application{}
	}
	c.JSON(http.StatusOK, apps)
}

// ListInvitationsForCampaign godoc
// @Summary List invitations sent for one of the caller's campaigns
// @Tags invitations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {array} offer.Invitation
// @Failure 403 {object} response.ErrorResponse
// @Router /campaigns/{id}/invitations [get]
func (h *OfferHandler) ListInvitationsForCampaign(c *gin.Context) {
	campaignID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	invs, err := h.svc.ListInvitationsForCampaign(c.Request.Context(), actor, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	if invs == nil {
		invs = []offer.Invitation{}
	}
	c.JSON(http.StatusOK, invs)
}

// ListMyApplications godoc
// @Summary List the caller's applications
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} offer.ApplicationView
// @Router /applications/mine [get]
func (h *OfferHandler) ListMyApplications(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	views, err := h.svc.ListMyApplications(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []offer.ApplicationView{}
	}
	c.JSON(http.StatusOK, views)
}

// ListReceivedApplications godoc
// @Summary List applications received across the caller's campaigns
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} offer.ApplicationView
// @Router /applications/received [get]
func (h *OfferHandler) ListReceivedApplications(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	views, err := h.svc.ListReceivedApplications(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []offer.ApplicationView{}
	}
	c.JSON(http.StatusOK, views)
}

// ListMyInvitations godoc
// @Summary List invitations addressed to the caller
// @Tags invitations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} offer.InvitationView
// @Router /invitations/mine [get]
func (h *OfferHandler) ListMyInvitations(c *gin.Context) {
	actor, err := utils.GetActorFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	views, err := h.svc.ListMyInvitations(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []offer.InvitationView{}
	}
	c.JSON(http.StatusOK, views)
}
