package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/pkg/response"
)

type WebhookHandler struct {
	settlement *application.SettlementService
}

func NewWebhookHandler(settlement *application.SettlementService) *WebhookHandler {
	return &WebhookHandler{settlement: settlement}
}

// PaymentCompleted godoc
// @Summary Payment gateway callback
// @Description Settles the agreement. Safe to deliver more than once.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param input body agreement.FinalizePaymentEvent true "Event"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /webhooks/payments [post]
func (h *WebhookHandler) PaymentCompleted(c *gin.Context) {
	var event agreement.FinalizePaymentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.settlement.HandlePaymentCompleted(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "agreement settled"})
}
