package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/domain/message"
	"github.com/linskybing/engagement-go/pkg/utils"
)

type MessageHandler struct {
	svc *application.MessageService
}

func NewMessageHandler(svc *application.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Send godoc
// @Summary Send a message to a matched user
// @Description Refused with 403 unless the engagement authority confirms a match.
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body message.SendMessageDTO true "Message"
// @Success 201 {object} message.Message
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var input message.SendMessageDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	senderID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	msg, err := h.svc.Send(c.Request.Context(), senderID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// History godoc
// @Summary Conversation with a user on one agreement
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param userId path int true "Other user ID"
// @Param agreementId path int true "Agreement ID"
// @Success 200 {array} message.Message
// @Failure 400 {object} response.ErrorResponse
// @Router /messages/{userId}/agreement/{agreementId} [get]
func (h *MessageHandler) History(c *gin.Context) {
	other, err := utils.ParseIDParam(c, "userId")
	if err != nil {
		badRequest(c, err)
		return
	}
	agreementID, err := utils.ParseIDParam(c, "agreementId")
	if err != nil {
		badRequest(c, err)
		return
	}
	me, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	msgs, err := h.svc.History(c.Request.Context(), me, other, agreementID)
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []message.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}
