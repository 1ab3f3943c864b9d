package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/engagement-go/internal/messaging"
	"github.com/linskybing/engagement-go/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool { return true },
}

type PushHandler struct {
	hub *messaging.Hub
}

func NewPushHandler(hub *messaging.Hub) *PushHandler {
	return &PushHandler{hub: hub}
}

// Stream godoc
// @Summary Open the caller's push stream
// @Description Websocket. Each frame is a message.Push JSON object. The token may be passed as ?token=.
// @Tags messages
// @Security BearerAuth
// @Router /ws/messages [get]
func (h *PushHandler) Stream(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		_ = c.Error(err)
		return
	}
	h.hub.Serve(userID, ws)
}
