package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/domain/audit"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/pkg/utils"
)

const maxAuditPage = 200

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

type auditQuery struct {
	ResourceType string    `form:"resource_type"`
	Action       string    `form:"action"`
	StartTime    time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime      time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit        int       `form:"limit,default=50" binding:"gte=0"`
	Offset       int       `form:"offset" binding:"gte=0"`
}

// GetAuditLogs godoc
// @Summary List the caller's audit entries
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param resource_type query string false "campaign, application, invitation or agreement"
// @Param action query string false "Action"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param limit query int false "Page size (max 200)"
// @Param offset query int false "Offset"
// @Success 200 {array} audit.AuditLog
// @Failure 400 {object} response.ErrorResponse
// @Router /audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var q auditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		unauthorized(c)
		return
	}

	params := repository.AuditQueryParams{
		UserID: &userID,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if params.Limit == 0 || params.Limit > maxAuditPage {
		params.Limit = maxAuditPage
	}
	if q.ResourceType != "" {
		params.ResourceType = &q.ResourceType
	}
	if q.Action != "" {
		params.Action = &q.Action
	}
	if !q.StartTime.IsZero() {
		params.StartTime = &q.StartTime
	}
	if !q.EndTime.IsZero() {
		params.EndTime = &q.EndTime
	}

	logs, err := h.svc.QueryAuditLogs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}
	c.JSON(http.StatusOK, logs)
}
