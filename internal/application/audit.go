package application

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/linskybing/engagement-go/internal/domain/audit"
	"github.com/linskybing/engagement-go/internal/repository"
	"go.uber.org/zap"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionApply  = "apply"
	ActionInvite = "invite"
	ActionDecide = "decide"
	ActionSettle = "settle"
)

type AuditService struct {
	Repos *repository.Repos
	log   *zap.Logger
}

func NewAuditService(repos *repository.Repos, log *zap.Logger) *AuditService {
	return &AuditService{
		Repos: repos,
		log:   log,
	}
}

func (s *AuditService) QueryAuditLogs(ctx context.Context, params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	return s.Repos.Audit.GetAuditLogs(ctx, params)
}

func (s *AuditService) CleanupOldLogs(ctx context.Context, days int) (int64, error) {
	return s.Repos.Audit.DeleteOldAuditLogs(ctx, days)
}

// Record stores one audit entry after the mutation it describes has
// committed. A failure is logged and never fails the caller.
func (s *AuditService) Record(ctx context.Context, userID uint, action, resourceType string, resourceID uint, before, after any, description string) {
	entry := &audit.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   strconv.FormatUint(uint64(resourceID), 10),
		OldData:      s.snapshot(before),
		NewData:      s.snapshot(after),
		Description:  description,
	}
	if err := s.Repos.Audit.CreateAuditLog(ctx, entry); err != nil {
		s.log.Warn("audit record failed",
			zap.String("action", action),
			zap.String("resource_type", resourceType),
			zap.Uint("resource_id", resourceID),
			zap.Error(err))
	}
}

func (s *AuditService) snapshot(v any) []byte {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("audit snapshot marshal failed", zap.Error(err))
		return nil
	}
	return data
}
