package application

import (
	"context"
	"errors"

	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"go.uber.org/zap"
)

// SettlementService turns payment-completed events into settlements.
type SettlementService struct {
	engagement *EngagementService
	log        *zap.Logger
}

func NewSettlementService(engagement *EngagementService, log *zap.Logger) *SettlementService {
	return &SettlementService{
		engagement: engagement,
		log:        log,
	}
}

// HandlePaymentCompleted settles the agreement named by the event. Replays
// and out-of-order deliveries succeed; an unknown agreement is reported as
// apperr.ErrNotFound so the gateway gets a non-2xx answer.
func (s *SettlementService) HandlePaymentCompleted(ctx context.Context, event agreement.FinalizePaymentEvent) (agreement.Agreement, error) {
	a, err := s.engagement.Settle(ctx, event.AgreementID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.log.Warn("payment for unknown agreement", zap.Uint("agreement_id", event.AgreementID))
		} else {
			s.log.Error("settlement failed", zap.Uint("agreement_id", event.AgreementID), zap.Error(err))
		}
		return agreement.Agreement{}, err
	}
	return a, nil
}
