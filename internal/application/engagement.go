package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"go.uber.org/zap"
)

// EngagementService owns agreements: it creates them when an offer is
// accepted and settles them when payment completes.
type EngagementService struct {
	Repos *repository.Repos
	audit *AuditService
	log   *zap.Logger
	now   func() time.Time
}

func NewEngagementService(repos *repository.Repos, audit *AuditService, log *zap.Logger) *EngagementService {
	return &EngagementService{
		Repos: repos,
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// Materialize creates an active agreement for the triple. It must run on
// repositories bound to the caller's transaction so that a failure here
// also undoes the caller's offer status change.
//
// The campaign row is locked first, then the counter is bumped with a
// conditional update. A full campaign yields ErrCapacityExceeded and
// nothing is written.
func (s *EngagementService) Materialize(ctx context.Context, tx *repository.Repos, campaignID, providerID, requesterID uint, origin agreement.Origin) (agreement.Agreement, error) {
	c, err := tx.Campaign.GetCampaignForUpdate(ctx, campaignID)
	if err != nil {
		return agreement.Agreement{}, err
	}
	if !c.IsActive() {
		return agreement.Agreement{}, fmt.Errorf("%w: campaign %d is %s", apperr.ErrInvalidState, c.ID, c.Status)
	}

	exists, err := tx.Agreement.ActiveAgreementExists(ctx, campaignID, providerID, requesterID)
	if err != nil {
		return agreement.Agreement{}, err
	}
	if exists {
		return agreement.Agreement{}, fmt.Errorf("%w: provider %d already has an active agreement on campaign %d",
			apperr.ErrConflict, providerID, campaignID)
	}

	if !c.HasRoom() {
		return agreement.Agreement{}, fmt.Errorf("%w: campaign %d", apperr.ErrCapacityExceeded, campaignID)
	}
	reserved, err := tx.Campaign.ReserveSlot(ctx, campaignID)
	if err != nil {
		return agreement.Agreement{}, err
	}
	if !reserved {
		return agreement.Agreement{}, fmt.Errorf("%w: campaign %d", apperr.ErrCapacityExceeded, campaignID)
	}

	a := agreement.Agreement{
		CampaignID:  campaignID,
		ProviderID:  providerID,
		RequesterID: requesterID,
		Status:      agreement.StatusActive,
		Source:      origin.Source,
		SourceID:    origin.ID,
	}
	if err := tx.Agreement.CreateAgreement(ctx, &a); err != nil {
		return agreement.Agreement{}, err
	}
	return a, nil
}

// Settle moves an agreement to settled and frees its capacity slot. Settling
// an already settled agreement returns it unchanged.
func (s *EngagementService) Settle(ctx context.Context, agreementID uint) (agreement.Agreement, error) {
	var (
		settled agreement.Agreement
		changed bool
	)
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		var err error
		changed, err = tx.Agreement.MarkSettled(ctx, agreementID, s.now())
		if err != nil {
			return err
		}
		settled, err = tx.Agreement.GetAgreementByID(ctx, agreementID)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return tx.Campaign.ReleaseSlot(ctx, settled.CampaignID)
	})
	if err != nil {
		return agreement.Agreement{}, err
	}

	if changed {
		s.audit.Record(ctx, 0, ActionSettle, "agreement", settled.ID,
			map[string]any{"status": agreement.StatusActive}, settled, "payment completed")
	} else {
		s.log.Info("agreement already settled", zap.Uint("agreement_id", agreementID))
	}
	return settled, nil
}

// ListMine returns the caller's agreements: those where a provider is the
// provider, or a requester is the requester.
func (s *EngagementService) ListMine(ctx context.Context, actor user.Actor) ([]agreement.View, error) {
	switch actor.Role {
	case user.RoleProvider:
		return s.Repos.Agreement.ListAgreementViewsByProvider(ctx, actor.ID)
	case user.RoleRequester:
		return s.Repos.Agreement.ListAgreementViewsByRequester(ctx, actor.ID)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrForbidden, actor.Role)
	}
}

func isCapacityOrConflict(err error) bool {
	return errors.Is(err, apperr.ErrCapacityExceeded) || errors.Is(err, apperr.ErrConflict)
}
