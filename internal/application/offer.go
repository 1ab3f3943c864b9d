package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linskybing/engagement-go/internal/client/profile"
	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"go.uber.org/zap"
)

// OfferService tracks applications and invitations and hands accepted ones
// to the EngagementService inside the same transaction.
type OfferService struct {
	Repos      *repository.Repos
	Profiles   profile.Client
	engagement *EngagementService
	audit      *AuditService
	log        *zap.Logger
	now        func() time.Time
}

func NewOfferService(repos *repository.Repos, profiles profile.Client, engagement *EngagementService, audit *AuditService, log *zap.Logger) *OfferService {
	return &OfferService{
		Repos:      repos,
		Profiles:   profiles,
		engagement: engagement,
		audit:      audit,
		log:        log,
		now:        time.Now,
	}
}

func (s *OfferService) Apply(ctx context.Context, actor user.Actor, campaignID uint) (offer.Application, error) {
	if !actor.IsProvider() {
		return offer.Application{}, fmt.Errorf("%w: only providers can apply", apperr.ErrForbidden)
	}

	c, err := s.Repos.Campaign.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return offer.Application{}, err
	}
	if !c.IsActive() {
		return offer.Application{}, fmt.Errorf("%w: campaign %d is not accepting applications", apperr.ErrInvalidState, c.ID)
	}

	exists, err := s.Repos.Application.ApplicationExists(ctx, campaignID, actor.ID)
	if err != nil {
		return offer.Application{}, err
	}
	if exists {
		return offer.Application{}, fmt.Errorf("%w: provider %d already applied to campaign %d", apperr.ErrConflict, actor.ID, campaignID)
	}

	app := offer.Application{
		CampaignID: campaignID,
		ProviderID: actor.ID,
		Status:     offer.StatusPending,
	}
	if err := s.Repos.Application.CreateApplication(ctx, &app); err != nil {
		return offer.Application{}, err
	}

	s.audit.Record(ctx, actor.ID, ActionApply, "application", app.ID, nil, app, "")
	return app, nil
}

// Invite creates a pending invitation for providerID. The target is looked
// up in the profile service first; if that lookup cannot be made the invite
// fails with ErrUpstreamUnavailable.
func (s *OfferService) Invite(ctx context.Context, actor user.Actor, campaignID, providerID uint) (offer.Invitation, error) {
	c, err := s.Repos.Campaign.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return offer.Invitation{}, err
	}
	if !actor.IsRequester() || !c.OwnedBy(actor.ID) {
		return offer.Invitation{}, fmt.Errorf("%w: campaign %d is not yours", apperr.ErrForbidden, campaignID)
	}
	if !c.IsActive() {
		return offer.Invitation{}, fmt.Errorf("%w: campaign %d is not accepting invitations", apperr.ErrInvalidState, c.ID)
	}

	if err := s.verifyProvider(ctx, providerID); err != nil {
		return offer.Invitation{}, err
	}

	exists, err := s.Repos.Invitation.InvitationExists(ctx, campaignID, providerID)
	if err != nil {
		return offer.Invitation{}, err
	}
	if exists {
		return offer.Invitation{}, fmt.Errorf("%w: provider %d already invited to campaign %d", apperr.ErrConflict, providerID, campaignID)
	}

	inv := offer.Invitation{
		CampaignID:  campaignID,
		ProviderID:  providerID,
		RequesterID: actor.ID,
		Status:      offer.StatusPending,
	}
	if err := s.Repos.Invitation.CreateInvitation(ctx, &inv); err != nil {
		return offer.Invitation{}, err
	}

	s.audit.Record(ctx, actor.ID, ActionInvite, "invitation", inv.ID, nil, inv, "")
	return inv, nil
}

func (s *OfferService) verifyProvider(ctx context.Context, providerID uint) error {
	profiles, err := s.Profiles.FetchProfiles(ctx, []uint{providerID})
	if err != nil {
		if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
		}
		return err
	}
	p, ok := user.IndexProfiles(profiles)[providerID]
	if !ok {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, providerID)
	}
	if p.Role != user.RoleProvider {
		return fmt.Errorf("%w: user %d is not a provider", apperr.ErrInvalidState, providerID)
	}
	return nil
}

// SetApplicationStatus lets the campaign owner accept or reject a pending
// application. Acceptance creates the agreement in the same transaction; if
// that fails the application stays pending and the error is returned.
func (s *OfferService) SetApplicationStatus(ctx context.Context, actor user.Actor, applicationID uint, status offer.Status) (offer.Application, error) {
	if !status.IsDecision() {
		return offer.Application{}, fmt.Errorf("%w: cannot move an application to %q", apperr.ErrInvalidState, status)
	}

	app, err := s.Repos.Application.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return offer.Application{}, err
	}
	c, err := s.Repos.Campaign.GetCampaignByID(ctx, app.CampaignID)
	if err != nil {
		return offer.Application{}, err
	}
	if !actor.IsRequester() || !c.OwnedBy(actor.ID) {
		return offer.Application{}, fmt.Errorf("%w: application %d is not on your campaign", apperr.ErrForbidden, applicationID)
	}
	if app.Status != offer.StatusPending {
		return offer.Application{}, fmt.Errorf("%w: application %d is already %s", apperr.ErrInvalidState, app.ID, app.Status)
	}

	before := app
	var created *agreement.Agreement
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		changed, err := tx.Application.DecideApplication(ctx, app.ID, status, s.now())
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: application %d is no longer pending", apperr.ErrInvalidState, app.ID)
		}
		if status != offer.StatusAccepted {
			return nil
		}
		a, err := s.engagement.Materialize(ctx, tx, c.ID, app.ProviderID, c.RequesterID,
			agreement.Origin{Source: agreement.SourceApplication, ID: app.ID})
		if err != nil {
			return err
		}
		created = &a
		return nil
	})
	if err != nil {
		s.logDecisionFailure("application", app.ID, status, err)
		return offer.Application{}, err
	}

	updated, err := s.Repos.Application.GetApplicationByID(ctx, app.ID)
	if err != nil {
		return offer.Application{}, err
	}
	s.audit.Record(ctx, actor.ID, ActionDecide, "application", app.ID, before, updated, string(status))
	if created != nil {
		s.log.Info("agreement created",
			zap.Uint("agreement_id", created.ID),
			zap.Uint("campaign_id", created.CampaignID),
			zap.String("source", string(created.Source)))
	}
	return updated, nil
}

// SetInvitationStatus lets the invited provider accept or reject a pending
// invitation, with the same transactional acceptance as applications.
func (s *OfferService) SetInvitationStatus(ctx context.Context, actor user.Actor, invitationID uint, status offer.Status) (offer.Invitation, error) {
	if !status.IsDecision() {
		return offer.Invitation{}, fmt.Errorf("%w: cannot move an invitation to %q", apperr.ErrInvalidState, status)
	}

	inv, err := s.Repos.Invitation.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return offer.Invitation{}, err
	}
	if !actor.IsProvider() || inv.ProviderID != actor.ID {
		return offer.Invitation{}, fmt.Errorf("%w: invitation %d is not addressed to you", apperr.ErrForbidden, invitationID)
	}
	if inv.Status != offer.StatusPending {
		return offer.Invitation{}, fmt.Errorf("%w: invitation %d is already %s", apperr.ErrInvalidState, inv.ID, inv.Status)
	}

	before := inv
	var created *agreement.Agreement
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		changed, err := tx.Invitation.DecideInvitation(ctx, inv.ID, status, s.now())
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: invitation %d is no longer pending", apperr.ErrInvalidState, inv.ID)
		}
		if status != offer.StatusAccepted {
			return nil
		}
		a, err := s.engagement.Materialize(ctx, tx, inv.CampaignID, inv.ProviderID, inv.RequesterID,
			agreement.Origin{Source: agreement.SourceInvitation, ID: inv.ID})
		if err != nil {
			return err
		}
		created = &a
		return nil
	})
	if err != nil {
		s.logDecisionFailure("invitation", inv.ID, status, err)
		return offer.Invitation{}, err
	}

	updated, err := s.Repos.Invitation.GetInvitationByID(ctx, inv.ID)
	if err != nil {
		return offer.Invitation{}, err
	}
	s.audit.Record(ctx, actor.ID, ActionDecide, "invitation", inv.ID, before, updated, string(status))
	if created != nil {
		s.log.Info("agreement created",
			zap.Uint("agreement_id", created.ID),
			zap.Uint("campaign_id", created.CampaignID),
			zap.String("source", string(created.Source)))
	}
	return updated, nil
}

func (s *OfferService) logDecisionFailure(kind string, id uint, status offer.Status, err error) {
	fields := []zap.Field{
		zap.String("offer", kind),
		zap.Uint("id", id),
		zap.String("status", string(status)),
		zap.Error(err),
	}
	if isCapacityOrConflict(err) || errors.Is(err, apperr.ErrInvalidState) {
		s.log.Info("offer decision rejected", fields...)
		return
	}
	s.log.Error("offer decision failed", fields...)
}

func (s *OfferService) ownedCampaign(ctx context.Context, actor user.Actor, campaignID uint) (campaign.Campaign, error) {
	c, err := s.Repos.Campaign.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return campaign.Campaign{}, err
	}
	if !actor.IsRequester() || !c.OwnedBy(actor.ID) {
		return campaign.Campaign{}, fmt.Errorf("%w: campaign %d is not yours", apperr.ErrForbidden, campaignID)
	}
	return c, nil
}

func (s *OfferService) ListApplicationsForCampaign(ctx context.Context, actor user.Actor, campaignID uint) ([]offer.Application, error) {
	if _, err := s.ownedCampaign(ctx, actor, campaignID); err != nil {
		return nil, err
	}
	return s.Repos.Application.ListApplicationsByCampaign(ctx, campaignID)
}

func (s *OfferService) ListInvitationsForCampaign(ctx context.Context, actor user.Actor, campaignID uint) ([]offer.Invitation, error) {
	if _, err := s.ownedCampaign(ctx, actor, campaignID); err != nil {
		return nil, err
	}
	return s.Repos.Invitation.ListInvitationsByCampaign(ctx, campaignID)
}

func (s *OfferService) ListMyApplications(ctx context.Context, actor user.Actor) ([]offer.ApplicationView, error) {
	if !actor.IsProvider() {
		return nil, fmt.Errorf("%w: only providers have applications", apperr.ErrForbidden)
	}
	return s.Repos.Application.ListApplicationViewsByProvider(ctx, actor.ID)
}

func (s *OfferService) ListMyInvitations(ctx context.Context, actor user.Actor) ([]offer.InvitationView, error) {
	if !actor.IsProvider() {
		return nil, fmt.Errorf("%w: only providers receive invitations", apperr.ErrForbidden)
	}
	return s.Repos.Invitation.ListInvitationViewsByProvider(ctx, actor.ID)
}

// ListReceivedApplications returns every application across the requester's
// campaigns, decorated with the applicant's profile when it can be fetched.
func (s *OfferService) ListReceivedApplications(ctx context.Context, actor user.Actor) ([]offer.ApplicationView, error) {
	if !actor.IsRequester() {
		return nil, fmt.Errorf("%w: only requesters receive applications", apperr.ErrForbidden)
	}
	views, err := s.Repos.Application.ListApplicationViewsByRequester(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ProviderID)
	}
	profiles, err := s.Profiles.FetchProfiles(ctx, profile.Dedup(ids))
	if err != nil {
		s.log.Warn("provider decoration unavailable", zap.Error(err))
		return views, nil
	}
	byID := user.IndexProfiles(profiles)
	for i := range views {
		if p, ok := byID[views[i].ProviderID]; ok {
			views[i].Provider = p.Summary()
		}
	}
	return views, nil
}
