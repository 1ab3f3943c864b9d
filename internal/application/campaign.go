package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/linskybing/engagement-go/internal/client/profile"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"go.uber.org/zap"
)

type CampaignService struct {
	Repos    *repository.Repos
	Profiles profile.Client
	audit    *AuditService
	log      *zap.Logger
}

func NewCampaignService(repos *repository.Repos, profiles profile.Client, audit *AuditService, log *zap.Logger) *CampaignService {
	return &CampaignService{
		Repos:    repos,
		Profiles: profiles,
		audit:    audit,
		log:      log,
	}
}

func (s *CampaignService) Create(ctx context.Context, actor user.Actor, input campaign.CreateCampaignDTO) (campaign.Campaign, error) {
	if !actor.IsRequester() {
		return campaign.Campaign{}, fmt.Errorf("%w: only requesters can create campaigns", apperr.ErrForbidden)
	}
	if strings.TrimSpace(input.Title) == "" {
		return campaign.Campaign{}, fmt.Errorf("%w: title is required", apperr.ErrInvalidState)
	}
	if input.Capacity != nil && *input.Capacity < 1 {
		return campaign.Campaign{}, fmt.Errorf("%w: capacity must be at least 1", apperr.ErrInvalidState)
	}

	c := campaign.Campaign{
		RequesterID: actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Capacity:    input.Capacity,
		Status:      campaign.StatusActive,
	}
	if err := s.Repos.Campaign.CreateCampaign(ctx, &c); err != nil {
		return campaign.Campaign{}, err
	}

	s.audit.Record(ctx, actor.ID, ActionCreate, "campaign", c.ID, nil, c, "")
	return c, nil
}

// Update applies the non-nil fields of input. The campaign row is locked
// while the capacity is checked against its live agreement count.
func (s *CampaignService) Update(ctx context.Context, actor user.Actor, id uint, input campaign.UpdateCampaignDTO) (campaign.Campaign, error) {
	if input.Status != nil && !input.Status.Valid() {
		return campaign.Campaign{}, fmt.Errorf("%w: unknown campaign status %q", apperr.ErrInvalidState, *input.Status)
	}
	if input.Capacity != nil && *input.Capacity < 1 {
		return campaign.Campaign{}, fmt.Errorf("%w: capacity must be at least 1", apperr.ErrInvalidState)
	}

	var before, after campaign.Campaign
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		c, err := tx.Campaign.GetCampaignForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !c.OwnedBy(actor.ID) {
			return fmt.Errorf("%w: campaign %d is not yours", apperr.ErrForbidden, id)
		}
		before = c

		if input.Title != nil {
			c.Title = *input.Title
		}
		if input.Description != nil {
			c.Description = *input.Description
		}
		if input.Budget != nil {
			c.Budget = input.Budget
		}
		if input.Capacity != nil {
			if *input.Capacity < c.ActiveAgreements {
				return fmt.Errorf("%w: campaign %d already has %d active agreements",
					apperr.ErrInvalidState, id, c.ActiveAgreements)
			}
			c.Capacity = input.Capacity
		}
		if input.Status != nil {
			c.Status = *input.Status
		}

		if err := tx.Campaign.UpdateCampaign(ctx, &c); err != nil {
			return err
		}
		after = c
		return nil
	})
	if err != nil {
		return campaign.Campaign{}, err
	}

	s.audit.Record(ctx, actor.ID, ActionUpdate, "campaign", id, before, after, "")
	return after, nil
}

func (s *CampaignService) Get(ctx context.Context, id uint) (campaign.Campaign, error) {
	return s.Repos.Campaign.GetCampaignByID(ctx, id)
}

func (s *CampaignService) ListMine(ctx context.Context, actor user.Actor) ([]campaign.Campaign, error) {
	if !actor.IsRequester() {
		return nil, fmt.Errorf("%w: only requesters own campaigns", apperr.ErrForbidden)
	}
	return s.Repos.Campaign.ListCampaignsByRequester(ctx, actor.ID)
}

// ListActive returns the open campaigns with their requester's summary.
// The summaries come from one batched profile lookup; when it fails every
// requester is left null and the listing still succeeds.
func (s *CampaignService) ListActive(ctx context.Context) ([]campaign.ListingDTO, error) {
	campaigns, err := s.Repos.Campaign.ListCampaignsByStatus(ctx, campaign.StatusActive)
	if err != nil {
		return nil, err
	}

	listings := make([]campaign.ListingDTO, 0, len(campaigns))
	if len(campaigns) == 0 {
		return listings, nil
	}

	ids := make([]uint, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.RequesterID)
	}

	var byID map[uint]user.Profile
	profiles, err := s.Profiles.FetchProfiles(ctx, profile.Dedup(ids))
	if err != nil {
		s.log.Warn("requester decoration unavailable", zap.Error(err))
	} else {
		byID = user.IndexProfiles(profiles)
	}

	for _, c := range campaigns {
		var summary *user.Summary
		if p, ok := byID[c.RequesterID]; ok {
			summary = p.Summary()
		}
		listings = append(listings, c.Listing(summary))
	}
	return listings, nil
}
