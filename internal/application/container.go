package application

import (
	"github.com/linskybing/engagement-go/internal/client/profile"
	"github.com/linskybing/engagement-go/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Audit      *AuditService
	Campaign   *CampaignService
	Offer      *OfferService
	Engagement *EngagementService
	Match      *MatchService
	Settlement *SettlementService
}

func New(repos *repository.Repos, profiles profile.Client, log *zap.Logger) *Services {
	audit := NewAuditService(repos, log.Named("audit"))
	engagement := NewEngagementService(repos, audit, log.Named("engagement"))
	return &Services{
		Audit:      audit,
		Campaign:   NewCampaignService(repos, profiles, audit, log.Named("campaign")),
		Offer:      NewOfferService(repos, profiles, engagement, audit, log.Named("offer")),
		Engagement: engagement,
		Match:      NewMatchService(repos),
		Settlement: NewSettlementService(engagement, log.Named("settlement")),
	}
}
