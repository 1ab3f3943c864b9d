package application

import (
	"context"
	"errors"

	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/pkg/apperr"
)

// MatchService answers whether two users share an agreement. It reads the
// committed agreements table directly.
type MatchService struct {
	Repos *repository.Repos
}

func NewMatchService(repos *repository.Repos) *MatchService {
	return &MatchService{
		Repos: repos,
	}
}

// IsMatched is true when an active or settled agreement exists between the
// unordered pair, restricted to campaignID when it is given. With an
// agreementID only that agreement is considered, and an unknown id is simply
// not a match.
func (s *MatchService) IsMatched(ctx context.Context, userA, userB uint, campaignID, agreementID *uint) (bool, error) {
	if userA == userB {
		return false, nil
	}
	if agreementID == nil {
		return s.Repos.Agreement.AgreementBetweenExists(ctx, userA, userB, campaignID)
	}

	a, err := s.Repos.Agreement.GetAgreementByID(ctx, *agreementID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !a.Status.Valid() || !a.Involves(userA, userB) {
		return false, nil
	}
	return campaignID == nil || a.CampaignID == *campaignID, nil
}
