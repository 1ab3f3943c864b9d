package application_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/client/mock"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/internal/testutils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	requester = user.Actor{ID: 1, Role: user.RoleRequester}
	intruder  = user.Actor{ID: 2, Role: user.RoleRequester}
	provider1 = user.Actor{ID: 11, Role: user.RoleProvider}
	provider2 = user.Actor{ID: 12, Role: user.RoleProvider}
)

type fixture struct {
	repos    *repository.Repos
	svc      *application.Services
	profiles *mock.MockProfileClient
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	profiles := mock.NewMockProfileClient(ctrl)
	repos := repository.NewRepositories(testutils.NewTestDB(t))
	return &fixture{
		repos:    repos,
		svc:      application.New(repos, profiles, zap.NewNop()),
		profiles: profiles,
	}
}

func capacity(n int) *int { return &n }

func (f *fixture) campaign(t *testing.T, limit *int) campaign.Campaign {
	t.Helper()
	c, err := f.svc.Campaign.Create(context.Background(), requester, campaign.CreateCampaignDTO{
		Title:       "Spring launch",
		Description: "three short videos",
		Capacity:    limit,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) apply(t *testing.T, p user.Actor, campaignID uint) offer.Application {
	t.Helper()
	app, err := f.svc.Offer.Apply(context.Background(), p, campaignID)
	require.NoError(t, err)
	return app
}

func (f *fixture) expectProviders(ids ...uint) {
	profiles := make([]user.Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, user.Profile{ID: id, Username: "creator", Role: user.RoleProvider})
	}
	f.profiles.EXPECT().FetchProfiles(gomock.Any(), gomock.Any()).Return(profiles, nil)
}

func (f *fixture) activeCount(t *testing.T, campaignID uint) int64 {
	t.Helper()
	n, err := f.repos.Agreement.CountActiveByCampaign(context.Background(), campaignID)
	require.NoError(t, err)
	return n
}

func (f *fixture) counter(t *testing.T, campaignID uint) int {
	t.Helper()
	c, err := f.repos.Campaign.GetCampaignByID(context.Background(), campaignID)
	require.NoError(t, err)
	return c.ActiveAgreements
}
