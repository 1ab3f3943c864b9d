package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)

	t.Run("creates pending", func(t *testing.T) {
		app, err := f.svc.Offer.Apply(ctx, provider1, c.ID)
		require.NoError(t, err)
		assert.Equal(t, offer.StatusPending, app.Status)
		assert.Equal(t, provider1.ID, app.ProviderID)
	})

	t.Run("second apply conflicts", func(t *testing.T) {
		_, err := f.svc.Offer.Apply(ctx, provider1, c.ID)
		assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)

		apps, err := f.svc.Offer.ListApplicationsForCampaign(ctx, requester, c.ID)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("requester cannot apply", func(t *testing.T) {
		_, err := f.svc.Offer.Apply(ctx, requester, c.ID)
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
	})

	t.Run("missing campaign", func(t *testing.T) {
		_, err := f.svc.Offer.Apply(ctx, provider2, 404)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("passive campaign", func(t *testing.T) {
		closed := f.campaign(t, nil)
		passive := campaign.StatusPassive
		_, err := f.svc.Campaign.Update(ctx, requester, closed.ID, campaign.UpdateCampaignDTO{Status: &passive})
		require.NoError(t, err)

		_, err = f.svc.Offer.Apply(ctx, provider2, closed.ID)
		assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	})
}

func TestInvite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)

	t.Run("not the owner", func(t *testing.T) {
		_, err := f.svc.Offer.Invite(ctx, intruder, c.ID, provider1.ID)
		assert.True(t, errors.Is(err, apperr.ErrForbidden))
	})

	t.Run("profile service down", func(t *testing.T) {
		f.profiles.EXPECT().FetchProfiles(gomock.Any(), []uint{provider1.ID}).
			Return(nil, fmt.Errorf("%w: timeout", apperr.ErrUpstreamUnavailable))

		_, err := f.svc.Offer.Invite(ctx, requester, c.ID, provider1.ID)
		assert.True(t, errors.Is(err, apperr.ErrUpstreamUnavailable))
	})

	t.Run("unknown user", func(t *testing.T) {
		f.profiles.EXPECT().FetchProfiles(gomock.Any(), gomock.Any()).Return([]user.Profile{}, nil)

		_, err := f.svc.Offer.Invite(ctx, requester, c.ID, 77)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("target is a requester", func(t *testing.T) {
		f.profiles.EXPECT().FetchProfiles(gomock.Any(), gomock.Any()).
			Return([]user.Profile{{ID: intruder.ID, Role: user.RoleRequester}}, nil)

		_, err := f.svc.Offer.Invite(ctx, requester, c.ID, intruder.ID)
		assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	})

	t.Run("creates pending then conflicts", func(t *testing.T) {
		f.expectProviders(provider1.ID)
		inv, err := f.svc.Offer.Invite(ctx, requester, c.ID, provider1.ID)
		require.NoError(t, err)
		assert.Equal(t, offer.StatusPending, inv.Status)
		assert.Equal(t, requester.ID, inv.RequesterID)

		f.expectProviders(provider1.ID)
		_, err = f.svc.Offer.Invite(ctx, requester, c.ID, provider1.ID)
		assert.True(t, errors.Is(err, apperr.ErrConflict))

		invs, err := f.svc.Offer.ListInvitationsForCampaign(ctx, requester, c.ID)
		require.NoError(t, err)
		assert.Len(t, invs, 1)

		mine, err := f.svc.Offer.ListMyInvitations(ctx, provider1)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "Spring launch", mine[0].CampaignTitle)
	})
}

func TestSetApplicationStatus_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	app := f.apply(t, provider1, c.ID)

	_, err := f.svc.Offer.SetApplicationStatus(ctx, intruder, app.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusPending)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, 999, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusRejected)
	require.NoError(t, err)

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.Zero(t, f.activeCount(t, c.ID))
}

func TestSetInvitationStatus_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	f.expectProviders(provider1.ID)
	inv, err := f.svc.Offer.Invite(ctx, requester, c.ID, provider1.ID)
	require.NoError(t, err)

	_, err = f.svc.Offer.SetInvitationStatus(ctx, provider2, inv.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = f.svc.Offer.SetInvitationStatus(ctx, requester, inv.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	got, err := f.svc.Offer.SetInvitationStatus(ctx, provider1, inv.ID, offer.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusAccepted, got.Status)
	assert.EqualValues(t, 1, f.activeCount(t, c.ID))

	_, err = f.svc.Offer.SetInvitationStatus(ctx, provider1, inv.ID, offer.StatusRejected)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

func TestListReceivedApplications(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	f.apply(t, provider1, c.ID)
	f.apply(t, provider2, c.ID)

	t.Run("decorated", func(t *testing.T) {
		f.profiles.EXPECT().FetchProfiles(gomock.Any(), gomock.Any()).
			Return([]user.Profile{{ID: provider1.ID, Username: "vlogger", Role: user.RoleProvider}}, nil)

		views, err := f.svc.Offer.ListReceivedApplications(ctx, requester)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			if v.ProviderID == provider1.ID {
				require.NotNil(t, v.Provider)
				assert.Equal(t, "vlogger", v.Provider.Username)
			} else {
				assert.Nil(t, v.Provider)
			}
		}
	})

	t.Run("degrades when profiles fail", func(t *testing.T) {
		f.profiles.EXPECT().FetchProfiles(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrUpstreamUnavailable)

		views, err := f.svc.Offer.ListReceivedApplications(ctx, requester)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Nil(t, views[0].Provider)
		assert.Nil(t, views[1].Provider)
	})

	t.Run("providers only see their own", func(t *testing.T) {
		_, err := f.svc.Offer.ListReceivedApplications(ctx, provider1)
		assert.True(t, errors.Is(err, apperr.ErrForbidden))

		mine, err := f.svc.Offer.ListMyApplications(ctx, provider1)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})
}
