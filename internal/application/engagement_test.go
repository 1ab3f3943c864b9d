package application_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccept_SecondProviderHitsCapacity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, capacity(1))
	app1 := f.apply(t, provider1, c.ID)
	app2 := f.apply(t, provider2, c.ID)

	got, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app1.ID, offer.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusAccepted, got.Status)
	assert.EqualValues(t, 1, f.activeCount(t, c.ID))

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app2.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrCapacityExceeded), "got %v", err)

	still, err := f.repos.Application.GetApplicationByID(ctx, app2.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusPending, still.Status)
	assert.Nil(t, still.DecidedAt)
	assert.EqualValues(t, 1, f.activeCount(t, c.ID))
	assert.Equal(t, 1, f.counter(t, c.ID))
}

// SQLite serializes these transactions on its single connection, so this
// checks the counter and offer bookkeeping under concurrent callers. The
// isolation race itself is covered by the integration-tagged PostgreSQL tests.
func TestAccept_ConcurrentCounterBookkeeping(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	const limit, applicants = 3, 12
	c := f.campaign(t, capacity(limit))

	apps := make([]offer.Application, 0, applicants)
	for i := 0; i < applicants; i++ {
		apps = append(apps, f.apply(t, user.Actor{ID: uint(100 + i), Role: user.RoleProvider}, c.ID))
	}

	var accepted, rejected atomic.Int32
	var wg conc.WaitGroup
	for _, app := range apps {
		app := app
		wg.Go(func() {
			_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, apperr.ErrCapacityExceeded):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	wg.Wait()

	assert.EqualValues(t, limit, accepted.Load())
	assert.EqualValues(t, applicants-limit, rejected.Load())
	assert.EqualValues(t, limit, f.activeCount(t, c.ID))
	assert.Equal(t, limit, f.counter(t, c.ID))

	pending := 0
	for _, app := range apps {
		got, err := f.repos.Application.GetApplicationByID(ctx, app.ID)
		require.NoError(t, err)
		if got.Status == offer.StatusPending {
			pending++
		}
	}
	assert.Equal(t, applicants-limit, pending)
}

func TestAccept_InvitationOnFullCampaignStaysPending(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, capacity(1))
	app := f.apply(t, provider1, c.ID)
	_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	require.NoError(t, err)

	f.expectProviders(provider2.ID)
	inv, err := f.svc.Offer.Invite(ctx, requester, c.ID, provider2.ID)
	require.NoError(t, err)

	_, err = f.svc.Offer.SetInvitationStatus(ctx, provider2, inv.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrCapacityExceeded), "got %v", err)

	got, err := f.repos.Invitation.GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusPending, got.Status)
}

func TestAccept_SameTripleFromBothPathsConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	app := f.apply(t, provider1, c.ID)

	f.expectProviders(provider1.ID)
	inv, err := f.svc.Offer.Invite(ctx, requester, c.ID, provider1.ID)
	require.NoError(t, err)

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	require.NoError(t, err)

	_, err = f.svc.Offer.SetInvitationStatus(ctx, provider1, inv.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)

	got, err := f.repos.Invitation.GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusPending, got.Status)
	assert.EqualValues(t, 1, f.activeCount(t, c.ID))
	assert.Equal(t, 1, f.counter(t, c.ID))
}

func TestAccept_PassiveCampaignRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	app := f.apply(t, provider1, c.ID)

	passive := campaign.StatusPassive
	_, err := f.svc.Campaign.Update(ctx, requester, c.ID, campaign.UpdateCampaignDTO{Status: &passive})
	require.NoError(t, err)

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "got %v", err)

	// rejecting is still allowed
	got, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, offer.StatusRejected, got.Status)
}

func TestSettle_IsIdempotentAndFreesSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, capacity(1))
	app1 := f.apply(t, provider1, c.ID)
	app2 := f.apply(t, provider2, c.ID)
	_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app1.ID, offer.StatusAccepted)
	require.NoError(t, err)

	views, err := f.svc.Engagement.ListMine(ctx, provider1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	agreementID := views[0].ID

	first, err := f.svc.Engagement.Settle(ctx, agreementID)
	require.NoError(t, err)
	assert.Equal(t, agreement.StatusSettled, first.Status)
	require.NotNil(t, first.SettledAt)

	second, err := f.svc.Engagement.Settle(ctx, agreementID)
	require.NoError(t, err)
	assert.Equal(t, agreement.StatusSettled, second.Status)
	assert.Equal(t, first.SettledAt.Unix(), second.SettledAt.Unix())
	assert.Equal(t, 0, f.counter(t, c.ID))

	_, err = f.svc.Offer.SetApplicationStatus(ctx, requester, app2.ID, offer.StatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.counter(t, c.ID))
}

func TestSettle_Unknown(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Engagement.Settle(context.Background(), 999)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestEngagement_ListMineBySide(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	app := f.apply(t, provider1, c.ID)
	_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	require.NoError(t, err)

	mine, err := f.svc.Engagement.ListMine(ctx, requester)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Spring launch", mine[0].CampaignTitle)
	assert.Equal(t, provider1.ID, mine[0].ProviderID)

	other, err := f.svc.Engagement.ListMine(ctx, provider2)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = f.svc.Engagement.ListMine(ctx, user.Actor{ID: 5, Role: "Admin"})
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}
