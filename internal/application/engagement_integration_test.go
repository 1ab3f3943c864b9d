//go:build integration

package application_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/client/mock"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/internal/testutils"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupPostgres(t *testing.T) *fixture {
	t.Helper()
	profiles := mock.NewMockProfileClient(gomock.NewController(t))
	repos := repository.NewRepositories(testutils.NewPostgresDB(t))
	return &fixture{
		repos:    repos,
		svc:      application.New(repos, profiles, zap.NewNop()),
		profiles: profiles,
	}
}

func TestPostgres_MixedAcceptsRespectCapacity(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()
	const limit, providers = 4, 20
	c := f.campaign(t, capacity(limit))

	f.profiles.EXPECT().FetchProfiles(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ids []uint) ([]user.Profile, error) {
			return []user.Profile{{ID: ids[0], Username: "creator", Role: user.RoleProvider}}, nil
		}).AnyTimes()

	var apps []offer.Application
	var invs []offer.Invitation
	for i := 0; i < providers; i++ {
		p := user.Actor{ID: uint(500 + i), Role: user.RoleProvider}
		if i%2 == 0 {
			apps = append(apps, f.apply(t, p, c.ID))
			continue
		}
		inv, err := f.svc.Offer.Invite(ctx, requester, c.ID, p.ID)
		require.NoError(t, err)
		invs = append(invs, inv)
	}

	var accepted, full atomic.Int32
	record := func(err error) {
		switch {
		case err == nil:
			accepted.Add(1)
		case errors.Is(err, apperr.ErrCapacityExceeded):
			full.Add(1)
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	var wg conc.WaitGroup
	for _, app := range apps {
		app := app
		wg.Go(func() {
			_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
			record(err)
		})
	}
	for _, inv := range invs {
		inv := inv
		wg.Go(func() {
			actor := user.Actor{ID: inv.ProviderID, Role: user.RoleProvider}
			_, err := f.svc.Offer.SetInvitationStatus(ctx, actor, inv.ID, offer.StatusAccepted)
			record(err)
		})
	}
	wg.Wait()

	assert.EqualValues(t, limit, accepted.Load())
	assert.EqualValues(t, providers-limit, full.Load())
	assert.EqualValues(t, limit, f.activeCount(t, c.ID))
	assert.Equal(t, limit, f.counter(t, c.ID))
}

func TestPostgres_SettleReplayReleasesOnce(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()
	c := f.campaign(t, capacity(1))
	app := f.apply(t, provider1, c.ID)
	_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	require.NoError(t, err)

	views, err := f.svc.Engagement.ListMine(ctx, provider1)
	require.NoError(t, err)
	require.Len(t, views, 1)

	var wg conc.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Go(func() {
			_, err := f.svc.Engagement.Settle(ctx, views[0].ID)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, 0, f.counter(t, c.ID))
	assert.EqualValues(t, 0, f.activeCount(t, c.ID))
}
