package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatched(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	other := f.campaign(t, nil)
	app := f.apply(t, provider1, c.ID)
	_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	require.NoError(t, err)

	check := func(a, b uint, campaignID *uint) bool {
		t.Helper()
		ok, err := f.svc.Match.IsMatched(ctx, a, b, campaignID, nil)
		require.NoError(t, err)
		return ok
	}

	assert.True(t, check(requester.ID, provider1.ID, nil))
	assert.True(t, check(provider1.ID, requester.ID, nil))
	assert.True(t, check(provider1.ID, requester.ID, &c.ID))
	assert.False(t, check(provider1.ID, requester.ID, &other.ID))
	assert.False(t, check(provider2.ID, requester.ID, nil))
	assert.False(t, check(provider1.ID, provider1.ID, nil))

	// a settled agreement still counts
	views, err := f.svc.Engagement.ListMine(ctx, provider1)
	require.NoError(t, err)
	_, err = f.svc.Settlement.HandlePaymentCompleted(ctx, agreement.FinalizePaymentEvent{AgreementID: views[0].ID})
	require.NoError(t, err)
	assert.True(t, check(requester.ID, provider1.ID, &c.ID))
}

func TestIsMatched_ScopedToAgreement(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, nil)
	other := f.campaign(t, nil)
	for _, p := range []user.Actor{provider1, provider2} {
		app := f.apply(t, p, c.ID)
		_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
		require.NoError(t, err)
	}

	agreementOf := func(p user.Actor) uint {
		t.Helper()
		views, err := f.svc.Engagement.ListMine(ctx, p)
		require.NoError(t, err)
		require.Len(t, views, 1)
		return views[0].ID
	}
	own, foreign := agreementOf(provider1), agreementOf(provider2)
	unknown := uint(999)

	check := func(campaignID *uint, agreementID uint) bool {
		t.Helper()
		ok, err := f.svc.Match.IsMatched(ctx, provider1.ID, requester.ID, campaignID, &agreementID)
		require.NoError(t, err)
		return ok
	}

	assert.True(t, check(nil, own))
	assert.True(t, check(&c.ID, own))
	assert.False(t, check(&other.ID, own))
	assert.False(t, check(nil, foreign), "another pair's agreement must not match")
	assert.False(t, check(nil, unknown))
}

func TestHandlePaymentCompleted(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.campaign(t, capacity(2))
	app := f.apply(t, provider1, c.ID)
	_, err := f.svc.Offer.SetApplicationStatus(ctx, requester, app.ID, offer.StatusAccepted)
	require.NoError(t, err)
	views, err := f.svc.Engagement.ListMine(ctx, requester)
	require.NoError(t, err)
	event := agreement.FinalizePaymentEvent{AgreementID: views[0].ID}

	for i := 0; i < 3; i++ {
		got, err := f.svc.Settlement.HandlePaymentCompleted(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, agreement.StatusSettled, got.Status)
	}
	assert.Zero(t, f.activeCount(t, c.ID))
	assert.Zero(t, f.counter(t, c.ID))

	_, err = f.svc.Settlement.HandlePaymentCompleted(ctx, agreement.FinalizePaymentEvent{AgreementID: 4242})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
