package match_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linskybing/engagement-go/internal/client/match"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatched_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agreements/match", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("user_a"))
		assert.Equal(t, "2", r.URL.Query().Get("user_b"))
		assert.Equal(t, "7", r.URL.Query().Get("campaign_id"))
		assert.Equal(t, "42", r.URL.Query().Get("agreement_id"))
		assert.Equal(t, "svc", r.Header.Get("X-Service-Token"))
		_, _ = w.Write([]byte(`{"isMatch":true}`))
	}))
	defer srv.Close()

	campaignID, agreementID := uint(7), uint(42)
	ok, err := match.NewHTTPChecker(srv.URL, "svc", time.Second, nil).IsMatched(context.Background(), 1, 2, &campaignID, &agreementID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsMatched_NoCampaign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("campaign_id"))
		assert.False(t, r.URL.Query().Has("agreement_id"))
		_, _ = w.Write([]byte(`{"isMatch":false}`))
	}))
	defer srv.Close()

	ok, err := match.NewHTTPChecker(srv.URL, "", time.Second, nil).IsMatched(context.Background(), 1, 2, nil, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsMatched_FailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"isMatch":true}`))
		}},
		{"bad body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
			_, _ = w.Write([]byte(`{"isMatch":true}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			ok, err := match.NewHTTPChecker(srv.URL, "", 50*time.Millisecond, nil).IsMatched(context.Background(), 1, 2, nil, nil)
			assert.False(t, ok)
			assert.True(t, errors.Is(err, apperr.ErrUpstreamUnavailable), "got %v", err)
		})
	}
}

func TestIsMatched_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	ok, err := match.NewHTTPChecker(srv.URL, "", time.Second, nil).IsMatched(context.Background(), 1, 2, nil, nil)
	assert.False(t, ok)
	assert.Error(t, err)
}
