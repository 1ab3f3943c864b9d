package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linskybing/engagement-go/internal/client/profile"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/multiple", r.URL.Path)
		assert.Equal(t, "Bearer svc", r.Header.Get("Authorization"))

		var ids []uint
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ids))
		assert.Equal(t, []uint{3, 5}, ids)

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 3, "username": "acme", "role": "Requester", "photoUrl": "https://cdn/3.png"},
		})
	}))
	defer srv.Close()

	c := profile.NewHTTPClient(srv.URL+"/api/", "svc", time.Second, nil)
	got, err := c.FetchProfiles(context.Background(), []uint{3, 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "acme", got[0].Username)
	assert.Equal(t, user.RoleRequester, got[0].Role)
	assert.Equal(t, "https://cdn/3.png", got[0].PhotoURL)
}

func TestFetchProfiles_EmptyDoesNotCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	got, err := profile.NewHTTPClient(srv.URL, "", time.Second, nil).FetchProfiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestFetchProfiles_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := profile.NewHTTPClient(srv.URL, "", 50*time.Millisecond, nil)
			_, err := c.FetchProfiles(context.Background(), []uint{1})
			assert.True(t, errors.Is(err, apperr.ErrUpstreamUnavailable), "got %v", err)
		})
	}
}

func TestDedup(t *testing.T) {
	assert.Equal(t, []uint{4, 1, 9}, profile.Dedup([]uint{4, 1, 4, 9, 1}))
	assert.Empty(t, profile.Dedup(nil))
}
