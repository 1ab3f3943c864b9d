// Package profile talks to the user profile service, which owns usernames,
// roles and avatars. The engagement services only read from it.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/apperr"
)

// Client resolves user ids to profiles in one batched call.
type Client interface {
	FetchProfiles(ctx context.Context, ids []uint) ([]user.Profile, error)
}

// HTTPClient posts the id batch to {baseURL}/users/multiple.
type HTTPClient struct {
	baseURL string
	token   string
	timeout time.Duration
	httpc   *http.Client
}

func NewHTTPClient(baseURL, serviceToken string, timeout time.Duration, httpc *http.Client) *HTTPClient {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   serviceToken,
		timeout: timeout,
		httpc:   httpc,
	}
}

// FetchProfiles returns the profiles the service knows about. Unknown ids are
// simply absent from the result. Transport failures, timeouts and non-2xx
// answers are reported as apperr.ErrUpstreamUnavailable.
func (c *HTTPClient) FetchProfiles(ctx context.Context, ids []uint) ([]user.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode profile ids: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/multiple", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: profile lookup: %v", apperr.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: profile lookup returned %s", apperr.ErrUpstreamUnavailable, resp.Status)
	}

	var profiles []user.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("%w: decode profiles: %v", apperr.ErrUpstreamUnavailable, err)
	}
	return profiles, nil
}

// Dedup returns ids without repeats, keeping first-seen order.
func Dedup(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
