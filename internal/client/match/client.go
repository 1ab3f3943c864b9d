// Package match asks the engagement authority whether two users share an
// agreement. Any failure reads as "not matched".
package match

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/linskybing/engagement-go/pkg/response"
)

type Checker interface {
	// IsMatched reports false together with a non-nil error when the
	// authority could not be asked. A non-nil agreementID narrows the check
	// to that agreement.
	IsMatched(ctx context.Context, userA, userB uint, campaignID, agreementID *uint) (bool, error)
}

type HTTPChecker struct {
	baseURL string
	token   string
	timeout time.Duration
	httpc   *http.Client
}

func NewHTTPChecker(baseURL, serviceToken string, timeout time.Duration, httpc *http.Client) *HTTPChecker {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &HTTPChecker{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   serviceToken,
		timeout: timeout,
		httpc:   httpc,
	}
}

func (c *HTTPChecker) IsMatched(ctx context.Context, userA, userB uint, campaignID, agreementID *uint) (bool, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("user_a", strconv.FormatUint(uint64(userA), 10))
	q.Set("user_b", strconv.FormatUint(uint64(userB), 10))
	if campaignID != nil {
		q.Set("campaign_id", strconv.FormatUint(uint64(*campaignID), 10))
	}
	if agreementID != nil {
		q.Set("agreement_id", strconv.FormatUint(uint64(*agreementID), 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/agreements/match?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("build match request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("X-Service-Token", c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: match check: %v", apperr.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: match check returned %s", apperr.ErrUpstreamUnavailable, resp.Status)
	}

	var out response.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("%w: decode match response: %v", apperr.ErrUpstreamUnavailable, err)
	}
	return out.IsMatch, nil
}
