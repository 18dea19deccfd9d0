// Package httpapi implements the backend contracts over HTTP/JSON.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/backend"
	"github.com/slshults/gpra-web-sub001/internal/domain"
)

const (
	pathAuthStatus     = "/api/auth-status"
	pathRefundEstimate = "/api/deletion/refund-estimate"
	pathSchedule       = "/api/deletion/schedule"
	pathImmediateFree  = "/api/deletion/immediate/free"
	pathImmediatePaid  = "/api/deletion/immediate/paid"
	pathCancel         = "/api/deletion/cancel"
	pathExport         = "/api/export/practice-data"
	pathLogin          = "/login"
	pathLogout         = "/logout"
)

// Client calls the backend API. It implements backend.StatusAPI and
// backend.DeletionAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// AuthStatus fetches the current authentication/entitlement status
func (c *Client) AuthStatus(ctx context.Context) (*backend.AuthStatusResponse, error) {
	var out backend.AuthStatusResponse
	if err := c.do(ctx, http.MethodGet, pathAuthStatus, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefundEstimate fetches the prorated refund preview
func (c *Client) RefundEstimate(ctx context.Context) (*backend.RefundEstimateResponse, error) {
	var out backend.RefundEstimateResponse
	if err := c.do(ctx, http.MethodGet, pathRefundEstimate, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScheduleDeletion requests deletion at the next renewal date
func (c *Client) ScheduleDeletion(ctx context.Context, req backend.DeletionSubmission) (*backend.ScheduleDeletionResponse, error) {
	var out backend.ScheduleDeletionResponse
	if err := c.do(ctx, http.MethodPost, pathSchedule, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteImmediately requests immediate deletion. The route depends on tier:
// the free tier has no refund computation on the backend.
func (c *Client) DeleteImmediately(ctx context.Context, tier domain.Tier, req backend.DeletionSubmission) error {
	path := pathImmediateFree
	if tier == domain.TierPaid {
		path = pathImmediatePaid
	}
	return c.do(ctx, http.MethodPost, path, req, nil)
}

// CancelScheduledDeletion cancels an existing scheduled deletion
func (c *Client) CancelScheduledDeletion(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathCancel, struct{}{}, nil)
}

// ExportURL is the practice-data export download target
func (c *Client) ExportURL() string {
	return c.baseURL + pathExport
}

// LoginURL is the identity-provider entry point
func (c *Client) LoginURL() string {
	return c.baseURL + pathLogin
}

// LogoutURL is the sign-out endpoint
func (c *Client) LogoutURL() string {
	return c.baseURL + pathLogout
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func (c *Client) decodeError(path string, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = "request failed"
	}

	c.logger.Warn("backend request rejected",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", body.Error),
	)

	return &backend.APIError{Status: resp.StatusCode, Message: body.Error}
}
