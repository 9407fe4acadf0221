// Package httpcarrier talks to third-party carriers that expose the common
// shipment REST contract.
package httpcarrier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"handoff/internal/core/ports"
	"handoff/internal/pkg/errs"

	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

type Options struct {
	Code          string
	BaseURL       string
	APIKey        string
	WebhookSecret string
	DeliveryTypes []ports.DeliveryType
	Timeout       time.Duration
}

type Client struct {
	code    string
	baseURL string
	apiKey  string
	secret  []byte
	types   []ports.DeliveryType
	httpc   *http.Client
}

func New(opts Options) (*Client, error) {
	if opts.Code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil || opts.BaseURL == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", fmt.Errorf("carrier %s: %q", opts.Code, opts.BaseURL))
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		code:    strings.ToUpper(opts.Code),
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		secret:  []byte(opts.WebhookSecret),
		types:   opts.DeliveryTypes,
		httpc:   &http.Client{Timeout: opts.Timeout},
	}, nil
}

func (c *Client) Code() string { return c.code }

type createShipmentBody struct {
	Reference    string  `json:"reference"`
	TenantID     string  `json:"tenant_id"`
	DeliveryType string  `json:"delivery_type"`
	DropLat      float64 `json:"drop_latitude"`
	DropLon      float64 `json:"drop_longitude"`
}

type createShipmentResp struct {
	TrackingID string `json:"tracking_id"`
}

func (c *Client) CreateShipment(ctx context.Context, req ports.CarrierShipmentRequest) (string, error) {
	var resp createShipmentResp
	err := c.do(ctx, http.MethodPost, "/v1/shipments", createShipmentBody{
		Reference:    req.ShipmentLegID,
		TenantID:     req.TenantID,
		DeliveryType: string(req.DeliveryType),
		DropLat:      req.DropLatitude,
		DropLon:      req.DropLongitude,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.TrackingID == "" {
		return "", fmt.Errorf("carrier %s returned no tracking id", c.code)
	}
	return resp.TrackingID, nil
}

type trackingResp struct {
	TrackingID string    `json:"tracking_id"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
}

func (c *Client) GetTracking(ctx context.Context, trackingID string) (ports.TrackingInfo, error) {
	var resp trackingResp
	if err := c.do(ctx, http.MethodGet, "/v1/shipments/"+url.PathEscape(trackingID)+"/tracking", nil, &resp); err != nil {
		return ports.TrackingInfo{}, err
	}
	if resp.TrackingID == "" {
		resp.TrackingID = trackingID
	}
	return ports.TrackingInfo{
		TrackingID: resp.TrackingID,
		Status:     resp.Status,
		UpdatedAt:  resp.UpdatedAt,
		Latitude:   resp.Latitude,
		Longitude:  resp.Longitude,
	}, nil
}

func (c *Client) CancelShipment(ctx context.Context, trackingID string, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, "/v1/shipments/"+url.PathEscape(trackingID)+"/cancel", body, nil)
}

// VerifyWebhookSignature expects the hex HMAC-SHA256 of the raw payload. A
// carrier without a configured secret accepts no webhooks.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) bool {
	if len(c.secret) == 0 || signature == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimPrefix(signature, "sha256="))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}

func (c *Client) SupportsDeliveryType(t ports.DeliveryType) bool {
	return len(c.types) == 0 || slices.Contains(c.types, t)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "carrier %s", c.code)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError("carrier shipment", path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("carrier %s rate limit (429)", c.code)
	case resp.StatusCode/100 != 2:
		return fmt.Errorf("carrier %s http %d", c.code, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}
