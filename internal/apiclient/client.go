// =============================================================================
// PO Tracker - Collaborator API Client
// =============================================================================
//
// Thin client for the REST collaborator that persists domain entities. The
// collaborator is a black box with a uniform JSON envelope:
//
//   { "success": bool, "data": ..., "error": { "message", "code", "details" } }
//
// The client's only obligations are well-formed create payloads and faithful
// interpretation of that envelope. Durability is entirely the collaborator's
// responsibility.
//
// =============================================================================

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/types"
)

// APIError is the collaborator's structured error payload. It is surfaced
// as-is so callers can show the message and details to the user.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s (%v)", e.Message, e.Details)
	}
	return e.Message
}

// envelope is the collaborator's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *APIError       `json:"error,omitempty"`
}

// Client talks to the collaborator API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New builds a client for the given base URL. The bearer token may be empty
// for collaborators that do not require authentication.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// CreatePurchaseOrder submits one grouped purchase order.
func (c *Client) CreatePurchaseOrder(ctx context.Context, po types.PurchaseOrder) error {
	return c.do(ctx, http.MethodPost, "/purchase-orders", po, nil)
}

// CreateShipment submits one grouped shipment.
func (c *Client) CreateShipment(ctx context.Context, s types.Shipment) error {
	return c.do(ctx, http.MethodPost, "/shipments", s, nil)
}

// ListVendors fetches vendor reference data for template dropdowns.
func (c *Client) ListVendors(ctx context.Context) ([]types.Vendor, error) {
	var vendors []types.Vendor
	if err := c.do(ctx, http.MethodGet, "/vendors", nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// ListTransporters fetches transporter reference data for template dropdowns.
func (c *Client) ListTransporters(ctx context.Context) ([]types.Transporter, error) {
	var transporters []types.Transporter
	if err := c.do(ctx, http.MethodGet, "/transporters", nil, &transporters); err != nil {
		return nil, err
	}
	return transporters, nil
}

// ListPurchaseOrders fetches existing purchase orders, used to offer valid
// poNumber values in the shipment template.
func (c *Client) ListPurchaseOrders(ctx context.Context) ([]types.PurchaseOrder, error) {
	var orders []types.PurchaseOrder
	if err := c.do(ctx, http.MethodGet, "/purchase-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// do executes one request/response round trip against the envelope contract.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("invalid response from %s (status %d): %w", path, resp.StatusCode, err)
	}

	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data from %s: %w", path, err)
		}
	}
	return nil
}
