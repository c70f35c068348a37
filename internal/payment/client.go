// Package payment creates hosted checkouts with the external payment
// provider.  The provider renders its own payment page; this service
// only obtains the redirect URL and hands it to the client.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CheckoutRequest describes one payment to collect.  Amount is in
// major currency units.
type CheckoutRequest struct {
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	RedirectURL string            `json:"redirect_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Checkout is the provider's answer: an id for reconciliation and the
// hosted page to redirect the prospect to.
type Checkout struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckout registers the payment with the provider and returns
// the hosted checkout.
func (c *Client) CreateCheckout(ctx context.Context, r CheckoutRequest) (Checkout, error) {
	if r.Currency == "" {
		r.Currency = "EUR"
	}
	body, err := json.Marshal(r)
	if err != nil {
		return Checkout{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return Checkout{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Checkout{}, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Checkout{}, fmt.Errorf("payment api: status %d: %s", resp.StatusCode, raw)
	}
	var out Checkout
	if err := json.Unmarshal(raw, &out); err != nil {
		return Checkout{}, fmt.Errorf("payment api: decode response: %w", err)
	}
	return out, nil
}
