package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client creates orders against the gateway's REST API. BaseURL is
// overridable so tests can point it at an httptest server.
type Client struct {
	BaseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		BaseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 20 * time.Second},
	}
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type CreateOrderInput struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("gateway credentials not configured")
	}

	body, err := json.Marshal(map[string]interface{}{
		"amount":   in.AmountMinor,
		"currency": in.Currency,
		"receipt":  in.Receipt,
		"notes":    in.Notes,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway returned %s: %s", resp.Status, data)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("gateway response decode: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway response missing order id")
	}
	return &order, nil
}
