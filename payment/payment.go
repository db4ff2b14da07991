package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aurelia-jewels/jewelry-api/config"
)

// LineItem is one provider-facing line. UnitAmount is in the provider's
// minor-unit integer convention (cents).
type LineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

type Customer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

type SessionRequest struct {
	CartRef  string
	Currency string
	Items    []LineItem
	Customer Customer
	Metadata map[string]string
}

type Session struct {
	ID         string
	PaymentURL string
}

// Provider creates hosted checkout sessions with the external payment gateway.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// sessionResponse represents the gateway response
type sessionResponse struct {
	Order struct {
		Ref string `json:"ref"`
		URL string `json:"url"`
	} `json:"order"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client talks to the gateway's checkout-session API over HTTP. Every call is
// bounded by the configured timeout; a timeout is surfaced as an error and is
// not retried here (no idempotency key exists at the provider level).
type Client struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig) (*Client, error) {
	if cfg.StoreID == 0 || cfg.AuthKey == "" || cfg.APIURL == "" {
		return nil, fmt.Errorf("payment configuration missing")
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	var total int64
	items := make([]map[string]interface{}, 0, len(req.Items))
	for _, it := range req.Items {
		total += it.UnitAmount * int64(it.Quantity)
		items = append(items, map[string]interface{}{
			"name":        it.Name,
			"unit_amount": it.UnitAmount,
			"quantity":    it.Quantity,
		})
	}

	payload := map[string]interface{}{
		"method":  "create",
		"store":   c.cfg.StoreID,
		"authkey": c.cfg.AuthKey,
		"order": map[string]interface{}{
			"cartid":   req.CartRef,
			"test":     c.cfg.TestMode(),
			"amount":   total,
			"currency": req.Currency,
			"items":    items,
		},
		"customer": map[string]interface{}{
			"name":  req.Customer.Name,
			"email": req.Customer.Email,
			"phone": req.Customer.Phone,
			"address": map[string]string{
				"line1":    req.Customer.Address,
				"city":     req.Customer.City,
				"country":  req.Customer.Country,
				"postcode": req.Customer.Postcode,
			},
		},
		"metadata": req.Metadata,
		"return": map[string]string{
			"authorised": c.cfg.SuccessURL,
			"cancelled":  c.cfg.CancelURL,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var sessionResp sessionResponse
	if err := json.Unmarshal(body, &sessionResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if sessionResp.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", sessionResp.Error.Message)
	}
	if sessionResp.Order.Ref == "" || sessionResp.Order.URL == "" {
		return nil, fmt.Errorf("gateway returned incomplete session")
	}

	return &Session{ID: sessionResp.Order.Ref, PaymentURL: sessionResp.Order.URL}, nil
}
