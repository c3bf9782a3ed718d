package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"yatra/internal/shared/config"
)

// ChargeRequest describes one charge attempt against the gateway.
type ChargeRequest struct {
	BookingID string  `json:"receipt"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// ChargeResult is the gateway's answer to a successful charge.
type ChargeResult struct {
	PaymentID string `json:"paymentId"`
}

// Gateway is the payment processor collaborator. A declined charge, a
// gateway fault, and a timeout are all reported as errors; the caller treats
// them identically.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// NewFromConfig selects the gateway implementation by configuration.
func NewFromConfig(cfg config.PaymentConfig) Gateway {
	if cfg.Mode == "http" {
		return NewHTTPGateway(cfg)
	}
	return NewMockGateway()
}

// httpGateway charges through a hosted payment gateway over HTTPS.
type httpGateway struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewHTTPGateway creates a gateway client against the configured base URL.
func NewHTTPGateway(cfg config.PaymentConfig) Gateway {
	return &httpGateway{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *httpGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	// Gateways take the amount in the currency's minor unit (paise for INR).
	payload, err := json.Marshal(map[string]interface{}{
		"amount":   int64(req.Amount * 100),
		"currency": req.Currency,
		"receipt":  req.BookingID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read charge response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body)
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}
	if parsed.ID == "" {
		return nil, fmt.Errorf("gateway response missing payment id")
	}

	return &ChargeResult{PaymentID: parsed.ID}, nil
}

// mockGateway approves every well-formed charge without leaving the process.
// It is the default in development and mirrors the hosted gateway's id shape.
type mockGateway struct{}

// NewMockGateway creates the in-process gateway.
func NewMockGateway() Gateway {
	return &mockGateway{}
}

func (g *mockGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("charge declined: non-positive amount %.2f", req.Amount)
	}

	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:14]
	return &ChargeResult{
		PaymentID: fmt.Sprintf("pay_%d_%s", time.Now().Unix(), id),
	}, nil
}
