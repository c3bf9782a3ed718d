package confirmation

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"yatra/internal/shared/config"
)

// Request identifies the paid booking to exchange for a carrier PNR.
type Request struct {
	BookingID   string `json:"bookingId"`
	TrainID     string `json:"trainId"`
	ClassCode   string `json:"classCode"`
	JourneyDate string `json:"journeyDate"`
	Passengers  int    `json:"passengers"`
	Quota       string `json:"quota"`
}

// Confirmation is the carrier's acknowledgement of a booking.
type Confirmation struct {
	PNR string `json:"pnr"`
}

// Service is the carrier confirmation collaborator. Failures and timeouts
// are errors; the booking stays PAID and is reconciled out of band.
type Service interface {
	Confirm(ctx context.Context, req Request) (*Confirmation, error)
}

// NewFromConfig selects the confirmation implementation by configuration.
func NewFromConfig(cfg config.ConfirmationConfig) Service {
	if cfg.Mode == "http" {
		return NewHTTPService(cfg)
	}
	return NewMockService()
}

// httpService confirms bookings through a carrier partner API.
type httpService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPService creates a confirmation client against the configured base URL.
func NewHTTPService(cfg config.ConfirmationConfig) Service {
	return &httpService{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *httpService) Confirm(ctx context.Context, req Request) (*Confirmation, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode confirmation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/bookings/confirm", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build confirmation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("confirmation request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read confirmation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrier returned %d: %s", resp.StatusCode, body)
	}

	var parsed Confirmation
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode confirmation response: %w", err)
	}
	if parsed.PNR == "" {
		return nil, fmt.Errorf("carrier response missing pnr")
	}

	return &parsed, nil
}

// mockService issues synthetic ten-digit PNRs without leaving the process.
type mockService struct{}

// NewMockService creates the in-process confirmation service.
func NewMockService() Service {
	return &mockService{}
}

func (s *mockService) Confirm(ctx context.Context, req Request) (*Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pnr, err := generatePNR()
	if err != nil {
		return nil, fmt.Errorf("generate pnr: %w", err)
	}
	return &Confirmation{PNR: pnr}, nil
}

// generatePNR builds a ten-digit PNR with a non-zero leading digit.
func generatePNR() (string, error) {
	digits := make([]byte, 10)
	for i := range digits {
		limit := int64(10)
		offset := int64(0)
		if i == 0 {
			limit, offset = 9, 1
		}
		n, err := rand.Int(rand.Reader, big.NewInt(limit))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + offset + n.Int64())
	}
	return string(digits), nil
}
