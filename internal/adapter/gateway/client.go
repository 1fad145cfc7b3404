package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	paydomain "auction-registration/internal/domain/payment"
)

// Client talks to the external payment gateway over JSON/HTTP. It does no
// retries itself; callers classify failures as retryable and the bidder (or
// the verify endpoint) drives the retry.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ paydomain.Gateway = (*Client)(nil)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type createIntentRequest struct {
	UserID    string  `json:"user_id"`
	AuctionID string  `json:"auction_id"`
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
}

type intentResponse struct {
	PaymentID string    `json:"payment_id"`
	URL       string    `json:"payment_url"`
	QRCode    string    `json:"qr_code"`
	BankInfo  string    `json:"bank_info"`
	Deadline  time.Time `json:"deadline"`
}

type intentStatusResponse struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
	URL    string  `json:"payment_url"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway %s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) CreateIntent(ctx context.Context, in paydomain.CreateIntentInput) (paydomain.Intent, error) {
	var resp intentResponse
	err := c.do(ctx, http.MethodPost, "/v1/payment-intents", createIntentRequest{
		UserID:    in.UserID,
		AuctionID: in.AuctionID,
		Reference: in.RegistrationID,
		Amount:    in.Amount,
	}, &resp)
	if err != nil {
		return paydomain.Intent{}, err
	}
	return paydomain.Intent{
		PaymentID: resp.PaymentID,
		URL:       resp.URL,
		QRCode:    resp.QRCode,
		BankInfo:  resp.BankInfo,
		Deadline:  resp.Deadline,
	}, nil
}

func (c *Client) GetIntentStatus(ctx context.Context, paymentID string) (paydomain.IntentState, error) {
	var resp intentStatusResponse
	err := c.do(ctx, http.MethodGet, "/v1/payment-intents/"+paymentID, nil, &resp)
	if err != nil {
		return paydomain.IntentState{}, err
	}
	return paydomain.IntentState{
		Status: paydomain.IntentStatus(resp.Status),
		Amount: resp.Amount,
		URL:    resp.URL,
	}, nil
}
