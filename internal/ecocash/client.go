package ecocash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mulasense/finance-core/internal/calculation"
)

const (
	// DefaultBaseURL is the public EcoCash developer gateway.
	DefaultBaseURL = "https://developers.ecocash.co.zw"

	sandboxPath = "/api/ecocash_pay/api/v2/payment/instant/c2b/sandbox"
	livePath    = "/api/ecocash_pay/api/v2/payment/instant/c2b/live"

	// DefaultCurrency is used when a request leaves Currency empty.
	DefaultCurrency = "USD"
)

// ErrInvalidAmount is returned for payments that are not strictly positive.
var ErrInvalidAmount = errors.New("payment amount must be positive")

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Sandbox bool
	Timeout time.Duration
}

// PaymentRequest is a customer-to-business payment.
type PaymentRequest struct {
	CustomerMSISDN  string  `json:"customerMsisdn"`
	Amount          float64 `json:"amount"`
	Reason          string  `json:"reason"`
	Currency        string  `json:"currency"`
	SourceReference string  `json:"sourceReference"`
}

// PaymentResult is the gateway's answer. Success is true only for HTTP 200.
type PaymentResult struct {
	Success         bool           `json:"success"`
	StatusCode      int            `json:"status_code"`
	Data            map[string]any `json:"data,omitempty"`
	SourceReference string         `json:"source_reference"`
	TransactionID   string         `json:"transaction_id,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// Client posts payments to the EcoCash gateway.
type Client struct {
	baseURL string
	apiKey  string
	sandbox bool
	client  *http.Client
	log     calculation.Logger
}

// NewClient initializes a new EcoCash client. Zero config values select the
// public gateway and a 10 second timeout.
func NewClient(cfg Config, log calculation.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = calculation.NopLogger{}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		sandbox: cfg.Sandbox,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// Endpoint is the sandbox or live C2B URL, depending on configuration.
func (c *Client) Endpoint() string {
	if c.sandbox {
		return c.baseURL + sandboxPath
	}
	return c.baseURL + livePath
}

// Prepare normalises a request: MSISDN to 263 form, default currency, and a
// fresh UUID source reference when none is given.
func Prepare(req PaymentRequest) (PaymentRequest, error) {
	req.CustomerMSISDN = FormatMSISDN(req.CustomerMSISDN)
	if !msisdnPattern.MatchString(req.CustomerMSISDN) {
		return req, fmt.Errorf("%w: %q", ErrInvalidMSISDN, req.CustomerMSISDN)
	}
	if req.Amount <= 0 {
		return req, fmt.Errorf("%w: %.2f", ErrInvalidAmount, req.Amount)
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	if req.SourceReference == "" {
		req.SourceReference = uuid.NewString()
	}
	return req, nil
}

// Pay submits a payment. Validation and transport failures return an error;
// a non-200 reply from the gateway is reported through PaymentResult.
func (c *Client) Pay(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	req, err := Prepare(req)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("EcoCash response %d: %s", resp.StatusCode, string(body))

	result := &PaymentResult{
		Success:         resp.StatusCode == http.StatusOK,
		StatusCode:      resp.StatusCode,
		SourceReference: req.SourceReference,
	}
	if !result.Success {
		result.Error = string(body)
		c.log.Warnf("EcoCash payment %s rejected with status %d", req.SourceReference, resp.StatusCode)
		return result, nil
	}

	if err := json.Unmarshal(body, &result.Data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if id, ok := result.Data["transactionId"].(string); ok {
		result.TransactionID = id
	}
	c.log.Infof("EcoCash payment %s of %.2f %s accepted", req.SourceReference, req.Amount, req.Currency)
	return result, nil
}
