package ecocash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEndpoint(t *testing.T) {
	sandbox := NewClient(Config{Sandbox: true}, nil)
	assert.Equal(t, "https://developers.ecocash.co.zw/api/ecocash_pay/api/v2/payment/instant/c2b/sandbox", sandbox.Endpoint())

	live := NewClient(Config{BaseURL: "http://localhost:9000/"}, nil)
	assert.Equal(t, "http://localhost:9000/api/ecocash_pay/api/v2/payment/instant/c2b/live", live.Endpoint())
}

func TestPrepare(t *testing.T) {
	req, err := Prepare(PaymentRequest{CustomerMSISDN: "0771234567", Amount: 12.5, Reason: "rent"})
	require.NoError(t, err)
	assert.Equal(t, "263771234567", req.CustomerMSISDN)
	assert.Equal(t, "USD", req.Currency)
	_, err = uuid.Parse(req.SourceReference)
	assert.NoError(t, err)

	kept, err := Prepare(PaymentRequest{CustomerMSISDN: "263771234567", Amount: 1, Currency: "ZIG", SourceReference: "ref-1"})
	require.NoError(t, err)
	assert.Equal(t, "ZIG", kept.Currency)
	assert.Equal(t, "ref-1", kept.SourceReference)

	_, err = Prepare(PaymentRequest{CustomerMSISDN: "12345", Amount: 1})
	assert.ErrorIs(t, err, ErrInvalidMSISDN)

	_, err = Prepare(PaymentRequest{CustomerMSISDN: "0771234567", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestClientPaySuccess(t *testing.T) {
	var got PaymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sandboxPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transactionId":"TX-42","status":"PENDING"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "secret", BaseURL: srv.URL, Sandbox: true}, nil)
	res, err := c.Pay(context.Background(), PaymentRequest{CustomerMSISDN: "+263771234567", Amount: 20, Reason: "Invoice 7"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "TX-42", res.TransactionID)
	assert.Equal(t, "PENDING", res.Data["status"])
	assert.Equal(t, got.SourceReference, res.SourceReference)
	assert.Equal(t, "263771234567", got.CustomerMSISDN)
	assert.Equal(t, 20.0, got.Amount)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "Invoice 7", got.Reason)
}

func TestClientPayRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	res, err := c.Pay(context.Background(), PaymentRequest{CustomerMSISDN: "0771234567", Amount: 5, SourceReference: "ref-9"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusPaymentRequired, res.StatusCode)
	assert.Contains(t, res.Error, "insufficient funds")
	assert.Equal(t, "ref-9", res.SourceReference)
}

func TestClientPayInvalidNumberSendsNothing(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.Pay(context.Background(), PaymentRequest{CustomerMSISDN: "555", Amount: 5})
	assert.ErrorIs(t, err, ErrInvalidMSISDN)
	assert.False(t, called)
}

func TestClientPayCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(Config{BaseURL: srv.URL}, nil).Pay(ctx, PaymentRequest{CustomerMSISDN: "0771234567", Amount: 5})
	assert.ErrorIs(t, err, context.Canceled)
}
