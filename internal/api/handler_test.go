package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/internal/storage"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	ledger  domain.Ledger
	debtors map[string]domain.Debtor
	err     error
}

func (f *fakeStore) LoadLedger(context.Context) (*domain.Ledger, error) {
	if f.err != nil {
		return nil, f.err
	}
	l := f.ledger
	return &l, nil
}

func (f *fakeStore) GetDebtor(_ context.Context, id string) (domain.Debtor, error) {
	if f.err != nil {
		return domain.Debtor{}, f.err
	}
	d, ok := f.debtors[id]
	if !ok {
		return domain.Debtor{}, storage.ErrNotFound
	}
	return d, nil
}

var apiNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, store *fakeStore) *httptest.Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	h := NewHandler(calculation.NewCalculationEngine(), store, "+263771111111", logger).
		WithNow(func() time.Time { return apiNow })
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]any{}
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestPAYEEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	for _, body := range []string{`{"gross_salary": 1100}`, `{"gross_salary": "1100.00"}`} {
		resp, out := do(t, srv, http.MethodPost, "/paye", body)
		require.Equal(t, http.StatusOK, resp.StatusCode, body)
		assert.InDelta(t, 235.5425, out["paye"], 1e-9)
		assert.InDelta(t, 31.5, out["nssa"], 1e-9)
	}
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	tests := []struct {
		name, path, body string
	}{
		{"malformed json", "/paye", `{"gross_salary":`},
		{"unknown field", "/paye", `{"salary": 10}`},
		{"non numeric amount", "/tax/breakdown", `{"net_profit": "lots"}`},
		{"loan without amount", "/loans/offer", `{"duration_months": 6}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := do(t, srv, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})
	resp, _ := do(t, srv, http.MethodGet, "/paye", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestTaxBreakdownEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})
	resp, out := do(t, srv, http.MethodPost, "/tax/breakdown",
		`{"net_profit": 10000, "annual_turnover": 30000, "total_salaries": 0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 2575.0, out["corporate_tax"], 1e-9)
	assert.InDelta(t, 4500.0, out["vat"], 1e-9)
	assert.Equal(t, true, out["vat_registered"])
	assert.InDelta(t, 0.0, out["paye"], 1e-9)
	assert.InDelta(t, 25.75, out["effective_corporate_rate"], 1e-9)
}

func TestMonthlyMatchesAnnualEstimate(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})
	_, monthly := do(t, srv, http.MethodPost, "/tax/monthly",
		`{"net_profit": 1000, "annual_revenue": 2500, "gross_salary": 100}`)
	_, annual := do(t, srv, http.MethodPost, "/tax/estimate",
		`{"net_profit": 12000, "annual_revenue": 30000, "gross_salary": 1200}`)
	require.NotEmpty(t, monthly)
	assert.InDelta(t, annual["total_tax"], monthly["total_tax"], 1e-9)
	assert.Equal(t, true, monthly["vat_registered"])
}

func TestLedgerEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})

	resp, score := do(t, srv, http.MethodGet, "/health-score", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 10, score["score"], "only the fixed debt points without data")
	assert.Equal(t, "Poor", score["rating"])

	resp, dash := do(t, srv, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, dash["monthly_income"])
	assert.EqualValues(t, 10, dash["budget_health_score"])

	resp, loan := do(t, srv, http.MethodPost, "/loans/offer", `{"amount": 500, "duration_months": 6}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rejected", loan["status"])
	assert.EqualValues(t, 10, loan["interest_rate"])
}

func TestLedgerStoreFailure(t *testing.T) {
	srv := newTestServer(t, &fakeStore{err: errors.New("disk on fire")})

	resp, out := do(t, srv, http.MethodGet, "/health-score", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to load ledger", out["error"])

	resp, _ = do(t, srv, http.MethodGet, "/debtors/d1/reminder", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestDebtorReminderEndpoint(t *testing.T) {
	store := &fakeStore{debtors: map[string]domain.Debtor{
		"d1": {
			ID: "d1", Name: "Farai", PhoneNumber: "+263 77 222 3333",
			TotalAmount: 150, AmountPaid: 50,
			DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}}
	srv := newTestServer(t, store)

	resp, out := do(t, srv, http.MethodGet, "/debtors/d1/reminder", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "d1", out["debtor_id"])
	assert.EqualValues(t, 100, out["amount_remaining"])
	assert.Equal(t, true, out["overdue"])
	assert.Contains(t, out["message"], "outstanding balance of $100.00")
	assert.Contains(t, out["message"], "The due date is 3/10/2025.")
	assert.True(t, strings.HasPrefix(out["link"].(string), "https://wa.me/263772223333?text=Hello%20Farai"))

	resp, out = do(t, srv, http.MethodGet, "/debtors/missing/reminder", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "debtor not found", out["error"])
}
