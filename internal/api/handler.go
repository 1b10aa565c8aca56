// Package api exposes the calculators over a JSON HTTP interface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mulasense/finance-core/internal/calculation"
	"github.com/mulasense/finance-core/internal/domain"
	"github.com/mulasense/finance-core/internal/reminder"
	"github.com/mulasense/finance-core/internal/storage"
	"github.com/mulasense/finance-core/pkg/decimal"
)

// LedgerStore is the read side of the ledger repository.
type LedgerStore interface {
	LoadLedger(ctx context.Context) (*domain.Ledger, error)
	GetDebtor(ctx context.Context, id string) (domain.Debtor, error)
}

// Handler serves the calculation endpoints.
type Handler struct {
	engine    *calculation.CalculationEngine
	store     LedgerStore
	userPhone string
	log       calculation.Logger
	now       func() time.Time
}

// NewHandler creates a handler. userPhone is the EcoCash number quoted in reminders.
func NewHandler(engine *calculation.CalculationEngine, store LedgerStore, userPhone string, log calculation.Logger) *Handler {
	if log == nil {
		log = calculation.NopLogger{}
	}
	return &Handler{engine: engine, store: store, userPhone: userPhone, log: log, now: calculation.Now}
}

// WithNow pins the clock used for reminder due-date arithmetic.
func (h *Handler) WithNow(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Router registers every route on a new mux router.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/paye", h.PAYE).Methods(http.MethodPost)
	r.HandleFunc("/tax/breakdown", h.TaxBreakdown).Methods(http.MethodPost)
	r.HandleFunc("/tax/estimate", h.TaxEstimate).Methods(http.MethodPost)
	r.HandleFunc("/tax/monthly", h.MonthlyTax).Methods(http.MethodPost)
	r.HandleFunc("/health-score", h.HealthScore).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/debtors/{id}/reminder", h.DebtorReminder).Methods(http.MethodGet)
	r.HandleFunc("/loans/offer", h.LoanOffer).Methods(http.MethodPost)
	return r
}

// Request bodies accept amounts as JSON numbers or decimal strings.
type payeRequest struct {
	GrossSalary decimal.Money `json:"gross_salary"`
}

type breakdownRequest struct {
	NetProfit      decimal.Money `json:"net_profit"`
	AnnualTurnover decimal.Money `json:"annual_turnover"`
	TotalSalaries  decimal.Money `json:"total_salaries"`
}

type financialDataRequest struct {
	NetProfit     decimal.Money `json:"net_profit"`
	AnnualRevenue decimal.Money `json:"annual_revenue"`
	GrossSalary   decimal.Money `json:"gross_salary"`
}

func (f financialDataRequest) toDomain() domain.FinancialData {
	return domain.FinancialData{
		NetProfit:     f.NetProfit.Float64(),
		AnnualRevenue: f.AnnualRevenue.Float64(),
		GrossSalary:   f.GrossSalary.Float64(),
	}
}

type loanRequest struct {
	Amount         decimal.Money `json:"amount"`
	DurationMonths int           `json:"duration_months"`
}

// PAYE handles POST /paye.
func (h *Handler) PAYE(w http.ResponseWriter, r *http.Request) {
	var req payeRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.PAYEReport(req.GrossSalary.Float64()).PAYE)
}

// TaxBreakdown handles POST /tax/breakdown.
func (h *Handler) TaxBreakdown(w http.ResponseWriter, r *http.Request) {
	var req breakdownRequest
	if !h.decode(w, r, &req) {
		return
	}
	report := h.engine.BreakdownReport(req.NetProfit.Float64(), req.AnnualTurnover.Float64(), req.TotalSalaries.Float64())
	writeJSON(w, http.StatusOK, report.Tax)
}

// TaxEstimate handles POST /tax/estimate with annual figures.
func (h *Handler) TaxEstimate(w http.ResponseWriter, r *http.Request) {
	var req financialDataRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.EstimateReport(req.toDomain(), false).Tax)
}

// MonthlyTax handles POST /tax/monthly with monthly figures.
func (h *Handler) MonthlyTax(w http.ResponseWriter, r *http.Request) {
	var req financialDataRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.EstimateReport(req.toDomain(), true).Tax)
}

// HealthScore handles GET /health-score.
func (h *Handler) HealthScore(w http.ResponseWriter, r *http.Request) {
	ledger, ok := h.loadLedger(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.HealthReport(ledger).Health)
}

// Dashboard handles GET /dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ledger, ok := h.loadLedger(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.HealthReport(ledger).Dashboard)
}

// DebtorReminder handles GET /debtors/{id}/reminder.
func (h *Handler) DebtorReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	debtor, err := h.store.GetDebtor(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "debtor not found")
		return
	}
	if err != nil {
		h.log.Errorf("load debtor %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load debtor")
		return
	}
	writeJSON(w, http.StatusOK, reminder.Build(debtor, h.userPhone, h.now()))
}

// LoanOffer handles POST /loans/offer.
func (h *Handler) LoanOffer(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	ledger, ok := h.loadLedger(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.LoanReport(ledger, req.Amount.Float64(), req.DurationMonths).Loan)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.log.Warnf("%s %s: bad request body: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) loadLedger(w http.ResponseWriter, r *http.Request) (*domain.Ledger, bool) {
	ledger, err := h.store.LoadLedger(r.Context())
	if err != nil {
		h.log.Errorf("load ledger: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load ledger")
		return nil, false
	}
	return ledger, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
